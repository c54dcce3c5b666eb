package datasource_test

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-research/internal/datasource"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/mocks"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MemoryDataSourceTestSuite struct {
	suite.Suite
	source *datasource.MemoryDataSource
}

func TestMemoryDataSourceSuite(t *testing.T) {
	suite.Run(t, new(MemoryDataSourceTestSuite))
}

func (suite *MemoryDataSourceTestSuite) SetupTest() {
	suite.source = datasource.NewMemoryDataSource()
	suite.source.SetPrices(types.PriceTable{
		Instrument: "US10",
		Bars: []types.Bar{
			{Time: at(7, 14), Close: 120, Open: 119, High: 121, Low: 118, Volume: 10},
			{Time: at(8, 14), Close: 121, Open: 120, High: 122, Low: 119, Volume: 12},
		},
	})
	suite.source.SetCarry(types.CarryTable{
		Instrument: "EDOLLAR",
		Records: []types.CarryRecord{
			{Time: at(7, 0), Price: 101.25, Carry: 101.5, PriceContract: "201903", CarryContract: "201812"},
		},
	})
}

func (suite *MemoryDataSourceTestSuite) TestInstrumentCodes() {
	codes, err := suite.source.InstrumentCodes()
	suite.Require().NoError(err)
	suite.Equal([]types.InstrumentKey{"EDOLLAR", "US10"}, codes)
}

func (suite *MemoryDataSourceTestSuite) TestTablesAreCopied() {
	table, err := suite.source.RawData("US10")
	suite.Require().NoError(err)

	table.Bars[0].Close = -1

	again, err := suite.source.RawData("US10")
	suite.Require().NoError(err)
	suite.Equal(120.0, again.Bars[0].Close)

	carry, err := suite.source.InstrumentRawCarryData("EDOLLAR")
	suite.Require().NoError(err)

	carry.Records[0].Carry = 0

	carry, err = suite.source.InstrumentRawCarryData("EDOLLAR")
	suite.Require().NoError(err)
	suite.Equal(101.5, carry.Records[0].Carry)
}

func (suite *MemoryDataSourceTestSuite) TestSeriesAccessors() {
	price, err := suite.source.RawPrice("US10")
	suite.Require().NoError(err)
	suite.Equal("price", price.Name)
	suite.Equal([]float64{120, 121}, price.Values)

	closes, err := suite.source.RawClose("US10")
	suite.Require().NoError(err)
	suite.Equal("close_price", closes.Name)
}

func (suite *MemoryDataSourceTestSuite) TestMissingData() {
	_, err := suite.source.RawData("EDOLLAR")
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))

	_, err = suite.source.InstrumentRawCarryData("US10")
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))

	_, err = suite.source.ResolutionData("US10", types.ResolutionWeekly)
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))

	_, err = suite.source.InstrumentCosts("US10")
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))

	_, err = suite.source.TradingHours("US10")
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func (suite *MemoryDataSourceTestSuite) TestCostsAndHours() {
	suite.source.SetCosts(types.InstrumentCosts{Instrument: "US10", PerBlock: decimal.NewFromFloat(1.5)})
	suite.source.SetTradingHours(types.TradingHours{Instrument: "US10", Open: "07:00", Close: "17:00", TimeZone: "UTC"})

	costs, err := suite.source.InstrumentCosts("US10")
	suite.Require().NoError(err)
	suite.True(decimal.NewFromFloat(1.5).Equal(costs.PerBlock))

	hours, err := suite.source.TradingHours("US10")
	suite.Require().NoError(err)
	suite.Equal("07:00", hours.Open)
}

func (suite *MemoryDataSourceTestSuite) TestEquityCurve() {
	stored, err := types.NewSeries("equity", []time.Time{at(7, 0), at(8, 0)}, []float64{100, 101})
	suite.Require().NoError(err)

	suite.source.SetEquityCurve("CARRY", stored)
	stored.Values[0] = -1

	curve, err := suite.source.EquityCurve("CARRY")
	suite.Require().NoError(err)
	suite.Equal("CARRY", curve.Name)
	suite.Equal([]float64{100, 101}, curve.Values)

	_, err = suite.source.EquityCurve("TREND")
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func (suite *MemoryDataSourceTestSuite) TestResolutionData() {
	suite.source.SetResolution(types.ResolutionDaily, types.PriceTable{
		Instrument: "US10",
		Bars:       []types.Bar{{Time: at(7, 0), Close: 120}},
	})

	table, err := suite.source.ResolutionData("US10", types.ResolutionDaily)
	suite.Require().NoError(err)
	suite.Equal(1, table.Len())

	_, err = suite.source.ResolutionData("US10", types.Resolution("hourly"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidResolution))
}

type ResamplingDataSourceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	mock *mocks.MockDataSource
	ds   *datasource.ResamplingDataSource
}

func TestResamplingDataSourceSuite(t *testing.T) {
	suite.Run(t, new(ResamplingDataSourceTestSuite))
}

func (suite *ResamplingDataSourceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mock = mocks.NewMockDataSource(suite.ctrl)
	suite.ds = datasource.NewResamplingDataSource(suite.mock, logger.NewNopLogger())
}

func (suite *ResamplingDataSourceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ResamplingDataSourceTestSuite) TestStoredTableWins() {
	stored := types.PriceTable{Instrument: "US10", Bars: []types.Bar{{Time: at(7, 0), Close: 1}}}
	suite.mock.EXPECT().ResolutionData(types.InstrumentKey("US10"), types.ResolutionDaily).Return(stored, nil)

	table, err := suite.ds.ResolutionData("US10", types.ResolutionDaily)
	suite.Require().NoError(err)
	suite.Equal(stored, table)
}

func (suite *ResamplingDataSourceTestSuite) TestResamplesNativeBars() {
	suite.mock.EXPECT().ResolutionData(types.InstrumentKey("US10"), types.ResolutionDaily).
		Return(types.PriceTable{}, errors.New(errors.ErrCodeDataNotFound, "missing"))
	suite.mock.EXPECT().RawData(types.InstrumentKey("US10")).Return(types.PriceTable{
		Instrument: "US10",
		Bars: []types.Bar{
			{Time: at(7, 14), Close: 120, Open: 119, High: 121, Low: 118, Volume: 10},
			{Time: at(7, 15), Close: 122, Open: 120, High: 123, Low: 117, Volume: 5},
			{Time: at(8, 14), Close: 121, Open: 121, High: 122, Low: 120, Volume: 12},
		},
	}, nil)

	table, err := suite.ds.ResolutionData("US10", types.ResolutionDaily)
	suite.Require().NoError(err)
	suite.Require().Equal(2, table.Len())
	suite.Equal(types.Bar{Time: at(7, 0), Close: 122, Open: 119, High: 123, Low: 117, Volume: 15}, table.Bars[0])
}

func (suite *ResamplingDataSourceTestSuite) TestOtherErrorsPropagate() {
	suite.mock.EXPECT().ResolutionData(types.InstrumentKey("US10"), types.ResolutionDaily).
		Return(types.PriceTable{}, errors.New(errors.ErrCodeDataParseFailed, "broken"))

	_, err := suite.ds.ResolutionData("US10", types.ResolutionDaily)
	suite.True(errors.HasCode(err, errors.ErrCodeDataParseFailed))
}

func (suite *ResamplingDataSourceTestSuite) TestDelegates() {
	suite.mock.EXPECT().InstrumentCodes().Return([]types.InstrumentKey{"US10"}, nil)

	codes, err := suite.ds.InstrumentCodes()
	suite.Require().NoError(err)
	suite.Equal([]types.InstrumentKey{"US10"}, codes)
}
