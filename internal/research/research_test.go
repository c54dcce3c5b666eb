package research

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-research/internal/datasource"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/system"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/internal/writer"
	"github.com/rxtech-lab/argo-research/mocks"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type exportedRow struct {
	Time       string `csv:"DATETIME"`
	Instrument string `csv:"INSTRUMENT"`
	Series     string `csv:"SERIES"`
	Value      string `csv:"VALUE"`
}

type ResearchTestSuite struct {
	suite.Suite
	data   *datasource.MemoryDataSource
	config system.Config
	ctx    context.Context
}

func TestResearchSuite(t *testing.T) {
	suite.Run(t, new(ResearchTestSuite))
}

func (suite *ResearchTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.data = datasource.NewMemoryDataSource()

	generator := mocks.NewDataGenerator(7)
	base := mocks.DefaultConfig()
	base.Count = 800

	prices, carry := generator.GenerateMultiInstrument([]types.InstrumentKey{"EDOLLAR", "US10"}, base)
	for i := range prices {
		suite.data.SetPrices(prices[i])
		suite.data.SetCarry(carry[i])
	}

	suite.config = system.DefaultConfig()
}

func (suite *ResearchTestSuite) readRows(path string) []*exportedRow {
	file, err := os.Open(path)
	suite.Require().NoError(err)
	defer file.Close()

	var rows []*exportedRow
	suite.Require().NoError(gocsv.UnmarshalFile(file, &rows))

	return rows
}

func (suite *ResearchTestSuite) TestCarrySystemStages() {
	sys, err := NewCarrySystem(suite.data, suite.config, logger.NewNopLogger())
	suite.Require().NoError(err)
	defer sys.Close()

	suite.Equal([]string{"rawdata", "carryfit"}, func() []string {
		names := make([]string, 0, 2)
		for _, name := range sys.StageOrder() {
			names = append(names, string(name))
		}

		return names
	}())

	instruments, err := sys.Instruments()
	suite.Require().NoError(err)
	suite.Equal([]types.InstrumentKey{"EDOLLAR", "US10"}, instruments)
}

func (suite *ResearchTestSuite) TestExportRoll() {
	sys, err := NewCarrySystem(suite.data, suite.config, logger.NewNopLogger())
	suite.Require().NoError(err)

	instruments, err := sys.Instruments()
	suite.Require().NoError(err)

	calls := 0
	path, err := Export(suite.ctx, nil, instruments, sys.RollSeries,
		writer.NewCSVSeriesWriter(filepath.Join(suite.T().TempDir(), "roll.csv")), func() { calls++ })
	suite.Require().NoError(err)
	suite.Equal(2, calls)

	seen := map[string]bool{}
	for _, row := range suite.readRows(path) {
		seen[row.Instrument+"/"+row.Series] = true
	}

	for _, instrument := range []string{"EDOLLAR", "US10"} {
		for _, name := range []string{"raw_futures_roll", "roll_differentials", "annualised_roll", "daily_annualised_roll", "daily_denominator_price"} {
			suite.True(seen[instrument+"/"+name], "missing %s/%s", instrument, name)
		}
	}
}

func (suite *ResearchTestSuite) TestExportForecastSkipsMissingInstrument() {
	sys, err := NewCarrySystem(suite.data, suite.config, logger.NewNopLogger())
	suite.Require().NoError(err)

	path, err := Export(suite.ctx, logger.NewNopLogger(), []types.InstrumentKey{"GOLD", "EDOLLAR"}, sys.ForecastSeries,
		writer.NewCSVSeriesWriter(filepath.Join(suite.T().TempDir(), "forecast.csv")), nil)
	suite.Require().NoError(err)

	rows := suite.readRows(path)
	suite.NotEmpty(rows)

	for _, row := range rows {
		suite.Equal("EDOLLAR", row.Instrument)
		suite.Contains([]string{"daily_annualised_roll", "carry_forecast"}, row.Series)
	}
}

func (suite *ResearchTestSuite) TestExportForecastWithPriceOnlyInstrument() {
	prices, _ := mocks.NewDataGenerator(11).GenerateMultiInstrument([]types.InstrumentKey{"GOLD"}, mocks.DefaultConfig())
	suite.data.SetPrices(prices[0])

	sys, err := NewCarrySystem(suite.data, suite.config, logger.NewNopLogger())
	suite.Require().NoError(err)

	instruments, err := sys.Instruments()
	suite.Require().NoError(err)
	suite.Equal([]types.InstrumentKey{"EDOLLAR", "GOLD", "US10"}, instruments)

	calls := 0
	path, err := Export(suite.ctx, logger.NewNopLogger(), instruments, sys.ForecastSeries,
		writer.NewCSVSeriesWriter(filepath.Join(suite.T().TempDir(), "forecast.csv")), func() { calls++ })
	suite.Require().NoError(err)
	suite.Equal(3, calls)

	seen := map[string]bool{}
	for _, row := range suite.readRows(path) {
		seen[row.Instrument] = true
	}

	suite.Equal(map[string]bool{"EDOLLAR": true, "US10": true}, seen)
}

func (suite *ResearchTestSuite) TestExportStopsOnComputationError() {
	failing := func(context.Context, types.InstrumentKey) ([]types.Series, error) {
		return nil, errors.New(errors.ErrCodeInvalidExpiry, "bad contract")
	}

	_, err := Export(suite.ctx, nil, []types.InstrumentKey{"EDOLLAR"}, failing,
		writer.NewCSVSeriesWriter(filepath.Join(suite.T().TempDir(), "out.csv")), nil)
	suite.True(errors.HasCode(err, errors.ErrCodeComputationFailed))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidExpiry))
}

func (suite *ResearchTestSuite) TestExportHonoursCancellation() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	sys, err := NewCarrySystem(suite.data, suite.config, nil)
	suite.Require().NoError(err)

	_, err = Export(ctx, nil, []types.InstrumentKey{"EDOLLAR"}, sys.RollSeries,
		writer.NewCSVSeriesWriter(filepath.Join(suite.T().TempDir(), "out.csv")), nil)
	suite.ErrorIs(err, context.Canceled)
}

func (suite *ResearchTestSuite) TestOpenDataSource() {
	dir := suite.T().TempDir()
	suite.Require().NoError(os.WriteFile(filepath.Join(dir, "EDOLLAR_data.csv"),
		[]byte("DATETIME,close_price,open_price,high_price,low_price,volume\n2015-12-07 14:00:00,1,1,1,1,1\n"), 0o644))

	config := system.DefaultConfig()
	config.DataPath = dir

	for _, kind := range []system.DataSourceType{system.DataSourceCSV, system.DataSourceDuckDB} {
		config.DataSourceType = kind

		source, err := OpenDataSource(config, logger.NewNopLogger())
		suite.Require().NoError(err, kind)
		suite.IsType(&datasource.ResamplingDataSource{}, source)

		daily, err := source.ResolutionData("EDOLLAR", types.ResolutionDaily)
		suite.Require().NoError(err, kind)
		suite.Equal(1, daily.Len())
		suite.NoError(source.Close())
	}

	config.DataSourceType = "excel"
	_, err := OpenDataSource(config, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	config.DataSourceType = system.DataSourceCSV
	config.DataPath = filepath.Join(dir, "missing")
	_, err = OpenDataSource(config, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeDataSourceUnavailable))
}
