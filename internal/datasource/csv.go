package datasource

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
)

// CSVDataSource reads instrument tables from a directory of csv files.
type CSVDataSource struct {
	dir string
	log *logger.Logger
}

// NewCSVDataSource creates a csv data source rooted at dir.
func NewCSVDataSource(dir string, log *logger.Logger) (*CSVDataSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "cannot open data directory %s", dir)
	}

	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrCodeDataSourceUnavailable, "%s is not a directory", dir)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &CSVDataSource{
		dir: dir,
		log: log.Named("csv-data"),
	}, nil
}

// InstrumentCodes implements DataSource.
func (c *CSVDataSource) InstrumentCodes() ([]types.InstrumentKey, error) {
	return listInstruments(c.dir, "csv")
}

// RawData implements DataSource.
func (c *CSVDataSource) RawData(instrument types.InstrumentKey) (types.PriceTable, error) {
	return c.readPrices(instrument, rawDataFile(c.dir, instrument, "csv"))
}

// RawPrice implements DataSource. The native price is the close column.
func (c *CSVDataSource) RawPrice(instrument types.InstrumentKey) (types.Series, error) {
	table, err := c.RawData(instrument)
	if err != nil {
		return types.Series{}, err
	}

	return table.CloseSeries().Rename("price"), nil
}

// RawClose implements DataSource.
func (c *CSVDataSource) RawClose(instrument types.InstrumentKey) (types.Series, error) {
	table, err := c.RawData(instrument)
	if err != nil {
		return types.Series{}, err
	}

	return table.CloseSeries(), nil
}

// InstrumentRawCarryData implements DataSource.
func (c *CSVDataSource) InstrumentRawCarryData(instrument types.InstrumentKey) (types.CarryTable, error) {
	path := carryDataFile(c.dir, instrument, "csv")

	var rows []carryRow
	if err := c.unmarshalFile(path, &rows); err != nil {
		return types.CarryTable{}, err
	}

	records := make([]types.CarryRecord, len(rows))
	for i, row := range rows {
		records[i] = types.CarryRecord{
			Time:          row.Time.Time,
			Price:         float64(row.Price),
			Carry:         float64(row.Carry),
			PriceContract: string(row.PriceContract),
			CarryContract: string(row.CarryContract),
		}
	}

	c.log.Debug("Loaded carry data", zap.String("instrument", string(instrument)), zap.Int("rows", len(records)))

	return types.CarryTable{Instrument: instrument, Records: sortCarry(records)}, nil
}

// ResolutionData implements DataSource.
func (c *CSVDataSource) ResolutionData(instrument types.InstrumentKey, resolution types.Resolution) (types.PriceTable, error) {
	if _, err := types.ParseResolution(string(resolution)); err != nil {
		return types.PriceTable{}, err
	}

	return c.readPrices(instrument, resolutionFile(c.dir, instrument, resolution, "csv"))
}

// InstrumentCosts implements DataSource.
func (c *CSVDataSource) InstrumentCosts(instrument types.InstrumentKey) (types.InstrumentCosts, error) {
	var rows []costRow
	if err := c.unmarshalFile(filepath.Join(c.dir, costsFileName), &rows); err != nil {
		return types.InstrumentCosts{}, err
	}

	for _, row := range rows {
		if strings.TrimSpace(row.Instrument) != string(instrument) {
			continue
		}

		return types.InstrumentCosts{
			Instrument: instrument,
			Slippage:   row.Slippage.Decimal,
			PerBlock:   row.PerBlock.Decimal,
			Percentage: row.Percentage.Decimal,
			PerTrade:   row.PerTrade.Decimal,
		}, nil
	}

	return types.InstrumentCosts{}, errors.Newf(errors.ErrCodeDataNotFound, "no costs for %s", instrument)
}

// TradingHours implements DataSource.
func (c *CSVDataSource) TradingHours(instrument types.InstrumentKey) (types.TradingHours, error) {
	return loadTradingHours(c.dir, instrument)
}

// EquityCurve implements DataSource.
func (c *CSVDataSource) EquityCurve(code string) (types.Series, error) {
	path := equityCurveFile(c.dir, code)

	var rows []equityRow
	if err := c.decodeFile(path, &rows, gocsv.UnmarshalWithoutHeaders); err != nil {
		return types.Series{}, err
	}

	points := make([]equityPoint, len(rows))
	for i, row := range rows {
		points[i] = equityPoint{time: row.Time.Time, value: float64(row.Value)}
	}

	c.log.Debug("Loaded equity curve", zap.String("system", code), zap.Int("rows", len(points)))

	return equitySeries(code, points), nil
}

// Close implements DataSource.
func (c *CSVDataSource) Close() error {
	return nil
}

func (c *CSVDataSource) readPrices(instrument types.InstrumentKey, path string) (types.PriceTable, error) {
	var rows []priceRow
	if err := c.unmarshalFile(path, &rows); err != nil {
		return types.PriceTable{}, err
	}

	bars := make([]types.Bar, len(rows))
	for i, row := range rows {
		bars[i] = types.Bar{
			Time:   row.Time.Time,
			Close:  float64(row.Close),
			Open:   float64(row.Open),
			High:   float64(row.High),
			Low:    float64(row.Low),
			Volume: float64(row.Volume),
		}
	}

	c.log.Debug("Loaded price data",
		zap.String("instrument", string(instrument)),
		zap.String("file", filepath.Base(path)),
		zap.Int("rows", len(bars)),
	)

	return types.PriceTable{Instrument: instrument, Bars: sortBars(bars)}, nil
}

func (c *CSVDataSource) unmarshalFile(path string, out any) error {
	return c.decodeFile(path, out, gocsv.Unmarshal)
}

func (c *CSVDataSource) decodeFile(path string, out any, decode func(in io.Reader, out any) error) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrCodeDataNotFound, "no data file at %s", path)
		}

		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to open %s", path)
	}
	defer file.Close()

	if err := decode(file, out); err != nil {
		return errors.Wrapf(errors.ErrCodeDataParseFailed, err, "failed to parse %s", path)
	}

	return nil
}
