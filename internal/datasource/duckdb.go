package datasource

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBDataSource queries the files of a data directory through an in-memory DuckDB
// database. Per-instrument tables may be stored as parquet or csv; parquet wins when both
// exist.
type DuckDBDataSource struct {
	dir string
	db  *sql.DB
	log *logger.Logger
	sq  squirrel.StatementBuilderType
}

// NewDuckDBDataSource opens an in-memory DuckDB database reading from dir.
func NewDuckDBDataSource(dir string, log *logger.Logger) (*DuckDBDataSource, error) {
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

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	// Set DuckDB-specific optimizations
	_, err = db.Exec(`
		SET memory_limit='2GB';
		SET threads=4;
	`)
	if err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to set DuckDB optimizations", err)
	}

	return &DuckDBDataSource{
		dir: dir,
		db:  db,
		log: log.Named("duckdb-data"),
		sq:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// InstrumentCodes implements DataSource.
func (d *DuckDBDataSource) InstrumentCodes() ([]types.InstrumentKey, error) {
	return listInstruments(d.dir, "parquet", "csv")
}

// RawData implements DataSource.
func (d *DuckDBDataSource) RawData(instrument types.InstrumentKey) (types.PriceTable, error) {
	source, err := d.tableSource(func(ext string) string { return rawDataFile(d.dir, instrument, ext) })
	if err != nil {
		return types.PriceTable{}, err
	}

	return d.queryPrices(instrument, source)
}

// RawPrice implements DataSource.
func (d *DuckDBDataSource) RawPrice(instrument types.InstrumentKey) (types.Series, error) {
	table, err := d.RawData(instrument)
	if err != nil {
		return types.Series{}, err
	}

	return table.CloseSeries().Rename("price"), nil
}

// RawClose implements DataSource.
func (d *DuckDBDataSource) RawClose(instrument types.InstrumentKey) (types.Series, error) {
	table, err := d.RawData(instrument)
	if err != nil {
		return types.Series{}, err
	}

	return table.CloseSeries(), nil
}

// InstrumentRawCarryData implements DataSource.
func (d *DuckDBDataSource) InstrumentRawCarryData(instrument types.InstrumentKey) (types.CarryTable, error) {
	source, err := d.tableSource(func(ext string) string { return carryDataFile(d.dir, instrument, ext) })
	if err != nil {
		return types.CarryTable{}, err
	}

	query, args, err := d.sq.
		Select(
			"CAST(DATETIME AS TIMESTAMP) AS time",
			"TRY_CAST(PRICE AS DOUBLE) AS price",
			"TRY_CAST(CARRY AS DOUBLE) AS carry",
			"CAST(PRICE_CONTRACT AS VARCHAR) AS price_contract",
			"CAST(CARRY_CONTRACT AS VARCHAR) AS carry_contract",
		).
		From(source).
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return types.CarryTable{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build carry query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return types.CarryTable{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query carry data of %s", instrument)
	}
	defer rows.Close()

	records := make([]types.CarryRecord, 0, 1000)

	for rows.Next() {
		var (
			timestamp                    time.Time
			price, carry                 sql.NullFloat64
			priceContract, carryContract sql.NullString
		)

		if err := rows.Scan(&timestamp, &price, &carry, &priceContract, &carryContract); err != nil {
			return types.CarryTable{}, errors.Wrap(errors.ErrCodeDataParseFailed, "failed to scan carry row", err)
		}

		records = append(records, types.CarryRecord{
			Time:          timestamp,
			Price:         nullFloat(price),
			Carry:         nullFloat(carry),
			PriceContract: contractToken(priceContract),
			CarryContract: contractToken(carryContract),
		})
	}

	if err := rows.Err(); err != nil {
		return types.CarryTable{}, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating carry rows", err)
	}

	d.log.Debug("Loaded carry data", zap.String("instrument", string(instrument)), zap.Int("rows", len(records)))

	return types.CarryTable{Instrument: instrument, Records: sortCarry(records)}, nil
}

// ResolutionData implements DataSource.
func (d *DuckDBDataSource) ResolutionData(instrument types.InstrumentKey, resolution types.Resolution) (types.PriceTable, error) {
	if _, err := types.ParseResolution(string(resolution)); err != nil {
		return types.PriceTable{}, err
	}

	source, err := d.tableSource(func(ext string) string { return resolutionFile(d.dir, instrument, resolution, ext) })
	if err != nil {
		return types.PriceTable{}, err
	}

	return d.queryPrices(instrument, source)
}

// InstrumentCosts implements DataSource.
func (d *DuckDBDataSource) InstrumentCosts(instrument types.InstrumentKey) (types.InstrumentCosts, error) {
	path := filepath.Join(d.dir, costsFileName)
	if !fileExists(path) {
		return types.InstrumentCosts{}, errors.Newf(errors.ErrCodeDataNotFound, "no data file at %s", path)
	}

	query, args, err := d.sq.
		Select(
			"CAST(Slippage AS VARCHAR)",
			"CAST(PerBlock AS VARCHAR)",
			"CAST(Percentage AS VARCHAR)",
			"CAST(PerTrade AS VARCHAR)",
		).
		From(csvSource(path)).
		Where(squirrel.Eq{"Instrument": string(instrument)}).
		Limit(1).
		ToSql()
	if err != nil {
		return types.InstrumentCosts{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build costs query", err)
	}

	var cells [4]sql.NullString

	err = d.db.QueryRow(query, args...).Scan(&cells[0], &cells[1], &cells[2], &cells[3])
	if err == sql.ErrNoRows {
		return types.InstrumentCosts{}, errors.Newf(errors.ErrCodeDataNotFound, "no costs for %s", instrument)
	}

	if err != nil {
		return types.InstrumentCosts{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query costs of %s", instrument)
	}

	var values [4]csvDecimal

	for i, cell := range cells {
		if err := values[i].UnmarshalCSV(cell.String); err != nil {
			return types.InstrumentCosts{}, errors.Wrapf(errors.ErrCodeDataParseFailed, err, "invalid costs for %s", instrument)
		}
	}

	return types.InstrumentCosts{
		Instrument: instrument,
		Slippage:   values[0].Decimal,
		PerBlock:   values[1].Decimal,
		Percentage: values[2].Decimal,
		PerTrade:   values[3].Decimal,
	}, nil
}

// TradingHours implements DataSource.
func (d *DuckDBDataSource) TradingHours(instrument types.InstrumentKey) (types.TradingHours, error) {
	return loadTradingHours(d.dir, instrument)
}

// EquityCurve implements DataSource.
func (d *DuckDBDataSource) EquityCurve(code string) (types.Series, error) {
	path := equityCurveFile(d.dir, code)
	if !fileExists(path) {
		return types.Series{}, errors.Newf(errors.ErrCodeDataNotFound, "no data file at %s", path)
	}

	// Headerless files get positional column names.
	query, args, err := d.sq.
		Select(
			"CAST(column0 AS TIMESTAMP) AS time",
			"TRY_CAST(column1 AS DOUBLE)",
		).
		From(fmt.Sprintf("read_csv_auto('%s', header=false, all_varchar=true)", escapeLiteral(path))).
		ToSql()
	if err != nil {
		return types.Series{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build equity curve query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return types.Series{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query equity curve of %s", code)
	}
	defer rows.Close()

	var points []equityPoint

	for rows.Next() {
		var (
			timestamp time.Time
			value     sql.NullFloat64
		)

		if err := rows.Scan(&timestamp, &value); err != nil {
			return types.Series{}, errors.Wrap(errors.ErrCodeDataParseFailed, "failed to scan equity curve row", err)
		}

		points = append(points, equityPoint{time: timestamp, value: nullFloat(value)})
	}

	if err := rows.Err(); err != nil {
		return types.Series{}, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating equity curve rows", err)
	}

	d.log.Debug("Loaded equity curve", zap.String("system", code), zap.Int("rows", len(points)))

	return equitySeries(code, points), nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}

func (d *DuckDBDataSource) queryPrices(instrument types.InstrumentKey, source string) (types.PriceTable, error) {
	query, args, err := d.sq.
		Select(
			"CAST(DATETIME AS TIMESTAMP) AS time",
			"TRY_CAST(close_price AS DOUBLE)",
			"TRY_CAST(open_price AS DOUBLE)",
			"TRY_CAST(high_price AS DOUBLE)",
			"TRY_CAST(low_price AS DOUBLE)",
			"TRY_CAST(volume AS DOUBLE)",
		).
		From(source).
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return types.PriceTable{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build price query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return types.PriceTable{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query price data of %s", instrument)
	}
	defer rows.Close()

	bars := make([]types.Bar, 0, 1000)

	for rows.Next() {
		var (
			timestamp                      time.Time
			closePrice, open, high, low, v sql.NullFloat64
		)

		if err := rows.Scan(&timestamp, &closePrice, &open, &high, &low, &v); err != nil {
			return types.PriceTable{}, errors.Wrap(errors.ErrCodeDataParseFailed, "failed to scan price row", err)
		}

		bars = append(bars, types.Bar{
			Time:   timestamp,
			Close:  nullFloat(closePrice),
			Open:   nullFloat(open),
			High:   nullFloat(high),
			Low:    nullFloat(low),
			Volume: nullFloat(v),
		})
	}

	if err := rows.Err(); err != nil {
		return types.PriceTable{}, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating price rows", err)
	}

	d.log.Debug("Loaded price data",
		zap.String("instrument", string(instrument)),
		zap.String("source", source),
		zap.Int("rows", len(bars)),
	)

	return types.PriceTable{Instrument: instrument, Bars: sortBars(bars)}, nil
}

// tableSource returns the table function reading the parquet or csv variant of a file.
func (d *DuckDBDataSource) tableSource(pathFor func(ext string) string) (string, error) {
	if path := pathFor("parquet"); fileExists(path) {
		return fmt.Sprintf("read_parquet('%s')", escapeLiteral(path)), nil
	}

	if path := pathFor("csv"); fileExists(path) {
		return csvSource(path), nil
	}

	return "", errors.Newf(errors.ErrCodeDataNotFound, "no data file at %s", pathFor("csv"))
}

// csvSource reads every column as text so that contract tokens keep their digits.
func csvSource(path string) string {
	return fmt.Sprintf("read_csv_auto('%s', header=true, all_varchar=true)", escapeLiteral(path))
}

func escapeLiteral(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

func nullFloat(value sql.NullFloat64) float64 {
	if !value.Valid {
		return math.NaN()
	}

	return value.Float64
}

func contractToken(value sql.NullString) string {
	var token csvContract
	_ = token.UnmarshalCSV(value.String)

	return string(token)
}
