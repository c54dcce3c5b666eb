package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File layout of a data directory:
//
//	<CODE>_data.csv            native OHLCV bars
//	<CODE>_carrydata.csv       PRICE, CARRY, PRICE_CONTRACT, CARRY_CONTRACT
//	<CODE>_<resolution>.csv    OHLCV bars at a fixed resolution, e.g. EDOLLAR_30min.csv
//	<SYSTEM>_equity_curve.csv  headerless date,value rows of a trading system
//	costs_analysis.csv         one cost row per instrument
//	tradinghours.yaml          session per instrument
//	instrumentconfig.yaml      optional list of instruments
//
// The DuckDB source also accepts .parquet in place of .csv for the per-instrument tables.
const (
	rawDataSuffix       = "_data"
	carryDataSuffix     = "_carrydata"
	equityCurveSuffix   = "_equity_curve"
	costsFileName       = "costs_analysis.csv"
	tradingHoursFile    = "tradinghours.yaml"
	instrumentConfigYML = "instrumentconfig.yaml"
)

func rawDataFile(dir string, instrument types.InstrumentKey, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s%s.%s", instrument, rawDataSuffix, ext))
}

func carryDataFile(dir string, instrument types.InstrumentKey, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s%s.%s", instrument, carryDataSuffix, ext))
}

func resolutionFile(dir string, instrument types.InstrumentKey, resolution types.Resolution, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", instrument, resolution, ext))
}

func equityCurveFile(dir, code string) string {
	return filepath.Join(dir, code+equityCurveSuffix+".csv")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

// instrumentConfig is the optional instrumentconfig.yaml document.
type instrumentConfig struct {
	Instruments []string `yaml:"instruments"`
}

// tradingHoursEntry is one instrument of tradinghours.yaml.
type tradingHoursEntry struct {
	Open     string `yaml:"open"`
	Close    string `yaml:"close"`
	TimeZone string `yaml:"timezone"`
}

// listInstruments returns the instruments of instrumentconfig.yaml when present,
// otherwise every <CODE>_data file with one of the given extensions.
func listInstruments(dir string, exts ...string) ([]types.InstrumentKey, error) {
	configPath := filepath.Join(dir, instrumentConfigYML)
	if fileExists(configPath) {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read %s", configPath)
		}

		var cfg instrumentConfig
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeDataParseFailed, err, "failed to parse %s", configPath)
		}

		return sortedKeys(cfg.Instruments), nil
	}

	var codes []string

	for _, ext := range exts {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+rawDataSuffix+"."+ext))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to list data files", err)
		}

		for _, match := range matches {
			codes = append(codes, strings.TrimSuffix(filepath.Base(match), rawDataSuffix+"."+ext))
		}
	}

	return sortedKeys(codes), nil
}

func sortedKeys(codes []string) []types.InstrumentKey {
	seen := make(map[string]bool, len(codes))
	keys := make([]types.InstrumentKey, 0, len(codes))

	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" || seen[code] {
			continue
		}

		seen[code] = true
		keys = append(keys, types.InstrumentKey(code))
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// loadTradingHours reads the session of instrument from tradinghours.yaml.
func loadTradingHours(dir string, instrument types.InstrumentKey) (types.TradingHours, error) {
	path := filepath.Join(dir, tradingHoursFile)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.TradingHours{}, errors.Newf(errors.ErrCodeDataNotFound, "no trading hours file at %s", path)
		}

		return types.TradingHours{}, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read %s", path)
	}

	var entries map[string]tradingHoursEntry
	if err := yaml.Unmarshal(content, &entries); err != nil {
		return types.TradingHours{}, errors.Wrapf(errors.ErrCodeDataParseFailed, err, "failed to parse %s", path)
	}

	entry, ok := entries[string(instrument)]
	if !ok {
		return types.TradingHours{}, errors.Newf(errors.ErrCodeDataNotFound, "no trading hours for %s", instrument)
	}

	return types.TradingHours{
		Instrument: instrument,
		Open:       entry.Open,
		Close:      entry.Close,
		TimeZone:   entry.TimeZone,
	}, nil
}

// sortBars orders bars by time and keeps the last bar of every repeated timestamp.
func sortBars(bars []types.Bar) []types.Bar {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	out := bars[:0]

	for _, bar := range bars {
		if n := len(out); n > 0 && out[n-1].Time.Equal(bar.Time) {
			out[n-1] = bar
			continue
		}

		out = append(out, bar)
	}

	return out
}

// equityPoint is one observation of an equity curve.
type equityPoint struct {
	time  time.Time
	value float64
}

// equitySeries orders points by time and names the series after the system code.
func equitySeries(code string, points []equityPoint) types.Series {
	sort.SliceStable(points, func(i, j int) bool { return points[i].time.Before(points[j].time) })

	curve := types.Series{
		Name:   code,
		Index:  make([]time.Time, len(points)),
		Values: make([]float64, len(points)),
	}

	for i, point := range points {
		curve.Index[i] = point.time
		curve.Values[i] = point.value
	}

	return curve
}

// sortCarry orders carry rows by time. Repeated timestamps are kept; the rawdata stage
// de-duplicates the derived series.
func sortCarry(records []types.CarryRecord) []types.CarryRecord {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Time.Before(records[j].Time) })

	return records
}
