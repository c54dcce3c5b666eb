package datasource

import (
	"github.com/rxtech-lab/argo-research/internal/types"
)

// DataSource supplies the raw tables of every instrument.
//
// Missing data surfaces as an error carrying errors.ErrCodeDataNotFound. Implementations
// return tables in time order and never panic on absent files.
type DataSource interface {
	// InstrumentCodes lists the instruments the source holds data for, sorted.
	InstrumentCodes() ([]types.InstrumentKey, error)
	// RawData returns the native OHLCV table of an instrument.
	RawData(instrument types.InstrumentKey) (types.PriceTable, error)
	// RawPrice returns the native price series used for daily analytics.
	RawPrice(instrument types.InstrumentKey) (types.Series, error)
	// RawClose returns the close prices of the native OHLCV table.
	RawClose(instrument types.InstrumentKey) (types.Series, error)
	// InstrumentRawCarryData returns the PRICE, CARRY, PRICE_CONTRACT and CARRY_CONTRACT table.
	InstrumentRawCarryData(instrument types.InstrumentKey) (types.CarryTable, error)
	// ResolutionData returns the OHLCV table at the given bar size.
	ResolutionData(instrument types.InstrumentKey, resolution types.Resolution) (types.PriceTable, error)
	// InstrumentCosts returns the trading costs of an instrument.
	InstrumentCosts(instrument types.InstrumentKey) (types.InstrumentCosts, error)
	// TradingHours returns the trading session of an instrument.
	TradingHours(instrument types.InstrumentKey) (types.TradingHours, error)
	// EquityCurve returns the equity curve of a trading system, named by its code.
	EquityCurve(code string) (types.Series, error)
	// Close releases any resources held by the source.
	Close() error
}
