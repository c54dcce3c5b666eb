package types

import "github.com/shopspring/decimal"

// InstrumentCosts describes the trading costs of one instrument.
// The zero value is a valid "no cost" structure.
type InstrumentCosts struct {
	Instrument InstrumentKey
	// Slippage is the expected half bid/ask spread in price points.
	Slippage decimal.Decimal
	// PerBlock is the commission per contract in the instrument currency.
	PerBlock decimal.Decimal
	// Percentage is the commission as a fraction of traded notional.
	Percentage decimal.Decimal
	// PerTrade is a flat commission per trade.
	PerTrade decimal.Decimal
}

// ZeroCosts returns the fallback cost structure used when no cost data exists.
func ZeroCosts(instrument InstrumentKey) InstrumentCosts {
	return InstrumentCosts{
		Instrument: instrument,
		Slippage:   decimal.Zero,
		PerBlock:   decimal.Zero,
		Percentage: decimal.Zero,
		PerTrade:   decimal.Zero,
	}
}

// IsZero returns true when every cost component is zero.
func (c InstrumentCosts) IsZero() bool {
	return c.Slippage.IsZero() && c.PerBlock.IsZero() && c.Percentage.IsZero() && c.PerTrade.IsZero()
}

// TradingHours is the session of one instrument in its exchange time zone.
type TradingHours struct {
	Instrument InstrumentKey
	Open       string
	Close      string
	TimeZone   string
}
