package types

import "time"

// Bar is one OHLCV observation.
type Bar struct {
	Time   time.Time
	Close  float64
	Open   float64
	High   float64
	Low    float64
	Volume float64
}

// PriceTable holds the OHLCV bars of one instrument in time order.
type PriceTable struct {
	Instrument InstrumentKey
	Bars       []Bar
}

// Len returns the number of bars.
func (p PriceTable) Len() int {
	return len(p.Bars)
}

// Clone returns a deep copy of the table.
func (p PriceTable) Clone() PriceTable {
	bars := make([]Bar, len(p.Bars))
	copy(bars, p.Bars)

	return PriceTable{Instrument: p.Instrument, Bars: bars}
}

// CloseSeries returns the close prices as a series.
func (p PriceTable) CloseSeries() Series {
	out := Series{
		Name:   "close_price",
		Index:  make([]time.Time, len(p.Bars)),
		Values: make([]float64, len(p.Bars)),
	}

	for i, bar := range p.Bars {
		out.Index[i] = bar.Time
		out.Values[i] = bar.Close
	}

	return out
}
