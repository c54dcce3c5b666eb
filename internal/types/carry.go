package types

import "time"

// CarryRecord is one row of an instrument's carry table.
// Price and Carry may be NaN. Contract identifiers are expiry tokens (YYYYMM or YYYYMMDD);
// an empty token means the contract is unknown for that row.
type CarryRecord struct {
	Time          time.Time
	Price         float64
	Carry         float64
	PriceContract string
	CarryContract string
}

// CarryTable holds the PRICE, CARRY, PRICE_CONTRACT and CARRY_CONTRACT columns of an instrument.
type CarryTable struct {
	Instrument InstrumentKey
	Records    []CarryRecord
}

// Len returns the number of rows.
func (c CarryTable) Len() int {
	return len(c.Records)
}

// Clone returns a deep copy of the table.
func (c CarryTable) Clone() CarryTable {
	records := make([]CarryRecord, len(c.Records))
	copy(records, c.Records)

	return CarryTable{Instrument: c.Instrument, Records: records}
}

// Index returns the row timestamps.
func (c CarryTable) Index() []time.Time {
	index := make([]time.Time, len(c.Records))
	for i, r := range c.Records {
		index[i] = r.Time
	}

	return index
}

// PriceSeries returns the PRICE column.
func (c CarryTable) PriceSeries() Series {
	values := make([]float64, len(c.Records))
	for i, r := range c.Records {
		values[i] = r.Price
	}

	return Series{Name: "PRICE", Index: c.Index(), Values: values}
}

// CarrySeries returns the CARRY column.
func (c CarryTable) CarrySeries() Series {
	values := make([]float64, len(c.Records))
	for i, r := range c.Records {
		values[i] = r.Carry
	}

	return Series{Name: "CARRY", Index: c.Index(), Values: values}
}
