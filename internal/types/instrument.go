package types

// InstrumentKey identifies a tradable instrument, e.g. "EDOLLAR" or "US10".
// Keys are compared by exact match; no normalisation is applied.
type InstrumentKey string

func (k InstrumentKey) String() string {
	return string(k)
}
