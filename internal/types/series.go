package types

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// Series is an ordered sequence of (timestamp, value) pairs.
// Timestamps are non-decreasing. A NaN value means the observation is undefined.
//
// Series is treated as a value: every transformation returns a new Series and
// leaves the receiver untouched.
type Series struct {
	Name   string
	Index  []time.Time
	Values []float64
}

// NewSeries creates a series after checking that index and values line up and
// that the index is non-decreasing.
func NewSeries(name string, index []time.Time, values []float64) (Series, error) {
	if len(index) != len(values) {
		return Series{}, errors.Newf(errors.ErrCodeMisalignedSeries,
			"series %s has %d timestamps but %d values", name, len(index), len(values))
	}

	for i := 1; i < len(index); i++ {
		if index[i].Before(index[i-1]) {
			return Series{}, errors.Newf(errors.ErrCodeMisalignedSeries,
				"series %s is not ordered at position %d: %s < %s", name, i, index[i], index[i-1])
		}
	}

	return Series{Name: name, Index: index, Values: values}, nil
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.Index)
}

// IsEmpty returns true when the series has no observations.
func (s Series) IsEmpty() bool {
	return len(s.Index) == 0
}

// Start returns the first timestamp. Panics on an empty series.
func (s Series) Start() time.Time {
	return s.Index[0]
}

// End returns the last timestamp. Panics on an empty series.
func (s Series) End() time.Time {
	return s.Index[len(s.Index)-1]
}

// Clone returns a deep copy of the series.
func (s Series) Clone() Series {
	index := make([]time.Time, len(s.Index))
	copy(index, s.Index)

	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	return Series{Name: s.Name, Index: index, Values: values}
}

// Rename returns a copy of the series with a new name.
func (s Series) Rename(name string) Series {
	out := s.Clone()
	out.Name = name

	return out
}

// Equal reports whether both series hold the same timestamps and values.
// NaN is considered equal to NaN so that undefined observations compare bit-for-bit.
func (s Series) Equal(other Series) bool {
	if len(s.Index) != len(other.Index) || len(s.Values) != len(other.Values) {
		return false
	}

	for i := range s.Index {
		if !s.Index[i].Equal(other.Index[i]) {
			return false
		}

		if !sameValue(s.Values[i], other.Values[i]) {
			return false
		}
	}

	return true
}

// Between returns the observations with start <= t <= end.
func (s Series) Between(start, end time.Time) Series {
	out := Series{Name: s.Name}

	for i, t := range s.Index {
		if t.Before(start) || t.After(end) {
			continue
		}

		out.Index = append(out.Index, t)
		out.Values = append(out.Values, s.Values[i])
	}

	return out
}

// ValidValues returns the non-NaN values in order.
func (s Series) ValidValues() []float64 {
	values := make([]float64, 0, len(s.Values))

	for _, v := range s.Values {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}

	return values
}

// LastValid returns the last non-NaN value.
func (s Series) LastValid() (float64, bool) {
	for i := len(s.Values) - 1; i >= 0; i-- {
		if !math.IsNaN(s.Values[i]) {
			return s.Values[i], true
		}
	}

	return math.NaN(), false
}

// FFill returns a copy where NaN values are replaced by the last valid value before them.
// Leading NaN values stay undefined.
func (s Series) FFill() Series {
	out := s.Clone()
	last := math.NaN()

	for i, v := range out.Values {
		if math.IsNaN(v) {
			out.Values[i] = last
			continue
		}

		last = v
	}

	return out
}

// ZeroToNaN returns a copy where exact zero values are undefined.
func (s Series) ZeroToNaN() Series {
	out := s.Clone()

	for i, v := range out.Values {
		if v == 0 {
			out.Values[i] = math.NaN()
		}
	}

	return out
}

// CollapseRepeats keeps only the observations whose value differs from the previous
// observation. NaN repeats are collapsed as well.
func (s Series) CollapseRepeats() Series {
	out := Series{Name: s.Name}

	for i, v := range s.Values {
		if i > 0 && sameValue(v, s.Values[i-1]) {
			continue
		}

		out.Index = append(out.Index, s.Index[i])
		out.Values = append(out.Values, v)
	}

	return out
}

// DropDuplicateIndex keeps only the last observation of every repeated timestamp.
func (s Series) DropDuplicateIndex() Series {
	out := Series{Name: s.Name}

	for i, t := range s.Index {
		if n := len(out.Index); n > 0 && out.Index[n-1].Equal(t) {
			out.Values[n-1] = s.Values[i]
			continue
		}

		out.Index = append(out.Index, t)
		out.Values = append(out.Values, s.Values[i])
	}

	return out
}

// Sub subtracts other from s, aligned by timestamp.
func (s Series) Sub(other Series) (Series, error) {
	return s.combine(other, func(a, b float64) float64 { return a - b })
}

// Div divides s by other, aligned by timestamp.
func (s Series) Div(other Series) (Series, error) {
	return s.combine(other, func(a, b float64) float64 { return a / b })
}

// combine applies op on the union of both indexes. Timestamps present in only one of the
// series produce NaN. Both series must have strictly increasing indexes.
func (s Series) combine(other Series, op func(a, b float64) float64) (Series, error) {
	if err := s.requireStrictlyIncreasing(); err != nil {
		return Series{}, err
	}

	if err := other.requireStrictlyIncreasing(); err != nil {
		return Series{}, err
	}

	out := Series{
		Name:   s.Name,
		Index:  make([]time.Time, 0, max(len(s.Index), len(other.Index))),
		Values: make([]float64, 0, max(len(s.Index), len(other.Index))),
	}

	i, j := 0, 0
	for i < len(s.Index) || j < len(other.Index) {
		switch {
		case j >= len(other.Index) || (i < len(s.Index) && s.Index[i].Before(other.Index[j])):
			out.Index = append(out.Index, s.Index[i])
			out.Values = append(out.Values, math.NaN())
			i++
		case i >= len(s.Index) || other.Index[j].Before(s.Index[i]):
			out.Index = append(out.Index, other.Index[j])
			out.Values = append(out.Values, math.NaN())
			j++
		default:
			out.Index = append(out.Index, s.Index[i])
			out.Values = append(out.Values, op(s.Values[i], other.Values[j]))
			i++
			j++
		}
	}

	return out, nil
}

func (s Series) requireStrictlyIncreasing() error {
	for i := 1; i < len(s.Index); i++ {
		if !s.Index[i].After(s.Index[i-1]) {
			return errors.Newf(errors.ErrCodeMisalignedSeries,
				"series %s has a repeated or unordered timestamp at position %d (%s)", s.Name, i, s.Index[i])
		}
	}

	return nil
}

func sameValue(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}

	return a == b
}
