package types

import (
	"math"
	"time"
)

// Aggregation picks how observations that fall into the same bucket are combined.
type Aggregation string

const (
	AggregationMean Aggregation = "mean"
	AggregationLast Aggregation = "last"
)

// BusinessDay returns the business day an observation belongs to.
// Weekend observations roll back into the preceding Friday.
func BusinessDay(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	switch day.Weekday() {
	case time.Saturday:
		return day.AddDate(0, 0, -1)
	case time.Sunday:
		return day.AddDate(0, 0, -2)
	default:
		return day
	}
}

// nextBusinessDay returns the business day after day.
func nextBusinessDay(day time.Time) time.Time {
	next := day.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

// ResampleBusinessDay resamples the series to one observation per business day.
// The output covers every business day between the first and last observation;
// days without valid observations are NaN. NaN inputs are ignored by both aggregations.
func (s Series) ResampleBusinessDay(agg Aggregation) Series {
	out := Series{Name: s.Name}
	if s.IsEmpty() {
		return out
	}

	first := BusinessDay(s.Start())
	last := BusinessDay(s.End())

	i := 0
	for day := first; !day.After(last); day = nextBusinessDay(day) {
		sum, count := 0.0, 0
		lastValue := math.NaN()

		for i < len(s.Index) && BusinessDay(s.Index[i]).Equal(day) {
			if v := s.Values[i]; !math.IsNaN(v) {
				sum += v
				count++
				lastValue = v
			}
			i++
		}

		value := math.NaN()

		switch agg {
		case AggregationLast:
			value = lastValue
		default:
			if count > 0 {
				value = sum / float64(count)
			}
		}

		out.Index = append(out.Index, day)
		out.Values = append(out.Values, value)
	}

	return out
}

// bucketStart returns the start of the resolution bucket containing t.
func bucketStart(t time.Time, resolution Resolution) time.Time {
	switch resolution {
	case ResolutionDaily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case ResolutionWeekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7

		return day.AddDate(0, 0, -offset)
	case ResolutionMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		step := resolution.Duration()
		elapsed := t.Sub(day)

		return day.Add(elapsed - elapsed%step)
	}
}

// Resample aggregates OHLCV bars into the given resolution. Buckets are labelled by their
// start: open is the first bar's open, high the max, low the min, close the last close and
// volume the sum. Empty buckets are skipped.
func (p PriceTable) Resample(resolution Resolution) PriceTable {
	out := PriceTable{Instrument: p.Instrument}

	for _, bar := range p.Bars {
		start := bucketStart(bar.Time, resolution)

		if n := len(out.Bars); n > 0 && out.Bars[n-1].Time.Equal(start) {
			current := &out.Bars[n-1]
			current.High = math.Max(current.High, bar.High)
			current.Low = math.Min(current.Low, bar.Low)
			current.Close = bar.Close
			current.Volume += bar.Volume

			continue
		}

		out.Bars = append(out.Bars, Bar{
			Time:   start,
			Close:  bar.Close,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Volume: bar.Volume,
		})
	}

	return out
}
