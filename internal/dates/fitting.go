package dates

import (
	"time"

	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// DateMethod selects how fit windows relate to the periods they are applied in.
type DateMethod string

const (
	// DateMethodInSample fits and applies over the whole history in a single window.
	DateMethodInSample DateMethod = "in_sample"
	// DateMethodExpanding fits on everything from the first observation up to each period.
	DateMethodExpanding DateMethod = "expanding"
	// DateMethodRolling fits on at most the last rollYears boundaries before each period.
	DateMethodRolling DateMethod = "rolling"
)

// AllDateMethods lists the supported date methods.
var AllDateMethods = []DateMethod{DateMethodInSample, DateMethodExpanding, DateMethodRolling}

// ParseDateMethod validates a date method token.
func ParseDateMethod(token string) (DateMethod, error) {
	for _, m := range AllDateMethods {
		if string(m) == token {
			return m, nil
		}
	}

	return "", errors.Newf(errors.ErrCodeInvalidDateMethod,
		"don't recognise date method %q, should be one of in_sample, expanding, rolling", token)
}

// GenerateFittingDates partitions the date range covered by data into walk-forward windows.
//
// The range runs from the earliest first timestamp to the latest last timestamp over all
// series. in_sample returns one window spanning the whole range. expanding and rolling
// split the range into 12 month periods starting at the first timestamp, the final period
// being a stub that ends at the last timestamp. The first period has nothing to fit on
// and is returned as a NoData window.
func GenerateFittingDates(method DateMethod, rollYears int, data ...types.Series) ([]types.FitWindow, error) {
	if _, err := ParseDateMethod(string(method)); err != nil {
		return nil, err
	}

	if method == DateMethodRolling && rollYears < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidRollYears, "roll years must be at least 1, got %d", rollYears)
	}

	start, end, err := dateRange(data)
	if err != nil {
		return nil, err
	}

	if method == DateMethodInSample {
		return []types.FitWindow{{
			FitStart:    start,
			FitEnd:      end,
			PeriodStart: start,
			PeriodEnd:   end,
		}}, nil
	}

	boundaries := yearBoundaries(start, end)

	windows := make([]types.FitWindow, 0, len(boundaries))
	windows = append(windows, types.FitWindow{
		FitStart:    start,
		FitEnd:      start,
		PeriodStart: start,
		PeriodEnd:   boundaries[1],
		NoData:      true,
	})

	for idx := 1; idx < len(boundaries)-1; idx++ {
		periodStart := boundaries[idx]
		periodEnd := boundaries[idx+1]

		fitStart := start
		if method == DateMethodRolling {
			fitStart = boundaries[max(0, idx-rollYears)]
		}

		windows = append(windows, types.FitWindow{
			FitStart:    fitStart,
			FitEnd:      periodStart,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		})
	}

	return windows, nil
}

// dateRange returns the union of the ranges of all non-empty series.
func dateRange(data []types.Series) (time.Time, time.Time, error) {
	var start, end time.Time

	found := false

	for _, s := range data {
		if s.IsEmpty() {
			continue
		}

		if !found || s.Start().Before(start) {
			start = s.Start()
		}

		if !found || s.End().After(end) {
			end = s.End()
		}

		found = true
	}

	if !found {
		return time.Time{}, time.Time{}, errors.New(errors.ErrCodeInsufficientData,
			"cannot generate fitting dates without data")
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.Newf(errors.ErrCodeInsufficientData,
			"cannot generate fitting dates for a zero length range at %s", start)
	}

	return start, end, nil
}

// yearBoundaries returns start, start+12 months, ... strictly before end, followed by end.
// Offsets are computed from start each time so month-end starts do not drift.
func yearBoundaries(start, end time.Time) []time.Time {
	boundaries := []time.Time{start}

	for years := 1; ; years++ {
		next := start.AddDate(years, 0, 0)
		if !next.Before(end) {
			break
		}

		boundaries = append(boundaries, next)
	}

	return append(boundaries, end)
}
