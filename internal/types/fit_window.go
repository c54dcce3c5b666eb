package types

import (
	"fmt"
	"time"
)

// FitWindow describes one walk-forward step: parameters are estimated on
// [FitStart, FitEnd] and applied unchanged over [PeriodStart, PeriodEnd].
//
// A window with NoData set has nothing to fit on; callers must pass the period through
// without fitting or trading.
type FitWindow struct {
	FitStart    time.Time
	FitEnd      time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	NoData      bool
}

// FitData returns the observations of s inside the fit range.
func (w FitWindow) FitData(s Series) Series {
	return s.Between(w.FitStart, w.FitEnd)
}

// PeriodData returns the observations of s inside the period range.
func (w FitWindow) PeriodData(s Series) Series {
	return s.Between(w.PeriodStart, w.PeriodEnd)
}

// Contains reports whether t lies in the period, treating the end as exclusive.
func (w FitWindow) Contains(t time.Time) bool {
	return !t.Before(w.PeriodStart) && t.Before(w.PeriodEnd)
}

func (w FitWindow) String() string {
	if w.NoData {
		return fmt.Sprintf("Fit without data, use from %s to %s", w.PeriodStart.Format(time.DateOnly), w.PeriodEnd.Format(time.DateOnly))
	}

	return fmt.Sprintf("Fit from %s to %s, use in %s to %s",
		w.FitStart.Format(time.DateOnly), w.FitEnd.Format(time.DateOnly),
		w.PeriodStart.Format(time.DateOnly), w.PeriodEnd.Format(time.DateOnly))
}
