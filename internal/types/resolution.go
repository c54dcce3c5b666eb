package types

import (
	"time"

	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// Resolution is the bar size of an OHLCV table.
type Resolution string

const (
	ResolutionDaily   Resolution = "daily"
	Resolution30Min   Resolution = "30min"
	Resolution45Min   Resolution = "45min"
	Resolution60Min   Resolution = "60min"
	Resolution90Min   Resolution = "90min"
	Resolution120Min  Resolution = "120min"
	ResolutionWeekly  Resolution = "weekly"
	ResolutionMonthly Resolution = "monthly"
)

// AllResolutions lists every resolution the data sources can serve.
var AllResolutions = []Resolution{
	ResolutionDaily,
	Resolution30Min,
	Resolution45Min,
	Resolution60Min,
	Resolution90Min,
	Resolution120Min,
	ResolutionWeekly,
	ResolutionMonthly,
}

// ParseResolution validates a resolution token.
func ParseResolution(token string) (Resolution, error) {
	for _, r := range AllResolutions {
		if string(r) == token {
			return r, nil
		}
	}

	return "", errors.Newf(errors.ErrCodeInvalidResolution, "unknown resolution %q", token)
}

// Duration returns the nominal bar length. Weekly and monthly bars are calendar based,
// their durations are approximate.
func (r Resolution) Duration() time.Duration {
	switch r {
	case Resolution30Min:
		return 30 * time.Minute
	case Resolution45Min:
		return 45 * time.Minute
	case Resolution60Min:
		return time.Hour
	case Resolution90Min:
		return 90 * time.Minute
	case Resolution120Min:
		return 2 * time.Hour
	case ResolutionWeekly:
		return 7 * 24 * time.Hour
	case ResolutionMonthly:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// IsIntraday returns true for bars shorter than a day.
func (r Resolution) IsIntraday() bool {
	return r.Duration() < 24*time.Hour
}
