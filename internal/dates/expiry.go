package dates

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-research/pkg/errors"
)

const (
	monthExpiryLayout = "200601"
	dayExpiryLayout   = "20060102"
)

// ExpiryDate translates an expiry token into a date. "201503" resolves to the first day
// of the month and "20150305" to that exact day. Any other length or an invalid calendar
// date is a configuration error.
func ExpiryDate(token string) (time.Time, error) {
	var layout string

	switch len(token) {
	case len(monthExpiryLayout):
		layout = monthExpiryLayout
	case len(dayExpiryLayout):
		layout = dayExpiryLayout
	default:
		return time.Time{}, errors.Newf(errors.ErrCodeInvalidExpiry,
			"expiry %q must be YYYYMM or YYYYMMDD", token)
	}

	expiry, err := time.Parse(layout, token)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidExpiry, err, "failed to parse expiry %q", token)
	}

	return expiry, nil
}

// ExpiryDiff returns the annualised distance between the carry and price contract
// expiries: (expiry(carry) - expiry(price)) in days over CalendarDaysInYear.
// Gaps shorter than floorDays are clamped to floorDays, keeping the sign (a zero gap
// counts as positive). An empty token on either side yields NaN.
func ExpiryDiff(priceContract, carryContract string, floorDays int) (float64, error) {
	if priceContract == "" || carryContract == "" {
		return math.NaN(), nil
	}

	priceExpiry, err := ExpiryDate(priceContract)
	if err != nil {
		return math.NaN(), err
	}

	carryExpiry, err := ExpiryDate(carryContract)
	if err != nil {
		return math.NaN(), err
	}

	days := math.Round(carryExpiry.Sub(priceExpiry).Hours() / 24)

	if math.Abs(days) < float64(floorDays) {
		if days < 0 {
			days = -float64(floorDays)
		} else {
			days = float64(floorDays)
		}
	}

	return days / CalendarDaysInYear, nil
}
