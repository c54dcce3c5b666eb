package dates

const (
	CalendarDaysInYear   = 365.25
	BusinessDaysInYear   = 256.0
	WeeksInYear          = CalendarDaysInYear / 7.0
	MonthsInYear         = 12.0
	AvgHoursInTradingDay = 22.0

	// DefaultFloorDateDiffDays is the smallest absolute gap, in calendar days, between the
	// carry and price contract expiries used when annualising roll.
	DefaultFloorDateDiffDays = 20

	// DefaultRollYears is the fit window length, in years, of the rolling date method.
	DefaultRollYears = 20
)
