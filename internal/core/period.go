package core

import "time"

// MonthWindow returns the first and last calendar day of d's month. The end
// is the last day at midnight, inclusive; callers that need to cover the full
// final day should pass it through EndOfDay.
//
// Planned-budget lookups always scope to the month containing a range's
// start date, even when the caller's range spans several months. That keeps
// the representative month stable for a given query.
func MonthWindow(d time.Time) (start, end time.Time) {
	y, m, _ := d.Date()
	start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// YearWindow returns January 1st and December 31st of d's year.
func YearWindow(d time.Time) (start, end time.Time) {
	start = time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// EndOfDay returns the last instant of d's calendar day. Range filters treat
// their end bound as inclusive of the whole day.
func EndOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 23, 59, 59, 0, time.UTC)
}

// DayStart truncates d to midnight UTC.
func DayStart(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
