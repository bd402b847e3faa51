// Package progress computes how far a calendar year has advanced and renders it as a glyph bar.
//
// Percentages and bar fill counts are rounded half-up: 7.5 becomes 8 and 49.5 becomes 50.
// The percentage is computed with integers so boundary values never depend on float error.
package progress

import (
	"time"

	"chrona-bot/internal/types"
)

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// Compute returns the progress of today's year as of today (inclusive).
func Compute(today time.Time) types.YearProgress {
	total := DaysInYear(today.Year())
	elapsed := today.YearDay()
	return types.YearProgress{
		Year:          today.Year(),
		ElapsedDays:   elapsed,
		TotalDays:     total,
		RemainingDays: total - elapsed,
		Percent:       percentHalfUp(elapsed, total),
	}
}

// percentHalfUp is round_half_up(100*part/whole) in integer arithmetic.
func percentHalfUp(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}

// Today returns midnight of now's calendar date in loc. A nil loc means UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
