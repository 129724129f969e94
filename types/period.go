package types

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	secondsPerDay = 24 * 60 * 60
	yearsScale    = 6
)

var daysPerYear = decimal.NewFromInt(365)

// truncateDay drops the time of day, keeping the calendar date as seen in t's location.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from a to b; negative when b is before a.
// It works on Unix seconds so spans longer than a time.Duration are exact.
func DaysBetween(a, b time.Time) int {
	return int((truncateDay(b).Unix() - truncateDay(a).Unix()) / secondsPerDay)
}

// YearsBetween is the elapsed time in 365-day years, rounded half-up to six digits.
func YearsBetween(start, end time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(DaysBetween(start, end))).DivRound(daysPerYear, yearsScale)
}
