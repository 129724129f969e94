// Package calendar holds the day-granularity date arithmetic used to build
// investment schedules. All dates are normalised to midnight UTC.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"dcasim/types"
)

var ErrUnsupportedFrequency = errors.New("no calendar step for frequency")

// Step computes the n-th date of a schedule anchored at a start date.
// Implementations compute from the anchor rather than from the previous
// date, so month clamping never drifts.
type Step interface {
	Nth(anchor time.Time, n int) time.Time
}

type dayStep int

func (s dayStep) Nth(anchor time.Time, n int) time.Time {
	return AddDays(anchor, int(s)*n)
}

type monthStep int

func (s monthStep) Nth(anchor time.Time, n int) time.Time {
	return AddMonthsClamped(anchor, int(s)*n)
}

var steps = map[types.Frequency]Step{
	types.Daily:   dayStep(1),
	types.Weekly:  dayStep(7),
	types.Monthly: monthStep(1),
}

// ForFrequency returns the Step for f.
func ForFrequency(f types.Frequency) (Step, error) {
	s, ok := steps[f]
	if !ok {
		return nil, fmt.Errorf("%q: %w", f, ErrUnsupportedFrequency)
	}
	return s, nil
}

// Truncate drops the time of day, keeping the calendar date as seen in t's location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, time.UTC)
}

// AddMonthsClamped moves t by n calendar months keeping its day of month,
// clamped to the last day of the target month.
func AddMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	// normalise year/month first; day 1 never overflows
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := DaysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
