package engine

import (
	"fmt"
	"time"

	"dcasim/internal/calendar"
	"dcasim/types"
)

// GenerateSchedule lists the investment dates from start to end inclusive.
// limit caps the number of dates; 0 means unlimited.
func GenerateSchedule(start, end time.Time, frequency types.Frequency, limit int) ([]time.Time, error) {
	step, err := calendar.ForFrequency(frequency)
	if err != nil {
		return nil, &InvalidScheduleError{Reason: "unrecognized frequency", Err: err}
	}
	start, end = calendar.Truncate(start), calendar.Truncate(end)
	if !start.Before(end) {
		return nil, &InvalidScheduleError{Reason: fmt.Sprintf("start %s is not before end %s",
			start.Format(time.DateOnly), end.Format(time.DateOnly))}
	}

	var dates []time.Time
	for n := 0; ; n++ {
		d := step.Nth(start, n)
		if d.After(end) {
			break
		}
		if limit > 0 && len(dates) == limit {
			return nil, &InvalidScheduleError{Reason: fmt.Sprintf("more than %d dates", limit), Err: ErrScheduleTooLong}
		}
		dates = append(dates, d)
	}
	return dates, nil
}
