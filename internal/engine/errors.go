package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSchedule  = errors.New("invalid investment schedule")
	ErrScheduleTooLong  = errors.New("schedule exceeds configured maximum length")
	ErrNoPriceSource    = errors.New("engine has no price source configured")
	ErrUnknownBenchmark = errors.New("unknown benchmark")
)

// InvalidScheduleError is returned by GenerateSchedule. It matches
// ErrInvalidSchedule with errors.Is.
type InvalidScheduleError struct {
	Reason string
	Err    error
}

func (e *InvalidScheduleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid schedule: %s: %v", e.Reason, e.Err)
	}
	return "invalid schedule: " + e.Reason
}

func (e *InvalidScheduleError) Is(target error) bool {
	return target == ErrInvalidSchedule
}

func (e *InvalidScheduleError) Unwrap() error {
	return e.Err
}
