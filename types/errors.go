package types

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameters = errors.New("invalid simulation parameters")
	ErrUnknownFrequency  = errors.New("unknown investment frequency")
)

// InvalidParametersError reports malformed simulation input. It matches
// ErrInvalidParameters with errors.Is.
type InvalidParametersError struct {
	Field  string
	Reason string
	Err    error
}

func (e *InvalidParametersError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidParametersError) Is(target error) bool {
	return target == ErrInvalidParameters
}

func (e *InvalidParametersError) Unwrap() error {
	return e.Err
}

func invalidParameter(field, reason string) error {
	return &InvalidParametersError{Field: field, Reason: reason}
}
