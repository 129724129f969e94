package types

import (
	"fmt"
	"strings"
)

type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
)

var frequencyPeriodsPerYear = map[Frequency]int{
	Daily:   365,
	Weekly:  52,
	Monthly: 12,
}

var frequencyDaysPerPeriod = map[Frequency]int{
	Daily:   1,
	Weekly:  7,
	Monthly: 30,
}

var frequencyDescription = map[Frequency]string{
	Daily:   "daily",
	Weekly:  "weekly",
	Monthly: "monthly",
}

// ParseFrequency converts a user supplied frequency name, ignoring case and
// surrounding whitespace.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("frequency %q: %w", s, ErrUnknownFrequency)
	}
	return f, nil
}

func (f Frequency) Valid() bool {
	_, ok := frequencyPeriodsPerYear[f]
	return ok
}

// PeriodsPerYear is the annualisation factor used for volatility and
// risk-adjusted ratios. Zero for an unknown frequency.
func (f Frequency) PeriodsPerYear() int {
	return frequencyPeriodsPerYear[f]
}

// DaysPerPeriod is the approximate calendar length of one period. Monthly
// periods count as 30 days; it is only used for estimates.
func (f Frequency) DaysPerPeriod() int {
	return frequencyDaysPerPeriod[f]
}

func (f Frequency) Description() string {
	if d, ok := frequencyDescription[f]; ok {
		return d
	}
	return string(f)
}

func (f Frequency) String() string {
	return string(f)
}
