package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SimulationParameters is the immutable input of one simulation run.
type SimulationParameters struct {
	Symbol         string          `json:"symbol"`
	PeriodicAmount decimal.Decimal `json:"periodicAmount"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	Frequency      Frequency       `json:"frequency"`
}

func NewSimulationParameters(symbol string, periodicAmount decimal.Decimal, start, end time.Time, frequency Frequency) (SimulationParameters, error) {
	p := SimulationParameters{
		Symbol:         strings.TrimSpace(symbol),
		PeriodicAmount: periodicAmount,
		StartDate:      start,
		EndDate:        end,
		Frequency:      frequency,
	}
	if err := p.Validate(); err != nil {
		return SimulationParameters{}, err
	}
	return p, nil
}

// Validate returns an *InvalidParametersError describing the first problem found.
func (p SimulationParameters) Validate() error {
	if strings.TrimSpace(p.Symbol) == "" {
		return invalidParameter("symbol", "must not be blank")
	}
	if !p.PeriodicAmount.IsPositive() {
		return invalidParameter("periodicAmount", fmt.Sprintf("must be greater than zero, got %s", p.PeriodicAmount))
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return invalidParameter("dates", "start and end dates are required")
	}
	if !truncateDay(p.StartDate).Before(truncateDay(p.EndDate)) {
		return invalidParameter("endDate", fmt.Sprintf("%s is not after start date %s",
			p.EndDate.Format(time.DateOnly), p.StartDate.Format(time.DateOnly)))
	}
	if !p.Frequency.Valid() {
		return &InvalidParametersError{Field: "frequency", Reason: fmt.Sprintf("%q is not supported", p.Frequency), Err: ErrUnknownFrequency}
	}
	return nil
}

// InvestmentPeriodDays counts whole calendar days between start and end.
func (p SimulationParameters) InvestmentPeriodDays() int {
	return DaysBetween(p.StartDate, p.EndDate)
}

// InvestmentPeriodYears is the elapsed time in 365-day years, six fractional digits.
func (p SimulationParameters) InvestmentPeriodYears() decimal.Decimal {
	return YearsBetween(p.StartDate, p.EndDate)
}

// EstimatedInvestmentCount approximates the schedule length without
// generating it, so that callers can refuse oversized runs early.
func (p SimulationParameters) EstimatedInvestmentCount() int {
	per := p.Frequency.DaysPerPeriod()
	if per == 0 {
		return 0
	}
	return p.InvestmentPeriodDays()/per + 1
}

func (p SimulationParameters) String() string {
	return fmt.Sprintf("%s %s %s from %s to %s (%s years)",
		p.Symbol,
		p.Frequency.Description(),
		p.PeriodicAmount,
		p.StartDate.Format(time.DateOnly),
		p.EndDate.Format(time.DateOnly),
		p.InvestmentPeriodYears().StringFixed(2),
	)
}
