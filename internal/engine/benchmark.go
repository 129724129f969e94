package engine

import (
	"time"

	"dcasim/types"

	"github.com/shopspring/decimal"
)

// BenchmarkProjector values a lump sum placed in each configured index at
// the start date. It ignores the timing of the individual DCA purchases.
type BenchmarkProjector struct {
	config *BenchmarkConfig
}

func NewBenchmarkProjector(config *BenchmarkConfig) *BenchmarkProjector {
	return &BenchmarkProjector{config: config}
}

// Project compounds principal yearly for whole years and applies a linear
// step for the remaining fraction of a year.
func (bp *BenchmarkProjector) Project(principal decimal.Decimal, start, end time.Time, annualRate decimal.Decimal) decimal.Decimal {
	years := types.YearsBetween(start, end)
	if !years.IsPositive() {
		return principal
	}

	whole := years.Floor()
	fraction := years.Sub(whole)
	growth := decimal.NewFromInt(1).Add(annualRate)

	value := principal
	for i := int64(0); i < whole.IntPart(); i++ {
		value = value.Mul(growth)
	}
	if fraction.IsPositive() {
		value = value.Mul(decimal.NewFromInt(1).Add(annualRate.Mul(fraction)))
	}
	return value.Round(currencyScale)
}

// ProjectAll projects principal into every configured benchmark.
func (bp *BenchmarkProjector) ProjectAll(principal decimal.Decimal, start, end time.Time) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(bp.config.benchmarks))
	for _, b := range bp.config.benchmarks {
		out[b.ID] = bp.Project(principal, start, end, b.AnnualRate)
	}
	return out
}
