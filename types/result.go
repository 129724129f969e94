package types

import (
	"github.com/shopspring/decimal"
)

// RiskMetrics holds the derived statistics of a run. Invalid NullDecimal
// values are metrics whose preconditions were not met.
type RiskMetrics struct {
	TotalReturnPct            decimal.Decimal            `json:"totalReturnPct"`
	AnnualizedReturnPct       decimal.NullDecimal        `json:"annualizedReturnPct"`
	VolatilityPct             decimal.NullDecimal        `json:"volatilityPct"`
	SharpeRatio               decimal.NullDecimal        `json:"sharpeRatio"`
	SortinoRatio              decimal.NullDecimal        `json:"sortinoRatio"`
	MaxDrawdownPct            decimal.Decimal            `json:"maxDrawdownPct"`
	CalmarRatio               decimal.NullDecimal        `json:"calmarRatio"`
	OutperformanceVsBenchmark map[string]decimal.Decimal `json:"outperformanceVsBenchmark"`
}

type SimulationResult struct {
	Parameters           SimulationParameters       `json:"parameters"`
	TotalInvestedAmount  decimal.Decimal            `json:"totalInvestedAmount"`
	FinalPortfolioValue  decimal.Decimal            `json:"finalPortfolioValue"`
	Records              []InvestmentRecord         `json:"records"`
	BenchmarkProjections map[string]decimal.Decimal `json:"benchmarkProjections"`
	Statistics           RiskMetrics                `json:"statistics"`
}

// MaxPortfolioValue is the highest valuation observed across the ledger.
func (r *SimulationResult) MaxPortfolioValue() decimal.Decimal {
	max := decimal.Zero
	for _, rec := range r.Records {
		if rec.PortfolioValue.GreaterThan(max) {
			max = rec.PortfolioValue
		}
	}
	return max
}

func (r *SimulationResult) ExecutedCount() int {
	n := 0
	for _, rec := range r.Records {
		if !rec.Skipped {
			n++
		}
	}
	return n
}

func (r *SimulationResult) SkippedCount() int {
	return len(r.Records) - r.ExecutedCount()
}

// HasPriceData reports whether at least one purchase was executed. A run
// with no price data and a run that lost everything both end at zero value;
// this tells them apart.
func (r *SimulationResult) HasPriceData() bool {
	return r.ExecutedCount() > 0
}
