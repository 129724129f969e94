package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	DefaultMaxScheduleLength = 100_000
	DefaultBatchConcurrency  = 4

	BenchmarkSP500  = "SP500"
	BenchmarkNASDAQ = "NASDAQ"
)

var (
	DefaultRiskFreeRate = decimal.RequireFromString("0.02")
	DefaultSP500Rate    = decimal.RequireFromString("0.10")
	DefaultNASDAQRate   = decimal.RequireFromString("0.12")
)

type SimulationConfig struct {
	// maxScheduleLength bounds the number of scheduled dates; 0 disables the check.
	maxScheduleLength int
	batchConcurrency  int
}

func NewSimulationConfig(maxScheduleLength, batchConcurrency int) *SimulationConfig {
	if batchConcurrency <= 0 {
		batchConcurrency = DefaultBatchConcurrency
	}
	return &SimulationConfig{
		maxScheduleLength: maxScheduleLength,
		batchConcurrency:  batchConcurrency,
	}
}

// Benchmark is an index projected at a fixed annual growth rate.
type Benchmark struct {
	ID         string
	Name       string
	AnnualRate decimal.Decimal
}

type BenchmarkConfig struct {
	benchmarks []Benchmark
}

func NewBenchmarkConfig(benchmarks ...Benchmark) (*BenchmarkConfig, error) {
	seen := make(map[string]struct{}, len(benchmarks))
	for _, b := range benchmarks {
		if b.ID == "" {
			return nil, fmt.Errorf("benchmark with empty id")
		}
		if _, ok := seen[b.ID]; ok {
			return nil, fmt.Errorf("duplicate benchmark %q", b.ID)
		}
		if b.AnnualRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
			return nil, fmt.Errorf("benchmark %q: annual rate %s must be greater than -1", b.ID, b.AnnualRate)
		}
		seen[b.ID] = struct{}{}
	}
	return &BenchmarkConfig{benchmarks: append([]Benchmark(nil), benchmarks...)}, nil
}

// DefaultBenchmarks are the two indices the platform compares against.
func DefaultBenchmarks(sp500Rate, nasdaqRate decimal.Decimal) []Benchmark {
	return []Benchmark{
		{ID: BenchmarkSP500, Name: "S&P 500", AnnualRate: sp500Rate},
		{ID: BenchmarkNASDAQ, Name: "NASDAQ Composite", AnnualRate: nasdaqRate},
	}
}

func (c *BenchmarkConfig) Benchmarks() []Benchmark {
	return append([]Benchmark(nil), c.benchmarks...)
}

func (c *BenchmarkConfig) Lookup(id string) (Benchmark, error) {
	for _, b := range c.benchmarks {
		if b.ID == id {
			return b, nil
		}
	}
	return Benchmark{}, fmt.Errorf("%q: %w", id, ErrUnknownBenchmark)
}

type ReportingConfig struct {
	riskFreeRate decimal.Decimal
}

func NewReportingConfig(riskFreeRate decimal.Decimal) *ReportingConfig {
	return &ReportingConfig{
		riskFreeRate: riskFreeRate,
	}
}
