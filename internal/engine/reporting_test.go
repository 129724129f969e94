package engine

import (
	"encoding/json"
	"testing"
	"time"

	"dcasim/internal/calendar"
	"dcasim/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valueRecords(values ...string) []types.InvestmentRecord {
	base := calendar.Date(2020, time.January, 1)
	out := make([]types.InvestmentRecord, len(values))
	for i, v := range values {
		out[i] = types.InvestmentRecord{
			InvestmentDate:   base.AddDate(0, i, 0),
			InvestmentAmount: dec("100"),
			PortfolioValue:   dec(v),
		}
	}
	return out
}

func TestCalcMaxDrawdownPct(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"no records", nil, "0"},
		{"monotonic up", []string{"100", "200", "300"}, "0"},
		{"single drawdown with recovery", []string{"100", "200", "150", "300"}, "25"},
		{"deeper later drawdown", []string{"1000", "1500", "1300", "1600", "1200"}, "25"},
		{"rounded to two places", []string{"300", "200"}, "33.33"},
		{"leading zeros are ignored", []string{"0", "0", "100", "90"}, "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calcMaxDrawdownPct(valueRecords(tt.values...))
			assert.True(t, got.Equal(dec(tt.want)), "calcMaxDrawdownPct() = %s, want %s", got, tt.want)
		})
	}
}

func TestCalcTotalReturnPct(t *testing.T) {
	tests := []struct {
		name     string
		invested string
		final    string
		want     string
	}{
		{"gain", "500000", "600959.60", "20.19"},
		{"loss", "1000", "750", "-25"},
		{"total loss", "1000", "0", "-100"},
		{"nothing invested", "0", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calcTotalReturnPct(dec(tt.invested), dec(tt.final))
			assert.True(t, got.Equal(dec(tt.want)), "calcTotalReturnPct() = %s, want %s", got, tt.want)
		})
	}
}

func TestCalcCAGR(t *testing.T) {
	got := calcCAGR(dec("100"), dec("121"), dec("2"))
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(dec("10")), "calcCAGR() = %s", got.Decimal)

	assert.False(t, calcCAGR(decimal.Zero, dec("121"), dec("2")).Valid, "nothing invested")
	assert.False(t, calcCAGR(dec("100"), dec("121"), decimal.Zero).Valid, "no elapsed time")

	lost := calcCAGR(dec("100"), decimal.Zero, dec("1"))
	require.True(t, lost.Valid)
	assert.True(t, lost.Decimal.Equal(dec("-100")))
}

func TestPeriodReturns(t *testing.T) {
	records := valueRecords("100", "220", "0", "288")
	records[2].Skipped = true

	got := periodReturns(records)
	require.Len(t, got, 2)
	assert.InDelta(t, 0.1, got[0], 1e-12)
	assert.InDelta(t, -0.1, got[1], 1e-12)

	assert.Empty(t, periodReturns(valueRecords("100")))
}

func TestCalcVolatility(t *testing.T) {
	got := calcVolatility([]float64{0.01, 0.03}, 12)
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(dec("4.9")), "calcVolatility() = %s", got.Decimal)

	assert.False(t, calcVolatility([]float64{0.01}, 12).Valid)

	flat := calcVolatility([]float64{0, 0, 0}, 12)
	require.True(t, flat.Valid)
	assert.True(t, flat.Decimal.IsZero())
}

func TestCalcSharpeRatio(t *testing.T) {
	tests := []struct {
		name    string
		returns []float64
		rf      string
		want    string
	}{
		{"no risk free rate", []float64{0.01, 0.03}, "0", "4.899"},
		{"zero variance", []float64{0.02, 0.02, 0.02}, "0", ""},
		{"single return", []float64{0.02}, "0", ""},
		{"no returns", nil, "0.02", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calcSharpeRatio(tt.returns, 12, dec(tt.rf))
			if tt.want == "" {
				assert.False(t, got.Valid, "calcSharpeRatio() = %s, want null", got.Decimal)
				return
			}
			require.True(t, got.Valid)
			assert.True(t, got.Decimal.Equal(dec(tt.want)), "calcSharpeRatio() = %s, want %s", got.Decimal, tt.want)
		})
	}
}

func TestCalcSharpeRatio_RiskFreeLowersRatio(t *testing.T) {
	returns := []float64{0.01, 0.03, -0.005, 0.02}
	withoutRF := calcSharpeRatio(returns, 12, decimal.Zero)
	withRF := calcSharpeRatio(returns, 12, dec("0.05"))
	require.True(t, withoutRF.Valid)
	require.True(t, withRF.Valid)
	assert.True(t, withRF.Decimal.LessThan(withoutRF.Decimal))
}

func TestCalcSortinoRatio(t *testing.T) {
	got := calcSortinoRatio([]float64{0.02, -0.01, 0.03, -0.02}, 12, decimal.Zero)
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(dec("2.4495")), "calcSortinoRatio() = %s", got.Decimal)

	// one return below the mean is not enough to measure downside deviation
	assert.False(t, calcSortinoRatio([]float64{0.01, 0.03}, 12, decimal.Zero).Valid)
	assert.False(t, calcSortinoRatio([]float64{0.02, 0.02, 0.02}, 12, decimal.Zero).Valid)
}

func TestCalcCalmarRatio(t *testing.T) {
	got := calcCalmarRatio(decimal.NewNullDecimal(dec("10")), dec("25"))
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(dec("0.4")))

	assert.False(t, calcCalmarRatio(decimal.NewNullDecimal(dec("10")), decimal.Zero).Valid)
	assert.False(t, calcCalmarRatio(decimal.NullDecimal{}, dec("25")).Valid)
}

func TestCalcOutperformance(t *testing.T) {
	got := calcOutperformance(dec("20"), dec("100"), map[string]decimal.Decimal{
		"A": dec("110"),
		"B": dec("130"),
	})
	require.Len(t, got, 2)
	assert.True(t, got["A"].Equal(dec("10")))
	assert.True(t, got["B"].Equal(dec("-10")))
}

func TestPerPeriodRiskFree(t *testing.T) {
	assert.InDelta(t, 0.0, perPeriodRiskFree(decimal.Zero, 12), 1e-15)
	// compounding the per period rate reproduces the annual rate
	r := perPeriodRiskFree(dec("0.02"), 52)
	acc := 1.0
	for i := 0; i < 52; i++ {
		acc *= 1 + r
	}
	assert.InDelta(t, 1.02, acc, 1e-12)
}

func TestAnalyzer_AnalyzeMatchesSimulate(t *testing.T) {
	params := mustParams(t, "AAPL", "100000",
		calendar.Date(2020, time.January, 1), calendar.Date(2020, time.May, 1), types.Monthly)
	eng := NewEngine(nil, nil, nil, nil)
	res, err := eng.Simulate(params, scenarioAPrices())
	require.NoError(t, err)

	got, err := json.Marshal(eng.analyzer.Analyze(res))
	require.NoError(t, err)
	want, err := json.Marshal(res.Statistics)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))

	// 516575.35 and 519890.42 are 3.32% and 3.98% on the principal
	assert.True(t, res.BenchmarkProjections[BenchmarkSP500].Equal(dec("516575.35")))
	assert.True(t, res.BenchmarkProjections[BenchmarkNASDAQ].Equal(dec("519890.42")))
	assert.True(t, res.Statistics.OutperformanceVsBenchmark[BenchmarkSP500].Equal(dec("16.87")))
	assert.True(t, res.Statistics.OutperformanceVsBenchmark[BenchmarkNASDAQ].Equal(dec("16.21")))
}
