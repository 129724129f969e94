package engine

import (
	"math"
	"sync"

	"dcasim/types"

	"github.com/shopspring/decimal"
)

const (
	pctScale   = 2
	ratioScale = 4
	// period returns are kept exact to this many digits before float conversion
	returnScale = 12
	// deviations below this are treated as a zero-variance series
	minDeviation = 1e-12
)

var hundred = decimal.NewFromInt(100)

// Analyzer derives risk and performance statistics from a completed ledger.
type Analyzer struct {
	riskFreeRate decimal.Decimal
}

func NewAnalyzer(config *ReportingConfig) *Analyzer {
	return &Analyzer{riskFreeRate: config.riskFreeRate}
}

// Analyze computes every statistic of result. result.Statistics is ignored
// and result is not modified.
func (a *Analyzer) Analyze(result *types.SimulationResult) types.RiskMetrics {
	m := a.analyzeLedger(result.Parameters, result.Records, result.TotalInvestedAmount, result.FinalPortfolioValue)
	m.OutperformanceVsBenchmark = calcOutperformance(m.TotalReturnPct, result.TotalInvestedAmount, result.BenchmarkProjections)
	return m
}

// analyzeLedger computes all metrics that do not depend on benchmark projections.
func (a *Analyzer) analyzeLedger(
	params types.SimulationParameters,
	records []types.InvestmentRecord,
	invested, final decimal.Decimal,
) types.RiskMetrics {
	m := types.RiskMetrics{}
	years := types.YearsBetween(params.StartDate, params.EndDate)
	ppy := params.Frequency.PeriodsPerYear()
	returns := periodReturns(records)

	var wg sync.WaitGroup
	wg.Add(6)
	go func() {
		defer wg.Done()
		m.TotalReturnPct = calcTotalReturnPct(invested, final)
	}()
	go func() {
		defer wg.Done()
		m.AnnualizedReturnPct = calcCAGR(invested, final, years)
	}()
	go func() {
		defer wg.Done()
		m.VolatilityPct = calcVolatility(returns, ppy)
	}()
	go func() {
		defer wg.Done()
		m.SharpeRatio = calcSharpeRatio(returns, ppy, a.riskFreeRate)
	}()
	go func() {
		defer wg.Done()
		m.SortinoRatio = calcSortinoRatio(returns, ppy, a.riskFreeRate)
	}()
	go func() {
		defer wg.Done()
		m.MaxDrawdownPct = calcMaxDrawdownPct(records)
	}()
	wg.Wait()

	m.CalmarRatio = calcCalmarRatio(m.AnnualizedReturnPct, m.MaxDrawdownPct)
	return m
}

// returnPct is (value - invested) / invested as a percentage. A run with
// nothing invested has no return and reports zero.
func returnPct(value, invested decimal.Decimal) decimal.Decimal {
	if invested.IsZero() {
		return decimal.Zero
	}
	return value.Sub(invested).Mul(hundred).DivRound(invested, pctScale)
}

func calcTotalReturnPct(invested, final decimal.Decimal) decimal.Decimal {
	return returnPct(final, invested)
}

func calcCAGR(invested, final, years decimal.Decimal) decimal.NullDecimal {
	if !invested.IsPositive() || !years.IsPositive() || final.IsNegative() {
		return decimal.NullDecimal{}
	}
	ratio := final.Div(invested).InexactFloat64()
	cagr := math.Pow(ratio, 1.0/years.InexactFloat64()) - 1.0
	return nullFromFloat(cagr*100, pctScale)
}

// periodReturns measures market movement between consecutive executed
// purchases, net of the capital deposited by the later purchase.
func periodReturns(records []types.InvestmentRecord) []float64 {
	var returns []float64
	var prev *types.InvestmentRecord
	for i := range records {
		cur := &records[i]
		if cur.Skipped {
			continue
		}
		if prev != nil {
			base := prev.PortfolioValue.Add(cur.InvestmentAmount)
			if base.IsPositive() {
				r := cur.PortfolioValue.Sub(base).DivRound(base, returnScale)
				returns = append(returns, r.InexactFloat64())
			}
		}
		prev = cur
	}
	return returns
}

func calcVolatility(returns []float64, periodsPerYear int) decimal.NullDecimal {
	sd, ok := stddev(returns)
	if !ok || periodsPerYear <= 0 {
		return decimal.NullDecimal{}
	}
	return nullFromFloat(sd*math.Sqrt(float64(periodsPerYear))*100, pctScale)
}

// perPeriodRiskFree converts an annual rate to the equivalent compounded
// rate per period: (1 + rf)^(1/n) - 1.
func perPeriodRiskFree(annual decimal.Decimal, periodsPerYear int) float64 {
	return math.Pow(1.0+annual.InexactFloat64(), 1.0/float64(periodsPerYear)) - 1.0
}

func calcSharpeRatio(returns []float64, periodsPerYear int, annualRiskFree decimal.Decimal) decimal.NullDecimal {
	if periodsPerYear <= 0 {
		return decimal.NullDecimal{}
	}
	sd, ok := stddev(returns)
	if !ok || sd < minDeviation {
		return decimal.NullDecimal{}
	}
	excess := mean(returns) - perPeriodRiskFree(annualRiskFree, periodsPerYear)
	return nullFromFloat(excess/sd*math.Sqrt(float64(periodsPerYear)), ratioScale)
}

// calcSortinoRatio shares the Sharpe numerator; the denominator is the
// deviation of the returns below the mean return.
func calcSortinoRatio(returns []float64, periodsPerYear int, annualRiskFree decimal.Decimal) decimal.NullDecimal {
	if periodsPerYear <= 0 || len(returns) < 2 {
		return decimal.NullDecimal{}
	}
	mu := mean(returns)
	var downside []float64
	for _, r := range returns {
		if r < mu {
			downside = append(downside, r)
		}
	}
	sd, ok := stddev(downside)
	if !ok || sd < minDeviation {
		return decimal.NullDecimal{}
	}
	excess := mu - perPeriodRiskFree(annualRiskFree, periodsPerYear)
	return nullFromFloat(excess/sd*math.Sqrt(float64(periodsPerYear)), ratioScale)
}

func calcMaxDrawdownPct(records []types.InvestmentRecord) decimal.Decimal {
	peak := decimal.Zero
	maxDD := decimal.Zero
	for _, r := range records {
		v := r.PortfolioValue
		if v.GreaterThan(peak) {
			peak = v
			continue
		}
		if !peak.IsPositive() {
			continue
		}
		if dd := peak.Sub(v).Mul(hundred).DivRound(peak, pctScale); dd.GreaterThan(maxDD) {
			maxDD = dd
		}
	}
	return maxDD
}

func calcCalmarRatio(cagr decimal.NullDecimal, maxDrawdownPct decimal.Decimal) decimal.NullDecimal {
	if !cagr.Valid || maxDrawdownPct.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(cagr.Decimal.DivRound(maxDrawdownPct, ratioScale))
}

// calcOutperformance is the strategy's total return minus each benchmark's
// return on the same principal, in percentage points.
func calcOutperformance(totalReturnPct, invested decimal.Decimal, projections map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(projections))
	for id, projected := range projections {
		out[id] = totalReturnPct.Sub(returnPct(projected, invested))
	}
	return out
}

// Helper functions
func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for _, x := range data {
		sum += x
	}
	return sum / float64(len(data))
}

// stddev is the sample standard deviation; it needs at least two values.
func stddev(data []float64) (float64, bool) {
	if len(data) < 2 {
		return 0, false
	}
	mu := mean(data)
	var varianceSum float64
	for _, x := range data {
		diff := x - mu
		varianceSum += diff * diff
	}
	return math.Sqrt(varianceSum / float64(len(data)-1)), true
}

func nullFromFloat(f float64, places int32) decimal.NullDecimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(f).Round(places))
}
