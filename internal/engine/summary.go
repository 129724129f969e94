package engine

import (
	"fmt"
	"io"
	"sort"
	"time"

	"dcasim/types"

	"github.com/shopspring/decimal"
)

const notAvailable = "N/A"

// WriteSummary prints a human readable report of result.
func (e *Engine) WriteSummary(w io.Writer, result *types.SimulationResult) error {
	p := result.Parameters
	s := result.Statistics
	pw := &printer{w: w}

	pw.println("===== DCA Simulation Report =====")
	pw.printf("Symbol:                %s\n", p.Symbol)
	pw.printf("Frequency:             %s\n", p.Frequency.Description())
	pw.printf("Periodic Amount:       %s\n", p.PeriodicAmount.StringFixed(currencyScale))
	pw.printf("Period:                %s to %s (%s years)\n",
		p.StartDate.Format(time.DateOnly), p.EndDate.Format(time.DateOnly), types.YearsBetween(p.StartDate, p.EndDate))
	pw.printf("Purchases:             %d executed, %d skipped\n", result.ExecutedCount(), result.SkippedCount())

	pw.println("\n-- Absolute Performance --")
	pw.printf("Total Invested:        %s\n", result.TotalInvestedAmount.StringFixed(currencyScale))
	pw.printf("Final Value:           %s\n", result.FinalPortfolioValue.StringFixed(currencyScale))
	pw.printf("Peak Value:            %s\n", result.MaxPortfolioValue().StringFixed(currencyScale))
	pw.printf("Total Return %%:        %s\n", s.TotalReturnPct.StringFixed(pctScale))
	pw.printf("CAGR %%:                %s\n", formatNull(s.AnnualizedReturnPct, pctScale))

	pw.println("\n-- Risk Metrics --")
	pw.printf("Volatility %%:          %s\n", formatNull(s.VolatilityPct, pctScale))
	pw.printf("Max Drawdown %%:        %s\n", s.MaxDrawdownPct.StringFixed(pctScale))
	pw.printf("Sharpe Ratio:          %s\n", formatNull(s.SharpeRatio, ratioScale))
	pw.printf("Sortino Ratio:         %s\n", formatNull(s.SortinoRatio, ratioScale))
	pw.printf("Calmar Ratio:          %s\n", formatNull(s.CalmarRatio, ratioScale))

	pw.println("\n-- Benchmarks --")
	ids := make([]string, 0, len(result.BenchmarkProjections))
	for id := range result.BenchmarkProjections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		name := id
		if b, err := e.projector.config.Lookup(id); err == nil {
			name = b.Name
		}
		pw.printf("%-22s %s (outperformance %s pp)\n", name+":",
			result.BenchmarkProjections[id].StringFixed(currencyScale),
			s.OutperformanceVsBenchmark[id].StringFixed(pctScale))
	}

	pw.println("=================================")
	return pw.err
}

func formatNull(d decimal.NullDecimal, places int32) string {
	if !d.Valid {
		return notAvailable
	}
	return d.Decimal.StringFixed(places)
}

// printer keeps the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) {
	p.printf("%s\n", s)
}
