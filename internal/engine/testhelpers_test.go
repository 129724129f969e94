package engine

import (
	"context"
	"testing"
	"time"

	"dcasim/internal/calendar"
	"dcasim/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func price(y int, m time.Month, d int, p string) types.PricePoint {
	return types.NewPricePoint(calendar.Date(y, m, d), dec(p))
}

func mustParams(t *testing.T, symbol, amount string, start, end time.Time, freq types.Frequency) types.SimulationParameters {
	t.Helper()
	p, err := types.NewSimulationParameters(symbol, dec(amount), start, end, freq)
	require.NoError(t, err)
	return p
}

// scenarioAPrices are monthly closes on the first of each month.
func scenarioAPrices() []types.PricePoint {
	return []types.PricePoint{
		price(2020, time.January, 1, "100"),
		price(2020, time.February, 1, "110"),
		price(2020, time.March, 1, "90"),
		price(2020, time.April, 1, "120"),
		price(2020, time.May, 1, "130"),
	}
}

type fakePriceSource struct {
	series map[string][]types.PricePoint
	err    error
}

// GetPriceSeries returns the observations of symbol within [start, end],
// like the real sources do.
func (f *fakePriceSource) GetPriceSeries(_ context.Context, symbol string, start, end time.Time) ([]types.PricePoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []types.PricePoint
	for _, p := range f.series[symbol] {
		if p.Date.Before(calendar.Truncate(start)) || p.Date.After(calendar.Truncate(end)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
