package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dcasim/internal/calendar"
	"dcasim/types"

	"github.com/shopspring/decimal"
)

// priceLookbackDays widens the requested range before the start date so a
// schedule starting on a non-trading day still finds the previous close.
const priceLookbackDays = 7

// DataFeed identifies the price series a simulation needs.
type DataFeed struct {
	Symbol string
	Start  time.Time
	End    time.Time
}

func NewDataFeed(params types.SimulationParameters) DataFeed {
	return DataFeed{
		Symbol: params.Symbol,
		Start:  calendar.AddDays(params.StartDate, -priceLookbackDays),
		End:    params.EndDate,
	}
}

func (df DataFeed) GetData(ctx context.Context, src priceSource) ([]types.PricePoint, error) {
	prices, err := src.GetPriceSeries(ctx, df.Symbol, df.Start, df.End)
	if err != nil {
		return nil, fmt.Errorf("load prices for %s: %w", df.Symbol, err)
	}
	return prices, nil
}

// priceIndex is a date-sorted, one-per-day view of a price series.
type priceIndex struct {
	dates  []time.Time
	prices []decimal.Decimal
}

// newPriceIndex validates and indexes a series. Input order is kept for
// equal dates so the last observation of a day wins.
func newPriceIndex(series []types.PricePoint) (*priceIndex, error) {
	points := make([]types.PricePoint, len(series))
	for i, p := range series {
		if p.Date.IsZero() {
			return nil, &types.InvalidParametersError{Field: "prices", Reason: fmt.Sprintf("observation %d has no date", i)}
		}
		if !p.Price.IsPositive() {
			return nil, &types.InvalidParametersError{Field: "prices", Reason: fmt.Sprintf("observation %d on %s has non-positive price %s",
				i, p.Date.Format(time.DateOnly), p.Price)}
		}
		points[i] = types.PricePoint{Date: calendar.Truncate(p.Date), Price: p.Price}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	idx := &priceIndex{
		dates:  make([]time.Time, 0, len(points)),
		prices: make([]decimal.Decimal, 0, len(points)),
	}
	for _, p := range points {
		if n := len(idx.dates); n > 0 && idx.dates[n-1].Equal(p.Date) {
			idx.prices[n-1] = p.Price
			continue
		}
		idx.dates = append(idx.dates, p.Date)
		idx.prices = append(idx.prices, p.Price)
	}
	return idx, nil
}

// priceAt returns the latest observation on or before date.
func (idx *priceIndex) priceAt(date time.Time) (decimal.Decimal, bool) {
	date = calendar.Truncate(date)
	i := sort.Search(len(idx.dates), func(i int) bool { return idx.dates[i].After(date) })
	if i == 0 {
		return decimal.Zero, false
	}
	return idx.prices[i-1], true
}

func (idx *priceIndex) len() int {
	return len(idx.dates)
}
