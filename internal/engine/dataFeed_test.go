package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"dcasim/internal/calendar"
	"dcasim/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceIndex_PriceAt(t *testing.T) {
	idx, err := newPriceIndex([]types.PricePoint{
		price(2020, time.January, 10, "12"),
		price(2020, time.January, 3, "10"),
		price(2020, time.January, 6, "11"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.len())

	tests := []struct {
		name   string
		date   time.Time
		want   string
		wantOK bool
	}{
		{"before first observation", calendar.Date(2020, time.January, 2), "", false},
		{"exact match", calendar.Date(2020, time.January, 6), "11", true},
		{"gap uses the latest earlier close", calendar.Date(2020, time.January, 8), "11", true},
		{"after last observation", calendar.Date(2020, time.March, 1), "12", true},
		{"time of day ignored", time.Date(2020, time.January, 3, 23, 59, 0, 0, time.UTC), "10", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.priceAt(tt.date)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, got.Equal(dec(tt.want)), "priceAt() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewPriceIndex_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		series []types.PricePoint
	}{
		{"zero price", []types.PricePoint{price(2020, time.January, 1, "0")}},
		{"negative price", []types.PricePoint{price(2020, time.January, 1, "-5")}},
		{"missing date", []types.PricePoint{{Price: decimal.NewFromInt(1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newPriceIndex(tt.series)
			assert.ErrorIs(t, err, types.ErrInvalidParameters)
		})
	}
}

func TestDataFeed_GetData(t *testing.T) {
	params := mustParams(t, "AAPL", "1",
		calendar.Date(2020, time.January, 1), calendar.Date(2020, time.May, 1), types.Monthly)
	feed := NewDataFeed(params)

	got, err := feed.GetData(context.Background(), &fakePriceSource{series: map[string][]types.PricePoint{"AAPL": scenarioAPrices()}})
	require.NoError(t, err)
	assert.Len(t, got, 5)

	boom := errors.New("boom")
	_, err = feed.GetData(context.Background(), &fakePriceSource{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "AAPL")
}

func TestNewDataFeed_LooksBackBeforeStart(t *testing.T) {
	params := mustParams(t, "AAPL", "1",
		calendar.Date(2020, time.January, 4), calendar.Date(2020, time.February, 4), types.Monthly)
	feed := NewDataFeed(params)
	assert.True(t, feed.Start.Equal(calendar.Date(2019, time.December, 28)), "start = %s", feed.Start)
	assert.True(t, feed.End.Equal(params.EndDate))
}

func TestEngine_RunStartingOnNonTradingDay(t *testing.T) {
	// 2020-01-04 is a Saturday; the Friday close must be used.
	src := &fakePriceSource{series: map[string][]types.PricePoint{"AAPL": {
		price(2019, time.December, 20, "5"),
		price(2020, time.January, 3, "10"),
		price(2020, time.February, 3, "20"),
	}}}
	params := mustParams(t, "AAPL", "100",
		calendar.Date(2020, time.January, 4), calendar.Date(2020, time.February, 4), types.Monthly)

	res, err := NewEngine(nil, nil, nil, src).Run(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.False(t, res.Records[0].Skipped)
	assert.True(t, res.Records[0].ReferencePrice.Decimal.Equal(dec("10")))
	assert.True(t, res.Records[1].ReferencePrice.Decimal.Equal(dec("20")))
	assert.True(t, res.TotalInvestedAmount.Equal(dec("200")))
}
