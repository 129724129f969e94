package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dcasim/internal/calendar"
	"dcasim/types"

	"github.com/jackc/pgx/v5"
)

// GetPrices returns one closing price per day for the asset, start and end
// days inclusive, ordered by date. An empty result is not an error.
func (db *Database) GetPrices(ctx context.Context, assetId int, start, end time.Time) ([]types.PricePoint, error) {
	args := getDailyClosesParams{
		AssetID: int32(assetId),
		From:    calendar.Truncate(start),
		Until:   calendar.AddDays(end, 1),
	}
	rows, err := db.prices.GetDailyCloses(ctx, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return convertCloses(rows), nil
}

// GetPriceSeries resolves symbol and loads its daily closes.
func (db *Database) GetPriceSeries(ctx context.Context, symbol string, start, end time.Time) ([]types.PricePoint, error) {
	asset, err := db.GetAssetByTicker(ctx, symbol)
	if err != nil {
		return nil, err
	}
	prices, err := db.GetPrices(ctx, asset.Id, start, end)
	if err != nil {
		return nil, fmt.Errorf("prices for %s: %w", symbol, err)
	}
	return prices, nil
}

func convertCloses(rows []dailyCloseRow) []types.PricePoint {
	prices := make([]types.PricePoint, 0, len(rows))
	for _, r := range rows {
		prices = append(prices, types.PricePoint{
			Date:  calendar.Truncate(r.Day),
			Price: r.Close,
		})
	}
	return prices
}
