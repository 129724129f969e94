package engine

import (
	"context"
	"time"

	"dcasim/types"
)

// priceSource resolves the dated observations of a symbol. Fetching and
// caching are the implementation's concern; the engine only reads the result.
type priceSource interface {
	GetPriceSeries(ctx context.Context, symbol string, start, end time.Time) ([]types.PricePoint, error)
}
