package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DBTX is the subset of pgxpool.Pool used by queries.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type assetRow struct {
	ID         int32
	Ticker     string
	Name       string
	Type       string
	CreatedAt  *time.Time
	ModifiedAt *time.Time
}

type dailyCloseRow struct {
	Day   time.Time
	Close decimal.Decimal
}

type getDailyClosesParams struct {
	AssetID int32
	From    time.Time
	// Until is exclusive.
	Until time.Time
}

type queries struct {
	db DBTX
}

func newQueries(db DBTX) *queries {
	return &queries{db: db}
}

const getAssetByTicker = `-- name: GetAssetByTicker :one
SELECT id, ticker, name, type, created_at, modified_at
FROM assets
WHERE ticker = $1`

func (q *queries) GetAssetByTicker(ctx context.Context, ticker string) (assetRow, error) {
	row := q.db.QueryRow(ctx, getAssetByTicker, ticker)
	var a assetRow
	err := row.Scan(&a.ID, &a.Ticker, &a.Name, &a.Type, &a.CreatedAt, &a.ModifiedAt)
	return a, err
}

const getDailyCloses = `-- name: GetDailyCloses :many
SELECT time_bucket('1 day', time) AS day, last(close, time) AS close
FROM candles
WHERE asset_id = $1 AND time >= $2 AND time < $3
GROUP BY day
ORDER BY day`

func (q *queries) GetDailyCloses(ctx context.Context, arg getDailyClosesParams) ([]dailyCloseRow, error) {
	rows, err := q.db.Query(ctx, getDailyCloses, arg.AssetID, arg.From, arg.Until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []dailyCloseRow
	for rows.Next() {
		var i dailyCloseRow
		if err := rows.Scan(&i.Day, &i.Close); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
