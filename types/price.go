package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is a single dated price observation. Only the calendar day of
// Date is significant.
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Price decimal.Decimal `json:"price"`
}

func NewPricePoint(date time.Time, price decimal.Decimal) PricePoint {
	return PricePoint{Date: date, Price: price}
}
