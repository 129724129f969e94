package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentRecord is one ledger row: a scheduled purchase, executed or skipped.
// ReferencePrice is invalid when no observation was available for the row.
type InvestmentRecord struct {
	InvestmentDate   time.Time           `json:"investmentDate"`
	InvestmentAmount decimal.Decimal     `json:"investmentAmount"`
	ReferencePrice   decimal.NullDecimal `json:"referencePrice"`
	SharesPurchased  decimal.Decimal     `json:"sharesPurchased"`
	CumulativeShares decimal.Decimal     `json:"cumulativeShares"`
	PortfolioValue   decimal.Decimal     `json:"portfolioValue"`
	Skipped          bool                `json:"skipped"`
}
