package engine

import (
	"github.com/shopspring/decimal"
)

const (
	shareScale    = 6
	currencyScale = 2
)

// portfolio accumulates the shares bought by one simulation run.
type portfolio struct {
	shares   decimal.Decimal
	invested decimal.Decimal
	value    decimal.Decimal
}

func newPortfolio() *portfolio {
	return &portfolio{
		shares:   decimal.Zero,
		invested: decimal.Zero,
		value:    decimal.Zero,
	}
}

// buy spends amount at price and marks the whole position to that price.
// It returns the shares purchased.
func (p *portfolio) buy(amount, price decimal.Decimal) decimal.Decimal {
	shares := amount.DivRound(price, shareScale)
	p.shares = p.shares.Add(shares)
	p.invested = p.invested.Add(amount)
	p.markToMarket(price)
	return shares
}

func (p *portfolio) markToMarket(price decimal.Decimal) {
	p.value = p.shares.Mul(price).Round(currencyScale)
}
