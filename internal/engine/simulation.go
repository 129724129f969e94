package engine

import (
	"time"

	"dcasim/types"

	"github.com/shopspring/decimal"
)

// runSimulation folds the schedule into the ledger. Every scheduled date
// yields exactly one record; dates with no price on or before them are
// recorded as skipped and leave the holding untouched.
func runSimulation(amount decimal.Decimal, schedule []time.Time, prices *priceIndex) []types.InvestmentRecord {
	records := make([]types.InvestmentRecord, 0, len(schedule))
	p := newPortfolio()

	for _, date := range schedule {
		price, ok := prices.priceAt(date)
		if !ok {
			records = append(records, types.InvestmentRecord{
				InvestmentDate:   date,
				InvestmentAmount: decimal.Zero,
				SharesPurchased:  decimal.Zero,
				CumulativeShares: p.shares,
				PortfolioValue:   p.value,
				Skipped:          true,
			})
			continue
		}

		shares := p.buy(amount, price)
		records = append(records, types.InvestmentRecord{
			InvestmentDate:   date,
			InvestmentAmount: amount,
			ReferencePrice:   decimal.NewNullDecimal(price),
			SharesPurchased:  shares,
			CumulativeShares: p.shares,
			PortfolioValue:   p.value,
		})
	}
	return records
}

// ledgerTotals sums executed purchases and reads the final valuation.
func ledgerTotals(records []types.InvestmentRecord) (invested, final decimal.Decimal) {
	invested = decimal.Zero
	for _, r := range records {
		if !r.Skipped {
			invested = invested.Add(r.InvestmentAmount)
		}
	}
	if len(records) == 0 {
		return invested, decimal.Zero
	}
	return invested, records[len(records)-1].PortfolioValue
}
