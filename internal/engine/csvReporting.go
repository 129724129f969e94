package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"dcasim/types"
)

var ledgerHeader = []string{
	"investment_date", // YYYY-MM-DD
	"investment_amount",
	"reference_price", // empty when skipped
	"shares_purchased",
	"cumulative_shares",
	"portfolio_value",
	"skipped",
}

// WriteLedgerCSVFile writes the ledger of result to a CSV file at path.
func WriteLedgerCSVFile(path string, result *types.SimulationResult) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ledger file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close ledger file: %w", cerr)
		}
	}()

	return WriteLedgerCSV(f, result)
}

// WriteLedgerCSV writes one row per investment record to w.
func WriteLedgerCSV(w io.Writer, result *types.SimulationResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(ledgerHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range result.Records {
		if err := writeLedgerRow(cw, r); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func writeLedgerRow(cw *csv.Writer, r types.InvestmentRecord) error {
	price := ""
	if r.ReferencePrice.Valid {
		price = r.ReferencePrice.Decimal.String()
	}
	record := []string{
		r.InvestmentDate.Format(time.DateOnly),
		r.InvestmentAmount.String(),
		price,
		r.SharesPurchased.StringFixed(shareScale),
		r.CumulativeShares.StringFixed(shareScale),
		r.PortfolioValue.StringFixed(currencyScale),
		strconv.FormatBool(r.Skipped),
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
