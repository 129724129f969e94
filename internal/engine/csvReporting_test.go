package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dcasim/internal/calendar"
	"dcasim/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skippedThenBoughtResult(t *testing.T) *types.SimulationResult {
	t.Helper()
	params := mustParams(t, "MSFT", "100",
		calendar.Date(2020, time.January, 1), calendar.Date(2020, time.February, 1), types.Monthly)
	res, err := NewEngine(nil, nil, nil, nil).Simulate(params, []types.PricePoint{price(2020, time.January, 15, "10")})
	require.NoError(t, err)
	return res
}

func TestWriteLedgerCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLedgerCSV(&buf, skippedThenBoughtResult(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "investment_date,investment_amount,reference_price,shares_purchased,cumulative_shares,portfolio_value,skipped", lines[0])
	assert.Equal(t, "2020-01-01,0,,0.000000,0.000000,0.00,true", lines[1])
	assert.Equal(t, "2020-02-01,100,10,10.000000,10.000000,100.00,false", lines[2])
}

func TestWriteLedgerCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, WriteLedgerCSVFile(path, skippedThenBoughtResult(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count(data, []byte("\n")), "header plus two rows expected, got:\n%s", data)
}

func TestEngine_WriteSummary(t *testing.T) {
	eng := NewEngine(nil, nil, nil, nil)
	var buf bytes.Buffer
	require.NoError(t, eng.WriteSummary(&buf, skippedThenBoughtResult(t)))

	out := buf.String()
	for _, want := range []string{
		"Symbol:                MSFT",
		"Frequency:             monthly",
		"Purchases:             1 executed, 1 skipped",
		"Total Invested:        100.00",
		"Final Value:           100.00",
		"Sharpe Ratio:          N/A",
		"S&P 500:",
		"NASDAQ Composite:",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "NASDAQ Composite:"), strings.Index(out, "S&P 500:"), "benchmarks are listed by id")
}

func TestWriteLedgerCSVFile_CreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "ledger.csv")
	err := WriteLedgerCSVFile(path, skippedThenBoughtResult(t))
	assert.ErrorContains(t, err, "create ledger file")
}
