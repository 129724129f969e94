package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"dcasim/internal/calendar"
	"dcasim/types"

	"github.com/shopspring/decimal"
)

// CSVSource serves price series loaded from a CSV file with a
// symbol,date,price header (any column order, extra columns ignored).
// It is read-only once loaded.
type CSVSource struct {
	series map[string][]types.PricePoint
}

func LoadCSVFile(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prices: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

func LoadCSV(r io.Reader) (*CSVSource, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header: %w", ErrMalformedCSV)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := columnIndexes(header, "symbol", "date", "price")
	if err != nil {
		return nil, err
	}

	src := &CSVSource{series: make(map[string][]types.PricePoint)}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		symbol := strings.ToUpper(strings.TrimSpace(rec[cols["symbol"]]))
		if symbol == "" {
			return nil, fmt.Errorf("line %d: empty symbol: %w", line, ErrMalformedCSV)
		}
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(rec[cols["date"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedCSV, err)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[cols["price"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedCSV, err)
		}
		src.series[symbol] = append(src.series[symbol], types.PricePoint{Date: calendar.Truncate(date), Price: price})
	}

	for _, s := range src.series {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
	}
	return src, nil
}

func columnIndexes(header []string, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	out := make(map[string]int, len(names))
	for _, n := range names {
		i, ok := idx[n]
		if !ok {
			return nil, fmt.Errorf("missing column %q: %w", n, ErrMalformedCSV)
		}
		out[n] = i
	}
	return out, nil
}

// Symbols lists the loaded symbols in sorted order.
func (s *CSVSource) Symbols() []string {
	out := make([]string, 0, len(s.series))
	for sym := range s.series {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// GetPriceSeries returns the observations of symbol between start and end
// inclusive. The returned slice is a copy.
func (s *CSVSource) GetPriceSeries(_ context.Context, symbol string, start, end time.Time) ([]types.PricePoint, error) {
	series, ok := s.series[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return nil, fmt.Errorf("ticker %s %w", symbol, ErrAssetNotFound)
	}
	start, end = calendar.Truncate(start), calendar.Truncate(end)
	var out []types.PricePoint
	for _, p := range series {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
