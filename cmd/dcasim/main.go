package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"dcasim/internal/config"
	"dcasim/internal/engine"
	"dcasim/internal/repository"
	"dcasim/types"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

var (
	cfg    config.Config
	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "dcasim",
	Short:         "Dollar-cost averaging simulator",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.LogLevel = lvl
		}
		logger, err = newLogger(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./dcasim.env)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	simulateCmd.Flags().StringSlice("symbol", nil, "symbol to simulate; repeat or comma separate for a batch")
	simulateCmd.Flags().String("amount", "", "amount invested each period")
	simulateCmd.Flags().String("start", "", "first investment date (YYYY-MM-DD)")
	simulateCmd.Flags().String("end", "", "last possible investment date (YYYY-MM-DD)")
	simulateCmd.Flags().String("frequency", "monthly", "daily, weekly or monthly")
	simulateCmd.Flags().String("prices", "", "CSV file with symbol,date,price columns; the database is used when empty")
	simulateCmd.Flags().String("format", "summary", "output format: summary, json or csv")
	simulateCmd.Flags().String("ledger", "", "also write each ledger as CSV to this path (symbol is appended for batches)")
	_ = simulateCmd.MarkFlagRequired("symbol")
	_ = simulateCmd.MarkFlagRequired("amount")
	_ = simulateCmd.MarkFlagRequired("start")
	_ = simulateCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(simulateCmd)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	if lvl.Level() == zap.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = lvl
	return zc.Build()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dcasim %s\n", version)
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a recurring investment against historical prices",
	RunE:  runSimulate,
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	params, err := parametersFromFlags(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "summary" && format != "json" && format != "csv" {
		return fmt.Errorf("unknown format %q", format)
	}

	src, closeSrc, err := openPriceSource(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeSrc()

	eng, err := newEngine(src)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr)
		defer srv.Shutdown(context.Background())
	}

	var results []*types.SimulationResult
	if len(params) == 1 {
		res, err := eng.Run(ctx, params[0])
		if err != nil {
			return err
		}
		results = append(results, res)
	} else {
		bar := progressbar.NewOptions(len(params),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetElapsedTime(true),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetDescription("Simulating..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
		results, err = eng.RunBatch(ctx, params, func() { _ = bar.Add(1) })
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}
	}

	ledger, _ := cmd.Flags().GetString("ledger")
	for _, res := range results {
		if ledger != "" {
			path := ledger
			if len(results) > 1 {
				path = ledgerPath(ledger, res.Parameters.Symbol)
			}
			if err := engine.WriteLedgerCSVFile(path, res); err != nil {
				return err
			}
		}
		if err := writeResult(cmd, eng, format, res); err != nil {
			return err
		}
	}
	return nil
}

func parametersFromFlags(cmd *cobra.Command) ([]types.SimulationParameters, error) {
	symbols, _ := cmd.Flags().GetStringSlice("symbol")
	amountStr, _ := cmd.Flags().GetString("amount")
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	freqStr, _ := cmd.Flags().GetString("frequency")

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, &types.InvalidParametersError{Field: "periodicAmount", Reason: fmt.Sprintf("%q is not a number", amountStr), Err: err}
	}
	start, err := time.Parse(time.DateOnly, startStr)
	if err != nil {
		return nil, &types.InvalidParametersError{Field: "startDate", Reason: "want YYYY-MM-DD", Err: err}
	}
	end, err := time.Parse(time.DateOnly, endStr)
	if err != nil {
		return nil, &types.InvalidParametersError{Field: "endDate", Reason: "want YYYY-MM-DD", Err: err}
	}
	freq, err := types.ParseFrequency(freqStr)
	if err != nil {
		return nil, &types.InvalidParametersError{Field: "frequency", Reason: "want daily, weekly or monthly", Err: err}
	}

	params := make([]types.SimulationParameters, 0, len(symbols))
	for _, s := range symbols {
		p, err := types.NewSimulationParameters(strings.ToUpper(s), amount, start, end, freq)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

type priceSource interface {
	GetPriceSeries(ctx context.Context, symbol string, start, end time.Time) ([]types.PricePoint, error)
}

func openPriceSource(ctx context.Context, cmd *cobra.Command) (priceSource, func(), error) {
	if path, _ := cmd.Flags().GetString("prices"); path != "" {
		src, err := repository.LoadCSVFile(path)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("loaded price file", zap.String("path", path), zap.Strings("symbols", src.Symbols()))
		return src, func() {}, nil
	}
	if cfg.DBDSN == "" {
		return nil, nil, errors.New("no price source: pass --prices or set DB_DSN")
	}
	db, err := repository.NewDatabase(ctx, cfg.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return db, db.Close, nil
}

func newEngine(src priceSource) (*engine.Engine, error) {
	rates, err := cfg.Rates()
	if err != nil {
		return nil, err
	}
	bench, err := engine.NewBenchmarkConfig(engine.DefaultBenchmarks(rates.SP500, rates.NASDAQ)...)
	if err != nil {
		return nil, err
	}
	return engine.NewEngine(
		engine.NewSimulationConfig(cfg.MaxScheduleLength, cfg.BatchConcurrency),
		bench,
		engine.NewReportingConfig(rates.RiskFree),
		src,
		engine.WithLogger(logger),
	), nil
}

func writeResult(cmd *cobra.Command, eng *engine.Engine, format string, res *types.SimulationResult) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "csv":
		return engine.WriteLedgerCSV(out, res)
	default:
		return eng.WriteSummary(out, res)
	}
}

func ledgerPath(base, symbol string) string {
	if i := strings.LastIndex(base, "."); i > 0 {
		return base[:i] + "_" + symbol + base[i:]
	}
	return base + "_" + symbol
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener stopped", zap.Error(err))
		}
	}()
	return srv
}
