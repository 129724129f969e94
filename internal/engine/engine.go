package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dcasim/internal/observability"
	"dcasim/types"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine runs DCA simulations. It keeps no state between runs and may be
// used from several goroutines at once.
type Engine struct {
	db              priceSource
	simConfig       *SimulationConfig
	reportingConfig *ReportingConfig
	projector       *BenchmarkProjector
	analyzer        *Analyzer
	logger          *zap.Logger
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine builds an engine. Nil configs fall back to the defaults; db may
// be nil when only Simulate is used.
func NewEngine(
	simConfig *SimulationConfig,
	benchConfig *BenchmarkConfig,
	reportingConfig *ReportingConfig,
	db priceSource,
	opts ...Option,
) *Engine {
	if simConfig == nil {
		simConfig = NewSimulationConfig(DefaultMaxScheduleLength, DefaultBatchConcurrency)
	}
	if benchConfig == nil {
		benchConfig = &BenchmarkConfig{benchmarks: DefaultBenchmarks(DefaultSP500Rate, DefaultNASDAQRate)}
	}
	if reportingConfig == nil {
		reportingConfig = NewReportingConfig(DefaultRiskFreeRate)
	}
	e := &Engine{
		db:              db,
		simConfig:       simConfig,
		reportingConfig: reportingConfig,
		projector:       NewBenchmarkProjector(benchConfig),
		analyzer:        NewAnalyzer(reportingConfig),
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Simulate replays params against an already resolved price series and
// returns the fully computed result.
func (e *Engine) Simulate(params types.SimulationParameters, prices []types.PricePoint) (*types.SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	idx, err := newPriceIndex(prices)
	if err != nil {
		return nil, err
	}
	schedule, err := GenerateSchedule(params.StartDate, params.EndDate, params.Frequency, e.simConfig.maxScheduleLength)
	if err != nil {
		return nil, err
	}

	records := runSimulation(params.PeriodicAmount, schedule, idx)
	invested, final := ledgerTotals(records)

	// Benchmarks only need the totals, so they run alongside the ledger pass.
	var projections map[string]decimal.Decimal
	var metrics types.RiskMetrics
	var g errgroup.Group
	g.Go(func() error {
		projections = e.projector.ProjectAll(invested, params.StartDate, params.EndDate)
		return nil
	})
	g.Go(func() error {
		metrics = e.analyzer.analyzeLedger(params, records, invested, final)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	metrics.OutperformanceVsBenchmark = calcOutperformance(metrics.TotalReturnPct, invested, projections)

	e.logger.Debug("simulation complete",
		zap.String("symbol", params.Symbol),
		zap.Int("prices", idx.len()),
		zap.Int("scheduled", len(schedule)),
	)

	return &types.SimulationResult{
		Parameters:           params,
		TotalInvestedAmount:  invested,
		FinalPortfolioValue:  final,
		Records:              records,
		BenchmarkProjections: projections,
		Statistics:           metrics,
	}, nil
}

// Run loads the price series for params from the engine's source and simulates it.
func (e *Engine) Run(ctx context.Context, params types.SimulationParameters) (*types.SimulationResult, error) {
	start := time.Now()
	log := e.logger.With(zap.String("symbol", params.Symbol), zap.Stringer("frequency", params.Frequency))

	if err := params.Validate(); err != nil {
		observability.SimulationsTotal.WithLabelValues(observability.OutcomeInvalid).Inc()
		return nil, err
	}
	if e.db == nil {
		observability.SimulationsTotal.WithLabelValues(observability.OutcomeError).Inc()
		return nil, ErrNoPriceSource
	}
	// coarse early refusal; GenerateSchedule enforces the exact bound
	if limit := e.simConfig.maxScheduleLength; limit > 0 && params.EstimatedInvestmentCount() > 2*limit {
		observability.SimulationsTotal.WithLabelValues(observability.OutcomeInvalid).Inc()
		return nil, &InvalidScheduleError{
			Reason: fmt.Sprintf("about %d dates, limit is %d", params.EstimatedInvestmentCount(), limit),
			Err:    ErrScheduleTooLong,
		}
	}

	prices, err := NewDataFeed(params).GetData(ctx, e.db)
	if err != nil {
		observability.PriceLoadErrorsTotal.WithLabelValues(params.Symbol).Inc()
		observability.SimulationsTotal.WithLabelValues(observability.OutcomeError).Inc()
		log.Error("price series unavailable", zap.Error(err))
		return nil, err
	}

	result, err := e.Simulate(params, prices)
	if err != nil {
		outcome := observability.OutcomeError
		if errors.Is(err, types.ErrInvalidParameters) || errors.Is(err, ErrInvalidSchedule) {
			outcome = observability.OutcomeInvalid
		}
		observability.SimulationsTotal.WithLabelValues(outcome).Inc()
		log.Warn("simulation rejected", zap.Error(err))
		return nil, err
	}

	skipped := result.SkippedCount()
	observability.SimulationsTotal.WithLabelValues(observability.OutcomeSuccess).Inc()
	observability.ScheduleLength.Observe(float64(len(result.Records)))
	observability.SkippedPurchasesTotal.Add(float64(skipped))
	observability.SimulationDuration.WithLabelValues(params.Frequency.String()).Observe(time.Since(start).Seconds())

	if !result.HasPriceData() {
		log.Warn("no price data for any scheduled date", zap.Int("records", len(result.Records)))
	}
	log.Info("simulation finished",
		zap.Int("records", len(result.Records)),
		zap.Int("skipped", skipped),
		zap.String("invested", result.TotalInvestedAmount.String()),
		zap.String("finalValue", result.FinalPortfolioValue.String()),
		zap.Duration("took", time.Since(start)),
	)
	return result, nil
}

// RunBatch runs independent simulations in parallel, bounded by the
// configured concurrency. Results keep the order of params. done, if not
// nil, is called once per finished run and may be called concurrently.
func (e *Engine) RunBatch(ctx context.Context, params []types.SimulationParameters, done func()) ([]*types.SimulationResult, error) {
	results := make([]*types.SimulationResult, len(params))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.simConfig.batchConcurrency)

	for i, p := range params {
		g.Go(func() error {
			res, err := e.Run(gctx, p)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Symbol, err)
			}
			results[i] = res
			if done != nil {
				done()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
