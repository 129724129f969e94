package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	SimulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dcasim_simulations_total",
		Help: "Total number of simulation runs by outcome",
	}, []string{"outcome"})

	SimulationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dcasim_simulation_duration_seconds",
		Help:    "Wall time of a simulation run including price loading",
		Buckets: prometheus.DefBuckets,
	}, []string{"frequency"})

	ScheduleLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dcasim_schedule_length",
		Help:    "Number of scheduled purchases per run",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	SkippedPurchasesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dcasim_skipped_purchases_total",
		Help: "Scheduled purchases recorded as skipped for lack of a price",
	})

	PriceLoadErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dcasim_price_load_errors_total",
		Help: "Failures while resolving price series",
	}, []string{"symbol"})
)
