package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AggregatorMetrics holds all Prometheus metrics for the aggregator
// module.
type AggregatorMetrics struct {
	SubmissionsTotal prometheus.Counter
	RoundsTotal      prometheus.Counter
	LatestRound      prometheus.Gauge
	LatestAnswer     prometheus.Gauge
	EnabledOracles   prometheus.Gauge
}

var (
	aggregatorMetricsOnce sync.Once
	aggregatorMetrics     *AggregatorMetrics
)

// NewAggregatorMetrics creates and registers aggregator metrics
// (singleton pattern).
func NewAggregatorMetrics() *AggregatorMetrics {
	aggregatorMetricsOnce.Do(func() {
		aggregatorMetrics = &AggregatorMetrics{
			SubmissionsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "orakon",
					Subsystem: "aggregator",
					Name:      "submissions_total",
					Help:      "Total accepted oracle submissions",
				},
			),
			RoundsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "orakon",
					Subsystem: "aggregator",
					Name:      "rounds_total",
					Help:      "Total opened rounds",
				},
			),
			LatestRound: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "orakon",
					Subsystem: "aggregator",
					Name:      "latest_round",
					Help:      "Latest opened round id",
				},
			),
			LatestAnswer: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "orakon",
					Subsystem: "aggregator",
					Name:      "latest_answer",
					Help:      "Latest aggregated answer",
				},
			),
			EnabledOracles: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "orakon",
					Subsystem: "aggregator",
					Name:      "enabled_oracles",
					Help:      "Currently enabled oracles",
				},
			),
		}
	})
	return aggregatorMetrics
}
