package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DatafeedMetrics holds all Prometheus metrics for the datafeed module.
type DatafeedMetrics struct {
	RequestsTotal     *prometheus.CounterVec
	SubmissionsTotal  prometheus.Counter
	FulfillmentsTotal *prometheus.CounterVec
}

var (
	datafeedMetricsOnce sync.Once
	datafeedMetrics     *DatafeedMetrics
)

// NewDatafeedMetrics creates and registers datafeed metrics (singleton pattern).
func NewDatafeedMetrics() *DatafeedMetrics {
	datafeedMetricsOnce.Do(func() {
		datafeedMetrics = &DatafeedMetrics{
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "orakon",
					Subsystem: "datafeed",
					Name:      "requests_total",
					Help:      "Total data requests",
				},
				[]string{"payment"},
			),
			SubmissionsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "orakon",
					Subsystem: "datafeed",
					Name:      "submissions_total",
					Help:      "Total oracle submissions",
				},
			),
			FulfillmentsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "orakon",
					Subsystem: "datafeed",
					Name:      "fulfillments_total",
					Help:      "Total fulfilled data requests",
				},
				[]string{"success"},
			),
		}
	})
	return datafeedMetrics
}
