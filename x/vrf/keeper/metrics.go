package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// VRFMetrics holds all Prometheus metrics for the vrf module.
type VRFMetrics struct {
	RequestsTotal      *prometheus.CounterVec
	FulfillmentsTotal  *prometheus.CounterVec
	CancellationsTotal prometheus.Counter
	RegisteredOracles  prometheus.Gauge
}

var (
	vrfMetricsOnce sync.Once
	vrfMetrics     *VRFMetrics
)

// NewVRFMetrics creates and registers vrf metrics (singleton pattern).
func NewVRFMetrics() *VRFMetrics {
	vrfMetricsOnce.Do(func() {
		vrfMetrics = &VRFMetrics{
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "orakon",
					Subsystem: "vrf",
					Name:      "requests_total",
					Help:      "Total random words requests",
				},
				[]string{"payment"},
			),
			FulfillmentsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "orakon",
					Subsystem: "vrf",
					Name:      "fulfillments_total",
					Help:      "Total random words fulfillments",
				},
				[]string{"success"},
			),
			CancellationsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "orakon",
					Subsystem: "vrf",
					Name:      "cancellations_total",
					Help:      "Total canceled requests",
				},
			),
			RegisteredOracles: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "orakon",
					Subsystem: "vrf",
					Name:      "registered_oracles",
					Help:      "Currently registered oracles",
				},
			),
		}
	})
	return vrfMetrics
}
