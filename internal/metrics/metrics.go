package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection for watch mode.
type Collector struct {
	ChecksTotal     *prometheus.CounterVec
	CheckDuration   prometheus.Histogram
	AlertsSentTotal prometheus.Counter
	CheckErrors     *prometheus.CounterVec

	LastHeatIndex      prometheus.Gauge
	LastCheckTimestamp prometheus.Gauge
}

// NewCollector creates a new metrics collector registered on the default
// registry.
func NewCollector(namespace string) *Collector {
	return &Collector{
		ChecksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checks_total",
				Help:      "Total number of completed checks by outcome",
			},
			[]string{"outcome"},
		),

		CheckDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "check_duration_seconds",
				Help:      "Duration of a full check run in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),

		AlertsSentTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "alerts_sent_total",
				Help:      "Total number of alert messages delivered",
			},
		),

		CheckErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "check_errors_total",
				Help:      "Total number of failed checks by stage",
			},
			[]string{"stage"},
		),

		LastHeatIndex: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_heat_index_celsius",
				Help:      "Heat index of the most recent selected reading",
			},
		),

		LastCheckTimestamp: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_check_timestamp_seconds",
				Help:      "Unix time of the most recent completed check",
			},
		),
	}
}
