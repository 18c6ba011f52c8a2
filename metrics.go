package parallel

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for observing the dispatcher.
// Attach a Metrics to a call with WithMetrics; a nil Metrics disables
// instrumentation entirely.
type Metrics struct {
	ItemsStarted   prometheus.Counter
	ItemsCompleted prometheus.Counter
	ItemsFailed    prometheus.Counter
	InFlight       prometheus.Gauge
	ItemLatency    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with the default
// registerer.
func NewMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		ItemsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "items_started_total",
			Help:      "Total number of work items started",
		}),
		ItemsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "items_completed_total",
			Help:      "Total number of work items that completed successfully",
		}),
		ItemsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "items_failed_total",
			Help:      "Total number of work items that failed or panicked",
		}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "items_in_flight",
			Help:      "Current number of work items executing",
		}),
		ItemLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "item_latency_seconds",
			Help:      "Histogram of work item execution latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	prometheus.MustRegister(
		m.ItemsStarted,
		m.ItemsCompleted,
		m.ItemsFailed,
		m.InFlight,
		m.ItemLatency,
	)
	return m
}

func (m *Metrics) itemStarted() {
	if m == nil {
		return
	}
	m.ItemsStarted.Inc()
	m.InFlight.Inc()
}

func (m *Metrics) itemSettled(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.InFlight.Dec()
	m.ItemLatency.Observe(elapsed.Seconds())
	if err != nil {
		m.ItemsFailed.Inc()
	} else {
		m.ItemsCompleted.Inc()
	}
}
