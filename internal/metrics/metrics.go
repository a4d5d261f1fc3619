// Package metrics holds the prometheus collectors of the terminal: queue
// health gauges and drain outcome counters.
package metrics

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-pos-terminal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pos_terminal"

// Drain outcomes used as the "outcome" label of the drain cycle counter.
const (
	OutcomeSkipped     = "skipped"
	OutcomeCompleted   = "completed"
	OutcomeTransport   = "transport_failure"
	OutcomeUnavailable = "storage_unavailable"
	OutcomeFailed      = "failed"
)

// Metrics is the set of collectors updated by the sync engine and the status
// reporter.
type Metrics struct {
	registry *prometheus.Registry

	queuePending  prometheus.Gauge
	queueError    prometheus.Gauge
	online        prometheus.Gauge
	drainCycles   *prometheus.CounterVec
	salesSynced   prometheus.Counter
	salesRetried  prometheus.Counter
	salesFailed   prometheus.Counter
	drainDuration prometheus.Histogram
}

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		queuePending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "sync_queue", Name: "pending",
			Help: "Queue entries waiting for a remote attempt.",
		}),
		queueError: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "sync_queue", Name: "error",
			Help: "Queue entries parked after exhausting their attempts.",
		}),
		online: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "online",
			Help: "1 when the remote side is reachable.",
		}),
		drainCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drain", Name: "cycles_total",
			Help: "Drain cycles by outcome.",
		}, []string{"outcome"}),
		salesSynced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drain", Name: "sales_synced_total",
			Help: "Sales accepted by the remote side.",
		}),
		salesRetried: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drain", Name: "sales_retried_total",
			Help: "Sales rescheduled with backoff.",
		}),
		salesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drain", Name: "sales_failed_total",
			Help: "Sales moved to the error state.",
		}),
		drainDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "drain", Name: "duration_seconds",
			Help:    "Duration of drain cycles that reached the remote side.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		m.queuePending,
		m.queueError,
		m.online,
		m.drainCycles,
		m.salesSynced,
		m.salesRetried,
		m.salesFailed,
		m.drainDuration,
	)

	return m
}

// ObserveStats publishes the queue health.
func (m *Metrics) ObserveStats(stats models.SyncStats) {
	m.queuePending.Set(float64(stats.Pending))
	m.queueError.Set(float64(stats.Error))
}

// ObserveDrain records the outcome of one drain cycle.
func (m *Metrics) ObserveDrain(outcome string, report models.DrainReport, elapsed time.Duration) {
	m.drainCycles.WithLabelValues(outcome).Inc()
	if report.Skipped {
		return
	}

	m.salesSynced.Add(float64(report.Synced))
	m.salesRetried.Add(float64(report.Retrying))
	m.salesFailed.Add(float64(report.Failed))
	m.drainDuration.Observe(elapsed.Seconds())
}

// SetOnline publishes the connectivity flag.
func (m *Metrics) SetOnline(online bool) {
	if online {
		m.online.Set(1)
		return
	}
	m.online.Set(0)
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
