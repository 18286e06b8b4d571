package runtime

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks dispatch statistics for a Tracker.
type Metrics struct {
	dispatchedTotal *prometheus.CounterVec
	droppedTotal    *prometheus.CounterVec
	failuresTotal   *prometheus.CounterVec
	flushesTotal    prometheus.Counter

	registerer prometheus.Registerer
	registered bool
}

func newEventsCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagflow",
			Subsystem: "events",
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// NewMetrics creates a metrics collector. A nil registerer falls back to the
// Prometheus default registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		registerer:      registerer,
		dispatchedTotal: newEventsCounterVec("dispatched_total", "Total number of events dispatched to the reporting channel", []string{"category"}),
		droppedTotal:    newEventsCounterVec("dropped_total", "Total number of events dropped before dispatch", []string{"reason"}),
		failuresTotal:   newEventsCounterVec("dispatch_failures_total", "Total number of failed publishes to the reporting channel", []string{"command"}),
		flushesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tagflow",
			Subsystem: "events",
			Name:      "batch_flushes_total",
			Help:      "Total number of batch flushes",
		}),
	}
}

// Register registers the Prometheus collectors. Safe to call multiple times.
func (m *Metrics) Register() error {
	if m.registered {
		return nil
	}

	collectors := []prometheus.Collector{
		m.dispatchedTotal,
		m.droppedTotal,
		m.failuresTotal,
		m.flushesTotal,
	}

	for _, c := range collectors {
		if err := m.registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}

	m.registered = true
	return nil
}

// RecordDispatched counts a successfully handed-off event.
func (m *Metrics) RecordDispatched(category string) {
	m.dispatchedTotal.WithLabelValues(category).Inc()
}

// RecordDropped counts an event dropped before dispatch (not ready, disabled,
// full queue).
func (m *Metrics) RecordDropped(reason string) {
	m.droppedTotal.WithLabelValues(reason).Inc()
}

// RecordFailure counts a failed publish.
func (m *Metrics) RecordFailure(command string) {
	m.failuresTotal.WithLabelValues(command).Inc()
}

// RecordFlush counts a batch flush.
func (m *Metrics) RecordFlush() {
	m.flushesTotal.Inc()
}

// Handler returns an HTTP handler exposing the metrics. When the registerer
// is also a Gatherer (the usual *prometheus.Registry case) only its own
// collectors are exposed.
func (m *Metrics) Handler() http.Handler {
	if gatherer, ok := m.registerer.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}
