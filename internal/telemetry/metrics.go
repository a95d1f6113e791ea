package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cubesolver"

// Metrics records solve outcomes for the HTTP service.
type Metrics struct {
	solves         *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	nodes          prometheus.Histogram
	solutionLength prometheus.Histogram
	inflight       prometheus.Gauge
	rejected       *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "solves_total",
				Help:      "Solve requests by outcome",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "solve_duration_seconds",
				Help:      "Search wall time in seconds",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 2, 5, 10, 20},
			},
			[]string{"status"},
		),
		nodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_nodes",
			Help:      "Nodes expanded per search",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 9),
		}),
		solutionLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solution_length",
			Help:      "Moves per solution",
			Buckets:   prometheus.LinearBuckets(0, 2, 12),
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inflight_solves",
			Help:      "Searches currently running",
		}),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rejected_total",
				Help:      "Requests rejected before search, by error kind",
			},
			[]string{"kind"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(m.solves, m.duration, m.nodes, m.solutionLength, m.inflight, m.rejected)
	return m
}

// RecordSolve records a finished search.
func (m *Metrics) RecordSolve(status string, elapsed time.Duration, nodes uint64, length int) {
	m.solves.WithLabelValues(status).Inc()
	m.duration.WithLabelValues(status).Observe(elapsed.Seconds())
	m.nodes.Observe(float64(nodes))
	if status == "solved" {
		m.solutionLength.Observe(float64(length))
	}
}

// RecordRejected counts a request refused before any search.
func (m *Metrics) RecordRejected(kind string) {
	m.rejected.WithLabelValues(kind).Inc()
}

// TrackInflight increments the in-flight gauge and returns the matching
// decrement.
func (m *Metrics) TrackInflight() func() {
	m.inflight.Inc()
	return m.inflight.Dec
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
