package internal

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "conduit"

// Default metrics endpoint path.
const defaultMetricsPath = "/metrics"

// metrics records pipeline activity. A nil *metrics records nothing.
type metrics struct {
	registry *prometheus.Registry
	stages   *prometheus.CounterVec
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	path     string
}

// MetricsOption configures the metrics endpoint.
type MetricsOption func(*metrics)

// WithMetricsPath sets the metrics endpoint path.
// Defaults to "/metrics".
func WithMetricsPath(path string) MetricsOption {
	return func(m *metrics) {
		if path != "" {
			m.path = path
		}
	}
}

// WithMetricsRegistry uses reg instead of a private registry, for apps that
// expose other collectors on the same endpoint.
func WithMetricsRegistry(reg *prometheus.Registry) MetricsOption {
	return func(m *metrics) {
		if reg != nil {
			m.registry = reg
		}
	}
}

func newMetrics(opts ...MetricsOption) *metrics {
	m := &metrics{
		path: defaultMetricsPath,
		stages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "stage_outcomes_total",
				Help:      "Count of lifecycle stage outcomes by stage and outcome.",
			},
			[]string{"stage", "outcome"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "Count of dispatched requests by route and status.",
			},
			[]string{"route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "request_duration_seconds",
				Help:      "Time spent dispatching a request, by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.registry.MustRegister(m.stages, m.requests, m.duration)
	return m
}

// handler serves the registry in the Prometheus exposition format.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *metrics) stage(st stage, out outcome) {
	if m == nil {
		return
	}
	m.stages.WithLabelValues(st.String(), out.String()).Inc()
}

// observe records a finished request. It is deferred by the route handlers,
// so it also runs when the connection is aborted.
func (m *metrics) observe(route string, rw *ResponseWriter, start time.Time) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(rw.Status())).Inc()
	m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}
