// Package metrics exposes Prometheus instruments for benefit computations.
package metrics

import (
	"strconv"
	"time"

	"github.com/moneylife/benefits/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultNamespace = "mlbenefits"

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets the latency buckets, in seconds.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithRegistry registers on reg instead of a fresh private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(m *Manager) {
		if reg != nil {
			m.registry = reg
		}
	}
}

// Manager owns the registry and the instruments. It implements
// events.Observer.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	computations  *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	requestErrors *prometheus.CounterVec
	quotes        prometheus.Counter
}

// NewManager creates the instruments on a private registry unless
// WithRegistry is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: defaultNamespace,
		buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)
	m.computations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "computations_total",
		Help:      "Number of event computations by event kind",
	}, []string{"kind"})
	m.duration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "computation_duration_seconds",
		Help:      "Time spent computing one event",
		Buckets:   m.buckets,
	}, []string{"kind"})
	m.requestErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "request_errors_total",
		Help:      "Rejected API requests by HTTP status code",
	}, []string{"code"})
	m.quotes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "risk_quotes_total",
		Help:      "Number of risk premium quotes served",
	})
	return m
}

// Registry returns the registry the instruments live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// ObserveComputation records one composer run.
func (m *Manager) ObserveComputation(kind events.Kind, d time.Duration) {
	m.computations.WithLabelValues(string(kind)).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(d.Seconds())
}

// RecordRequestError counts a rejected request.
func (m *Manager) RecordRequestError(status int) {
	m.requestErrors.WithLabelValues(strconv.Itoa(status)).Inc()
}

// RecordQuote counts a served risk premium quote.
func (m *Manager) RecordQuote() { m.quotes.Inc() }

var _ events.Observer = (*Manager)(nil)
