package middleware

import (
	stderrors "errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/internal/errors"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "mkdom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for call duration.
	// Default: fine grained buckets from 10µs to 1s.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "mkdom",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus collectors for host calls.
type metrics struct {
	callsTotal   *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
	callErrors   *prometheus.CounterVec
}

func newMetrics(config MetricsConfig) *metrics {
	return &metrics{
		callsTotal: register(config.Registry, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_calls_total",
			Help:        "Total number of host document calls",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "status"})),

		callDuration: register(config.Registry, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_call_duration_seconds",
			Help:        "Host document call duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"})),

		callErrors: register(config.Registry, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_call_errors_total",
			Help:        "Total number of failed host document calls by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "code"})),
	}
}

// register adds c to reg. A decorator built with the same options as an
// earlier one shares the collector already registered under that name.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if stderrors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// MetricsObserver returns an observer that records Prometheus metrics.
//
// Metrics collected:
//   - mkdom_host_calls_total: Counter of calls by op and status
//   - mkdom_host_call_duration_seconds: Histogram of call duration by op
//   - mkdom_host_call_errors_total: Counter of failures by op and error code
func MetricsObserver(opts ...MetricsOption) CallObserver {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := newMetrics(config)

	return func(op string, elapsed time.Duration, err error) {
		m.callDuration.WithLabelValues(op).Observe(elapsed.Seconds())
		status := "success"
		if err != nil {
			status = "error"
			m.callErrors.WithLabelValues(op, errorCode(err)).Inc()
		}
		m.callsTotal.WithLabelValues(op, status).Inc()
	}
}

// Metrics wraps doc with a Prometheus observer.
func Metrics(doc mkdom.Document, opts ...MetricsOption) mkdom.Document {
	return Observe(doc, MetricsObserver(opts...))
}

// errorCode returns the registered code of err. Using the code keeps label
// cardinality bounded.
func errorCode(err error) string {
	var coded *errors.Error
	if stderrors.As(err, &coded) && coded.Code != "" {
		return coded.Code
	}
	return "internal"
}
