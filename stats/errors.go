package stats

import "errors"

var (
	// ErrNilMetricsCollector is returned when a registry-backed collector is
	// created without a metrics registry.
	ErrNilMetricsCollector = errors.New("stats: metrics collector is nil")

	// ErrInvalidNamespace is returned when Config.Namespace is not a valid
	// Prometheus metric name prefix.
	ErrInvalidNamespace = errors.New("stats: invalid metrics namespace")
)
