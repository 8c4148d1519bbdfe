package stats

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aalemi-dev/msgstats/metrics"
	"github.com/aalemi-dev/msgstats/observability"
)

// MetricsStatistics stores its counters in a metrics registry, so the same
// values the getters return are scraped from the application metrics
// endpoint. Series names are listed with the Series* constants.
//
// Two MetricsStatistics created on the same registry with the same namespace
// share their series. Use distinct namespaces to keep them apart.
//
// MetricsStatistics implements Collector.
type MetricsStatistics struct {
	*collector

	config Config
}

var _ Collector = (*MetricsStatistics)(nil)

// NewMetricsStatistics registers the statistics series on m and returns a
// collector backed by them.
//
// Besides the six counters, a histogram records how many deliveries each
// cumulative acknowledgement or negative acknowledgement resolved.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "orders-consumer"})
//	collector, err := stats.NewMetricsStatistics(m, stats.Config{Namespace: "orders"})
//	if err != nil {
//	    return err
//	}
//	// orders_connections, orders_published_total, ... are now registered.
func NewMetricsStatistics(m metrics.MetricsCollector, cfg Config) (*MetricsStatistics, error) {
	if m == nil {
		return nil, ErrNilMetricsCollector
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	bank := counterBank{
		connections: registryGauge{g: m.CreateGauge(
			cfg.SeriesName(SeriesConnections), "Number of open connections.", nil)},
		channels: registryGauge{g: m.CreateGauge(
			cfg.SeriesName(SeriesChannels), "Number of open channels.", nil)},
		published: registryCounter{c: m.CreateCounter(
			cfg.SeriesName(SeriesPublished), "Total number of published messages.", nil)},
		consumed: registryCounter{c: m.CreateCounter(
			cfg.SeriesName(SeriesConsumed), "Total number of consumed messages.", nil)},
		acknowledged: registryCounter{c: m.CreateCounter(
			cfg.SeriesName(SeriesAcknowledged), "Total number of acknowledged messages.", nil)},
		rejected: registryCounter{c: m.CreateCounter(
			cfg.SeriesName(SeriesRejected), "Total number of rejected messages.", nil)},
	}
	batches := m.CreateHistogram(
		cfg.SeriesName(SeriesResolveBatches),
		"Number of outstanding deliveries resolved by each cumulative acknowledgement or rejection.",
		nil,
		prometheus.ExponentialBuckets(1, 2, 12),
	)

	c := newCollector("metrics", bank)
	c.resolved = func(n int) { batches.Observe(float64(n)) }

	return &MetricsStatistics{collector: c, config: cfg}, nil
}

// Namespace returns the prefix of the registered series.
func (s *MetricsStatistics) Namespace() string {
	return s.config.Namespace
}

// WithLogger sets the logger used for ignored events (debug) and Clear
// (info). Call it before the collector is shared.
func (s *MetricsStatistics) WithLogger(l Logger) *MetricsStatistics {
	s.logger = l
	return s
}

// WithObserver sets the observer notified of every message event. Call it
// before the collector is shared.
func (s *MetricsStatistics) WithObserver(o observability.Observer) *MetricsStatistics {
	s.observer = o
	return s
}
