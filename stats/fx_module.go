package stats

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/msgstats/logger"
	"github.com/aalemi-dev/msgstats/metrics"
	"github.com/aalemi-dev/msgstats/observability"
)

// FXModule provides an in-memory *ConcurrentStatistics and the Collector
// interface.
//
//	app := fx.New(
//	    stats.FXModule,
//	    fx.Invoke(func(c stats.Collector) { client.SetStatistics(c) }),
//	)
var FXModule = fx.Module("stats",
	fx.Provide(
		NewConcurrentStatisticsWithDI,
		fx.Annotate(
			func(s *ConcurrentStatistics) Collector { return s },
			fx.As(new(Collector)),
		),
	),
	fx.Invoke(RegisterStatsLifecycle),
)

// MetricsFXModule provides a registry-backed *MetricsStatistics and the
// Collector interface. It needs a metrics.MetricsCollector (metrics.FXModule)
// and a stats.Config. Use either FXModule or MetricsFXModule, not both.
var MetricsFXModule = fx.Module("stats-metrics",
	fx.Provide(
		NewMetricsStatisticsWithDI,
		fx.Annotate(
			func(s *MetricsStatistics) Collector { return s },
			fx.As(new(Collector)),
		),
	),
	fx.Invoke(RegisterStatsLifecycle),
)

// Params groups the optional dependencies shared by both backends.
type Params struct {
	fx.In

	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// MetricsParams groups the dependencies of the registry-backed collector.
type MetricsParams struct {
	fx.In

	Config   Config
	Metrics  metrics.MetricsCollector
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewConcurrentStatisticsWithDI builds a ConcurrentStatistics from injected
// dependencies.
func NewConcurrentStatisticsWithDI(p Params) *ConcurrentStatistics {
	s := NewConcurrentStatistics()
	if p.Logger != nil {
		s.WithLogger(p.Logger)
	}
	if p.Observer != nil {
		s.WithObserver(p.Observer)
	}
	return s
}

// NewMetricsStatisticsWithDI builds a MetricsStatistics from injected
// dependencies.
func NewMetricsStatisticsWithDI(p MetricsParams) (*MetricsStatistics, error) {
	s, err := NewMetricsStatistics(p.Metrics, p.Config)
	if err != nil {
		return nil, err
	}
	if p.Logger != nil {
		s.WithLogger(p.Logger)
	}
	if p.Observer != nil {
		s.WithObserver(p.Observer)
	}
	return s, nil
}

// LifecycleParams groups the dependencies of RegisterStatsLifecycle.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Collector Collector
	Logger    logger.Logger `optional:"true"`
}

// RegisterStatsLifecycle logs the final counters when the application stops.
func RegisterStatsLifecycle(p LifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if p.Logger != nil {
				p.Logger.InfoWithContext(ctx, "final message statistics", nil, p.Collector.Snapshot().Fields())
			}
			return nil
		},
	})
}
