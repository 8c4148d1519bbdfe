package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/fx"

	"github.com/aalemi-dev/msgstats/logger"
)

// FXModule provides *Metrics and the MetricsCollector interface from a
// metrics.Config and runs the enabled HTTP servers for the lifetime of the
// application.
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    stats.MetricsFXModule,
//	    fx.Supply(logger.Config{Level: logger.Info}),
//	    fx.Supply(metrics.Config{ServiceName: "orders-consumer"}),
//	    fx.Supply(stats.Config{}),
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			func(m *Metrics) MetricsCollector { return m },
			fx.As(new(MetricsCollector)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// LifecycleParams groups the dependencies of RegisterMetricsLifecycle.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle binds the listeners on start, so an unusable
// address fails application start, and shuts the servers down on stop.
func RegisterMetricsLifecycle(p LifecycleParams) {
	servers := []struct {
		name   string
		server *http.Server
	}{
		{"system", p.Metrics.SystemServer},
		{"application", p.Metrics.ApplicationServer},
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var started []*http.Server
			for _, s := range servers {
				if s.server == nil {
					continue
				}
				ln, err := net.Listen("tcp", s.server.Addr)
				if err != nil {
					// OnStop is not called for a failed hook.
					for _, srv := range started {
						_ = srv.Close()
					}
					return err
				}
				started = append(started, s.server)
				logInfo(p.Logger, "starting metrics server", map[string]interface{}{
					"endpoint": s.name,
					"address":  ln.Addr().String(),
				})
				go func(srv *http.Server, name string) {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logError(p.Logger, "metrics server stopped", err, map[string]interface{}{"endpoint": name})
					}
				}(s.server, s.name)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var errs []error
			for _, s := range servers {
				if s.server == nil {
					continue
				}
				logInfo(p.Logger, "shutting down metrics server", map[string]interface{}{"endpoint": s.name})
				if err := s.server.Shutdown(ctx); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	})
}

func logInfo(l logger.Logger, msg string, fields map[string]interface{}) {
	if l != nil {
		l.Info(msg, nil, fields)
	}
}

func logError(l logger.Logger, msg string, err error, fields map[string]interface{}) {
	if l != nil {
		l.Error(msg, err, fields)
	}
}
