package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the system and application registries and their HTTP servers.
type Metrics struct {
	// SystemServer serves Go runtime, process and build info metrics.
	// nil when the system endpoint is disabled.
	SystemServer *http.Server

	// ApplicationServer serves the application registry.
	// nil when the application endpoint is disabled.
	ApplicationServer *http.Server

	// SystemRegistry holds the runtime collectors. nil when disabled.
	SystemRegistry *prometheus.Registry

	// ApplicationRegistry holds every series created through this Metrics.
	ApplicationRegistry *prometheus.Registry

	// applicationRegisterer adds the constant service label.
	applicationRegisterer prometheus.Registerer
}

// NewMetrics sets up the registries and, for enabled addresses, the HTTP
// servers. The servers are not started; use FXModule or call ListenAndServe.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    SystemMetricsAddress: metrics.Ptr(""),
//	    ServiceName:          "orders-consumer",
//	})
//	go m.ApplicationServer.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	m := &Metrics{}
	serviceLabel := prometheus.Labels{"service": cfg.ServiceName}

	if systemAddr := resolveAddress(cfg.SystemMetricsAddress, DefaultSystemMetricsAddress); systemAddr != "" {
		systemRegistry := prometheus.NewRegistry()
		prometheus.WrapRegistererWith(serviceLabel, systemRegistry).MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)

		m.SystemRegistry = systemRegistry
		m.SystemServer = newMetricsServer(systemAddr, systemRegistry)
	}

	m.ApplicationRegistry = prometheus.NewRegistry()
	m.applicationRegisterer = prometheus.WrapRegistererWith(serviceLabel, m.ApplicationRegistry)

	if appAddr := resolveAddress(cfg.ApplicationMetricsAddress, DefaultApplicationMetricsAddress); appAddr != "" {
		m.ApplicationServer = newMetricsServer(appAddr, m.ApplicationRegistry)
	}

	return m
}

func newMetricsServer(addr string, registry *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:    addr,
		Handler: mux,
	}
}
