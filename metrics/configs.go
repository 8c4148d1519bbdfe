package metrics

// Default addresses for the metrics servers.
const (
	DefaultSystemMetricsAddress      = ":9090"
	DefaultApplicationMetricsAddress = ":9091"
)

// Config defines how the Prometheus endpoints are exposed.
//
// Two endpoints are served:
//  1. System metrics (default :9090): Go runtime, process and build info.
//  2. Application metrics (default :9091): series created through
//     CreateCounter, CreateGauge and CreateHistogram, which includes every
//     series registered by stats.MetricsStatistics.
type Config struct {
	// SystemMetricsAddress is the listen address of the system endpoint.
	// nil selects DefaultSystemMetricsAddress; a pointer to "" disables the
	// endpoint.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "system_metrics_address" key
	//   - Environment variable METRICS_SYSTEM_ADDRESS
	SystemMetricsAddress *string `yaml:"system_metrics_address" envconfig:"METRICS_SYSTEM_ADDRESS"`

	// ApplicationMetricsAddress is the listen address of the application
	// endpoint. nil selects DefaultApplicationMetricsAddress; a pointer to ""
	// disables the HTTP server. The application registry itself always
	// exists, so series can still be created and read back in-process.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "application_metrics_address" key
	//   - Environment variable METRICS_APPLICATION_ADDRESS
	ApplicationMetricsAddress *string `yaml:"application_metrics_address" envconfig:"METRICS_APPLICATION_ADDRESS"`

	// ServiceName is attached as a constant "service" label to every series.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "service_name" key
	//   - Environment variable METRICS_SERVICE_NAME
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}

// Ptr returns a pointer to s. Use Ptr("") to disable an endpoint.
func Ptr(s string) *string {
	return &s
}

func resolveAddress(addr *string, fallback string) string {
	if addr == nil {
		return fallback
	}
	return *addr
}
