package stats

import (
	"fmt"
	"regexp"
)

// DefaultNamespace prefixes every series registered by MetricsStatistics.
const DefaultNamespace = "rabbitmq"

// Series names registered by MetricsStatistics, relative to the namespace.
// With the default namespace the full names are rabbitmq_connections,
// rabbitmq_channels, rabbitmq_published_total, rabbitmq_consumed_total,
// rabbitmq_acknowledged_total, rabbitmq_rejected_total and
// rabbitmq_cumulative_resolve_size.
const (
	SeriesConnections    = "connections"
	SeriesChannels       = "channels"
	SeriesPublished      = "published_total"
	SeriesConsumed       = "consumed_total"
	SeriesAcknowledged   = "acknowledged_total"
	SeriesRejected       = "rejected_total"
	SeriesResolveBatches = "cumulative_resolve_size"
)

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config configures the statistics collectors.
type Config struct {
	// Namespace prefixes the series registered by MetricsStatistics.
	// Ignored by ConcurrentStatistics. Default: "rabbitmq".
	//
	// This setting can be configured via:
	//   - YAML configuration with the "namespace" key
	//   - Environment variable STATS_NAMESPACE
	Namespace string `yaml:"namespace" envconfig:"STATS_NAMESPACE"`
}

func (c Config) withDefaults() Config {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	return c
}

func (c Config) validate() error {
	if !namespacePattern.MatchString(c.Namespace) {
		return fmt.Errorf("%w: %q", ErrInvalidNamespace, c.Namespace)
	}
	return nil
}

// SeriesName returns the fully qualified name of a series in this
// configuration's namespace.
func (c Config) SeriesName(series string) string {
	return c.withDefaults().Namespace + "_" + series
}
