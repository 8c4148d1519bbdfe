// Package metrics provides the Prometheus registry abstraction behind
// stats.MetricsStatistics.
//
// # Architecture
//
// The package follows the "accept interfaces, return structs" pattern:
//   - MetricsCollector: creates Counter, Gauge and Histogram series
//   - Metrics: concrete implementation backed by two registries
//   - FXModule: provides both and runs the HTTP endpoints
//
// Unlike the raw Prometheus client, Counter and Gauge can be read back
// (Value) and reset (Reset). The stats package relies on both: its getters
// read the registry, and Clear resets every series to zero.
//
// # Endpoints
//
//  1. System metrics (default :9090): Go runtime, process and build info.
//  2. Application metrics (default :9091): every series created through
//     MetricsCollector, labeled with service="<Config.ServiceName>".
//
// Set an address to Ptr("") to disable its server.
//
// # Direct Usage
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "orders-consumer"})
//	collector, err := stats.NewMetricsStatistics(m, stats.Config{})
//	if err != nil {
//	    return err
//	}
//	go m.ApplicationServer.ListenAndServe()
//
// # Duplicate Series
//
// Creating a series whose descriptor is already registered returns the
// existing series rather than panicking, so independent components may ask
// for the same series. Conflicting descriptors still panic.
package metrics
