package metrics

// MetricsCollector creates application series without exposing Prometheus
// types to callers.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	// CreateCounter registers a counter on the application registry, or
	// returns the already registered counter with the same name and labels.
	//
	// Example:
	//   published := m.CreateCounter("rabbitmq_published_total", "Published messages", nil)
	//   published.Inc()
	CreateCounter(name, help string, labels []string) Counter

	// CreateGauge registers a gauge on the application registry, or returns
	// the already registered gauge with the same name and labels.
	//
	// Example:
	//   open := m.CreateGauge("rabbitmq_channels", "Open channels", nil)
	//   open.Inc()
	CreateGauge(name, help string, labels []string) Gauge

	// CreateHistogram registers a histogram on the application registry, or
	// returns the already registered histogram with the same name and labels.
	CreateHistogram(name, help string, labels []string, buckets []float64) Histogram
}
