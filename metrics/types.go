package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Counter is a cumulative metric that only increases.
type Counter interface {
	// WithLabelValues returns the child counter for the given label values.
	WithLabelValues(lvs ...string) Counter

	// Inc increments the counter by 1.
	Inc()

	// Add adds val, which must be >= 0.
	Add(val float64)

	// Value reads the current value back from the registry.
	Value() float64

	// Reset drops every child of the counter so it reads as zero again.
	// It is a no-op on a counter returned by WithLabelValues.
	Reset()
}

// Gauge is a metric that can go up and down.
type Gauge interface {
	// WithLabelValues returns the child gauge for the given label values.
	WithLabelValues(lvs ...string) Gauge

	Set(val float64)
	Inc()
	Dec()
	Add(val float64)
	Sub(val float64)

	// Value reads the current value back from the registry.
	Value() float64

	// Reset drops every child of the gauge so it reads as zero again.
	// It is a no-op on a gauge returned by WithLabelValues.
	Reset()
}

// Histogram tracks the distribution of observations.
type Histogram interface {
	// WithLabelValues returns the Observer for the given label values.
	WithLabelValues(lvs ...string) Observer

	// Observe adds a single observation to the unlabeled histogram.
	Observe(val float64)

	// SampleCount returns the number of observations of the unlabeled histogram.
	SampleCount() uint64
}

// Observer is a single histogram child.
type Observer interface {
	Observe(val float64)
}

// counterVec wraps prometheus.CounterVec. The unlabeled methods operate on the
// child with no label values, which is the only child for label-less vectors.
type counterVec struct {
	vec *prometheus.CounterVec
}

func (c *counterVec) WithLabelValues(lvs ...string) Counter {
	return &counter{metric: c.vec.WithLabelValues(lvs...)}
}

func (c *counterVec) Inc()            { c.vec.WithLabelValues().Inc() }
func (c *counterVec) Add(val float64) { c.vec.WithLabelValues().Add(val) }
func (c *counterVec) Value() float64  { return readValue(c.vec.WithLabelValues()) }
func (c *counterVec) Reset()          { c.vec.Reset() }

// counter wraps an already labeled prometheus.Counter.
type counter struct {
	metric prometheus.Counter
}

func (c *counter) WithLabelValues(...string) Counter { return c }
func (c *counter) Inc()                              { c.metric.Inc() }
func (c *counter) Add(val float64)                   { c.metric.Add(val) }
func (c *counter) Value() float64                    { return readValue(c.metric) }
func (c *counter) Reset()                            {}

// gaugeVec wraps prometheus.GaugeVec.
type gaugeVec struct {
	vec *prometheus.GaugeVec
}

func (g *gaugeVec) WithLabelValues(lvs ...string) Gauge {
	return &gauge{metric: g.vec.WithLabelValues(lvs...)}
}

func (g *gaugeVec) Set(val float64) { g.vec.WithLabelValues().Set(val) }
func (g *gaugeVec) Inc()            { g.vec.WithLabelValues().Inc() }
func (g *gaugeVec) Dec()            { g.vec.WithLabelValues().Dec() }
func (g *gaugeVec) Add(val float64) { g.vec.WithLabelValues().Add(val) }
func (g *gaugeVec) Sub(val float64) { g.vec.WithLabelValues().Sub(val) }
func (g *gaugeVec) Value() float64  { return readValue(g.vec.WithLabelValues()) }
func (g *gaugeVec) Reset()          { g.vec.Reset() }

// gauge wraps an already labeled prometheus.Gauge.
type gauge struct {
	metric prometheus.Gauge
}

func (g *gauge) WithLabelValues(...string) Gauge { return g }
func (g *gauge) Set(val float64)                 { g.metric.Set(val) }
func (g *gauge) Inc()                            { g.metric.Inc() }
func (g *gauge) Dec()                            { g.metric.Dec() }
func (g *gauge) Add(val float64)                 { g.metric.Add(val) }
func (g *gauge) Sub(val float64)                 { g.metric.Sub(val) }
func (g *gauge) Value() float64                  { return readValue(g.metric) }
func (g *gauge) Reset()                          {}

// histogramVec wraps prometheus.HistogramVec.
type histogramVec struct {
	vec *prometheus.HistogramVec
}

func (h *histogramVec) WithLabelValues(lvs ...string) Observer {
	return h.vec.WithLabelValues(lvs...)
}

func (h *histogramVec) Observe(val float64) {
	h.vec.WithLabelValues().Observe(val)
}

func (h *histogramVec) SampleCount() uint64 {
	m, ok := h.vec.WithLabelValues().(prometheus.Metric)
	if !ok {
		return 0
	}
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		return 0
	}
	return out.GetHistogram().GetSampleCount()
}

// readValue returns the current value of a counter or gauge.
func readValue(m prometheus.Metric) float64 {
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		return 0
	}
	if c := out.GetCounter(); c != nil {
		return c.GetValue()
	}
	return out.GetGauge().GetValue()
}
