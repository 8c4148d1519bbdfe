package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// CreateCounter creates a counter on the application registry.
//
// If a counter with the same descriptor is already registered, that counter
// is returned instead, so two components asking for the same series share
// it. A conflicting descriptor (same name, different labels or help) panics,
// as with prometheus.MustRegister.
func (m *Metrics) CreateCounter(name, help string, labels []string) Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	return &counterVec{vec: registerOrExisting(m.applicationRegisterer, vec)}
}

// CreateGauge creates a gauge on the application registry. Duplicate
// registrations behave as in CreateCounter.
func (m *Metrics) CreateGauge(name, help string, labels []string) Gauge {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	return &gaugeVec{vec: registerOrExisting(m.applicationRegisterer, vec)}
}

// CreateHistogram creates a histogram on the application registry. Duplicate
// registrations behave as in CreateCounter.
//
// Example:
//
//	batch := m.CreateHistogram(
//	    "rabbitmq_ack_batch_size",
//	    "Deliveries resolved per cumulative acknowledgement",
//	    nil,
//	    prometheus.ExponentialBuckets(1, 2, 10),
//	)
//	batch.Observe(12)
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) Histogram {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets}, labels)
	return &histogramVec{vec: registerOrExisting(m.applicationRegisterer, vec)}
}

// registerOrExisting registers c, returning the previously registered
// collector of the same type when c is a duplicate.
func registerOrExisting[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	panic(err)
}
