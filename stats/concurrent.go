package stats

import (
	"github.com/aalemi-dev/msgstats/observability"
)

// ConcurrentStatistics keeps its counters in process memory: striped
// counters for the message totals and atomic words for the open connection
// and channel counts.
//
// ConcurrentStatistics implements Collector.
type ConcurrentStatistics struct {
	*collector
}

var _ Collector = (*ConcurrentStatistics)(nil)

// NewConcurrentStatistics returns an empty collector.
//
// Example:
//
//	collector := stats.NewConcurrentStatistics()
//	conn := stats.NewConnectionID()
//	collector.NewConnection(conn)
//	fmt.Println(collector.ConnectionCount()) // 1
func NewConcurrentStatistics() *ConcurrentStatistics {
	bank := counterBank{
		connections:  &atomicGauge{},
		channels:     &atomicGauge{},
		published:    newStripedCounter(),
		consumed:     newStripedCounter(),
		acknowledged: newStripedCounter(),
		rejected:     newStripedCounter(),
	}
	return &ConcurrentStatistics{collector: newCollector("concurrent", bank)}
}

// WithLogger sets the logger used for ignored events (debug) and Clear
// (info). Call it before the collector is shared.
func (s *ConcurrentStatistics) WithLogger(l Logger) *ConcurrentStatistics {
	s.logger = l
	return s
}

// WithObserver sets the observer notified of every message event. Call it
// before the collector is shared.
func (s *ConcurrentStatistics) WithObserver(o observability.Observer) *ConcurrentStatistics {
	s.observer = o
	return s
}
