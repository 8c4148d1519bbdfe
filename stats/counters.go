package stats

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/aalemi-dev/msgstats/metrics"
)

// counter is one slot of the counter bank. Backends differ only in how they
// store these values.
type counter interface {
	add(delta int64)
	value() int64
	reset()
}

// counterBank holds the six counters every backend maintains.
type counterBank struct {
	connections  counter
	channels     counter
	published    counter
	consumed     counter
	acknowledged counter
	rejected     counter
}

func (b *counterBank) reset() {
	b.connections.reset()
	b.channels.reset()
	b.published.reset()
	b.consumed.reset()
	b.acknowledged.reset()
	b.rejected.reset()
}

// snapshot reads the resolution counters before consumed. Every resolved
// delivery was counted as consumed before it was resolved, so the snapshot
// keeps acknowledged+rejected <= consumed even under concurrent writes.
func (b *counterBank) snapshot() Snapshot {
	acknowledged := b.acknowledged.value()
	rejected := b.rejected.value()
	return Snapshot{
		Connections:  b.connections.value(),
		Channels:     b.channels.value(),
		Published:    b.published.value(),
		Consumed:     b.consumed.value(),
		Acknowledged: acknowledged,
		Rejected:     rejected,
	}
}

// stripedCounter spreads increments over cache-line padded stripes so that
// many channels counting at once do not contend on one word. Its reads sum
// the stripes without a lock, so it is only used for counters that never
// decrease between resets.
type stripedCounter struct {
	c *xsync.Counter
}

func newStripedCounter() stripedCounter {
	return stripedCounter{c: xsync.NewCounter()}
}

func (s stripedCounter) add(delta int64) { s.c.Add(delta) }
func (s stripedCounter) value() int64    { return s.c.Value() }
func (s stripedCounter) reset()          { s.c.Reset() }

// atomicGauge is a single atomic word. Used for connections and channels,
// which go up and down and must never read negative.
type atomicGauge struct {
	v atomic.Int64
}

func (g *atomicGauge) add(delta int64) { g.v.Add(delta) }
func (g *atomicGauge) value() int64    { return g.v.Load() }
func (g *atomicGauge) reset()          { g.v.Store(0) }

// registryCounter stores a monotonic counter in a metrics registry.
type registryCounter struct {
	c metrics.Counter
}

func (r registryCounter) add(delta int64) { r.c.Add(float64(delta)) }
func (r registryCounter) value() int64    { return int64(r.c.Value()) }
func (r registryCounter) reset()          { r.c.Reset() }

// registryGauge stores an up/down counter in a metrics registry.
type registryGauge struct {
	g metrics.Gauge
}

func (r registryGauge) add(delta int64) { r.g.Add(float64(delta)) }
func (r registryGauge) value() int64    { return int64(r.g.Value()) }
func (r registryGauge) reset()          { r.g.Reset() }
