package stats

import (
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/aalemi-dev/msgstats/observability"
)

const component = "stats"

// collector implements the event handling shared by every backend. Backends
// differ only in the counters they hand to it.
//
// Event handlers hold the read side of clearMu for the duration of the event,
// and Clear holds the write side. An event is therefore applied completely
// or not at all relative to a Clear, which keeps the counters non-negative
// and the ledgers consistent. Getters do not lock.
type collector struct {
	backend string
	bank    counterBank
	tracker *tracker
	clearMu *xsync.RBMutex

	// Set before the collector is shared; read without synchronization.
	logger   Logger
	observer observability.Observer

	// resolved, when set, observes the size of every cumulative resolution.
	resolved func(n int)
}

func newCollector(backend string, bank counterBank) *collector {
	return &collector{
		backend: backend,
		bank:    bank,
		tracker: newTracker(bank.connections, bank.channels),
		clearMu: xsync.NewRBMutex(),
	}
}

func (c *collector) NewConnection(conn ConnectionID) {
	t := c.clearMu.RLock()
	opened := c.tracker.openConnection(conn)
	c.clearMu.RUnlock(t)

	if !opened {
		c.debug("ignoring duplicate connection open", map[string]interface{}{"connection": string(conn)})
	}
}

func (c *collector) CloseConnection(conn ConnectionID) {
	t := c.clearMu.RLock()
	closed, _ := c.tracker.closeConnection(conn)
	c.clearMu.RUnlock(t)

	if !closed {
		c.debug("ignoring close of unknown connection", map[string]interface{}{"connection": string(conn)})
	}
}

func (c *collector) NewChannel(conn ConnectionID, ch ChannelID) {
	t := c.clearMu.RLock()
	opened := c.tracker.openChannel(conn, ch)
	c.clearMu.RUnlock(t)

	if !opened {
		c.debug("ignoring channel open", map[string]interface{}{
			"connection": string(conn),
			"channel":    string(ch),
		})
	}
}

func (c *collector) CloseChannel(conn ConnectionID, ch ChannelID) {
	t := c.clearMu.RLock()
	closed := c.tracker.closeChannel(conn, ch)
	c.clearMu.RUnlock(t)

	if !closed {
		c.debug("ignoring close of unknown channel", map[string]interface{}{
			"connection": string(conn),
			"channel":    string(ch),
		})
	}
}

func (c *collector) BasicPublish(ch ChannelID) {
	t := c.clearMu.RLock()
	c.bank.published.add(1)
	c.clearMu.RUnlock(t)

	if c.observer != nil {
		c.observe(observability.OperationPublish, ch, 0, 1, nil)
	}
}

func (c *collector) ConsumedMessage(ch ChannelID, tag DeliveryTag, autoAck bool) {
	t := c.clearMu.RLock()
	c.bank.consumed.add(1)
	if !autoAck {
		if state, ok := c.tracker.channel(ch); ok {
			state.record(tag)
		}
	}
	c.clearMu.RUnlock(t)

	if c.observer != nil {
		c.observe(observability.OperationDeliver, ch, tag, 1, map[string]interface{}{"auto_ack": autoAck})
	}
}

func (c *collector) BasicConsume(ch ChannelID, consumerTag string, autoAck bool) {
	t := c.clearMu.RLock()
	defer c.clearMu.RUnlock(t)

	if state, ok := c.tracker.channel(ch); ok {
		state.registerConsumer(consumerTag, autoAck)
	}
}

func (c *collector) BasicCancel(ch ChannelID, consumerTag string) {
	t := c.clearMu.RLock()
	defer c.clearMu.RUnlock(t)

	if state, ok := c.tracker.channel(ch); ok {
		state.cancelConsumer(consumerTag)
	}
}

func (c *collector) ConsumedMessageForConsumer(ch ChannelID, tag DeliveryTag, consumerTag string) {
	autoAck := true

	t := c.clearMu.RLock()
	c.bank.consumed.add(1)
	if state, ok := c.tracker.channel(ch); ok {
		autoAck = state.consumerAutoAck(consumerTag)
		if !autoAck {
			state.record(tag)
		}
	}
	c.clearMu.RUnlock(t)

	if c.observer != nil {
		c.observer.ObserveOperation(observability.OperationContext{
			Component:   component,
			Operation:   observability.OperationDeliver,
			Resource:    string(ch),
			SubResource: consumerTag,
			DeliveryTag: uint64(tag),
			Size:        1,
			Metadata:    map[string]interface{}{"auto_ack": autoAck},
		})
	}
}

func (c *collector) BasicAck(ch ChannelID, tag DeliveryTag, multiple bool) {
	n := c.resolve(ch, tag, multiple, c.bank.acknowledged)
	if c.observer != nil {
		c.observe(observability.OperationAck, ch, tag, n, map[string]interface{}{"multiple": multiple})
	}
}

func (c *collector) BasicNack(ch ChannelID, tag DeliveryTag, multiple, requeue bool) {
	n := c.resolve(ch, tag, multiple, c.bank.rejected)
	if c.observer != nil {
		c.observe(observability.OperationNack, ch, tag, n, map[string]interface{}{
			"multiple": multiple,
			"requeue":  requeue,
		})
	}
}

func (c *collector) BasicReject(ch ChannelID, tag DeliveryTag, requeue bool) {
	n := c.resolve(ch, tag, false, c.bank.rejected)
	if c.observer != nil {
		c.observe(observability.OperationReject, ch, tag, n, map[string]interface{}{"requeue": requeue})
	}
}

// resolve settles outstanding deliveries on ch and adds the number settled
// to target.
func (c *collector) resolve(ch ChannelID, tag DeliveryTag, multiple bool, target counter) int64 {
	t := c.clearMu.RLock()
	defer c.clearMu.RUnlock(t)

	state, ok := c.tracker.channel(ch)
	if !ok {
		return 0
	}
	n := state.resolve(tag, multiple)
	if n > 0 {
		target.add(int64(n))
	}
	if multiple && c.resolved != nil {
		c.resolved(n)
	}
	return int64(n)
}

// Clear resets the counters and forgets all state. It waits for in-flight
// events to finish and holds new ones back until it is done.
func (c *collector) Clear() {
	c.clearMu.Lock()
	c.tracker.forget()
	c.bank.reset()
	c.clearMu.Unlock()

	if c.logger != nil {
		c.logger.Info("statistics cleared", nil, map[string]interface{}{"backend": c.backend})
	}
}

func (c *collector) ConnectionCount() int64          { return c.bank.connections.value() }
func (c *collector) ChannelCount() int64             { return c.bank.channels.value() }
func (c *collector) PublishedMessageCount() int64    { return c.bank.published.value() }
func (c *collector) ConsumedMessageCount() int64     { return c.bank.consumed.value() }
func (c *collector) AcknowledgedMessageCount() int64 { return c.bank.acknowledged.value() }
func (c *collector) RejectedMessageCount() int64     { return c.bank.rejected.value() }

// Snapshot holds the read side of clearMu so that a Clear never lands
// between the reads.
func (c *collector) Snapshot() Snapshot {
	t := c.clearMu.RLock()
	defer c.clearMu.RUnlock(t)
	return c.bank.snapshot()
}

func (c *collector) OutstandingCount(ch ChannelID) int {
	state, ok := c.tracker.channel(ch)
	if !ok {
		return 0
	}
	return state.outstanding()
}

func (c *collector) debug(msg string, fields map[string]interface{}) {
	if c.logger == nil {
		return
	}
	fields["backend"] = c.backend
	c.logger.Debug(msg, nil, fields)
}

// observe reports an event. Callers check c.observer first so the metadata
// map is not built when nobody listens.
func (c *collector) observe(op string, ch ChannelID, tag DeliveryTag, size int64, metadata map[string]interface{}) {
	c.observer.ObserveOperation(observability.OperationContext{
		Component:   component,
		Operation:   op,
		Resource:    string(ch),
		DeliveryTag: uint64(tag),
		Size:        size,
		Metadata:    metadata,
	})
}
