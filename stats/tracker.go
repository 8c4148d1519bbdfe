package stats

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v4"
)

// connectionState is the tracker's record of an open connection.
type connectionState struct {
	mu       sync.Mutex
	closed   bool
	channels map[ChannelID]struct{}
}

// channelState is the tracker's record of an open channel. mu serializes the
// ledger and the consumer registry; different channels never share it.
type channelState struct {
	conn ConnectionID

	mu        sync.Mutex
	closed    bool
	pending   ledger
	consumers map[string]bool // consumer tag -> autoAck
}

// tracker maps connection and channel identities to their state and applies
// every open/close transition exactly once. It adjusts the connections and
// channels counters itself; message counters are the caller's business.
//
// Counters are incremented before a new state becomes visible in the maps,
// and decremented only after a state has been removed from them, so a
// concurrent close can never push a counter below zero.
type tracker struct {
	connections *xsync.Map[ConnectionID, *connectionState]
	channels    *xsync.Map[ChannelID, *channelState]

	openConnections counter
	openChannels    counter
}

func newTracker(connections, channels counter) *tracker {
	return &tracker{
		connections:     xsync.NewMap[ConnectionID, *connectionState](),
		channels:        xsync.NewMap[ChannelID, *channelState](),
		openConnections: connections,
		openChannels:    channels,
	}
}

// openConnection reports whether conn was newly opened.
func (t *tracker) openConnection(conn ConnectionID) bool {
	if _, ok := t.connections.Load(conn); ok {
		return false
	}

	t.openConnections.add(1)
	state := &connectionState{channels: make(map[ChannelID]struct{})}
	if _, loaded := t.connections.LoadOrStore(conn, state); loaded {
		t.openConnections.add(-1)
		return false
	}
	return true
}

// closeConnection reports whether conn was open. Channels still open on it
// are closed; the number closed is returned as well.
func (t *tracker) closeConnection(conn ConnectionID) (closed bool, channels int) {
	state, ok := t.connections.LoadAndDelete(conn)
	if !ok {
		return false, 0
	}
	t.openConnections.add(-1)

	state.mu.Lock()
	state.closed = true
	children := state.channels
	state.channels = nil
	state.mu.Unlock()

	for ch := range children {
		if t.closeChannelOf(conn, ch) {
			channels++
		}
	}
	return true, channels
}

// openChannel reports whether ch was newly opened on conn.
func (t *tracker) openChannel(conn ConnectionID, ch ChannelID) bool {
	parent, ok := t.connections.Load(conn)
	if !ok {
		return false
	}

	// Holding the parent lock orders this open against closeConnection: the
	// channel is either registered before the cascade snapshots the
	// children, or the connection is already marked closed.
	parent.mu.Lock()
	defer parent.mu.Unlock()

	if parent.closed {
		return false
	}
	if _, ok := t.channels.Load(ch); ok {
		return false
	}

	t.openChannels.add(1)
	state := &channelState{conn: conn}
	if _, loaded := t.channels.LoadOrStore(ch, state); loaded {
		t.openChannels.add(-1)
		return false
	}
	parent.channels[ch] = struct{}{}
	return true
}

// closeChannel reports whether ch was open on conn.
func (t *tracker) closeChannel(conn ConnectionID, ch ChannelID) bool {
	if parent, ok := t.connections.Load(conn); ok {
		parent.mu.Lock()
		delete(parent.channels, ch)
		parent.mu.Unlock()
	}
	return t.closeChannelOf(conn, ch)
}

// closeChannelOf removes ch if it belongs to conn. Whoever removes the entry
// from the channel map owns the close; racing callers get false.
func (t *tracker) closeChannelOf(conn ConnectionID, ch ChannelID) bool {
	state, ok := t.channels.Load(ch)
	if !ok || state.conn != conn {
		return false
	}
	state, ok = t.channels.LoadAndDelete(ch)
	if !ok {
		return false
	}

	state.mu.Lock()
	state.closed = true
	state.pending.drop()
	state.consumers = nil
	state.mu.Unlock()

	t.openChannels.add(-1)
	return true
}

// channel returns the state of an open channel.
func (t *tracker) channel(ch ChannelID) (*channelState, bool) {
	return t.channels.Load(ch)
}

// forget drops every connection and channel without touching the counters.
func (t *tracker) forget() {
	t.connections.Clear()
	t.channels.Clear()
}

// record marks tag outstanding. It is a no-op once the channel is closed.
func (s *channelState) record(tag DeliveryTag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending.record(tag)
}

// resolve removes tag (or every tag <= tag when multiple) and returns the
// number of deliveries resolved.
func (s *channelState) resolve(tag DeliveryTag, multiple bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	if multiple {
		return s.pending.resolveUpTo(tag)
	}
	if s.pending.resolveOne(tag) {
		return 1
	}
	return 0
}

func (s *channelState) outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.len()
}

func (s *channelState) registerConsumer(consumerTag string, autoAck bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.consumers == nil {
		s.consumers = make(map[string]bool)
	}
	s.consumers[consumerTag] = autoAck
}

func (s *channelState) cancelConsumer(consumerTag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.consumers, consumerTag)
}

// consumerAutoAck returns the registered mode of consumerTag. Unknown
// consumers report true so their deliveries never become outstanding.
func (s *channelState) consumerAutoAck(consumerTag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	autoAck, ok := s.consumers[consumerTag]
	return !ok || autoAck
}
