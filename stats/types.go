package stats

import (
	"github.com/oklog/ulid/v2"
)

// ConnectionID identifies one underlying protocol connection. A connection
// re-established by automatic recovery is a different connection and must
// use a different ID.
type ConnectionID string

// ChannelID identifies one channel. IDs must be unique across connections;
// protocol channel numbers alone are not.
type ChannelID string

// DeliveryTag is the per-channel, monotonically increasing identifier the
// broker assigns to each delivery.
type DeliveryTag uint64

// NewConnectionID returns a fresh, unique ConnectionID.
func NewConnectionID() ConnectionID {
	return ConnectionID(ulid.Make().String())
}

// NewChannelID returns a fresh, unique ChannelID.
func NewChannelID() ChannelID {
	return ChannelID(ulid.Make().String())
}

// Snapshot is a point-in-time copy of the six counters.
type Snapshot struct {
	Connections  int64 `json:"connections"`
	Channels     int64 `json:"channels"`
	Published    int64 `json:"published"`
	Consumed     int64 `json:"consumed"`
	Acknowledged int64 `json:"acknowledged"`
	Rejected     int64 `json:"rejected"`
}

// Fields returns the snapshot as log fields.
func (s Snapshot) Fields() map[string]interface{} {
	return map[string]interface{}{
		"connections":  s.Connections,
		"channels":     s.Channels,
		"published":    s.Published,
		"consumed":     s.Consumed,
		"acknowledged": s.Acknowledged,
		"rejected":     s.Rejected,
	}
}
