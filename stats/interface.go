package stats

// Listener is the contract a protocol client calls into. Every method returns
// immediately, never fails and may be called from any goroutine. Events for a
// single channel must arrive in the order the client issued them; nothing is
// assumed across channels.
//
// Lifecycle and resolution events that reference a connection or channel the
// collector does not know about (never opened, already closed, or forgotten
// by Clear) are ignored. Publishes and deliveries are counted regardless;
// only their outstanding-tag bookkeeping needs a known channel.
type Listener interface {
	// NewConnection records an opened connection. Duplicates are ignored.
	NewConnection(conn ConnectionID)

	// CloseConnection records a closed connection and closes every channel
	// still open on it.
	CloseConnection(conn ConnectionID)

	// NewChannel records a channel opened on an open connection.
	NewChannel(conn ConnectionID, ch ChannelID)

	// CloseChannel records a closed channel. Its outstanding deliveries are
	// dropped without being counted as acknowledged or rejected.
	CloseChannel(conn ConnectionID, ch ChannelID)

	// BasicPublish counts one published message.
	BasicPublish(ch ChannelID)

	// ConsumedMessage counts one delivery. Unless autoAck is set, the tag
	// stays outstanding until it is acknowledged or rejected.
	ConsumedMessage(ch ChannelID, tag DeliveryTag, autoAck bool)

	// BasicConsume registers a consumer and its acknowledgement mode so that
	// ConsumedMessageForConsumer can resolve it.
	BasicConsume(ch ChannelID, consumerTag string, autoAck bool)

	// BasicCancel forgets a consumer registered with BasicConsume.
	BasicCancel(ch ChannelID, consumerTag string)

	// ConsumedMessageForConsumer counts one push delivery to a registered
	// consumer, taking the acknowledgement mode from its registration.
	// Deliveries to unknown consumers are treated as auto-acknowledged.
	ConsumedMessageForConsumer(ch ChannelID, tag DeliveryTag, consumerTag string)

	// BasicAck resolves tag, or with multiple every outstanding tag <= tag,
	// and counts the resolved deliveries as acknowledged.
	BasicAck(ch ChannelID, tag DeliveryTag, multiple bool)

	// BasicNack is BasicAck for rejections. requeue does not affect counting.
	BasicNack(ch ChannelID, tag DeliveryTag, multiple, requeue bool)

	// BasicReject rejects a single delivery. requeue does not affect counting.
	BasicReject(ch ChannelID, tag DeliveryTag, requeue bool)
}

// Reader exposes the counters. The getters never block; Snapshot waits for
// a Clear in progress.
type Reader interface {
	ConnectionCount() int64
	ChannelCount() int64
	PublishedMessageCount() int64
	ConsumedMessageCount() int64
	AcknowledgedMessageCount() int64
	RejectedMessageCount() int64

	// Snapshot reads all six counters. A snapshot always satisfies
	// Acknowledged+Rejected <= Consumed.
	Snapshot() Snapshot

	// OutstandingCount returns the number of unresolved deliveries on ch,
	// or 0 for an unknown channel.
	OutstandingCount(ch ChannelID) int
}

// Collector is implemented by every statistics backend.
//
// Implementations: *ConcurrentStatistics and *MetricsStatistics.
type Collector interface {
	Listener
	Reader

	// Clear resets every counter to zero and forgets all connections,
	// channels and outstanding deliveries.
	Clear()
}

// Logger is the subset of logger.Logger the collectors use.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
}
