package observability

// Observer receives a notification for every message event a statistics
// collector has ingested. It lets external code build tracing, logging or
// additional metrics on top of the collector without the collector knowing
// about any of them.
//
// The hook is optional; collectors work without an observer.
type Observer interface {
	// ObserveOperation is called after an event has been applied to the
	// collector's counters.
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// Operation names reported by the stats collectors.
const (
	OperationPublish = "publish"
	OperationDeliver = "deliver"
	OperationAck     = "ack"
	OperationNack    = "nack"
	OperationReject  = "reject"
)

// OperationContext describes a single ingested event.
type OperationContext struct {
	// Component identifies the reporting package, e.g. "stats".
	Component string

	// Operation is one of the Operation* constants.
	Operation string

	// Resource is the channel the event was reported on.
	Resource string

	// SubResource carries the consumer tag for consumer deliveries; empty otherwise.
	SubResource string

	// DeliveryTag is the delivery tag referenced by the event, 0 for publishes.
	DeliveryTag uint64

	// Size is the number of messages the event accounted for. For a
	// cumulative acknowledgement this is the number of outstanding deliveries
	// it resolved, which may be zero.
	Size int64

	// Metadata carries event flags such as "multiple", "requeue" or "auto_ack".
	Metadata map[string]interface{}
}
