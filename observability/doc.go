// Package observability defines the optional hook the stats collectors use to
// report ingested message events.
//
// A collector configured with an Observer calls ObserveOperation once per
// publish, delivery, acknowledgement, negative acknowledgement and rejection,
// after the counters have been updated:
//
//	collector := stats.NewConcurrentStatistics().
//	    WithObserver(observability.ObserverFunc(func(op observability.OperationContext) {
//	        if op.Operation == observability.OperationAck && op.Size > 1 {
//	            log.Printf("channel %s resolved %d deliveries at once", op.Resource, op.Size)
//	        }
//	    }))
//
// Lifecycle events (connections and channels opening or closing) are not
// reported; the collector's getters already expose them.
//
// # Thread Safety
//
// Observer implementations must be safe for concurrent use. They are called
// from whatever goroutine delivered the event to the collector, usually the
// protocol client's I/O or consumer dispatch goroutine, so they should return
// quickly.
package observability
