// Package logger provides the zap-based structured logger used by the stats
// collectors and their fx wiring.
//
// LoggerClient implements Logger. Entries are JSON on stderr with ISO8601
// timestamps, and the *WithContext methods add trace_id/span_id from an
// OpenTelemetry span context when Config.EnableTracing is set:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:         logger.Debug,
//	    ServiceName:   "orders-consumer",
//	    EnableTracing: true,
//	})
//	collector := stats.NewConcurrentStatistics().WithLogger(log.Named("stats"))
//
// With fx, include logger.FXModule and supply a logger.Config.
package logger
