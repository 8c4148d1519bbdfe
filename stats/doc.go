// Package stats collects client-side messaging statistics: open connections
// and channels, and the number of messages published, consumed, acknowledged
// and rejected.
//
// A protocol client reports events through the Listener methods and an
// application reads the counters through Reader. Two backends implement
// Collector and behave identically:
//
//   - ConcurrentStatistics keeps the counters in memory.
//   - MetricsStatistics keeps them in a Prometheus registry through the
//     metrics package, so they are also exposed on the application metrics
//     endpoint under stable names (rabbitmq_published_total and so on).
//
// Each channel keeps a ledger of delivery tags that were consumed without
// automatic acknowledgement. A single acknowledgement or rejection counts
// when its tag is outstanding; a cumulative one counts every outstanding tag
// up to and including its own. Anything else counts nothing, so replayed or
// unknown acknowledgements never inflate the totals.
//
// Closing a connection closes its channels. Closing a channel drops its
// outstanding tags without counting them.
//
// Basic usage:
//
//	collector := stats.NewConcurrentStatistics()
//
//	conn, ch := stats.NewConnectionID(), stats.NewChannelID()
//	collector.NewConnection(conn)
//	collector.NewChannel(conn, ch)
//
//	collector.ConsumedMessage(ch, 1, false)
//	collector.ConsumedMessage(ch, 2, false)
//	collector.BasicAck(ch, 2, true)
//
//	fmt.Println(collector.AcknowledgedMessageCount()) // 2
//
// With fx, use FXModule for the in-memory backend or MetricsFXModule together
// with metrics.FXModule for the registry backend. Both provide Collector.
package stats
