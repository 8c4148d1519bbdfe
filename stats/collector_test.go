package stats_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aalemi-dev/msgstats/logger"
	"github.com/aalemi-dev/msgstats/observability"
	"github.com/aalemi-dev/msgstats/stats"
)

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, ctx)
}

func (r *recordingObserver) operations() []observability.OperationContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]observability.OperationContext(nil), r.ops...)
}

func TestCollector_Observer(t *testing.T) {
	t.Parallel()
	rec := &recordingObserver{}
	c := stats.NewConcurrentStatistics().WithObserver(rec)

	conn, ch := stats.NewConnectionID(), stats.NewChannelID()
	c.NewConnection(conn)
	c.NewChannel(conn, ch)
	c.BasicConsume(ch, "worker", false)

	c.BasicPublish(ch)
	c.ConsumedMessage(ch, 1, false)
	c.ConsumedMessageForConsumer(ch, 2, "worker")
	c.ConsumedMessage(ch, 3, false)
	c.BasicAck(ch, 2, true)
	c.BasicNack(ch, 3, false, true)
	c.BasicReject(ch, 3, false)

	ops := rec.operations()
	require.Len(t, ops, 7)
	for _, op := range ops {
		assert.Equal(t, "stats", op.Component)
		assert.Equal(t, string(ch), op.Resource)
	}

	assert.Equal(t, observability.OperationPublish, ops[0].Operation)
	assert.Equal(t, observability.OperationDeliver, ops[1].Operation)
	assert.Equal(t, false, ops[1].Metadata["auto_ack"])

	assert.Equal(t, "worker", ops[2].SubResource)
	assert.Equal(t, uint64(2), ops[2].DeliveryTag)

	assert.Equal(t, observability.OperationAck, ops[4].Operation)
	assert.Equal(t, int64(2), ops[4].Size, "cumulative ack resolved two deliveries")
	assert.Equal(t, true, ops[4].Metadata["multiple"])

	assert.Equal(t, observability.OperationNack, ops[5].Operation)
	assert.Equal(t, int64(1), ops[5].Size)
	assert.Equal(t, true, ops[5].Metadata["requeue"])

	assert.Equal(t, observability.OperationReject, ops[6].Operation)
	assert.Equal(t, int64(0), ops[6].Size, "tag 3 was already rejected")
}

func TestCollector_Logger(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.LoggerClient{Zap: zap.New(core)}

	m := newAppMetrics(t)
	s, err := stats.NewMetricsStatistics(m, stats.Config{Namespace: "logged"})
	require.NoError(t, err)
	s.WithLogger(log)

	conn := stats.NewConnectionID()
	s.CloseConnection(conn)
	s.NewConnection(conn)
	s.NewConnection(conn)
	s.Clear()

	unknown := logs.FilterMessage("ignoring close of unknown connection").All()
	require.Len(t, unknown, 1)
	assert.Equal(t, zapcore.DebugLevel, unknown[0].Level)
	assert.Equal(t, string(conn), unknown[0].ContextMap()["connection"])
	assert.Equal(t, "metrics", unknown[0].ContextMap()["backend"])

	assert.Equal(t, 1, logs.FilterMessage("ignoring duplicate connection open").Len())

	cleared := logs.FilterMessage("statistics cleared").All()
	require.Len(t, cleared, 1)
	assert.Equal(t, zapcore.InfoLevel, cleared[0].Level)
}

func TestIDs_AreUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[stats.ChannelID]struct{})
	for i := 0; i < 1000; i++ {
		id := stats.NewChannelID()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
	assert.NotEqual(t, stats.NewConnectionID(), stats.NewConnectionID())
}

func TestSnapshot_Fields(t *testing.T) {
	t.Parallel()
	s := stats.Snapshot{Connections: 1, Channels: 2, Published: 3, Consumed: 4, Acknowledged: 5, Rejected: 6}
	assert.Equal(t, map[string]interface{}{
		"connections":  int64(1),
		"channels":     int64(2),
		"published":    int64(3),
		"consumed":     int64(4),
		"acknowledged": int64(5),
		"rejected":     int64(6),
	}, s.Fields())
}
