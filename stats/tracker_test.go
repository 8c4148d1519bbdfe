package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker() (*tracker, *atomicGauge, *atomicGauge) {
	connections, channels := &atomicGauge{}, &atomicGauge{}
	return newTracker(connections, channels), connections, channels
}

func TestTracker_OpenConnectionOnce(t *testing.T) {
	t.Parallel()
	tr, connections, _ := newTestTracker()

	assert.True(t, tr.openConnection("c1"))
	assert.False(t, tr.openConnection("c1"))
	assert.EqualValues(t, 1, connections.value())
}

func TestTracker_CloseConnectionCascades(t *testing.T) {
	t.Parallel()
	tr, connections, channels := newTestTracker()

	require.True(t, tr.openConnection("c1"))
	require.True(t, tr.openConnection("c2"))
	require.True(t, tr.openChannel("c1", "a"))
	require.True(t, tr.openChannel("c1", "b"))
	require.True(t, tr.openChannel("c2", "x"))
	require.True(t, tr.closeChannel("c1", "b"))

	closed, cascaded := tr.closeConnection("c1")
	assert.True(t, closed)
	assert.Equal(t, 1, cascaded, "only the channel still open is closed")
	assert.EqualValues(t, 1, connections.value())
	assert.EqualValues(t, 1, channels.value())

	_, ok := tr.channel("a")
	assert.False(t, ok)
	_, ok = tr.channel("x")
	assert.True(t, ok)

	closed, _ = tr.closeConnection("c1")
	assert.False(t, closed, "second close is ignored")
}

func TestTracker_OpenChannelRequiresOpenConnection(t *testing.T) {
	t.Parallel()
	tr, _, channels := newTestTracker()

	assert.False(t, tr.openChannel("missing", "a"))

	require.True(t, tr.openConnection("c1"))
	require.True(t, tr.openChannel("c1", "a"))
	assert.False(t, tr.openChannel("c1", "a"), "duplicate")

	tr.closeConnection("c1")
	assert.False(t, tr.openChannel("c1", "b"), "closed connection")
	assert.Zero(t, channels.value())
}

func TestTracker_CloseChannelOnWrongConnection(t *testing.T) {
	t.Parallel()
	tr, _, channels := newTestTracker()

	require.True(t, tr.openConnection("c1"))
	require.True(t, tr.openConnection("c2"))
	require.True(t, tr.openChannel("c1", "a"))

	assert.False(t, tr.closeChannel("c2", "a"))
	assert.EqualValues(t, 1, channels.value())
	assert.True(t, tr.closeChannel("c1", "a"))
	assert.False(t, tr.closeChannel("c1", "a"))
	assert.Zero(t, channels.value())
}

func TestTracker_ClosedChannelIgnoresDeliveries(t *testing.T) {
	t.Parallel()
	tr, _, _ := newTestTracker()

	require.True(t, tr.openConnection("c1"))
	require.True(t, tr.openChannel("c1", "a"))
	state, ok := tr.channel("a")
	require.True(t, ok)

	state.record(1)
	require.True(t, tr.closeChannel("c1", "a"))

	state.record(2)
	assert.Zero(t, state.outstanding())
	assert.Zero(t, state.resolve(2, true))
}

func TestTracker_ConsumerRegistry(t *testing.T) {
	t.Parallel()
	tr, _, _ := newTestTracker()

	require.True(t, tr.openConnection("c1"))
	require.True(t, tr.openChannel("c1", "a"))
	state, _ := tr.channel("a")

	assert.True(t, state.consumerAutoAck("unknown"))

	state.registerConsumer("manual", false)
	state.registerConsumer("auto", true)
	assert.False(t, state.consumerAutoAck("manual"))
	assert.True(t, state.consumerAutoAck("auto"))

	state.cancelConsumer("manual")
	assert.True(t, state.consumerAutoAck("manual"))
}

// Opening channels while their connection closes must leave no channel
// counted without a live parent.
func TestTracker_OpenChannelRacesConnectionClose(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		tr, connections, channels := newTestTracker()
		require.True(t, tr.openConnection("c1"))

		var wg sync.WaitGroup
		for j := 0; j < 8; j++ {
			wg.Add(1)
			go func(j int) {
				defer wg.Done()
				tr.openChannel("c1", ChannelID(rune('a'+j)))
			}(j)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.closeConnection("c1")
		}()
		wg.Wait()

		assert.Zero(t, connections.value())
		assert.Zero(t, channels.value())
	}
}

func TestTracker_ConcurrentCloseCountsOnce(t *testing.T) {
	t.Parallel()
	tr, _, channels := newTestTracker()

	require.True(t, tr.openConnection("c1"))
	require.True(t, tr.openChannel("c1", "a"))

	var wg sync.WaitGroup
	var mu sync.Mutex
	closes := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tr.closeChannel("c1", "a") {
				mu.Lock()
				closes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, closes)
	assert.Zero(t, channels.value())
}
