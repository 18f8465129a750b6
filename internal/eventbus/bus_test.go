package eventbus

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus() *Bus {
	return New(zerolog.Nop())
}

func TestSubscriptionCloseUnsubscribes(t *testing.T) {
	bus := newTestBus()
	sub := bus.Subscribe("s")
	assert.Equal(t, 1, bus.SubscriberCount())

	sub.Close()
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	bus := newTestBus()
	sub1 := bus.Subscribe("s")
	sub2 := bus.Subscribe("s")
	defer sub1.Close()
	defer sub2.Close()

	bus.Broadcast("s", GameEvent{Type: EventError, SessionID: "s", Message: "ping"})

	ev1 := <-sub1.Events()
	ev2 := <-sub2.Events()
	assert.Equal(t, EventError, ev1.Type)
	assert.Equal(t, EventError, ev2.Type)
}

func TestStaleSubscriberIsPrunedWhenChannelIsFull(t *testing.T) {
	bus := newTestBus()
	sub := bus.Subscribe("s")
	require.Equal(t, 1, bus.SubscriberCount())

	for i := 0; i < channelBuffer; i++ {
		bus.Broadcast("s", GameEvent{Type: EventError, SessionID: "s"})
	}
	assert.Equal(t, 1, bus.SubscriberCount(), "channel not yet full should still be subscribed")

	// one more push overflows the buffer and prunes the subscriber.
	bus.Broadcast("s", GameEvent{Type: EventError, SessionID: "s"})
	assert.Equal(t, 0, bus.SubscriberCount())

	// unsubscribing an already-pruned id must not panic.
	assert.NotPanics(t, func() { sub.Close() })
}

func TestBroadcastToSessionWithNoSubscribersIsNoop(t *testing.T) {
	bus := newTestBus()
	assert.NotPanics(t, func() {
		bus.Broadcast("nobody-listening", GameEvent{Type: EventError})
	})
}

func TestDropSessionRemovesAllItsSubscribers(t *testing.T) {
	bus := newTestBus()
	bus.Subscribe("s")
	bus.Subscribe("s")
	bus.Subscribe("other")
	require.Equal(t, 3, bus.SubscriberCount())

	bus.DropSession("s")
	assert.Equal(t, 1, bus.SubscriberCount())
}
