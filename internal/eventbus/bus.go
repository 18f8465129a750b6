// Package eventbus implements a bounded, per-session publish/subscribe
// hub for GameEvents, used to drive the HTTP/SSE adapter without
// coupling it to the session manager.
package eventbus

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// channelBuffer bounds each subscriber's event channel. Once full,
// Broadcast drops events for that subscriber rather than blocking -
// backpressure by design, not a bug.
const channelBuffer = 1000

type subscriber struct {
	id int
	ch chan GameEvent
}

// Bus is a concurrency-safe, per-session event broadcaster.
type Bus struct {
	logger zerolog.Logger

	mu          sync.RWMutex
	subscribers map[string][]subscriber
	nextID      atomic.Int64
}

// New builds an empty Bus.
func New(logger zerolog.Logger) *Bus {
	return &Bus{logger: logger, subscribers: make(map[string][]subscriber)}
}

// Subscription is a single subscriber's receive end. Close
// unsubscribes it - the Go analogue of the Rust EventSubscription's
// Drop implementation, since Go has no destructors.
type Subscription struct {
	bus       *Bus
	sessionID string
	id        int
	ch        chan GameEvent
}

// Events returns the channel to receive published events on.
func (s *Subscription) Events() <-chan GameEvent { return s.ch }

// Close unsubscribes and releases the channel. Safe to call more than
// once.
func (s *Subscription) Close() {
	s.bus.unsubscribe(s.sessionID, s.id)
}

// Subscribe registers a new subscriber for sessionID and returns its
// Subscription. Callers must Close it when done listening.
func (b *Bus) Subscribe(sessionID string) *Subscription {
	id := int(b.nextID.Add(1))
	ch := make(chan GameEvent, channelBuffer)

	b.mu.Lock()
	b.subscribers[sessionID] = append(b.subscribers[sessionID], subscriber{id: id, ch: ch})
	b.mu.Unlock()

	b.logger.Info().Str("session_id", sessionID).Int("subscriber_id", id).Msg("client subscribed to game events")

	return &Subscription{bus: b, sessionID: sessionID, id: id, ch: ch}
}

// Broadcast sends event to every subscriber of sessionID, using a
// non-blocking send so one slow subscriber can't stall the others.
// Subscribers whose channel is full are pruned.
func (b *Bus) Broadcast(sessionID string, event GameEvent) {
	b.mu.RLock()
	list := append([]subscriber(nil), b.subscribers[sessionID]...)
	b.mu.RUnlock()

	if len(list) == 0 {
		b.logger.Debug().Str("session_id", sessionID).Msg("no subscribers for session")
		return
	}

	var failed []int
	for _, sub := range list {
		select {
		case sub.ch <- event:
		default:
			b.logger.Warn().Str("session_id", sessionID).Int("subscriber_id", sub.id).Msg("failed to send event to subscriber")
			failed = append(failed, sub.id)
		}
	}
	if len(failed) > 0 {
		b.removeSubscribers(sessionID, failed)
	}
}

func (b *Bus) unsubscribe(sessionID string, id int) {
	b.removeSubscribers(sessionID, []int{id})
}

// DropSession removes every subscriber registered for sessionID, used
// when a session is torn down. The subscribers' channels are left
// open, so a receiver blocked on Events() is not woken by it.
func (b *Bus) DropSession(sessionID string) {
	b.mu.Lock()
	delete(b.subscribers, sessionID)
	b.mu.Unlock()
}

// SubscriberCount reports how many subscribers are registered across
// every session.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	total := 0
	for _, list := range b.subscribers {
		total += len(list)
	}
	return total
}

func (b *Bus) removeSubscribers(sessionID string, ids []int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list, ok := b.subscribers[sessionID]
	if !ok {
		return
	}
	kept := list[:0]
	for _, sub := range list {
		drop := false
		for _, id := range ids {
			if sub.id == id {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, sub)
		}
	}
	if len(kept) == 0 {
		delete(b.subscribers, sessionID)
		return
	}
	b.subscribers[sessionID] = kept
}
