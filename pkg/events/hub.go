// Package events fans runtime notifications out to subscribers.
//
// The runtime delivers events through a single callback; the hub turns that
// into independent buffered channels so slow consumers never stall the
// runtime or each other. Delivery is best-effort: when a subscriber's buffer
// is full the event is dropped for that subscriber and counted.
package events

import (
	"sync"

	"github.com/arthur-debert/marionette/pkg/logging"
	"github.com/arthur-debert/marionette/pkg/runtime"
)

// DefaultBuffer is the per-subscriber channel capacity
const DefaultBuffer = 64

// Hub distributes runtime events to any number of subscribers
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

// Subscription is one subscriber's view of the event stream
type Subscription struct {
	hub     *Hub
	ch      chan runtime.Event
	dropped int
}

// NewHub creates a hub and registers it on the instance's event callback
func NewHub(inst runtime.Instance) *Hub {
	h := &Hub{subs: make(map[*Subscription]struct{})}
	inst.OnEvent(h.publish)
	return h
}

// Subscribe registers a new subscriber. buffer <= 0 selects DefaultBuffer.
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	sub := &Subscription{hub: h, ch: make(chan runtime.Event, buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

// publish delivers an event to every subscriber without blocking
func (h *Hub) publish(evt runtime.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	for sub := range h.subs {
		select {
		case sub.ch <- evt:
		default:
			sub.dropped++
			logger := logging.GetLogger("events")
			logger.Debug().
				Type("event", evt).
				Msg("Subscriber buffer full, event dropped")
		}
	}
}

// Close unregisters all subscribers and closes their channels. Events
// published after Close are discarded.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		close(sub.ch)
	}
	h.subs = nil
}

// Events is the subscriber's receive channel. It is closed when the
// subscription is cancelled or the hub shuts down.
func (s *Subscription) Events() <-chan runtime.Event { return s.ch }

// Dropped reports how many events were discarded because the buffer was full
func (s *Subscription) Dropped() int {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	return s.dropped
}

// Cancel removes the subscription and closes its channel
func (s *Subscription) Cancel() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if s.hub.closed {
		return
	}
	if _, ok := s.hub.subs[s]; !ok {
		return
	}
	delete(s.hub.subs, s)
	close(s.ch)
}
