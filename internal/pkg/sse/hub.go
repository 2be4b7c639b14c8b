package sse

import (
	"sync"
)

// AdminStream receives every late-attendance event regardless of employee, so
// admin dashboards can refresh their tables without polling.
const AdminStream = "admins"

// Event is pushed to portal clients when a late check-in record changes.
type Event struct {
	Stream string      // employee name or AdminStream
	Name   string      // e.g. "late_checkin.approved"
	Data   interface{} // view model for the UI
}

// Hub fans out record-change events to connected SSE subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for a stream and returns the event channel
// and a cleanup function.
func (h *Hub) Subscribe(stream string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[stream] == nil {
		h.subscribers[stream] = make(map[chan Event]struct{})
	}
	h.subscribers[stream][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[stream], ch)
		close(ch)
		if len(h.subscribers[stream]) == 0 {
			delete(h.subscribers, stream)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of its stream. Slow subscribers
// with a full buffer are skipped rather than blocking the publisher.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[event.Stream]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}
