// Package events fans out catalog change notifications to live subscribers.
package events

import (
	"sync"
	"time"
)

// Kinds of change events.
const (
	KindItem     = "item"
	KindRoom     = "room"
	KindTag      = "tag"
	KindFilters  = "filters"
	KindSettings = "settings"
)

// Actions carried by change events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event describes a committed change.
type Event struct {
	Kind   string    `json:"kind"`
	Action string    `json:"action"`
	ID     int64     `json:"id,omitempty"`
	At     time.Time `json:"at"`
}

// BufferSize is the per-subscriber queue length.
const BufferSize = 64

// Hub delivers published events to every subscriber. Publish never blocks:
// a subscriber whose queue is full misses the event.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub returns a hub with no subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber. The returned cancel func unregisters
// it and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, BufferSize)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish sends e to all current subscribers. A zero At is set to now.
func (h *Hub) Publish(e Event) {
	if h == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
