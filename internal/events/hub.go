// Package events fans service activity out to connected dev clients: playback
// transitions, settings updates, and dev logins.
package events

import (
	"sync"
	"time"
)

const subscriberBuffer = 64

// Event is one activity record pushed over the dev event feed.
type Event struct {
	Type   string         `json:"type"`
	AtMS   int64          `json:"at_ms"`
	Fields map[string]any `json:"fields,omitempty"`
}

// Hub is a broadcast-only publish/subscribe fan-out. Slow subscribers drop
// events rather than block publishers.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Publish delivers the event to every live subscriber. Never blocks.
func (h *Hub) Publish(eventType string, fields map[string]any) {
	ev := Event{Type: eventType, AtMS: time.Now().UnixMilli(), Fields: fields}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a new listener. The returned cancel func must be called
// when the listener goes away; it closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers reports the current listener count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
