package purchase

import (
	"context"
	"sync"
)

// Subscriber receives asynchronous purchase events.
type Subscriber interface {
	// Receive returns the channel events are delivered on. The channel is
	// closed when the subscriber is closed.
	Receive() <-chan Event

	// Close releases the subscription. Idempotent.
	Close() error
}

type subscriber struct {
	ch     chan Event
	closed bool
	mu     sync.Mutex
}

func newSubscriber(buffer int) *subscriber {
	return &subscriber{ch: make(chan Event, buffer)}
}

func (s *subscriber) Receive() <-chan Event { return s.ch }

func (s *subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

func (s *subscriber) send(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- ev:
		return true
	default:
		// Slow consumers drop events rather than block the platform callback.
		return false
	}
}

// Hub fans purchase events out to subscribers. Store implementations embed
// one and publish into it from their platform callbacks; the reconciler
// subscribes at initialization and unsubscribes at cleanup.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	buffer      int
	closed      bool
}

// NewHub creates an event hub. The buffer size applies per subscriber and
// is forced to at least 1 so publishing never blocks.
func NewHub(buffer int) *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
		buffer:      max(buffer, 1),
	}
}

// Subscribe registers a new subscriber. The subscription is released when
// ctx is cancelled. Subscribing to a closed hub returns an already-closed
// subscriber.
func (h *Hub) Subscribe(ctx context.Context) Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := newSubscriber(h.buffer)
	if h.closed {
		_ = sub.Close()
		return sub
	}
	h.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			h.unsubscribe(sub)
		}()
	}

	return sub
}

// Publish delivers an event to all current subscribers. Events are dropped
// for subscribers whose buffer is full.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	for sub := range h.subscribers {
		sub.send(ev)
	}
}

// Close shuts the hub down and closes every subscriber. Idempotent.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	for sub := range h.subscribers {
		_ = sub.Close()
	}
	clear(h.subscribers)
	return nil
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, sub)
	_ = sub.Close()
}
