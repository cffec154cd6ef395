package events

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

const defaultBuffer = 16

// Subscription receives events until it is cancelled with Hub.Unsubscribe.
type Subscription struct {
	C       <-chan Event
	ch      chan Event
	dropped atomic.Uint64
}

// Dropped counts events this subscriber missed because its buffer was full.
func (s *Subscription) Dropped() uint64 { return s.dropped.Load() }

// Hub fans events out to SSE subscribers. A subscriber that falls behind
// misses events instead of blocking publishers.
type Hub struct {
	buffer int
	seq    atomic.Uint64

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewHub returns a hub whose subscribers buffer up to buffer events. A
// non-positive buffer uses the default.
func NewHub(buffer ...int) *Hub {
	h := &Hub{buffer: defaultBuffer, subs: make(map[*Subscription]struct{})}
	if len(buffer) > 0 && buffer[0] > 0 {
		h.buffer = buffer[0]
	}
	return h
}

func (h *Hub) Subscribe() *Subscription {
	ch := make(chan Event, h.buffer)
	s := &Subscription{C: ch, ch: ch}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Unsubscribe closes s.C. Calling it twice is harmless.
func (h *Hub) Unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.ch)
	}
}

// Publish stamps e with the next sequence number and delivers it.
func (h *Hub) Publish(e Event) Event {
	e.Seq = h.seq.Add(1)
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.ch <- e:
		default:
			s.dropped.Add(1)
		}
	}
	return e
}

// Emit wraps data in an envelope and publishes it. Data that cannot be
// marshalled is logged and dropped.
func (h *Hub) Emit(reqID, typ string, data any) {
	e, err := New(reqID, typ, data)
	if err != nil {
		log.Error().Err(err).Str("type", typ).Str("request_id", reqID).Msg("event not published")
		return
	}
	h.Publish(e)
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
