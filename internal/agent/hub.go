// Package agent holds the plumbing shared by all entity agents: a typed
// subscription hub pushing state snapshots to listeners, and a sequencer
// that discards stale responses from overlapping loads.
package agent

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Hub fans state snapshots out to subscribers. Publish is synchronous and
// ordered (deliverMu serializes whole deliveries); callbacks run outside the
// subscriber-map lock, so a subscriber may unsubscribe itself from within
// its own callback. Subscribers must still not call back into the
// publishing agent.
type Hub[S any] struct {
	mu        sync.Mutex // guards subs, nextID, closed
	deliverMu sync.Mutex // serializes deliveries, held across callbacks
	nextID    int
	subs      map[int]func(S)
	closed    bool
}

func NewHub[S any]() *Hub[S] {
	return &Hub[S]{
		subs: make(map[int]func(S)),
	}
}

// Subscribe registers fn and returns an idempotent unsubscribe handle.
// A nil fn is ignored (the returned handle is a no-op); subscription must
// never fail.
func (h *Hub[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	if fn == nil {
		log.Errorln("agent hub: nil subscriber ignored")
		return func() {}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		log.Debugln("agent hub: subscribe after close ignored")
		return func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
		})
	}
}

// Publish delivers the snapshot to every subscriber. No-op after Close.
// A subscriber that unsubscribes during delivery still receives the
// snapshot being delivered, and nothing after it.
func (h *Hub[S]) Publish(snapshot S) {
	h.deliverMu.Lock()
	defer h.deliverMu.Unlock()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	fns := make([]func(S), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// Close drops all subscribers; subsequent Publish and Subscribe calls are
// no-ops. Safe to call more than once. Close waits for an in-flight
// delivery, so once it returns no callback runs again.
func (h *Hub[S]) Close() {
	h.deliverMu.Lock()
	defer h.deliverMu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	h.subs = make(map[int]func(S))
}

// SubscriberCount is used by tests and diagnostics.
func (h *Hub[S]) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
