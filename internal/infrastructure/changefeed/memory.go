package changefeed

import (
	"context"
	"sync"
	"time"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

// Hub is an in-process feed: every Publish reaches the subscribers of the same kind in this
// process only.
type Hub struct {
	mu   sync.Mutex
	subs map[domain.Kind]map[*subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[domain.Kind]map[*subscription]struct{})}
}

func (h *Hub) Subscribe(_ context.Context, kind domain.Kind) (ports.Subscription, error) {
	var sub *subscription
	sub = newSubscription(kind, func() error {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[kind], sub)
		return nil
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[kind] == nil {
		h.subs[kind] = make(map[*subscription]struct{})
	}
	h.subs[kind][sub] = struct{}{}
	return sub, nil
}

func (h *Hub) Publish(_ context.Context, e ports.ChangeEvent) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[e.Kind] {
		sub.deliver(e)
	}
	return nil
}

// Subscribers reports how many subscriptions are open for kind.
func (h *Hub) Subscribers(kind domain.Kind) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[kind])
}
