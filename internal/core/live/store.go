// Package live holds the client-state model of a dashboard panel: a Store holding the current
// snapshot of tracked entities, a Scope binding periodic tasks and subscriptions to a panel's
// lifetime, and a Bridge that refetches the snapshot whenever the backend reports a change.
package live

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Snapshot is the full list of entities at one point in time. A new snapshot replaces the
// previous one wholesale; it is never merged.
type Snapshot[T any] struct {
	Version   uint64
	Items     []T
	UpdatedAt time.Time
}

// Store owns the current snapshot of one panel. Every write is a whole-snapshot swap under a
// single lock, so readers and watchers only ever observe complete snapshots.
type Store[T any] struct {
	mu       sync.Mutex
	snap     Snapshot[T]
	watchers map[uint64]chan Snapshot[T]
	nextID   uint64
	closed   bool
	done     chan struct{}
}

// NewStore creates a store seeded with items at version 0.
func NewStore[T any](seed []T) *Store[T] {
	return &Store[T]{
		snap:     Snapshot[T]{Items: slices.Clone(seed), UpdatedAt: time.Now().UTC()},
		watchers: make(map[uint64]chan Snapshot[T]),
		done:     make(chan struct{}),
	}
}

// Current returns a copy of the current snapshot.
func (s *Store[T]) Current() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Replace swaps in items as the new snapshot and notifies watchers.
func (s *Store[T]) Replace(items []T) Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swapLocked(slices.Clone(items))
}

// Update computes the next snapshot from a copy of the current items and swaps it in.
// Concurrent calls are serialized, so two producers never interleave their read-modify-write.
func (s *Store[T]) Update(fn func(items []T) []T) Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swapLocked(fn(slices.Clone(s.snap.Items)))
}

// Watch returns a channel that receives the current snapshot immediately and then every new
// one. Delivery is latest-wins: a slow reader skips intermediate versions. The channel is
// closed when ctx ends or the store is closed.
func (s *Store[T]) Watch(ctx context.Context) <-chan Snapshot[T] {
	ch := make(chan Snapshot[T], 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch
	}
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	ch <- s.copyLocked()
	s.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if w, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(w)
		}
	}()
	return ch
}

// Close detaches every watcher. Writes after Close still update the snapshot but notify nobody.
func (s *Store[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	for id, w := range s.watchers {
		delete(s.watchers, id)
		close(w)
	}
}

func (s *Store[T]) swapLocked(items []T) Snapshot[T] {
	s.snap = Snapshot[T]{
		Version:   s.snap.Version + 1,
		Items:     items,
		UpdatedAt: time.Now().UTC(),
	}
	out := s.copyLocked()
	for _, w := range s.watchers {
		select {
		case <-w:
		default:
		}
		w <- s.copyLocked()
	}
	return out
}

func (s *Store[T]) copyLocked() Snapshot[T] {
	return Snapshot[T]{
		Version:   s.snap.Version,
		Items:     slices.Clone(s.snap.Items),
		UpdatedAt: s.snap.UpdatedAt,
	}
}
