package live

import (
	"context"
	"sync"
	"time"
)

// Scope is the lifetime of a mounted panel. Tasks and subscriptions started through it are
// released exactly once by Close, and Close does not return until all of them have exited.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

// NewScope derives a scope from parent. Cancelling parent ends the scope's tasks too, but
// Close must still be called to wait for them.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context is cancelled when the scope closes.
func (s *Scope) Context() context.Context { return s.ctx }

// Go runs fn on its own goroutine for the lifetime of the scope. It is a no-op once the scope
// is closed.
func (s *Scope) Go(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// Every calls fn once per period until the scope closes. The ticker is stopped on exit and
// no call starts after the scope's context is done.
func (s *Scope) Every(period time.Duration, fn func(ctx context.Context)) {
	s.Go(func(ctx context.Context) {
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if ctx.Err() != nil {
					return
				}
				fn(ctx)
			}
		}
	})
}

// Close cancels every task and waits for them to return. Safe to call more than once.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.wg.Wait()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
