// Package changefeed implements ports.ChangeFeed over MongoDB change streams, Redis pub/sub,
// NATS subjects and an in-process hub.
package changefeed

import (
	"sync"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

// eventBuffer is per subscription. Events carry no payload, so dropping one while the
// buffer is full loses nothing the consumer would act on.
const eventBuffer = 16

// subscription is the shared ports.Subscription: producers call deliver, and finish closes
// the channel exactly once. deliver after finish is a no-op.
type subscription struct {
	kind   domain.Kind
	events chan ports.ChangeEvent

	mu     sync.Mutex
	closed bool

	stopOnce sync.Once
	stop     func() error
	stopErr  error
}

func newSubscription(kind domain.Kind, stop func() error) *subscription {
	return &subscription{
		kind:   kind,
		events: make(chan ports.ChangeEvent, eventBuffer),
		stop:   stop,
	}
}

func (s *subscription) Events() <-chan ports.ChangeEvent { return s.events }

// Close releases the backend subscription and closes Events.
func (s *subscription) Close() error {
	s.stopOnce.Do(func() {
		if s.stop != nil {
			s.stopErr = s.stop()
		}
		s.finish()
	})
	return s.stopErr
}

// deliver queues e without blocking, reporting whether it was accepted.
func (s *subscription) deliver(e ports.ChangeEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.events <- e:
		return true
	default:
		return false
	}
}

func (s *subscription) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}
