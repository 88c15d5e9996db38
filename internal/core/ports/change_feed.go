package ports

import (
	"context"
	"time"

	"github.com/lifeline/response-dashboard/internal/core/domain"
)

// ChangeEvent signals that the authoritative list of Kind changed. It carries no row data;
// consumers refetch.
type ChangeEvent struct {
	Kind domain.Kind
	At   time.Time
}

// Subscription delivers change events for one kind until Close is called.
type Subscription interface {
	Events() <-chan ChangeEvent
	// Close releases the underlying channel. Safe to call more than once.
	Close() error
}

// ChangeFeed is the realtime change-notification collaborator.
type ChangeFeed interface {
	Subscribe(ctx context.Context, kind domain.Kind) (Subscription, error)
}

// ChangePublisher announces a change to every subscriber of the kind. Feeds with native
// change capture implement it as a no-op.
type ChangePublisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}
