package live

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
	"github.com/lifeline/response-dashboard/internal/pkg/metrics"
)

// maxSuperseded bounds how many fetch results in a row may be dropped because a newer change
// arrived while they were in flight. Past it the result is applied and one more fetch follows.
const maxSuperseded = 3

// ErrFeedClosed is returned by Bridge.Run when the change feed stops delivering events.
var ErrFeedClosed = errors.New("change feed closed")

// Fetcher loads the full authoritative list of one record kind.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Bridge keeps a Store in sync with one backend record kind. It subscribes to the kind's
// change feed, fetches once at start, and refetches after every change event. Events are
// queued into a single-slot wake channel, so any number of events received while a fetch is
// outstanding collapse into one follow-up fetch.
type Bridge[T any] struct {
	kind     domain.Kind
	feed     ports.ChangeFeed
	fetch    Fetcher[T]
	store    *Store[T]
	notifier ports.Notifier
	log      zerolog.Logger

	wake chan struct{}
}

// NewBridge wires a bridge for kind. notifier may be nil.
func NewBridge[T any](
	kind domain.Kind,
	feed ports.ChangeFeed,
	fetch Fetcher[T],
	store *Store[T],
	notifier ports.Notifier,
	log zerolog.Logger,
) *Bridge[T] {
	return &Bridge[T]{
		kind:     kind,
		feed:     feed,
		fetch:    fetch,
		store:    store,
		notifier: notifier,
		log:      log.With().Str("kind", string(kind)).Logger(),
		wake:     make(chan struct{}, 1),
	}
}

// Run blocks until ctx ends, keeping the store current. The subscription is released before
// Run returns. A failed subscribe or a feed that closes underneath the bridge is reported to
// the notifier and returned; the last snapshot stays in the store.
func (b *Bridge[T]) Run(ctx context.Context) error {
	sub, err := b.feed.Subscribe(ctx, b.kind)
	if err != nil {
		b.notify(ctx, "Realtime updates unavailable")
		return fmt.Errorf("bridge %s: subscribe: %w", b.kind, err)
	}

	var wg sync.WaitGroup
	feedDone := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(feedDone)
		b.pump(ctx, sub.Events())
	}()
	defer func() {
		_ = sub.Close()
		wg.Wait()
	}()

	// The subscription only covers later changes; load the current list now.
	b.signal()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-feedDone:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.log.Warn().Msg("change feed closed")
			b.notify(ctx, "Realtime updates unavailable")
			return fmt.Errorf("bridge %s: %w", b.kind, ErrFeedClosed)
		case <-b.wake:
			b.refresh(ctx)
		}
	}
}

// pump forwards feed events into the wake slot until the feed closes or ctx ends.
func (b *Bridge[T]) pump(ctx context.Context, events <-chan ports.ChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			metrics.ChangeEventsTotal.WithLabelValues(string(b.kind)).Inc()
			b.signal()
		}
	}
}

// signal queues a refresh; a refresh already queued absorbs it.
func (b *Bridge[T]) signal() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// superseded consumes a queued refresh, reporting whether one was waiting.
func (b *Bridge[T]) superseded() bool {
	select {
	case <-b.wake:
		return true
	default:
		return false
	}
}

func (b *Bridge[T]) refresh(ctx context.Context) {
	for dropped := 0; ; dropped++ {
		start := time.Now()
		items, err := b.fetch(ctx)
		if ctx.Err() != nil {
			return
		}
		newer := b.superseded()

		if err != nil {
			metrics.RefreshesTotal.WithLabelValues(string(b.kind), "failed").Inc()
			b.log.Error().Err(err).Msg("refetch failed, keeping previous snapshot")
			b.notify(ctx, "Could not refresh "+string(b.kind))
			if newer && dropped < maxSuperseded {
				continue
			}
			if newer {
				b.signal()
			}
			return
		}

		if newer && dropped < maxSuperseded {
			metrics.RefreshesTotal.WithLabelValues(string(b.kind), "superseded").Inc()
			b.log.Debug().Int("dropped", dropped+1).Msg("refetch superseded by newer change")
			continue
		}

		snap := b.store.Replace(items)
		metrics.RefreshesTotal.WithLabelValues(string(b.kind), "replaced").Inc()
		metrics.RefreshDuration.WithLabelValues(string(b.kind)).Observe(time.Since(start).Seconds())
		b.log.Debug().Uint64("version", snap.Version).Int("items", len(items)).Msg("snapshot refreshed")

		if newer {
			b.signal()
		}
		return
	}
}

func (b *Bridge[T]) notify(ctx context.Context, title string) {
	if b.notifier == nil {
		return
	}
	b.notifier.Notify(ctx, ports.Notice{
		Level:       ports.NoticeDestructive,
		Title:       "Error",
		Description: title,
	})
}
