package live

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

type fakeFeed struct {
	events  chan ports.ChangeEvent
	subErr  error
	kind    domain.Kind
	closed  atomic.Int32
	subbed  chan struct{}
	subOnce sync.Once
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{events: make(chan ports.ChangeEvent), subbed: make(chan struct{})}
}

func (f *fakeFeed) Subscribe(_ context.Context, kind domain.Kind) (ports.Subscription, error) {
	if f.subErr != nil {
		return nil, f.subErr
	}
	f.kind = kind
	f.subOnce.Do(func() { close(f.subbed) })
	return f, nil
}

func (f *fakeFeed) Events() <-chan ports.ChangeEvent { return f.events }

func (f *fakeFeed) Close() error {
	f.closed.Add(1)
	return nil
}

func (f *fakeFeed) emit(t *testing.T) {
	t.Helper()
	select {
	case f.events <- ports.ChangeEvent{Kind: domain.KindCommunityPosts, At: time.Now()}:
	case <-time.After(time.Second):
		t.Fatal("bridge did not consume change event")
	}
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []ports.Notice
}

func (n *recordingNotifier) Notify(_ context.Context, notice ports.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

func runBridge(t *testing.T, b *Bridge[string]) (cancel func() error) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- b.Run(ctx) }()
	return func() error {
		stop()
		select {
		case err := <-errc:
			return err
		case <-time.After(time.Second):
			t.Fatal("bridge did not stop")
			return nil
		}
	}
}

func TestBridge_InitialFetchReplacesSnapshot(t *testing.T) {
	feed := newFakeFeed()
	store := NewStore[string](nil)
	fetch := func(context.Context) ([]string, error) { return []string{"p1", "p2"}, nil }

	stop := runBridge(t, NewBridge(domain.KindCommunityPosts, feed, fetch, store, nil, zerolog.Nop()))
	defer stop()

	require.Eventually(t, func() bool { return store.Current().Version == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"p1", "p2"}, store.Current().Items)
	assert.Equal(t, domain.KindCommunityPosts, feed.kind)
}

func TestBridge_ChangeEventTriggersRefetch(t *testing.T) {
	feed := newFakeFeed()
	store := NewStore[string](nil)
	var calls atomic.Int32
	fetch := func(context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			return []string{"old"}, nil
		}
		return []string{"new", "old"}, nil
	}

	stop := runBridge(t, NewBridge(domain.KindCommunityPosts, feed, fetch, store, nil, zerolog.Nop()))
	defer stop()

	require.Eventually(t, func() bool { return store.Current().Version == 1 }, time.Second, time.Millisecond)
	feed.emit(t)

	require.Eventually(t, func() bool { return store.Current().Version == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"new", "old"}, store.Current().Items)
}

func TestBridge_FetchFailureKeepsSnapshotAndNotifies(t *testing.T) {
	feed := newFakeFeed()
	store := NewStore[string](nil)
	notifier := &recordingNotifier{}
	var calls atomic.Int32
	fetch := func(context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			return []string{"kept"}, nil
		}
		return nil, errors.New("backend unavailable")
	}

	stop := runBridge(t, NewBridge(domain.KindCommunityPosts, feed, fetch, store, notifier, zerolog.Nop()))
	defer stop()

	require.Eventually(t, func() bool { return store.Current().Version == 1 }, time.Second, time.Millisecond)
	feed.emit(t)

	require.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, time.Millisecond)
	snap := store.Current()
	assert.Equal(t, uint64(1), snap.Version)
	assert.Equal(t, []string{"kept"}, snap.Items)
	assert.Equal(t, int32(2), calls.Load(), "a failed fetch is not retried")
}

func TestBridge_EventsDuringFetchCoalesceIntoOneReplace(t *testing.T) {
	feed := newFakeFeed()
	store := NewStore[string](nil)
	gate := make(chan struct{})
	var calls atomic.Int32
	fetch := func(ctx context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			select {
			case <-gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return []string{"stale"}, nil
		}
		return []string{"latest"}, nil
	}

	stop := runBridge(t, NewBridge(domain.KindCommunityPosts, feed, fetch, store, nil, zerolog.Nop()))
	defer stop()

	<-feed.subbed
	feed.emit(t)
	feed.emit(t)
	close(gate)

	require.Eventually(t, func() bool {
		items := store.Current().Items
		return len(items) == 1 && items[0] == "latest"
	}, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, uint64(1), store.Current().Version, "the superseded fetch must not produce a snapshot")
}

func TestBridge_StopReleasesSubscription(t *testing.T) {
	feed := newFakeFeed()
	store := NewStore[string](nil)
	fetch := func(context.Context) ([]string, error) { return []string{"x"}, nil }

	stop := runBridge(t, NewBridge(domain.KindCommunityPosts, feed, fetch, store, nil, zerolog.Nop()))
	require.Eventually(t, func() bool { return store.Current().Version == 1 }, time.Second, time.Millisecond)

	err := stop()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), feed.closed.Load())

	select {
	case feed.events <- ports.ChangeEvent{}:
		t.Fatal("stopped bridge still consumes events")
	case <-time.After(20 * time.Millisecond):
	}
	assert.Equal(t, uint64(1), store.Current().Version)
}

func TestBridge_SubscribeErrorIsReported(t *testing.T) {
	feed := newFakeFeed()
	feed.subErr = errors.New("no replica set")
	notifier := &recordingNotifier{}
	b := NewBridge(domain.KindCommunityPosts, feed, func(context.Context) ([]string, error) { return nil, nil },
		NewStore[string](nil), notifier, zerolog.Nop())

	err := b.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, notifier.count())
}

func TestBridge_FeedCloseEndsRunAndNotifies(t *testing.T) {
	feed := newFakeFeed()
	store := NewStore[string](nil)
	notifier := &recordingNotifier{}
	b := NewBridge(domain.KindCommunityPosts, feed, func(context.Context) ([]string, error) { return []string{"kept"}, nil },
		store, notifier, zerolog.Nop())

	errc := make(chan error, 1)
	go func() { errc <- b.Run(context.Background()) }()
	require.Eventually(t, func() bool { return store.Current().Version == 1 }, time.Second, time.Millisecond)
	close(feed.events)

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrFeedClosed)
	case <-time.After(time.Second):
		t.Fatal("bridge did not stop after feed closed")
	}
	require.Equal(t, 1, notifier.count(), "losing the feed must be reported")
	notifier.mu.Lock()
	assert.Equal(t, ports.NoticeDestructive, notifier.notices[0].Level)
	assert.Equal(t, "Realtime updates unavailable", notifier.notices[0].Description)
	notifier.mu.Unlock()
	assert.Equal(t, []string{"kept"}, store.Current().Items)
}
