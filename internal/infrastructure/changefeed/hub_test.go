package changefeed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

func TestHub_PublishReachesSameKindOnly(t *testing.T) {
	h := NewHub()
	posts, err := h.Subscribe(context.Background(), domain.KindCommunityPosts)
	require.NoError(t, err)
	defer posts.Close()
	reqs, err := h.Subscribe(context.Background(), domain.KindEmergencyRequests)
	require.NoError(t, err)
	defer reqs.Close()

	require.NoError(t, h.Publish(context.Background(), ports.ChangeEvent{Kind: domain.KindCommunityPosts}))

	select {
	case e := <-posts.Events():
		assert.Equal(t, domain.KindCommunityPosts, e.Kind)
		assert.False(t, e.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	select {
	case <-reqs.Events():
		t.Fatal("event leaked to another kind")
	default:
	}
}

func TestHub_CloseDetachesAndClosesChannel(t *testing.T) {
	h := NewHub()
	sub, err := h.Subscribe(context.Background(), domain.KindCommunityPosts)
	require.NoError(t, err)
	require.Equal(t, 1, h.Subscribers(domain.KindCommunityPosts))

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	assert.Equal(t, 0, h.Subscribers(domain.KindCommunityPosts))
	_, ok := <-sub.Events()
	assert.False(t, ok)
	assert.NoError(t, h.Publish(context.Background(), ports.ChangeEvent{Kind: domain.KindCommunityPosts}))
}

func TestSubscription_DeliverNeverBlocks(t *testing.T) {
	sub := newSubscription(domain.KindHospitals, nil)
	accepted := 0
	for i := 0; i < eventBuffer*2; i++ {
		if sub.deliver(ports.ChangeEvent{Kind: domain.KindHospitals}) {
			accepted++
		}
	}
	assert.Equal(t, eventBuffer, accepted)

	sub.finish()
	assert.False(t, sub.deliver(ports.ChangeEvent{}), "deliver after finish is dropped")
}
