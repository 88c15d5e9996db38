package changefeed

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

// RedisFeed carries change events over pub/sub channels named changes:<kind>.
type RedisFeed struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisFeed(client *redis.Client, log zerolog.Logger) *RedisFeed {
	return &RedisFeed{client: client, log: log.With().Str("feed", "redis").Logger()}
}

func redisChannel(kind domain.Kind) string {
	return "changes:" + string(kind)
}

func (f *RedisFeed) Subscribe(ctx context.Context, kind domain.Kind) (ports.Subscription, error) {
	ps := f.client.Subscribe(ctx, redisChannel(kind))
	// Receive waits for the subscription confirmation so a dead server fails here.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", kind, err)
	}

	done := make(chan struct{})
	sub := newSubscription(kind, func() error {
		err := ps.Close()
		<-done
		return err
	})

	msgs := ps.Channel()
	go func() {
		defer close(done)
		defer sub.finish()
		for range msgs {
			sub.deliver(ports.ChangeEvent{Kind: kind, At: time.Now().UTC()})
		}
	}()

	return sub, nil
}

func (f *RedisFeed) Publish(ctx context.Context, e ports.ChangeEvent) error {
	if err := f.client.Publish(ctx, redisChannel(e.Kind), e.At.UTC().Format(time.RFC3339Nano)).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", e.Kind, err)
	}
	return nil
}
