package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const submissionLockTTL = time.Minute

// SubmissionGuard is the short-lived idempotency lock for emergency request submissions.
// Key format: submission:<patient_id>:<idempotency_key>
type SubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmissionGuard creates a SubmissionGuard wrapping the given Redis client.
func NewSubmissionGuard(client *redis.Client) *SubmissionGuard {
	return &SubmissionGuard{client: client, ttl: submissionLockTTL}
}

// Claim takes the lock for key. It reports false when another submission already holds it.
// An abandoned lock expires after submissionLockTTL.
func (g *SubmissionGuard) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("submission claim: %w", err)
	}
	return ok, nil
}

// Release drops the lock for key.
func (g *SubmissionGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.key(key)).Err(); err != nil {
		return fmt.Errorf("submission release: %w", err)
	}
	return nil
}

func (g *SubmissionGuard) key(key string) string {
	return "submission:" + key
}
