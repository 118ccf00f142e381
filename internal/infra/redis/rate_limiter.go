package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter shared by every instance pointing at the same Redis.
// Counters live at ratelimit:{name}:{key} and expire with the window.
type RateLimiter struct {
	client *redis.Client
	name   string
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, name string, limit int, every time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		name:   name,
		limit:  limit,
		window: every,
	}
}

func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	counterKey := "ratelimit:" + l.name + ":" + key

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, counterKey)
		ttl = pipe.TTL(ctx, counterKey)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", l.name, err)
	}
	count := incr.Val()

	// A counter without a TTL (new, or left behind by a failed EXPIRE) opens the window now.
	if ttl.Val() < 0 {
		if err := l.client.Expire(ctx, counterKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit %s: %w", l.name, err)
		}
	}
	return count <= int64(l.limit), nil
}
