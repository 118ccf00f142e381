package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiterWithClock(2, time.Minute, func() time.Time { return now })

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := limiter.Allow(ctx, "1.2.3.4")
	assert.False(t, ok, "third request in window should be rejected")

	ok, _ = limiter.Allow(ctx, "5.6.7.8")
	assert.True(t, ok, "other clients have their own window")

	now = now.Add(time.Minute)
	ok, _ = limiter.Allow(ctx, "1.2.3.4")
	assert.True(t, ok, "new window resets the count")
}

func TestRateLimiterCleanup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiterWithClock(1, time.Minute, func() time.Time { return now })

	_, _ = limiter.Allow(ctx, "a")
	now = now.Add(2 * time.Minute)
	limiter.Cleanup()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Empty(t, limiter.windows)
}
