package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptKeyPrefix = "login_attempts:"

// LoginLimiter throttles authentication attempts per key using a fixed
// window counter in Redis. The counter expires with the window, so stale
// entries clean themselves up.
type LoginLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter allowing limit attempts per
// window.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
	}
}

// Allow records an attempt for key and reports whether it is within the
// current window's budget.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := loginAttemptKeyPrefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment login counter: %w", err)
	}

	// First attempt in a window starts its expiry clock.
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set login counter expiry: %w", err)
		}
	}

	return count <= l.limit, nil
}

// Reset clears the attempt counter for key.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, loginAttemptKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset login counter: %w", err)
	}

	return nil
}
