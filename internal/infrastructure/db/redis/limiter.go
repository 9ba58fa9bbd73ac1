package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	attemptWindow = 15 * time.Minute
	maxAttempts   = 10
)

// AttemptLimiter throttles sign-in attempts per email using a fixed window.
// Key format: signin_attempts:<email>
type AttemptLimiter struct {
	client *redis.Client
}

// NewAttemptLimiter creates an AttemptLimiter wrapping the given Redis client.
func NewAttemptLimiter(client *redis.Client) *AttemptLimiter {
	return &AttemptLimiter{client: client}
}

// Allow counts this attempt and reports whether it is within the window limit.
func (l *AttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("attempt count: %w", err)
	}
	if n == 1 {
		// First attempt in this window starts the expiry clock.
		if err := l.client.Expire(ctx, k, attemptWindow).Err(); err != nil {
			return false, fmt.Errorf("attempt expire: %w", err)
		}
	}
	return n <= maxAttempts, nil
}

// Reset drops the counter after a successful sign-in.
func (l *AttemptLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

func (l *AttemptLimiter) key(email string) string {
	return "signin_attempts:" + email
}
