package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter counts hits per key in a fixed window.
type RateLimiter interface {
	// Allow records a hit and reports whether key is still under limit.
	// When it is not, retryAfter is the time left in the window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, retryAfter time.Duration, err error)
}

type redisRateLimiter struct {
	client    *redis.Client
	keyPrefix string
}

// NewRateLimiter creates a Redis-backed rate limiter
func NewRateLimiter(client *redis.Client) RateLimiter {
	return &redisRateLimiter{
		client:    client,
		keyPrefix: "rate_limit:",
	}
}

func (l *redisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	rKey := l.keyPrefix + key

	count, err := l.client.Incr(ctx, rKey).Result()
	if err != nil {
		return false, 0, err
	}
	// The window starts at the first hit; later hits must not extend it.
	if count == 1 {
		if err := l.client.Expire(ctx, rKey, window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count > int64(limit) {
		ttl, err := l.client.TTL(ctx, rKey).Result()
		if err != nil {
			return false, 0, err
		}
		if ttl < 0 {
			// A failed Expire left the key without a TTL; restore the window.
			if err := l.client.Expire(ctx, rKey, window).Err(); err != nil {
				return false, 0, err
			}
			ttl = window
		}
		return false, ttl, nil
	}
	return true, 0, nil
}
