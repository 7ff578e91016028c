// Package ratelimit caps money-moving requests per actor using a Redis
// fixed-window counter. The window lives entirely in Redis so every API
// instance enforces the same budget.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter reports whether a request for the given key is permitted.
type Limiter interface {
	// Allow counts the request and returns false once the key's budget for
	// the current window is spent.
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter implements Limiter with an INCR plus EXPIRE fixed window.
type RedisLimiter struct {
	rdb    redis.Cmdable
	limit  int64
	window time.Duration
}

// NewRedisLimiter creates a limiter allowing limit requests per window.
func NewRedisLimiter(rdb redis.Cmdable, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		rdb:    rdb,
		limit:  int64(limit),
		window: window,
	}
}

// Make sure we conform to the interface
var _ Limiter = (*RedisLimiter)(nil)

func rateLimitKey(key string) string {
	return "ratelimit:" + key
}

// Allow increments the key's window counter, stamping the expiry on first use
// so the window resets on its own.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := rateLimitKey(key)

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis: rate limit allow %s: %w", key, err)
	}

	return incr.Val() <= l.limit, nil
}
