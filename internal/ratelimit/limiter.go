// Package ratelimit implements a fixed-window counter on Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

type counterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type rateKeyer interface {
	RateLimitKey(scope string) string
}

// Limiter counts hits per scope inside a fixed window. The first hit in a
// window sets the key's TTL; the window resets when the key expires.
type Limiter struct {
	store counterStore
	keyer rateKeyer
}

// NewLimiter builds a limiter on the shared Redis client.
func NewLimiter(store counterStore, keyer rateKeyer) *Limiter {
	return &Limiter{store: store, keyer: keyer}
}

// Allow records one hit against the scope and reports whether it is still
// inside the limit. A limit of zero or less disables the check.
func (l *Limiter) Allow(ctx context.Context, scope string, window time.Duration, limit int) (bool, error) {
	if limit <= 0 {
		return true, nil
	}
	key := l.keyer.RateLimitKey(fmt.Sprintf("%s:%d", scope, time.Now().Unix()/int64(window.Seconds())))
	count, err := l.store.IncrWithTTL(ctx, key, window)
	if err != nil {
		return false, err
	}
	return count <= int64(limit), nil
}
