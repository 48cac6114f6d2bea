package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type cartStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type cartKeyer interface {
	CartKey(sessionID string) string
}

// Repo persists carts as JSON blobs in Redis, one per session, expiring with
// the session TTL.
type Repo struct {
	store cartStore
	keyer cartKeyer
	ttl   time.Duration
}

// NewRepo builds a cart repository on top of the shared Redis client.
func NewRepo(store cartStore, keyer cartKeyer, ttl time.Duration) (*Repo, error) {
	if store == nil || keyer == nil {
		return nil, fmt.Errorf("cart repo requires a store and a keyer")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &Repo{store: store, keyer: keyer, ttl: ttl}, nil
}

// Load fetches the session's cart, returning an empty cart when none is
// stored yet.
func (r *Repo) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := r.store.Get(ctx, r.keyer.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return Empty(), nil
		}
		return nil, err
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("decode cart record: %w", err)
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	return &c, nil
}

// Save writes the cart back, refreshing its TTL.
func (r *Repo) Save(ctx context.Context, sessionID string, c *Cart) error {
	c.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart record: %w", err)
	}
	return r.store.Set(ctx, r.keyer.CartKey(sessionID), string(payload), r.ttl)
}

// Clear drops the session's cart.
func (r *Repo) Clear(ctx context.Context, sessionID string) error {
	return r.store.Del(ctx, r.keyer.CartKey(sessionID))
}
