package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/config"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

// ErrNoSession marks a cookie that does not resolve to a live session.
var ErrNoSession = errors.New("no active session")

// Session is the server-side record behind a browser's session cookie: the
// authenticated user plus the bearer token the order service issued.
type Session struct {
	ID        string        `json:"id"`
	User      upstream.User `json:"user"`
	Token     string        `json:"token"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store is the key-value surface the manager needs; *redis.Client
// implements it.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	DelCount(ctx context.Context, keys ...string) (int64, error)
}

// Keyer names the Redis keys owned by a session; *redis.Client implements
// it.
type Keyer interface {
	SessionKey(sessionID string) string
	CartKey(sessionID string) string
}

// Manager owns session records in Redis. Creation issues a signed cookie
// token whose jti is the session ID; invalidation is idempotent so that
// concurrent 401s tear the session down exactly once.
type Manager struct {
	store Store
	keyer Keyer
	cfg   config.SessionConfig
}

// NewManager constructs a session manager backed by Redis.
func NewManager(store Store, keyer Keyer, cfg config.SessionConfig) (*Manager, error) {
	if store == nil || keyer == nil {
		return nil, fmt.Errorf("session store and keyer are required")
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if cfg.TTL() <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: store, keyer: keyer, cfg: cfg}, nil
}

// Create persists a fresh session for the user/token pair and returns the
// session plus the signed cookie value.
func (m *Manager) Create(ctx context.Context, user upstream.User, token string) (*Session, string, error) {
	if strings.TrimSpace(token) == "" {
		return nil, "", fmt.Errorf("bearer token is required")
	}

	sess := &Session{
		ID:        uuid.NewString(),
		User:      user,
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.save(ctx, sess); err != nil {
		return nil, "", err
	}

	cookieToken, err := MintSessionToken(m.cfg, time.Now(), sess.ID)
	if err != nil {
		return nil, "", err
	}
	return sess, cookieToken, nil
}

// Resolve maps a cookie value to its live session record.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (*Session, error) {
	sessionID, err := ParseSessionToken(m.cfg, cookieValue)
	if err != nil {
		return nil, ErrNoSession
	}

	raw, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	return &sess, nil
}

// RefreshUser stores an updated user profile on the session, keeping the
// token and ID.
func (m *Manager) RefreshUser(ctx context.Context, sess *Session, user upstream.User) error {
	if sess == nil {
		return fmt.Errorf("session is required")
	}
	sess.User = user
	return m.save(ctx, sess)
}

// Invalidate removes the session and its cart. It reports whether this call
// actually deleted the session, so concurrent teardowns (several in-flight
// requests hitting a 401 at once) apply side effects exactly once.
func (m *Manager) Invalidate(ctx context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, fmt.Errorf("session id is required")
	}
	deleted, err := m.store.DelCount(ctx, m.keyer.SessionKey(sessionID))
	if err != nil {
		return false, err
	}
	// The cart dies with the session regardless of who won.
	if err := m.store.Del(ctx, m.keyer.CartKey(sessionID)); err != nil {
		return deleted > 0, err
	}
	return deleted > 0, nil
}

// CookieName exposes the configured cookie name for handlers.
func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}

// Cookie builds the session cookie carrying the signed token.
func (m *Manager) Cookie(value string) *http.Cookie {
	return sessionCookie(m.cfg, value, time.Now().Add(m.cfg.TTL()))
}

// ClearedCookie builds an expired cookie that removes the session from the
// browser.
func (m *Manager) ClearedCookie() *http.Cookie {
	return expiredSessionCookie(m.cfg)
}

func (m *Manager) save(ctx context.Context, sess *Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	return m.store.Set(ctx, m.keyer.SessionKey(sess.ID), string(payload), m.cfg.TTL())
}
