package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/chickorder/web/internal/session"
	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/config"
	"github.com/chickorder/web/pkg/logger"
	redislib "github.com/redis/go-redis/v9"
)

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (s *memStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value.(string)
	return nil
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (s *memStore) Del(_ context.Context, keys ...string) error {
	_, err := s.DelCount(context.Background(), keys...)
	return err
}

func (s *memStore) DelCount(_ context.Context, keys ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := s.data[key]; ok {
			delete(s.data, key)
			n++
		}
	}
	return n, nil
}

type testKeys struct{}

func (testKeys) SessionKey(id string) string { return "session:" + id }
func (testKeys) CartKey(id string) string    { return "cart:" + id }

func testManager(t *testing.T) *session.Manager {
	t.Helper()
	mgr, err := session.NewManager(newMemStore(), testKeys{}, config.SessionConfig{
		Secret:     "test-secret-test-secret-test-secret",
		Issuer:     "chickorder-web",
		CookieName: "chickorder_session",
		TTLMinutes: 60,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return mgr
}

func noopLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func echoSession() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFrom(r.Context()); ok {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestOptionalSessionAttachesValidSession(t *testing.T) {
	mgr := testManager(t)
	_, cookieToken, err := mgr.Create(context.Background(), upstream.User{ID: 1}, "tok")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "chickorder_session", Value: cookieToken})
	rec := httptest.NewRecorder()
	OptionalSession(mgr, noopLogger())(echoSession()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("session not attached, code = %d", rec.Code)
	}
}

func TestOptionalSessionDropsForgedCookie(t *testing.T) {
	mgr := testManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "chickorder_session", Value: "forged"})
	rec := httptest.NewRecorder()
	OptionalSession(mgr, noopLogger())(echoSession()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("forged cookie should pass through unauthenticated, code = %d", rec.Code)
	}

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "chickorder_session" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("forged cookie should be cleared")
	}
}

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RequireSession(noopLogger())(echoSession()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(noopLogger())(echoSession())

	// Customer session is forbidden.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithSession(req.Context(), &session.Session{ID: "s1", User: upstream.User{ID: 1}}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer code = %d", rec.Code)
	}

	// Admin session passes.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithSession(req.Context(), &session.Session{ID: "s2", User: upstream.User{ID: 2, IsAdmin: true}}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin code = %d", rec.Code)
	}

	// No session at all is unauthorized.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous code = %d", rec.Code)
	}
}
