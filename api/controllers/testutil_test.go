package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/chickorder/web/api/middleware"
	"github.com/chickorder/web/internal/session"
	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/config"
	"github.com/chickorder/web/pkg/logger"
	"github.com/go-chi/chi/v5"
	redislib "github.com/redis/go-redis/v9"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

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

func (s *memStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

type testKeys struct{}

func (testKeys) SessionKey(id string) string { return "session:" + id }
func (testKeys) CartKey(id string) string    { return "cart:" + id }

func testSessionManager(t *testing.T, store *memStore) *session.Manager {
	t.Helper()
	mgr, err := session.NewManager(store, testKeys{}, config.SessionConfig{
		Secret:     "test-secret-test-secret-test-secret",
		Issuer:     "chickorder-web",
		CookieName: "chickorder_session",
		TTLMinutes: 60,
	})
	if err != nil {
		t.Fatalf("new session manager: %v", err)
	}
	return mgr
}

// seedSession writes a session record to the store and returns it.
func seedSession(t *testing.T, mgr *session.Manager, store *memStore, user upstream.User) *session.Session {
	t.Helper()
	sess, _, err := mgr.Create(context.Background(), user, "upstream-bearer")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if !store.has("session:" + sess.ID) {
		t.Fatal("session record not stored")
	}
	return sess
}

func requestWithSession(method, target string, body io.Reader, sess *session.Session) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), sess))
	}
	return req
}

func withOrderID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderID", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v (body %s)", err, rec.Body.String())
	}
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v (body %s)", err, rec.Body.String())
	}
	return envelope.Error.Code
}

func clearedSessionCookie(rec *httptest.ResponseRecorder) bool {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "chickorder_session" && cookie.MaxAge < 0 {
			return true
		}
	}
	return false
}
