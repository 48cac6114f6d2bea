package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/config"
	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]string{}}
}

func (s *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	str, ok := value.(string)
	if !ok {
		return errors.New("expected string value")
	}
	s.data[key] = str
	return nil
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (s *memoryStore) Del(_ context.Context, keys ...string) error {
	_, err := s.DelCount(context.Background(), keys...)
	return err
}

func (s *memoryStore) DelCount(_ context.Context, keys ...string) (int64, error) {
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

type staticKeyer struct{}

func (staticKeyer) SessionKey(id string) string { return "session:" + id }
func (staticKeyer) CartKey(id string) string    { return "cart:" + id }

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-secret-test-secret-test-secret",
		Issuer:     "chickorder-web",
		CookieName: "chickorder_session",
		TTLMinutes: 60,
	}
}

func testManager(store *memoryStore) *Manager {
	mgr, err := NewManager(store, staticKeyer{}, testSessionConfig())
	if err != nil {
		panic(err)
	}
	return mgr
}

func TestCreateAndResolveRoundTrip(t *testing.T) {
	ctx := context.Background()
	mgr := testManager(newMemoryStore())

	user := upstream.User{ID: 7, Name: "Ama Mensah", Phone: "0244000000", Email: "ama@example.com"}
	sess, cookieToken, err := mgr.Create(ctx, user, "upstream-bearer")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected a session id")
	}

	resolved, err := mgr.Resolve(ctx, cookieToken)
	if err != nil {
		t.Fatalf("resolve session: %v", err)
	}
	if resolved.ID != sess.ID {
		t.Fatalf("resolved session id = %q, want %q", resolved.ID, sess.ID)
	}
	if resolved.Token != "upstream-bearer" {
		t.Fatalf("resolved token = %q", resolved.Token)
	}
	if resolved.User.Email != user.Email {
		t.Fatalf("resolved user email = %q", resolved.User.Email)
	}
}

func TestResolveRejectsTamperedToken(t *testing.T) {
	ctx := context.Background()
	mgr := testManager(newMemoryStore())

	_, cookieToken, err := mgr.Create(ctx, upstream.User{ID: 1}, "tok")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := mgr.Resolve(ctx, cookieToken+"x"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for tampered token, got %v", err)
	}
}

func TestResolveMissingRecord(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	mgr := testManager(store)

	sess, cookieToken, err := mgr.Create(ctx, upstream.User{ID: 1}, "tok")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := store.DelCount(ctx, "session:"+sess.ID); err != nil {
		t.Fatalf("delete record: %v", err)
	}

	if _, err := mgr.Resolve(ctx, cookieToken); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for expired record, got %v", err)
	}
}

func TestInvalidateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	mgr := testManager(store)

	sess, _, err := mgr.Create(ctx, upstream.User{ID: 1}, "tok")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	store.data["cart:"+sess.ID] = "{}"

	won, err := mgr.Invalidate(ctx, sess.ID)
	if err != nil {
		t.Fatalf("first invalidate: %v", err)
	}
	if !won {
		t.Fatal("first invalidate should report the delete")
	}

	won, err = mgr.Invalidate(ctx, sess.ID)
	if err != nil {
		t.Fatalf("second invalidate: %v", err)
	}
	if won {
		t.Fatal("second invalidate should be a no-op")
	}

	if _, ok := store.data["cart:"+sess.ID]; ok {
		t.Fatal("cart should be removed with the session")
	}
}

func TestConcurrentInvalidateWinsOnce(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	mgr := testManager(store)

	sess, _, err := mgr.Create(ctx, upstream.User{ID: 1}, "tok")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	const callers = 8
	var wg sync.WaitGroup
	wins := make(chan bool, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := mgr.Invalidate(ctx, sess.ID)
			if err != nil {
				t.Errorf("invalidate: %v", err)
				return
			}
			wins <- won
		}()
	}
	wg.Wait()
	close(wins)

	var winners int
	for won := range wins {
		if won {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("got %d winners, want exactly 1", winners)
	}
}

func TestRefreshUserKeepsToken(t *testing.T) {
	ctx := context.Background()
	mgr := testManager(newMemoryStore())

	sess, cookieToken, err := mgr.Create(ctx, upstream.User{ID: 1, Name: "Old Name"}, "tok")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := mgr.RefreshUser(ctx, sess, upstream.User{ID: 1, Name: "New Name", IsAdmin: true}); err != nil {
		t.Fatalf("refresh user: %v", err)
	}

	resolved, err := mgr.Resolve(ctx, cookieToken)
	if err != nil {
		t.Fatalf("resolve session: %v", err)
	}
	if resolved.User.Name != "New Name" || !resolved.User.IsAdmin {
		t.Fatalf("refreshed user not persisted: %+v", resolved.User)
	}
	if resolved.Token != "tok" {
		t.Fatalf("token changed on refresh: %q", resolved.Token)
	}
}

func TestSessionTokenExpiry(t *testing.T) {
	cfg := testSessionConfig()
	signed, err := MintSessionToken(cfg, time.Now().Add(-2*time.Hour), "abc")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if _, err := ParseSessionToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
