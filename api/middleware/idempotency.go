package middleware

import (
	"net/http"
	"time"

	"github.com/chickorder/web/api/responses"
	"github.com/chickorder/web/pkg/errors"
	"github.com/chickorder/web/pkg/logger"
	redisclient "github.com/chickorder/web/pkg/redis"
)

const idempotencyHeader = "Idempotency-Key"
const idempotencyWindow = 10 * time.Minute

// Idempotency guards mutating endpoints against double submission. When the
// client sends an Idempotency-Key, a replay inside the window is rejected
// before it reaches the handler. Requests without the header pass through.
func Idempotency(store redisclient.IdempotencyStore, scope string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			owner := "anonymous"
			if sess, ok := SessionFrom(r.Context()); ok {
				owner = sess.ID
			}

			fresh, err := store.SetNX(r.Context(), store.IdempotencyKey(scope, owner+":"+key), "1", idempotencyWindow)
			if err != nil {
				responses.WriteError(r.Context(), log, w, err)
				return
			}
			if !fresh {
				responses.WriteError(r.Context(), log, w,
					errors.New(errors.CodeStateConflict, "duplicate request").
						WithDetails(map[string]string{"idempotency_key": key}))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
