package middleware

import (
	"net/http"

	"github.com/chickorder/web/api/responses"
	"github.com/chickorder/web/internal/session"
	"github.com/chickorder/web/pkg/errors"
	"github.com/chickorder/web/pkg/logger"
)

// OptionalSession resolves the session cookie when present and attaches the
// session to the context. Requests without a valid session pass through
// unauthenticated.
func OptionalSession(mgr *session.Manager, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(mgr.CookieName())
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := mgr.Resolve(r.Context(), cookie.Value)
			if err != nil {
				// A stale or forged cookie is dropped, not an error.
				http.SetCookie(w, mgr.ClearedCookie())
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithSession(r.Context(), sess)
			ctx = log.WithSessionID(ctx, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that did not resolve to a session.
// It runs after OptionalSession.
func RequireSession(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := SessionFrom(r.Context()); !ok {
				responses.WriteError(r.Context(), log, w, errors.New(errors.CodeUnauthorized, "sign in to continue"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects sessions whose user is not an administrator.
func RequireAdmin(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFrom(r.Context())
			if !ok {
				responses.WriteError(r.Context(), log, w, errors.New(errors.CodeUnauthorized, "sign in to continue"))
				return
			}
			if !sess.User.IsAdmin {
				responses.WriteError(r.Context(), log, w, errors.New(errors.CodeForbidden, "admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
