package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/chickorder/web/api/responses"
	"github.com/chickorder/web/internal/ratelimit"
	"github.com/chickorder/web/pkg/errors"
	"github.com/chickorder/web/pkg/logger"
)

// IPRateLimit caps how often one client address may hit an endpoint inside
// a fixed window. Limiter failures fail open; a Redis outage must not lock
// everyone out of login.
func IPRateLimit(limiter *ratelimit.Limiter, scope string, window time.Duration, limit int, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := limiter.Allow(r.Context(), scope+":ip:"+clientIP(r), window, limit)
			if err != nil {
				log.Error(r.Context(), "rate limit check failed", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				responses.WriteError(r.Context(), log, w,
					errors.New(errors.CodeRateLimit, "too many attempts, try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
