package middleware

import (
	"fmt"
	"net/http"

	"github.com/chickorder/web/api/responses"
	"github.com/chickorder/web/pkg/errors"
	"github.com/chickorder/web/pkg/logger"
)

// Recoverer converts handler panics into INTERNAL_ERROR responses so one
// bad request cannot take the process down.
func Recoverer(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := errors.Wrap(errors.CodeInternal, fmt.Errorf("panic: %v", rec), "handler panicked")
					responses.WriteError(r.Context(), log, w, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
