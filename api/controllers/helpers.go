package controllers

import (
	"net/http"
	"strconv"

	"github.com/chickorder/web/api/responses"
	"github.com/chickorder/web/internal/session"
	"github.com/chickorder/web/pkg/errors"
	"github.com/chickorder/web/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// writeSessionAwareError handles an upstream failure on behalf of a
// session-holding handler. When the order service rejected the bearer token
// the session is torn down and the cookie cleared; the teardown itself is
// idempotent, so only the first of several concurrent rejections does the
// work.
func writeSessionAwareError(w http.ResponseWriter, r *http.Request, logg *logger.Logger, mgr *session.Manager, sess *session.Session, err error) {
	if sess != nil && errors.IsCode(err, errors.CodeUnauthorized) {
		won, invErr := mgr.Invalidate(r.Context(), sess.ID)
		if invErr != nil {
			logg.Error(r.Context(), "session teardown failed", invErr)
		} else if won {
			logg.Info(logg.WithSessionID(r.Context(), sess.ID), "session invalidated after upstream rejection")
		}
		http.SetCookie(w, mgr.ClearedCookie())
	}
	responses.WriteError(r.Context(), logg, w, err)
}

// orderIDParam parses the {orderID} route parameter.
func orderIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "orderID")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New(errors.CodeValidation, "invalid order id")
	}
	return id, nil
}
