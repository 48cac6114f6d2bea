// Package middleware holds the HTTP middleware chain shared by all routes.
package middleware

import (
	"context"

	"github.com/chickorder/web/internal/session"
)

type ctxKey int

const (
	sessionCtxKey ctxKey = iota
	requestIDCtxKey
)

// WithSession stores the resolved session on the request context.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, sess)
}

// SessionFrom returns the session attached by the auth middleware.
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionCtxKey).(*session.Session)
	return sess, ok && sess != nil
}

// WithRequestID stores the request ID on the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey, id)
}

// RequestIDFrom returns the request ID, if one was assigned.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey).(string)
	return id
}
