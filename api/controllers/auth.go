package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/chickorder/web/api/middleware"
	"github.com/chickorder/web/api/responses"
	"github.com/chickorder/web/api/validators"
	"github.com/chickorder/web/internal/ratelimit"
	"github.com/chickorder/web/internal/session"
	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/config"
	"github.com/chickorder/web/pkg/errors"
	"github.com/chickorder/web/pkg/logger"
)

type authClient interface {
	Register(ctx context.Context, req upstream.RegisterRequest) (*upstream.TokenResponse, error)
	Login(ctx context.Context, req upstream.LoginRequest) (*upstream.TokenResponse, error)
	Me(ctx context.Context, token string) (*upstream.User, error)
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	// Identifier is an email or phone number; anything containing '@'
	// is treated as an email.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type sessionView struct {
	Authenticated bool           `json:"authenticated"`
	User          *upstream.User `json:"user,omitempty"`
}

// Register creates an account with the order service and signs the new
// customer in immediately.
func Register(client authClient, mgr *session.Manager, limiter *ratelimit.Limiter, cfg config.AuthRateLimitConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !allowIdentifier(r.Context(), limiter, "register", payload.Phone, cfg.RegisterWindow, cfg.RegisterIdentifierLimit, logg) {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeRateLimit, "too many registration attempts"))
			return
		}

		token, err := client.Register(r.Context(), upstream.RegisterRequest{
			Name:     strings.TrimSpace(payload.Name),
			Phone:    strings.TrimSpace(payload.Phone),
			Email:    strings.TrimSpace(payload.Email),
			Password: payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		signIn(w, r, client, mgr, logg, token.AccessToken, http.StatusCreated)
	}
}

// Login authenticates by email or phone and establishes a session.
func Login(client authClient, mgr *session.Manager, limiter *ratelimit.Limiter, cfg config.AuthRateLimitConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identifier := strings.TrimSpace(payload.Identifier)
		if !allowIdentifier(r.Context(), limiter, "login", identifier, cfg.LoginWindow, cfg.LoginIdentifierLimit, logg) {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeRateLimit, "too many login attempts"))
			return
		}

		req := upstream.LoginRequest{Password: payload.Password}
		if strings.Contains(identifier, "@") {
			req.Email = identifier
		} else {
			req.Phone = identifier
		}

		token, err := client.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		signIn(w, r, client, mgr, logg, token.AccessToken, http.StatusOK)
	}
}

// Logout tears the session down. It succeeds even without a session, so
// repeated sign-outs are harmless.
func Logout(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := middleware.SessionFrom(r.Context()); ok {
			if _, err := mgr.Invalidate(r.Context(), sess.ID); err != nil {
				logg.Error(r.Context(), "session teardown failed", err)
			}
		}
		http.SetCookie(w, mgr.ClearedCookie())
		responses.WriteSuccess(w, map[string]string{"status": "signed_out"})
	}
}

// Me reports who is signed in. The user profile is re-checked against the
// order service; if the service no longer honours the token the session is
// dropped and the caller simply comes back unauthenticated.
func Me(client authClient, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFrom(r.Context())
		if !ok {
			responses.WriteSuccess(w, sessionView{Authenticated: false})
			return
		}

		user, err := client.Me(r.Context(), sess.Token)
		if err != nil {
			if won, invErr := mgr.Invalidate(r.Context(), sess.ID); invErr != nil {
				logg.Error(r.Context(), "session teardown failed", invErr)
			} else if won {
				logg.Info(logg.WithSessionID(r.Context(), sess.ID), "session dropped after profile check failed")
			}
			http.SetCookie(w, mgr.ClearedCookie())
			responses.WriteSuccess(w, sessionView{Authenticated: false})
			return
		}

		if err := mgr.RefreshUser(r.Context(), sess, *user); err != nil {
			logg.Error(r.Context(), "failed to refresh session user", err)
		}
		responses.WriteSuccess(w, sessionView{Authenticated: true, User: user})
	}
}

func signIn(w http.ResponseWriter, r *http.Request, client authClient, mgr *session.Manager, logg *logger.Logger, accessToken string, status int) {
	user, err := client.Me(r.Context(), accessToken)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	sess, cookieToken, err := mgr.Create(r.Context(), *user, accessToken)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, errors.Wrap(errors.CodeInternal, err, "failed to create session"))
		return
	}

	logg.Info(logg.WithSessionID(r.Context(), sess.ID), "session established")
	http.SetCookie(w, mgr.Cookie(cookieToken))
	responses.WriteSuccessStatus(w, status, sessionView{Authenticated: true, User: user})
}

func allowIdentifier(ctx context.Context, limiter *ratelimit.Limiter, scope, identifier string, window time.Duration, limit int, logg *logger.Logger) bool {
	if limiter == nil || identifier == "" {
		return true
	}
	ok, err := limiter.Allow(ctx, scope+":id:"+strings.ToLower(identifier), window, limit)
	if err != nil {
		// Fail open; the limiter protects against abuse, not availability.
		logg.Error(ctx, "rate limit check failed", err)
		return true
	}
	return ok
}
