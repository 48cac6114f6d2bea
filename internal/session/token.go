package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/chickorder/web/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

// MintSessionToken signs a short JWT whose jti is the session ID. The token
// carries no user data; everything else lives server-side in Redis.
func MintSessionToken(cfg config.SessionConfig, now time.Time, sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", fmt.Errorf("session id is required")
	}

	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL())),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies a cookie value and returns the session ID it
// names.
func ParseSessionToken(cfg config.SessionConfig, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("session token is empty")
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid || strings.TrimSpace(claims.ID) == "" {
		return "", fmt.Errorf("session token is invalid")
	}
	return claims.ID, nil
}
