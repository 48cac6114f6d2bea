package upstream

import (
	"context"
	"net/http"
)

// Register creates a customer account and returns its bearer credential.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	var token TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, "", req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var token TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, "", req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Me resolves the user behind a bearer token.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
