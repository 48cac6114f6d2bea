package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAppEnv, "development")
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvUpstreamBaseURL, "http://localhost:8000")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvSessionSecret, "test-secret-test-secret-test-secret")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !cfg.App.IsDev() {
		t.Fatal("expected dev environment")
	}
	if cfg.Session.CookieName != "chickorder_session" {
		t.Fatalf("cookie name = %q", cfg.Session.CookieName)
	}
	if cfg.Session.TTL() != 7*24*time.Hour {
		t.Fatalf("session ttl = %s", cfg.Session.TTL())
	}
	if cfg.Upstream.Timeout != 10*time.Second {
		t.Fatalf("upstream timeout = %s", cfg.Upstream.Timeout)
	}
	if cfg.Payment.MobileMoneyConfirmDelay != 2*time.Second {
		t.Fatalf("confirm delay = %s", cfg.Payment.MobileMoneyConfirmDelay)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("cors origins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.AuthRateLimit.LoginIdentifierLimit != 5 {
		t.Fatalf("login identifier limit = %d", cfg.AuthRateLimit.LoginIdentifierLimit)
	}
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvSessionSecret, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error without a session secret")
	}
}

func TestSessionTTLNonPositive(t *testing.T) {
	cfg := SessionConfig{TTLMinutes: 0}
	if cfg.TTL() != 0 {
		t.Fatalf("ttl = %s", cfg.TTL())
	}
}
