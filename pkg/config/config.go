package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "chickorder"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names used by tests and deploy tooling.
const (
	EnvAppEnv          = "CHICKORDER_APP_ENV"
	EnvPort            = "CHICKORDER_APP_PORT"
	EnvUpstreamBaseURL = "CHICKORDER_UPSTREAM_BASE_URL"
	EnvRedisURL        = "CHICKORDER_REDIS_URL"
	EnvSessionSecret   = "CHICKORDER_SESSION_SECRET"
)

type Config struct {
	App           AppConfig
	Upstream      UpstreamConfig
	Redis         RedisConfig
	Session       SessionConfig
	AuthRateLimit AuthRateLimitConfig
	Payment       PaymentConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CHICKORDER_APP_ENV" required:"true"`
	Port         string `envconfig:"CHICKORDER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CHICKORDER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CHICKORDER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the order-management backend this app fronts.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"CHICKORDER_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"CHICKORDER_UPSTREAM_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CHICKORDER_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CHICKORDER_REDIS_ADDR"`
	Password     string        `envconfig:"CHICKORDER_REDIS_PASSWORD"`
	DB           int           `envconfig:"CHICKORDER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CHICKORDER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CHICKORDER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CHICKORDER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CHICKORDER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CHICKORDER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig governs the signed session cookie and the Redis session record.
type SessionConfig struct {
	Secret     string `envconfig:"CHICKORDER_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"CHICKORDER_SESSION_ISSUER" default:"chickorder-web"`
	CookieName string `envconfig:"CHICKORDER_SESSION_COOKIE" default:"chickorder_session"`
	TTLMinutes int    `envconfig:"CHICKORDER_SESSION_TTL_MINUTES" default:"10080"`
	Secure     bool   `envconfig:"CHICKORDER_SESSION_SECURE_COOKIE" default:"true"`
}

// TTL returns the session lifetime configured in minutes.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

type AuthRateLimitConfig struct {
	LoginWindow             time.Duration `envconfig:"CHICKORDER_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIdentifierLimit    int           `envconfig:"CHICKORDER_AUTH_RATE_LIMIT_LOGIN_IDENTIFIER_LIMIT" default:"5"`
	LoginIPLimit            int           `envconfig:"CHICKORDER_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow          time.Duration `envconfig:"CHICKORDER_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterIdentifierLimit int           `envconfig:"CHICKORDER_AUTH_RATE_LIMIT_REGISTER_IDENTIFIER_LIMIT" default:"3"`
	RegisterIPLimit         int           `envconfig:"CHICKORDER_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// PaymentConfig tunes the simulated mobile-money confirmation step.
type PaymentConfig struct {
	MobileMoneyConfirmDelay time.Duration `envconfig:"CHICKORDER_PAYMENT_MOMO_CONFIRM_DELAY" default:"2s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CHICKORDER_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
