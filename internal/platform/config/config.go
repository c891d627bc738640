package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`
	SecretKey   string `env:"SECRET_KEY"`

	AllowedHosts       string `env:"ALLOWED_HOSTS" default:""`
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" default:""`
	StaticDir          string `env:"STATIC_DIR" default:""`

	ExpiryAlertDays    int           `env:"EXPIRY_ALERT_DAYS" default:"30"`
	AlertRetentionDays int           `env:"ALERT_RETENTION_DAYS" default:"30"`
	AlertSweepInterval time.Duration `env:"ALERT_SWEEP_INTERVAL" default:"1h"`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" default:"1h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" default:"168h"` // 7 days

	DashboardCacheTTL time.Duration `env:"DASHBOARD_CACHE_TTL" default:"30s"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"REDIS_URL":    cfg.RedisURL,
		"SECRET_KEY":   cfg.SecretKey,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if len(cfg.SecretKey) < 32 {
		return fmt.Errorf("SECRET_KEY must be at least 32 characters, got %d", len(cfg.SecretKey))
	}

	if cfg.ExpiryAlertDays < 1 {
		return fmt.Errorf("EXPIRY_ALERT_DAYS must be positive, got %d", cfg.ExpiryAlertDays)
	}
	if cfg.AlertRetentionDays < 1 {
		return fmt.Errorf("ALERT_RETENTION_DAYS must be positive, got %d", cfg.AlertRetentionDays)
	}

	return nil
}

// HostList returns ALLOWED_HOSTS as a slice. An empty list means all hosts
// are accepted.
func (c *Config) HostList() []string {
	return splitAndTrim(c.AllowedHosts)
}

// OriginList returns CORS_ALLOWED_ORIGINS as a slice. An empty list means
// any origin is accepted.
func (c *Config) OriginList() []string {
	return splitAndTrim(c.CORSAllowedOrigins)
}

func splitAndTrim(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
