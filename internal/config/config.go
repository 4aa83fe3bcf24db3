// Package config loads settings for the API server from the environment and
// for the CLI from a TOML file.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"
)

const devSessionSecret = "dev-secret-change-in-production"

var ErrDevSecretInProduction = errors.New("SESSION_SECRET must be set in production environment")

type Config struct {
	Port               string
	Env                string
	DatabaseDSN        string
	SessionSecret      string
	SessionExpiry      time.Duration
	SentryDSN          string
	CORSAllowedOrigins []string
	GenerateDelay      time.Duration
	ToastDuration      time.Duration
}

func Load() Config {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		DatabaseDSN:        getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passgen?parseTime=true"),
		SessionSecret:      getEnv("SESSION_SECRET", devSessionSecret),
		SessionExpiry:      getDuration("SESSION_EXPIRY", 24*time.Hour),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		GenerateDelay:      getDuration("GENERATE_DELAY", 500*time.Millisecond),
		ToastDuration:      getDuration("TOAST_DURATION", 3*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	return cfg
}

// Validate rejects settings that are unsafe for the configured environment.
func (c Config) Validate() error {
	if c.IsProduction() && c.SessionSecret == devSessionSecret {
		return ErrDevSecretInProduction
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration", "key", key, "value", v, "error", err)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
