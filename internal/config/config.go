// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds server configuration loaded from the environment.
type Config struct {
	Port           string
	StoreBackend   string
	DBPath         string
	RedisURL       string
	RedisPrefix    string
	ShareSecret    string
	ShareTTL       time.Duration
	SeedDemo       bool
	PaymentBaseURL string
	LogLevel       string
	LogFormat      string
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		Port:           valueOrDefault(k.String("PORT"), "8080"),
		StoreBackend:   strings.ToLower(valueOrDefault(k.String("STORE_BACKEND"), BackendSQLite)),
		DBPath:         valueOrDefault(k.String("DB_PATH"), "./data/bills.db"),
		RedisURL:       strings.TrimSpace(k.String("REDIS_URL")),
		RedisPrefix:    valueOrDefault(k.String("REDIS_PREFIX"), "dinesplit:"),
		ShareSecret:    k.String("SHARE_SECRET"),
		ShareTTL:       parseDuration(k.String("SHARE_TTL"), "72h"),
		SeedDemo:       parseBool(k.String("SEED_DEMO"), true),
		PaymentBaseURL: strings.TrimSpace(k.String("PAYMENT_BASE_URL")),
		LogLevel:       valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFormat:      valueOrDefault(k.String("LOG_FORMAT"), "text"),
	}

	switch cfg.StoreBackend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL is required when STORE_BACKEND=redis")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want sqlite, redis or memory)", cfg.StoreBackend)
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
