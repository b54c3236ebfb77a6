// Package config loads server settings from the environment.
//
// A .env file in the working directory is read first if present; variables
// already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything cmd/server needs to start.
type Config struct {
	Port            int
	DBPath          string
	StaticPath      string // empty disables static file serving
	TripPassphrase  string // empty disables auth
	TripID          string // audience of session tokens
	JWTSecret       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	CORSOrigin      string
}

// AuthEnabled reports whether write RPCs require a session token.
func (c *Config) AuthEnabled() bool {
	return c.TripPassphrase != ""
}

// Load reads .env (optional) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:         getEnv("DB_PATH", "./data/cuptrip.db"),
		StaticPath:     os.Getenv("STATIC_PATH"),
		TripPassphrase: os.Getenv("TRIP_PASSPHRASE"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TripID:         getEnv("TRIP_ID", "wc2026"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "*"),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", 72*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	if cfg.AuthEnabled() && cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required when TRIP_PASSPHRASE is set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	return d, nil
}
