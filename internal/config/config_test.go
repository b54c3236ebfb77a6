package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "DB_PATH", "STATIC_PATH", "TRIP_PASSPHRASE", "JWT_SECRET",
	"TOKEN_TTL", "SHUTDOWN_TIMEOUT", "CORS_ORIGIN", "TRIP_ID",
}

// clearEnv blanks every variable Config reads for the duration of the test.
func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./data/cuptrip.db", cfg.DBPath)
	assert.Equal(t, "", cfg.StaticPath)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, "wc2026", cfg.TripID)
	assert.False(t, cfg.AuthEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/trip.db")
	t.Setenv("TRIP_PASSPHRASE", "vamos-mexico-2026")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("CORS_ORIGIN", "https://cup.example")
	t.Setenv("TRIP_ID", "qatar-2022")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/trip.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "https://cup.example", cfg.CORSOrigin)
	assert.Equal(t, "qatar-2022", cfg.TripID)
	assert.True(t, cfg.AuthEnabled())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"PORT": "eighty"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"bad ttl", map[string]string{"TOKEN_TTL": "forever"}},
		{"negative shutdown", map[string]string{"SHUTDOWN_TIMEOUT": "-1s"}},
		{"passphrase without secret", map[string]string{"TRIP_PASSPHRASE": "vamos-mexico-2026"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even to
	// empty, so PORT must be truly unset for the file to apply.
	os.Unsetenv("PORT")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=7070\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
		os.Unsetenv("PORT")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}
