package main

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EIA_API_KEY", "test-key")
}

func TestParseEnvConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := parseEnvConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.EIAAPIKey)
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 15*time.Second, cfg.EIATimeout)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.CORS.AllowCredentials)
	assert.Equal(t,
		[]string{"http://localhost:3000", "http://127.0.0.1:3000"},
		cfg.CORS.AllowedOrigins)
}

func TestParseEnvConfigMissingAPIKey(t *testing.T) {
	t.Setenv("EIA_API_KEY", "")

	_, err := parseEnvConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EIA_API_KEY")
}

func TestParseEnvConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("CACHE_TTL_MINUTES", "10")
	t.Setenv("EIA_TIMEOUT_SECONDS", "5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HUGGINGFACE_TOKEN", "hf-token")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := parseEnvConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.EIATimeout)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "hf-token", cfg.HuggingFaceToken)
	assert.Equal(t,
		[]string{"https://app.example.com", "https://staging.example.com"},
		cfg.CORS.AllowedOrigins)
}

func TestParseEnvConfigInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"ttl not a number", "CACHE_TTL_MINUTES", "soon"},
		{"ttl zero", "CACHE_TTL_MINUTES", "0"},
		{"ttl negative", "CACHE_TTL_MINUTES", "-5"},
		{"timeout not a number", "EIA_TIMEOUT_SECONDS", "fast"},
		{"timeout zero", "EIA_TIMEOUT_SECONDS", "0"},
		{"bad log level", "LOG_LEVEL", "verbose-ish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := parseEnvConfig()
			assert.Error(t, err)
		})
	}
}

func TestParseEnvConfigWildcardWithCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	_, err := parseEnvConfig()
	assert.Error(t, err)
}
