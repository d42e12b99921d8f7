package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nisarg-M-Patel/green-MoE/internal/api"
)

// Defaults for optional settings.
const (
	defaultListenAddr  = ":8000"
	defaultCacheTTL    = 30 * time.Minute
	defaultEIATimeout  = 15 * time.Second
	defaultCORSOrigins = "http://localhost:3000,http://127.0.0.1:3000"
)

// Config holds the server's runtime settings, all sourced from the
// environment.
type Config struct {
	ListenAddr       string
	EIAAPIKey        string
	HuggingFaceToken string
	CacheTTL         time.Duration
	EIATimeout       time.Duration
	CORS             api.CORSConfig
	LogLevel         zerolog.Level
	CatalogFile      string
}

// parseEnvConfig reads configuration from the environment. A missing
// EIA_API_KEY is a hard startup failure; everything else has a default.
func parseEnvConfig() (*Config, error) {
	cfg := &Config{
		ListenAddr: defaultListenAddr,
		CacheTTL:   defaultCacheTTL,
		EIATimeout: defaultEIATimeout,
		LogLevel:   zerolog.InfoLevel,
	}

	cfg.EIAAPIKey = os.Getenv("EIA_API_KEY")
	if cfg.EIAAPIKey == "" {
		return nil, fmt.Errorf("EIA_API_KEY is required; get a free key at https://www.eia.gov/opendata/")
	}

	cfg.HuggingFaceToken = os.Getenv("HUGGINGFACE_TOKEN")
	cfg.CatalogFile = os.Getenv("REGION_CATALOG_FILE")

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}

	if raw := os.Getenv("CACHE_TTL_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid CACHE_TTL_MINUTES %q", raw)
		}
		cfg.CacheTTL = time.Duration(minutes) * time.Minute
	}

	if raw := os.Getenv("EIA_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid EIA_TIMEOUT_SECONDS %q", raw)
		}
		cfg.EIATimeout = time.Duration(seconds) * time.Second
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q", raw)
		}
		cfg.LogLevel = level
	}

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = defaultCORSOrigins
	}
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, trimmed)
		}
	}
	if strings.ToLower(os.Getenv("CORS_ALLOW_CREDENTIALS")) == "true" {
		cfg.CORS.AllowCredentials = true
	}
	if err := cfg.CORS.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
