// Command green-moe-server runs the carbon-aware routing API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nisarg-M-Patel/green-MoE/internal/api"
	"github.com/Nisarg-M-Patel/green-MoE/internal/cache"
	"github.com/Nisarg-M-Patel/green-MoE/internal/carbon"
	"github.com/Nisarg-M-Patel/green-MoE/internal/catalog"
	"github.com/Nisarg-M-Patel/green-MoE/internal/eia"
	"github.com/Nisarg-M-Patel/green-MoE/internal/inference"
	"github.com/Nisarg-M-Patel/green-MoE/internal/service"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := parseEnvConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger = logger.Level(cfg.LogLevel)
	carbon.SetLogger(logger)

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		cat, err = catalog.Load(cfg.CatalogFile)
		if err != nil {
			logger.Fatal().Err(err).Str("file", cfg.CatalogFile).Msg("failed to load region catalog")
		}
		logger.Info().Str("file", cfg.CatalogFile).Int("regions", cat.Len()).Msg("loaded region catalog override")
	}

	svc := service.New(
		cat,
		eia.NewClient(cfg.EIAAPIKey, cfg.EIATimeout, logger),
		cache.NewStore(cfg.CacheTTL),
		logger,
	)
	processor := inference.NewClient(cfg.HuggingFaceToken, 60*time.Second, logger)

	apiServer, err := api.NewServer(cfg.CORS, svc, processor, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid CORS configuration")
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
		<-signalChan

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
		close(shutdownDone)
	}()

	logger.Info().
		Str("addr", cfg.ListenAddr).
		Int("regions", cat.Len()).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("starting green router")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server failed")
	}
	<-shutdownDone
}
