// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/paddock/docs" // swagger document
	"github.com/tomtom215/paddock/internal/api"
	"github.com/tomtom215/paddock/internal/biography"
	"github.com/tomtom215/paddock/internal/cache"
	"github.com/tomtom215/paddock/internal/config"
	"github.com/tomtom215/paddock/internal/logging"
	"github.com/tomtom215/paddock/internal/middleware"
	"github.com/tomtom215/paddock/internal/results"
	"github.com/tomtom215/paddock/internal/supervisor"
	"github.com/tomtom215/paddock/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("results_url", cfg.Results.BaseURL).
		Int("workers", cfg.Results.Workers).
		Int("max_retries", cfg.Retry.MaxRetries).
		Bool("biography", cfg.Biography.Enabled).
		Ints("prefetch", cfg.Results.PrefetchSeasons).
		Msg("Configuration loaded")

	pipeline := results.NewPipeline(cfg)
	seasons := cache.NewSeasonCache(pipeline.Load)

	opts := []api.HandlerOption{
		api.WithUpstreamState(pipeline.UpstreamState),
		api.WithPerformanceMonitor(middleware.NewPerformanceMonitor(1000, middleware.DefaultSlowRequestThreshold)),
	}
	if cfg.Biography.Enabled {
		bios := biography.NewClient(cfg.Biography)
		defer bios.Close()
		opts = append(opts, api.WithBiography(bios))
	}

	handler := api.NewHandler(seasons, opts...)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareFromSecurity(cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if len(cfg.Results.PrefetchSeasons) > 0 {
		tree.AddDataService(services.NewSeasonPrefetchService(seasons, cfg.Results.PrefetchSeasons))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// The tree only returns once ctx is canceled.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Int("cached_seasons", seasons.Len()).Msg("Paddock stopped")
}
