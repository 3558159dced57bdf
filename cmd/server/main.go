// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Marquee failed")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential startup steps
func run() error {
	start := time.Now()
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	metrics.RecordStartupPhase(metrics.PhaseConfig, time.Since(start))

	logging.Init(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Caller:      cfg.Logging.Caller,
		Environment: cfg.Server.Environment,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("catalog", cfg.Artifacts.CatalogPath).
		Msg("Starting Marquee")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start = time.Now()
	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	metrics.RecordStartupPhase(metrics.PhaseDatabase, time.Since(start))

	start = time.Now()
	movies, err := db.LoadCatalog(ctx, cfg.Artifacts.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	metrics.RecordStartupPhase(metrics.PhaseCatalog, time.Since(start))
	logging.Info().Int64("movies", movies).Dur("duration", time.Since(start)).Msg("Catalog loaded")

	engine, err := initRecommend(ctx, cfg, db, logging.Logger())
	if err != nil {
		return err
	}

	handler := api.NewHandler(engine, catalog.NewService(db, cfg.Catalog.MinVotes), db)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// sutureslog writes to slog; the adapter routes it into zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Recommend.Cache.Enabled {
		interval := cachePurgeInterval(cfg.Recommend.Cache.TTL)
		tree.AddMaintenanceService(services.NewCacheService(engine,
			services.CacheServiceConfig{Interval: interval}, logging.WithComponent("supervisor")))
		logging.Info().Dur("interval", interval).Msg("Cache maintenance service added")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr,
		cfg.Server.ShutdownTimeout, logging.WithComponent("supervisor")))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		// ServeBackground sends exactly one value and never closes the channel.
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			serveErr = fmt.Errorf("supervisor tree: %w", err)
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	return serveErr
}
