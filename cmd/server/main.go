// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

// Command server runs the Paperscope HTTP API: an embedded DuckDB paper store
// behind a cached, supervised chi router.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/preprintlabs/paperscope/internal/api"
	"github.com/preprintlabs/paperscope/internal/cache"
	"github.com/preprintlabs/paperscope/internal/config"
	"github.com/preprintlabs/paperscope/internal/database"
	"github.com/preprintlabs/paperscope/internal/logging"
	"github.com/preprintlabs/paperscope/internal/metrics"
	"github.com/preprintlabs/paperscope/internal/supervisor"
	"github.com/preprintlabs/paperscope/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Str("version", version).Msg("Starting Paperscope")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	db, err := database.New(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	general := cache.New("general", cfg.Cache.General.TTL, cfg.Cache.General.Capacity)
	analytics := cache.New("analytics", cfg.Cache.Analytics.TTL, cfg.Cache.Analytics.Capacity)
	defer general.Stop()
	defer analytics.Stop()

	handler := api.NewHandler(db, cfg, general, analytics)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(
		slog.New(slog.NewJSONHandler(os.Stderr, nil)),
		treeConfig,
	)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Services did not stop within timeout")
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}
