// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Package main is the filmgraph HTTP server.
//
// Startup order:
//
//  1. Configuration: defaults, config.yaml, then environment (koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Database: DuckDB store, optionally seeded with demo records
//  4. Engine: recommendation engine reading through a circuit breaker
//  5. Supervisor tree: graph refresher (data layer) and HTTP server (api layer)
//
// SIGINT and SIGTERM cancel the tree; the HTTP server drains in-flight
// requests within server.shutdown_timeout and the database is checkpointed
// on close.
//
// Example:
//
//	SEED_DEMO_DATA=true DUCKDB_PATH=./filmgraph.duckdb LOG_FORMAT=console ./filmgraph
//	curl localhost:3858/api/v1/recommendations/user/1?k=3
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/filmgraph/internal/api"
	"github.com/tomtom215/filmgraph/internal/config"
	"github.com/tomtom215/filmgraph/internal/database"
	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/recommend"
	"github.com/tomtom215/filmgraph/internal/supervisor"
	"github.com/tomtom215/filmgraph/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run() error {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Logging is not configured yet; the default logger still works.
		return err
	}

	logging.Init(cfg.Logging.LoggerConfig())
	api.Version = version

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting filmgraph")

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS to restrict it")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedDemoData {
		seeded, err := db.SeedDemoData(context.Background())
		if err != nil {
			return err
		}
		logging.Info().Bool("seeded", seeded).Msg("Demo data seeding checked")
	}

	provider := database.NewBreakerProvider(db, &cfg.Breaker)
	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), provider, logging.WithComponent("recommend"))
	if err != nil {
		return err
	}

	chiMW := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})
	router := api.NewRouter(api.NewHandler(engine, db), chiMW)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// sutureslog takes an slog.Logger; the adapter routes it through zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	if cfg.Recommend.RefreshInterval > 0 {
		tree.AddDataService(services.NewGraphService(engine, db, services.GraphServiceConfig{
			RefreshOnStartup: true,
			PollInterval:     cfg.Recommend.RefreshInterval,
			BuildTimeout:     cfg.Recommend.FetchTimeout,
		}, logging.WithComponent("supervisor")))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logging.Info().Msg("Shutdown complete")
	return nil
}
