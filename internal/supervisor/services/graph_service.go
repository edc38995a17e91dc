// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/filmgraph/internal/graph"
)

// GraphEngine is the part of *recommend.Engine the refresher needs.
type GraphEngine interface {
	BuildGraph(ctx context.Context) (*graph.Graph, error)
	InvalidateCache()
}

// VersionSource reports the data watermark. *database.DB implements it.
type VersionSource interface {
	DataVersion() int64
}

// GraphServiceConfig holds refresher settings.
type GraphServiceConfig struct {
	// RefreshOnStartup builds the graph once when the service starts.
	RefreshOnStartup bool

	// PollInterval is how often the data version is checked. Default: 30s.
	PollInterval time.Duration

	// BuildTimeout bounds one graph build. Default: 1m.
	BuildTimeout time.Duration
}

// GraphService rebuilds the preference graph whenever the data version
// moves. The build refreshes the graph size gauges and dropping the result
// cache frees entries keyed by the old version.
type GraphService struct {
	engine      GraphEngine
	versions    VersionSource
	config      GraphServiceConfig
	logger      zerolog.Logger
	name        string
	lastVersion int64
	refreshed   bool
}

// NewGraphService creates a refresher for engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGraphService(engine GraphEngine, versions VersionSource, cfg GraphServiceConfig, logger zerolog.Logger) *GraphService {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	if cfg.BuildTimeout <= 0 {
		cfg.BuildTimeout = time.Minute
	}
	return &GraphService{
		engine:   engine,
		versions: versions,
		config:   cfg,
		logger:   logger.With().Str("service", "graph").Logger(),
		name:     "graph-service",
	}
}

// Serve implements suture.Service.
func (s *GraphService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("refresh_on_startup", s.config.RefreshOnStartup).
		Dur("poll_interval", s.config.PollInterval).
		Msg("graph service starting")

	if s.config.RefreshOnStartup {
		s.refresh(ctx, s.versions.DataVersion())
	}

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("graph service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

// poll refreshes when the data version differs from the last refresh.
func (s *GraphService) poll(ctx context.Context) {
	version := s.versions.DataVersion()
	if s.refreshed && version == s.lastVersion {
		return
	}
	s.refresh(ctx, version)
}

func (s *GraphService) refresh(ctx context.Context, version int64) {
	buildCtx, cancel := context.WithTimeout(ctx, s.config.BuildTimeout)
	defer cancel()

	start := time.Now()
	g, err := s.engine.BuildGraph(buildCtx)
	if err != nil {
		// Retried on the next tick since lastVersion is unchanged.
		s.logger.Warn().Err(err).Int64("data_version", version).Msg("graph refresh failed")
		return
	}

	if s.refreshed {
		s.engine.InvalidateCache()
	}
	s.lastVersion = version
	s.refreshed = true

	s.logger.Info().
		Int64("data_version", version).
		Int("nodes", g.NodeCount()).
		Int("edges", g.EdgeCount()).
		Dur("duration", time.Since(start)).
		Msg("graph refreshed")
}

// String names the service in supervisor logs.
func (s *GraphService) String() string {
	return s.name
}
