// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"context"
	"time"

	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend"
)

// Version is reported by the health endpoint.
var Version = "dev"

// Recommender computes recommendations. *recommend.Engine implements it.
type Recommender interface {
	Compute(ctx context.Context, req recommend.Request) (*recommend.Result, error)
	Analyze(ctx context.Context, userID, k int) (*recommend.Analysis, error)
	Config() *recommend.Config
	Stats() recommend.EngineStats
}

// StatisticsStore persists served recommendation sizes. *database.DB implements it.
type StatisticsStore interface {
	RecordRecommendationStatistic(ctx context.Context, userID, filmCount, genreCount int) (*models.RecommendationStatistic, error)
	ListRecommendationStatistics(ctx context.Context, userID, limit int) ([]models.RecommendationStatistic, error)
	Ping(ctx context.Context) error
}

// Handler serves the API endpoints.
type Handler struct {
	recommender    Recommender
	store          StatisticsStore
	requestTimeout time.Duration
	startTime      time.Time
}

// defaultRequestTimeout bounds a single recommendation computation.
const defaultRequestTimeout = 10 * time.Second

// NewHandler creates a handler backed by recommender and store.
func NewHandler(recommender Recommender, store StatisticsStore) *Handler {
	return &Handler{
		recommender:    recommender,
		store:          store,
		requestTimeout: defaultRequestTimeout,
		startTime:      time.Now(),
	}
}
