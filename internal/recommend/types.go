// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/filmgraph/internal/graph"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend/algorithms"
)

// Catalog resolves graph node ids to catalog entries.
// Lookups for unknown ids must return an error wrapping ErrNotFound.
type Catalog interface {
	GetFilmByID(ctx context.Context, id int) (*models.Film, error)
	GetGenreByID(ctx context.Context, id int) (*models.Genre, error)
}

// DataProvider supplies the records a preference graph is built from.
// This is typically implemented by the database layer.
type DataProvider interface {
	Catalog

	ListUsers(ctx context.Context) ([]models.User, error)
	ListFilms(ctx context.Context) ([]models.Film, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	ListUserFilms(ctx context.Context) ([]models.UserFilm, error)
	ListUserGenres(ctx context.Context) ([]models.UserGenre, error)
	ListRatings(ctx context.Context) ([]models.Rating, error)

	// DataVersion increases whenever any record changes.
	DataVersion() int64
}

// Request describes a composite recommendation query.
type Request struct {
	// RequestID identifies the request in logs; generated when empty.
	RequestID string `json:"request_id,omitempty"`

	// UserID is the target user.
	UserID int `json:"user_id"`

	// K is the number of nearest neighbours to gather. Zero yields no
	// neighbours, negative is invalid and values above Limits.MaxK are clamped.
	K int `json:"k"`

	// TopFilms and TopGenres cap the PageRank lists; zero selects the
	// configured defaults.
	TopFilms  int `json:"top_films,omitempty"`
	TopGenres int `json:"top_genres,omitempty"`
}

// TopItems holds the globally most important films and genres by title/name.
type TopItems struct {
	Films  []string `json:"films"`
	Genres []string `json:"genres"`
}

// RecommendationSet holds the film titles and genre names gathered from the
// neighbourhoods of similar users. Both lists are deduplicated and sorted.
type RecommendationSet struct {
	Films  []string `json:"films"`
	Genres []string `json:"genres"`

	// Unresolved counts neighbour ids that had no catalog entry.
	Unresolved int `json:"-"`
}

// Result is the composite answer for one user.
type Result struct {
	PageRankTop      TopItems                  `json:"pagerank_top"`
	Recommendations  RecommendationSet         `json:"recommendations"`
	SimilarUsers     []algorithms.UserScore    `json:"similar_users"`
	NearestNeighbors []algorithms.UserDistance `json:"nearest_neighbors"`
	Metadata         ResultMetadata            `json:"metadata"`
}

// Analysis exposes the raw scores behind a recommendation.
type Analysis struct {
	UserID int `json:"user_id"`

	// PageRankScores holds the score of every film and genre node, keyed
	// "{kind}_{id}" when encoded.
	PageRankScores   map[graph.NodeID]float64  `json:"pagerank_scores"`
	SimilarUsers     []algorithms.UserScore    `json:"similar_users"`
	NearestNeighbors []algorithms.UserDistance `json:"nearest_neighbors"`
	Metadata         ResultMetadata            `json:"metadata"`
}

// ResultMetadata describes how a result was produced.
type ResultMetadata struct {
	RequestID          string    `json:"request_id"`
	UserID             int       `json:"user_id"`
	K                  int       `json:"k"`
	NodeCount          int       `json:"node_count"`
	EdgeCount          int       `json:"edge_count"`
	PageRankIterations int       `json:"pagerank_iterations"`
	PageRankConverged  bool      `json:"pagerank_converged"`
	Unresolved         int       `json:"unresolved"`
	DataVersion        int64     `json:"data_version"`
	CacheHit           bool      `json:"cache_hit"`
	LatencyMS          int64     `json:"latency_ms"`
	Timestamp          time.Time `json:"timestamp"`
}

// EngineStats is a snapshot of engine counters.
// Cache fields stay zero when caching is disabled.
type EngineStats struct {
	Requests       int64   `json:"requests"`
	Errors         int64   `json:"errors"`
	CacheHits      int64   `json:"cache_hits"`
	CacheMisses    int64   `json:"cache_misses"`
	CacheEvictions int64   `json:"cache_evictions"`
	CacheHitRate   float64 `json:"cache_hit_rate"`
	CacheSize      int     `json:"cache_size"`
}
