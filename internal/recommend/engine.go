// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package recommend

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/filmgraph/internal/cache"
	"github.com/tomtom215/filmgraph/internal/graph"
	"github.com/tomtom215/filmgraph/internal/metrics"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend/algorithms"
)

// Engine computes graph-based recommendations from a DataProvider.
// Every computation builds a fresh graph; results may be cached per data version.
// It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	provider DataProvider

	// cache is nil when caching is disabled.
	cache *cache.Cache[string, *Result]

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, provider DataProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("data provider is required")
	}

	e := &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		provider: provider,
	}
	if cfg.Cache.Enabled {
		e.cache = cache.New[string, *Result](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// Compute returns the PageRank top lists, the aggregated recommendations,
// the collaborative filtering matches and the nearest neighbours for one user.
// The graph is built once and shared by every scorer.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Compute(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req, err := e.prepareRequest(req)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	version := e.provider.DataVersion()
	key := e.cacheKey(req, version)
	if resp := e.tryGetCachedResult(key, req, start, logger); resp != nil {
		metrics.RecordRecommendation("compute", time.Since(start), nil)
		return resp, nil
	}

	res, err := e.compute(ctx, req, version, logger)
	metrics.RecordRecommendation("compute", time.Since(start), err)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	res.Metadata.LatencyMS = time.Since(start).Milliseconds()
	e.storeCache(key, res)

	logger.Debug().
		Int("films", len(res.Recommendations.Films)).
		Int("genres", len(res.Recommendations.Genres)).
		Int("similar_users", len(res.SimilarUsers)).
		Int64("latency_ms", res.Metadata.LatencyMS).
		Msg("recommendation complete")

	return res, nil
}

// compute performs an uncached composite computation.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) compute(ctx context.Context, req Request, version int64, logger zerolog.Logger) (*Result, error) {
	g, err := e.buildGraph(ctx)
	if err != nil {
		return nil, err
	}

	pr, err := e.pageRank(ctx, g, logger)
	if err != nil {
		return nil, err
	}
	ranked := algorithms.RankItems(pr.Scores)

	topFilms, unresolvedFilms, err := resolveTop(ctx, e.provider, algorithms.FilterKind(ranked, graph.KindFilm), req.TopFilms)
	if err != nil {
		return nil, err
	}
	topGenres, unresolvedGenres, err := resolveTop(ctx, e.provider, algorithms.FilterKind(ranked, graph.KindGenre), req.TopGenres)
	if err != nil {
		return nil, err
	}

	similar := algorithms.SimilarUsers(g, req.UserID)
	nearest, err := algorithms.KNearestUsers(g, req.UserID, req.K)
	if err != nil {
		return nil, err
	}

	recs, err := aggregate(ctx, g, similar, nearest, e.provider)
	if err != nil {
		return nil, fmt.Errorf("aggregate recommendations: %w", err)
	}

	unresolved := unresolvedFilms + unresolvedGenres + recs.Unresolved
	if unresolved > 0 {
		logger.Warn().Int("unresolved", unresolved).Msg("skipped graph nodes without catalog entries")
	}
	metrics.RecordUnresolved("film", unresolvedFilms)
	metrics.RecordUnresolved("genre", unresolvedGenres)
	metrics.RecordUnresolved("neighbourhood", recs.Unresolved)

	return &Result{
		PageRankTop:      TopItems{Films: topFilms, Genres: topGenres},
		Recommendations:  recs,
		SimilarUsers:     similar,
		NearestNeighbors: nearest,
		Metadata: ResultMetadata{
			RequestID:          req.RequestID,
			UserID:             req.UserID,
			K:                  req.K,
			NodeCount:          g.NodeCount(),
			EdgeCount:          g.EdgeCount(),
			PageRankIterations: pr.Iterations,
			PageRankConverged:  pr.Converged,
			Unresolved:         unresolved,
			DataVersion:        version,
			Timestamp:          time.Now(),
		},
	}, nil
}

// Analyze returns the raw PageRank scores of every film and genre together
// with the similarity results for userID. Analyses are never cached.
func (e *Engine) Analyze(ctx context.Context, userID, k int) (*Analysis, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req, err := e.prepareRequest(Request{UserID: userID, K: k})
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	logger := e.createRequestLogger(req)

	analysis, err := e.analyze(ctx, req, logger)
	metrics.RecordRecommendation("analyze", time.Since(start), err)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	analysis.Metadata.LatencyMS = time.Since(start).Milliseconds()
	return analysis, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) analyze(ctx context.Context, req Request, logger zerolog.Logger) (*Analysis, error) {
	version := e.provider.DataVersion()
	g, err := e.buildGraph(ctx)
	if err != nil {
		return nil, err
	}

	pr, err := e.pageRank(ctx, g, logger)
	if err != nil {
		return nil, err
	}

	scores := make(map[graph.NodeID]float64, len(pr.Scores))
	for node, score := range pr.Scores {
		if node.Kind != graph.KindUser {
			scores[node] = score
		}
	}

	nearest, err := algorithms.KNearestUsers(g, req.UserID, req.K)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		UserID:           req.UserID,
		PageRankScores:   scores,
		SimilarUsers:     algorithms.SimilarUsers(g, req.UserID),
		NearestNeighbors: nearest,
		Metadata: ResultMetadata{
			RequestID:          req.RequestID,
			UserID:             req.UserID,
			K:                  req.K,
			NodeCount:          g.NodeCount(),
			EdgeCount:          g.EdgeCount(),
			PageRankIterations: pr.Iterations,
			PageRankConverged:  pr.Converged,
			DataVersion:        version,
			Timestamp:          time.Now(),
		},
	}, nil
}

// BuildGraph loads every record and builds a fresh preference graph.
func (e *Engine) BuildGraph(ctx context.Context) (*graph.Graph, error) {
	return e.buildGraph(ctx)
}

// buildGraph fetches records and builds the graph, recording build metrics.
func (e *Engine) buildGraph(ctx context.Context) (*graph.Graph, error) {
	start := time.Now()

	records, err := e.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	if n := graph.CountNodes(records); n > e.config.Limits.MaxGraphNodes {
		return nil, fmt.Errorf("%w: %d nodes exceed limit of %d", ErrGraphTooLarge, n, e.config.Limits.MaxGraphNodes)
	}

	g := graph.Build(records)
	metrics.RecordGraphBuild(g.NodeCount(), g.EdgeCount(), time.Since(start))
	return g, nil
}

// loadRecords fetches all six record sets concurrently. The first failure
// cancels the remaining fetches and is returned wrapped in ErrFetch.
func (e *Engine) loadRecords(ctx context.Context) (*models.Records, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.Limits.FetchTimeout)
	defer cancel()

	var rec models.Records
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() (err error) {
		rec.Users, err = e.provider.ListUsers(ctx)
		return wrapFetch("users", err)
	})
	eg.Go(func() (err error) {
		rec.Films, err = e.provider.ListFilms(ctx)
		return wrapFetch("films", err)
	})
	eg.Go(func() (err error) {
		rec.Genres, err = e.provider.ListGenres(ctx)
		return wrapFetch("genres", err)
	})
	eg.Go(func() (err error) {
		rec.UserFilms, err = e.provider.ListUserFilms(ctx)
		return wrapFetch("user films", err)
	})
	eg.Go(func() (err error) {
		rec.UserGenres, err = e.provider.ListUserGenres(ctx)
		return wrapFetch("user genres", err)
	})
	eg.Go(func() (err error) {
		rec.Ratings, err = e.provider.ListRatings(ctx)
		return wrapFetch("ratings", err)
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &rec, nil
}

func wrapFetch(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrFetch, what, err)
}

// pageRank runs PageRank with the configured parameters and logs non-convergence.
func (e *Engine) pageRank(ctx context.Context, g *graph.Graph, logger zerolog.Logger) (algorithms.PageRankResult, error) {
	pr, err := algorithms.PageRank(ctx, g, e.config.PageRank)
	if err != nil {
		return algorithms.PageRankResult{}, fmt.Errorf("pagerank: %w", err)
	}
	metrics.RecordPageRank(pr.Iterations, pr.Converged)
	if !pr.Converged {
		logger.Warn().
			Int("iterations", pr.Iterations).
			Int("nodes", g.NodeCount()).
			Msg("pagerank did not converge, using last iterate")
	}
	return pr, nil
}

// prepareRequest validates arguments, applies defaults and generates a request ID.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if req.K < 0 {
		return req, fmt.Errorf("%w: k must be non-negative, got %d", ErrInvalidArgument, req.K)
	}
	if req.TopFilms < 0 || req.TopGenres < 0 {
		return req, fmt.Errorf("%w: top counts must be non-negative", ErrInvalidArgument)
	}

	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}
	if req.TopFilms == 0 {
		req.TopFilms = e.config.Limits.TopFilms
	}
	if req.TopGenres == 0 {
		req.TopGenres = e.config.Limits.TopGenres
	}
	return req, nil
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int("user_id", req.UserID).
		Int("k", req.K).
		Logger()
}

// cacheKey derives the cache key for a request at a data version.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cacheKey(req Request, version int64) string {
	return cache.GenerateKey("compute", struct {
		UserID    int   `json:"user_id"`
		K         int   `json:"k"`
		TopFilms  int   `json:"top_films"`
		TopGenres int   `json:"top_genres"`
		Version   int64 `json:"version"`
	}{req.UserID, req.K, req.TopFilms, req.TopGenres, version})
}

// tryGetCachedResult returns a copy of a cached result, or nil on a miss.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResult(key string, req Request, start time.Time, logger zerolog.Logger) *Result {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(key)
	if !ok {
		metrics.RecommendCacheMisses.Inc()
		return nil
	}

	metrics.RecommendCacheHits.Inc()

	resp := *cached
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	logger.Debug().Msg("cache hit")
	return &resp
}

// storeCache stores the result if caching is enabled.
func (e *Engine) storeCache(key string, res *Result) {
	if e.cache != nil {
		e.cache.Set(key, res)
	}
}

// InvalidateCache drops every cached result.
func (e *Engine) InvalidateCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// Stats returns a snapshot of engine counters.
func (e *Engine) Stats() EngineStats {
	stats := EngineStats{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
	}
	if e.cache != nil {
		cs := e.cache.Stats()
		stats.CacheHits = cs.Hits
		stats.CacheMisses = cs.Misses
		stats.CacheEvictions = cs.Evictions
		stats.CacheHitRate = cs.HitRate()
		stats.CacheSize = cs.Size
	}
	return stats
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
