// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/filmgraph/internal/recommend/algorithms"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// PageRank contains the power iteration parameters.
	PageRank algorithms.PageRankConfig `json:"pagerank"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the neighbour count used when a request does not set one.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK caps the neighbour count; larger requests are clamped.
	// Default: 100.
	MaxK int `json:"max_k"`

	// TopFilms is the default number of PageRank film titles returned.
	// Default: 5.
	TopFilms int `json:"top_films"`

	// TopGenres is the default number of PageRank genre names returned.
	// Default: 5.
	TopGenres int `json:"top_genres"`

	// MaxGraphNodes rejects computations over larger catalogs with ErrGraphTooLarge.
	// Default: 1000000.
	MaxGraphNodes int `json:"max_graph_nodes"`

	// FetchTimeout bounds loading every record for one graph build.
	// Default: 30s.
	FetchTimeout time.Duration `json:"fetch_timeout"`
}

// CacheConfig contains result caching parameters.
type CacheConfig struct {
	// Enabled controls whether computed results are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached results.
	// Default: 1000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		PageRank: algorithms.DefaultPageRankConfig(),
		Limits: LimitsConfig{
			DefaultK:      5,
			MaxK:          100,
			TopFilms:      5,
			TopGenres:     5,
			MaxGraphNodes: 1_000_000,
			FetchTimeout:  30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if err := c.PageRank.Validate(); err != nil {
		return fmt.Errorf("pagerank: %w", err)
	}

	if c.Limits.DefaultK < 0 {
		return fmt.Errorf("limits.default_k must be non-negative, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < 1 {
		return fmt.Errorf("limits.max_k must be positive, got %d", c.Limits.MaxK)
	}
	if c.Limits.DefaultK > c.Limits.MaxK {
		return fmt.Errorf("limits.default_k (%d) exceeds limits.max_k (%d)", c.Limits.DefaultK, c.Limits.MaxK)
	}
	if c.Limits.TopFilms < 1 || c.Limits.TopGenres < 1 {
		return fmt.Errorf("limits.top_films and limits.top_genres must be positive")
	}
	if c.Limits.MaxGraphNodes < 1 {
		return fmt.Errorf("limits.max_graph_nodes must be positive, got %d", c.Limits.MaxGraphNodes)
	}
	if c.Limits.FetchTimeout <= 0 {
		return fmt.Errorf("limits.fetch_timeout must be positive, got %v", c.Limits.FetchTimeout)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when caching is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive when caching is enabled, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only.
	clone := *c
	return &clone
}
