// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/recommend"
	"github.com/tomtom215/filmgraph/internal/recommend/algorithms"
)

// Config holds all application configuration.
//
// Struct tags drive both layers of validation: `validate` tags are checked by
// go-playground/validator and Validate() adds the cross-field rules.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Breaker   BreakerConfig   `koanf:"breaker"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path" validate:"required"`
	MaxMemory string `koanf:"max_memory" validate:"required"`
	// Threads limits DuckDB worker threads; 0 lets DuckDB decide.
	Threads      int  `koanf:"threads" validate:"gte=0"`
	SeedDemoData bool `koanf:"seed_demo_data"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"loglevel"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	Damping       float64       `koanf:"damping" validate:"gt=0,lt=1"`
	Tolerance     float64       `koanf:"tolerance" validate:"gt=0"`
	MaxIterations int           `koanf:"max_iterations" validate:"gte=1"`
	DefaultK      int           `koanf:"default_k" validate:"gte=0"`
	MaxK          int           `koanf:"max_k" validate:"gte=1"`
	TopFilms      int           `koanf:"top_films" validate:"gte=1"`
	TopGenres     int           `koanf:"top_genres" validate:"gte=1"`
	MaxGraphNodes int           `koanf:"max_graph_nodes" validate:"gte=1"`
	FetchTimeout  time.Duration `koanf:"fetch_timeout" validate:"gt=0"`
	CacheEnabled  bool          `koanf:"cache_enabled"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`
	CacheSize     int           `koanf:"cache_size"`

	// RefreshInterval is how often the data version is polled to rebuild
	// the graph in the background. Zero disables the refresher.
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"gte=0"`
}

// SecurityConfig holds request limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// BreakerConfig holds circuit breaker settings for data-store reads.
type BreakerConfig struct {
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32 `koanf:"max_requests" validate:"gte=1"`
	// Interval is the closed-state period after which counts are cleared.
	Interval time.Duration `koanf:"interval" validate:"gte=0"`
	// Timeout is how long the breaker stays open before going half-open.
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	MinRequests  uint32        `koanf:"min_requests" validate:"gte=1"`
	FailureRatio float64       `koanf:"failure_ratio" validate:"gt=0,lte=1"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggerConfig converts the section to the logging package configuration.
func (l LoggingConfig) LoggerConfig() logging.Config {
	return logging.Config{
		Level:  l.Level,
		Format: l.Format,
		Caller: l.Caller,
	}
}

// EngineConfig converts the section to the recommendation engine configuration.
func (r RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		PageRank: algorithms.PageRankConfig{
			Damping:       r.Damping,
			Tolerance:     r.Tolerance,
			MaxIterations: r.MaxIterations,
		},
		Limits: recommend.LimitsConfig{
			DefaultK:      r.DefaultK,
			MaxK:          r.MaxK,
			TopFilms:      r.TopFilms,
			TopGenres:     r.TopGenres,
			MaxGraphNodes: r.MaxGraphNodes,
			FetchTimeout:  r.FetchTimeout,
		},
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			TTL:        r.CacheTTL,
			MaxEntries: r.CacheSize,
		},
	}
}
