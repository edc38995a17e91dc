// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// isolate points CONFIG_PATH at a missing file and moves into an empty
// directory so no config.yaml on disk leaks into a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Chdir(t.TempDir())
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 3858 {
		t.Errorf("Server.Port = %d, want 3858", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Database.Path != "/data/filmgraph.duckdb" {
		t.Errorf("Database.Path = %q, want /data/filmgraph.duckdb", cfg.Database.Path)
	}
	if cfg.Recommend.Damping != 0.85 {
		t.Errorf("Recommend.Damping = %v, want 0.85", cfg.Recommend.Damping)
	}
	if cfg.Recommend.DefaultK != 5 || cfg.Recommend.TopFilms != 5 || cfg.Recommend.TopGenres != 5 {
		t.Errorf("Recommend defaults = %+v, want k/top_films/top_genres of 5", cfg.Recommend)
	}
	if !cfg.Recommend.CacheEnabled || cfg.Recommend.CacheTTL != 5*time.Minute {
		t.Errorf("Recommend cache = %v/%v, want enabled/5m", cfg.Recommend.CacheEnabled, cfg.Recommend.CacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, defaultConfig()) {
		t.Errorf("LoadWithKoanf() = %+v, want defaults", cfg)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("DUCKDB_PATH", ":memory:")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PAGERANK_DAMPING", "0.9")
	t.Setenv("RECOMMEND_MAX_K", "50")
	t.Setenv("RECOMMEND_CACHE_TTL", "90s")
	t.Setenv("BREAKER_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Path != ":memory:" || !cfg.Database.SeedDemoData {
		t.Errorf("Database = %+v, want :memory: with seeding", cfg.Database)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.Damping != 0.9 {
		t.Errorf("Recommend.Damping = %v, want 0.9", cfg.Recommend.Damping)
	}
	if cfg.Recommend.MaxK != 50 {
		t.Errorf("Recommend.MaxK = %d, want 50", cfg.Recommend.MaxK)
	}
	if cfg.Recommend.CacheTTL != 90*time.Second {
		t.Errorf("Recommend.CacheTTL = %v, want 90s", cfg.Recommend.CacheTTL)
	}
	if cfg.Breaker.Timeout != 5*time.Second {
		t.Errorf("Breaker.Timeout = %v, want 5s", cfg.Breaker.Timeout)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8080
recommend:
  top_films: 10
  fetch_timeout: 2s
security:
  cors_origins:
    - https://films.example
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECOMMEND_TOP_FILMS", "7")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080 from file", cfg.Server.Port)
	}
	if cfg.Recommend.TopFilms != 7 {
		t.Errorf("Recommend.TopFilms = %d, want 7 (env beats file)", cfg.Recommend.TopFilms)
	}
	if cfg.Recommend.FetchTimeout != 2*time.Second {
		t.Errorf("Recommend.FetchTimeout = %v, want 2s", cfg.Recommend.FetchTimeout)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://films.example"}) {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanf_InvalidValue(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_PORT", "70000")

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("LoadWithKoanf() error = nil, want validation failure")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"HTTP_PORT":             "server.port",
		"duckdb_path":           "database.path",
		"RECOMMEND_CACHE_SIZE":  "recommend.cache_size",
		"BREAKER_FAILURE_RATIO": "breaker.failure_ratio",
		"HOME":                  "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
