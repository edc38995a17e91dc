// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/filmgraph/internal/config"
)

// isolate points the CLI at a fresh database and away from any config file.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	t.Setenv("DUCKDB_PATH", filepath.Join(dir, "filmgraph.duckdb"))
	t.Setenv("DUCKDB_MAX_MEMORY", "256MB")
	t.Setenv("LOG_LEVEL", "error")
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedAndRecommend(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	var seed struct {
		Seeded bool `json:"seeded"`
		Counts struct {
			Users int `json:"users"`
			Films int `json:"films"`
		} `json:"counts"`
	}
	if err := json.Unmarshal([]byte(out), &seed); err != nil {
		t.Fatalf("decode seed output: %v\n%s", err, out)
	}
	if !seed.Seeded || seed.Counts.Users != 5 || seed.Counts.Films != 10 {
		t.Errorf("seed output = %+v", seed)
	}

	out, err = execute(t, "", "seed")
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if !strings.Contains(out, `"seeded": false`) {
		t.Errorf("second seed should be a no-op, got %s", out)
	}

	out, err = execute(t, "", "recommend", "--user", "1", "--k", "3", "--top-films", "2")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	var result struct {
		PageRankTop struct {
			Films []string `json:"films"`
		} `json:"pagerank_top"`
		Recommendations struct {
			Films  []string `json:"films"`
			Genres []string `json:"genres"`
		} `json:"recommendations"`
		NearestNeighbors []struct {
			UserID int `json:"user_id"`
		} `json:"nearest_neighbors"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode recommend output: %v\n%s", err, out)
	}
	if len(result.PageRankTop.Films) != 2 {
		t.Errorf("pagerank films = %v, want 2 titles", result.PageRankTop.Films)
	}
	if len(result.Recommendations.Films) == 0 {
		t.Error("expected recommended films for user 1")
	}
	if len(result.NearestNeighbors) == 0 || len(result.NearestNeighbors) > 3 {
		t.Errorf("nearest neighbours = %v, want 1..3", result.NearestNeighbors)
	}
}

func TestAnalyze(t *testing.T) {
	isolate(t)

	if _, err := execute(t, "", "seed"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	out, err := execute(t, "", "analyze", "--user", "2")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, `"film_8"`) || !strings.Contains(out, `"genre_7"`) {
		t.Errorf("analysis should key scores by node id, got %s", out)
	}
}

func TestImport(t *testing.T) {
	dir := isolate(t)

	doc := `{
		"users": [{"id": 1}, {"id": 2}],
		"films": [{"id": 1, "title": "Arrival"}],
		"genres": [{"id": 1, "name": "Science Fiction"}],
		"user_films": [{"user_id": 1, "film_id": 1}],
		"user_genres": [{"user_id": 2, "genre_id": 1}],
		"ratings": [{"user_id": 2, "film_id": 1, "score": 8}]
	}`

	path := filepath.Join(dir, "records.json")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "", "import", "--file", path)
	if err != nil {
		t.Fatalf("import file: %v", err)
	}
	if !strings.Contains(out, `"users": 2`) || !strings.Contains(out, `"ratings": 1`) {
		t.Errorf("counts after import = %s", out)
	}

	out, err = execute(t, `{"users": [{"id": 3}]}`, "import", "--file", "-")
	if err != nil {
		t.Fatalf("import stdin: %v", err)
	}
	if !strings.Contains(out, `"users": 3`) {
		t.Errorf("counts after stdin import = %s", out)
	}

	if _, err := execute(t, `{"people": []}`, "import", "--file", "-"); err == nil {
		t.Error("unknown fields should be rejected")
	}
}

func TestStats_Empty(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "stats", "--user", "1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("stats = %q, want []", out)
	}
}

func TestRecommend_RequiresUser(t *testing.T) {
	isolate(t)

	if _, err := execute(t, "", "recommend"); err == nil {
		t.Error("expected missing --user to fail")
	}
}
