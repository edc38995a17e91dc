// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend"
)

type fakeRecommender struct {
	mu       sync.Mutex
	cfg      *recommend.Config
	result   *recommend.Result
	analysis *recommend.Analysis
	err      error
	requests []recommend.Request
	analyzed []int
}

func (f *fakeRecommender) Compute(_ context.Context, req recommend.Request) (*recommend.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRecommender) Analyze(_ context.Context, userID, k int) (*recommend.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyzed = append(f.analyzed, k)
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

func (f *fakeRecommender) Config() *recommend.Config { return f.cfg }

func (f *fakeRecommender) Stats() recommend.EngineStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return recommend.EngineStats{Requests: int64(len(f.requests))}
}

type fakeStore struct {
	mu       sync.Mutex
	recorded []models.RecommendationStatistic
	listed   []int
	recErr   error
	listErr  error
	pingErr  error
}

func (s *fakeStore) RecordRecommendationStatistic(_ context.Context, userID, filmCount, genreCount int) (*models.RecommendationStatistic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recErr != nil {
		return nil, s.recErr
	}
	stat := models.RecommendationStatistic{
		ID:         int64(len(s.recorded) + 1),
		UserID:     userID,
		FilmCount:  filmCount,
		GenreCount: genreCount,
		CreatedAt:  time.Now(),
	}
	s.recorded = append(s.recorded, stat)
	return &stat, nil
}

func (s *fakeStore) ListRecommendationStatistics(_ context.Context, userID, limit int) ([]models.RecommendationStatistic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listed = append(s.listed, limit)
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []models.RecommendationStatistic{}
	for i := len(s.recorded) - 1; i >= 0 && len(out) < limit; i-- {
		if s.recorded[i].UserID == userID {
			out = append(out, s.recorded[i])
		}
	}
	return out, nil
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func sampleResult() *recommend.Result {
	return &recommend.Result{
		PageRankTop: recommend.TopItems{
			Films:  []string{"Film A", "Film B"},
			Genres: []string{"Drama"},
		},
		Recommendations: recommend.RecommendationSet{
			Films:  []string{"Film B"},
			Genres: []string{"Drama", "Comedy"},
		},
		Metadata: recommend.ResultMetadata{UserID: 1, K: 5, CacheHit: true},
	}
}

func newTestServer(t *testing.T, rec *fakeRecommender, store *fakeStore) http.Handler {
	t.Helper()
	if rec.cfg == nil {
		rec.cfg = recommend.DefaultConfig()
	}
	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		RateLimitDisabled:  true,
	})
	return NewRouter(NewHandler(rec, store), mw).Setup()
}

func doGet(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, models.APIResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %s: %v (body %q)", path, err, rec.Body.String())
	}
	return rec, resp
}

func TestGetRecommendations_Success(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{result: sampleResult()}
	store := &fakeStore{}
	h := newTestServer(t, rec, store)

	w, resp := doGet(t, h, "/api/v1/recommendations/user/1?k=3&top_films=2&top_genres=4")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if resp.Status != "success" {
		t.Errorf("status field = %q, want success", resp.Status)
	}
	if !resp.Metadata.Cached {
		t.Error("metadata.cached should mirror the engine cache hit")
	}
	if resp.Metadata.RequestID == "" {
		t.Error("metadata.request_id missing")
	}
	if w.Header().Get("ETag") == "" {
		t.Error("ETag header missing")
	}

	if len(rec.requests) != 1 {
		t.Fatalf("engine calls = %d, want 1", len(rec.requests))
	}
	got := rec.requests[0]
	if got.UserID != 1 || got.K != 3 || got.TopFilms != 2 || got.TopGenres != 4 {
		t.Errorf("engine request = %+v", got)
	}
	if got.RequestID != resp.Metadata.RequestID {
		t.Errorf("engine request id = %q, response = %q", got.RequestID, resp.Metadata.RequestID)
	}

	if len(store.recorded) != 1 {
		t.Fatalf("statistics recorded = %d, want 1", len(store.recorded))
	}
	if s := store.recorded[0]; s.FilmCount != 1 || s.GenreCount != 2 {
		t.Errorf("statistic = %+v, want 1 film and 2 genres", s)
	}
}

func TestGetRecommendations_DefaultK(t *testing.T) {
	t.Parallel()

	cfg := recommend.DefaultConfig()
	cfg.Limits.DefaultK = 7
	rec := &fakeRecommender{cfg: cfg, result: sampleResult()}
	h := newTestServer(t, rec, &fakeStore{})

	w, _ := doGet(t, h, "/api/v1/recommendations/user/2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if rec.requests[0].K != 7 {
		t.Errorf("k = %d, want configured default 7", rec.requests[0].K)
	}
	if rec.requests[0].TopFilms != 0 || rec.requests[0].TopGenres != 0 {
		t.Errorf("top-N should be left to the engine defaults, got %+v", rec.requests[0])
	}
}

func TestGetRecommendations_ExplicitZeroK(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{result: sampleResult()}
	h := newTestServer(t, rec, &fakeStore{})

	w, _ := doGet(t, h, "/api/v1/recommendations/user/2?k=0")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if rec.requests[0].K != 0 {
		t.Errorf("k = %d, want 0", rec.requests[0].K)
	}
}

func TestGetRecommendations_BadParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		path  string
		field string
	}{
		{"non-numeric user", "/api/v1/recommendations/user/abc", "user_id"},
		{"zero user", "/api/v1/recommendations/user/0", "user_id"},
		{"negative user", "/api/v1/recommendations/user/-4", "user_id"},
		{"non-numeric k", "/api/v1/recommendations/user/1?k=five", "k"},
		{"negative k", "/api/v1/recommendations/user/1?k=-1", "k"},
		{"top films too large", "/api/v1/recommendations/user/1?top_films=101", "top_films"},
		{"negative top genres", "/api/v1/recommendations/user/1?top_genres=-2", "top_genres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &fakeRecommender{result: sampleResult()}
			h := newTestServer(t, rec, &fakeStore{})

			w, resp := doGet(t, h, tt.path)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
				t.Fatalf("error = %+v, want VALIDATION_ERROR", resp.Error)
			}
			if got := resp.Error.Details["field"]; got != tt.field {
				t.Errorf("details.field = %v, want %s", got, tt.field)
			}
			if len(rec.requests) != 0 {
				t.Error("engine must not be called for invalid input")
			}
		})
	}
}

func TestGetRecommendations_EngineErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid argument", fmt.Errorf("%w: k must be non-negative", recommend.ErrInvalidArgument), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"graph too large", fmt.Errorf("%w: 12 nodes", recommend.ErrGraphTooLarge), http.StatusServiceUnavailable, "GRAPH_TOO_LARGE"},
		{"fetch", fmt.Errorf("%w: users: connection reset", recommend.ErrFetch), http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &fakeStore{}
			h := newTestServer(t, &fakeRecommender{err: tt.err}, store)

			w, resp := doGet(t, h, "/api/v1/recommendations/user/1")
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if resp.Status != "error" || resp.Error == nil || resp.Error.Code != tt.code {
				t.Errorf("response = %+v, want code %s", resp, tt.code)
			}
			if len(store.recorded) != 0 {
				t.Error("failed requests must not record statistics")
			}
		})
	}
}

func TestGetRecommendations_StatisticFailureIgnored(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, &fakeRecommender{result: sampleResult()}, &fakeStore{recErr: errors.New("disk full")})

	w, resp := doGet(t, h, "/api/v1/recommendations/user/1")
	if w.Code != http.StatusOK || resp.Status != "success" {
		t.Errorf("status = %d %q, want 200 success", w.Code, resp.Status)
	}
}

func TestGetAnalysis(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{analysis: &recommend.Analysis{UserID: 3}}
	h := newTestServer(t, rec, &fakeStore{})

	w, resp := doGet(t, h, "/api/v1/recommendations/user/3/analysis?k=2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if resp.Metadata.Cached {
		t.Error("analysis is never cached")
	}
	if len(rec.analyzed) != 1 || rec.analyzed[0] != 2 {
		t.Errorf("analyze k = %v, want [2]", rec.analyzed)
	}

	w, _ = doGet(t, h, "/api/v1/recommendations/user/3/analysis?k=-3")
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative k status = %d, want 400", w.Code)
	}
}

func TestGetStatistics(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	h := newTestServer(t, &fakeRecommender{result: sampleResult()}, store)

	for i := 0; i < 3; i++ {
		doGet(t, h, "/api/v1/recommendations/user/1")
	}

	w, resp := doGet(t, h, "/api/v1/recommendations/user/1/statistics?limit=2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	items, ok := resp.Data.([]interface{})
	if !ok || len(items) != 2 {
		t.Fatalf("data = %#v, want 2 statistics", resp.Data)
	}

	doGet(t, h, "/api/v1/recommendations/user/1/statistics")
	if got := store.listed[len(store.listed)-1]; got != defaultStatisticsLimit {
		t.Errorf("default limit = %d, want %d", got, defaultStatisticsLimit)
	}

	w, _ = doGet(t, h, "/api/v1/recommendations/user/1/statistics?limit=0")
	if w.Code != http.StatusBadRequest {
		t.Errorf("limit=0 status = %d, want 400", w.Code)
	}
}

func TestGetStatistics_StoreError(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, &fakeRecommender{}, &fakeStore{listErr: errors.New("closed")})

	w, resp := doGet(t, h, "/api/v1/recommendations/user/1/statistics")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if resp.Error == nil || resp.Error.Code != "DATABASE_ERROR" {
		t.Errorf("error = %+v, want DATABASE_ERROR", resp.Error)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, &fakeRecommender{requests: make([]recommend.Request, 2)}, &fakeStore{})
	w, resp := doGet(t, h, "/api/v1/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	data, _ := resp.Data.(map[string]interface{})
	if data["status"] != "healthy" || data["database_connected"] != true {
		t.Errorf("health = %v", data)
	}
	engine, _ := data["engine"].(map[string]interface{})
	if engine["requests"] != float64(2) {
		t.Errorf("engine stats = %v, want requests 2", data["engine"])
	}

	h = newTestServer(t, &fakeRecommender{}, &fakeStore{pingErr: errors.New("gone")})
	w, resp = doGet(t, h, "/api/v1/health")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
	data, _ = resp.Data.(map[string]interface{})
	if data["status"] != "degraded" {
		t.Errorf("status = %v, want degraded", data["status"])
	}
}
