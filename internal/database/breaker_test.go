// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/filmgraph/internal/config"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend"
)

// stubProvider is a recommend.DataProvider whose list calls fail with listErr.
type stubProvider struct {
	listErr error
	calls   int
}

func (s *stubProvider) ListUsers(context.Context) ([]models.User, error) {
	s.calls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return []models.User{{ID: 1, Username: "alice"}}, nil
}

func (s *stubProvider) ListFilms(context.Context) ([]models.Film, error) {
	return []models.Film{}, s.listErr
}

func (s *stubProvider) ListGenres(context.Context) ([]models.Genre, error) {
	return []models.Genre{}, s.listErr
}

func (s *stubProvider) ListUserFilms(context.Context) ([]models.UserFilm, error) {
	return []models.UserFilm{}, s.listErr
}

func (s *stubProvider) ListUserGenres(context.Context) ([]models.UserGenre, error) {
	return []models.UserGenre{}, s.listErr
}

func (s *stubProvider) ListRatings(context.Context) ([]models.Rating, error) {
	return []models.Rating{}, s.listErr
}

func (s *stubProvider) GetFilmByID(_ context.Context, id int) (*models.Film, error) {
	s.calls++
	return nil, fmt.Errorf("film %d: %w", id, recommend.ErrNotFound)
}

func (s *stubProvider) GetGenreByID(_ context.Context, id int) (*models.Genre, error) {
	return &models.Genre{ID: id, Name: "Comedy"}, nil
}

func (s *stubProvider) DataVersion() int64 { return 7 }

func testBreakerConfig() *config.BreakerConfig {
	return &config.BreakerConfig{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  2,
		FailureRatio: 0.5,
	}
}

func TestBreakerProvider_PassesThrough(t *testing.T) {
	t.Parallel()

	inner := &stubProvider{}
	p := NewBreakerProvider(inner, testBreakerConfig())
	ctx := context.Background()

	users, err := p.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 1 || users[0].Username != "alice" {
		t.Errorf("ListUsers() = %+v, want alice", users)
	}

	genre, err := p.GetGenreByID(ctx, 5)
	if err != nil || genre.Name != "Comedy" {
		t.Errorf("GetGenreByID() = %+v, %v", genre, err)
	}

	if v := p.DataVersion(); v != 7 {
		t.Errorf("DataVersion() = %d, want 7", v)
	}
}

func TestBreakerProvider_OpensOnFailures(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("io error")
	inner := &stubProvider{listErr: storeErr}
	p := NewBreakerProvider(inner, testBreakerConfig())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := p.ListUsers(ctx); !errors.Is(err, storeErr) {
			t.Fatalf("ListUsers() call %d error = %v, want store error", i, err)
		}
	}
	if p.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", p.State())
	}

	_, err := p.ListUsers(ctx)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("ListUsers() with open circuit error = %v, want ErrOpenState", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 (open circuit short-circuits)", inner.calls)
	}
}

func TestBreakerProvider_NotFoundIsNotFailure(t *testing.T) {
	t.Parallel()

	inner := &stubProvider{}
	p := NewBreakerProvider(inner, testBreakerConfig())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := p.GetFilmByID(ctx, i)
		if !errors.Is(err, recommend.ErrNotFound) {
			t.Fatalf("GetFilmByID() error = %v, want ErrNotFound", err)
		}
	}
	if p.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed after catalog misses", p.State())
	}
	if inner.calls != 5 {
		t.Errorf("inner calls = %d, want 5", inner.calls)
	}
}

func TestStateHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		f     float64
		s     string
	}{
		{gobreaker.StateClosed, 0, "closed"},
		{gobreaker.StateHalfOpen, 1, "half-open"},
		{gobreaker.StateOpen, 2, "open"},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.f {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.f)
		}
		if got := stateToString(tt.state); got != tt.s {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.s)
		}
	}
}
