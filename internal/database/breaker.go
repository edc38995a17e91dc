// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/filmgraph/internal/config"
	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/metrics"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend"
)

// breakerName labels the data-store circuit breaker in logs and metrics.
const breakerName = "data-store"

// BreakerProvider wraps a recommend.DataProvider with a circuit breaker.
//
// Catalog misses (recommend.ErrNotFound) and caller cancellation count as
// successes: neither says anything about the health of the store.
type BreakerProvider struct {
	inner recommend.DataProvider
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

// NewBreakerProvider creates a provider guarded by a breaker built from cfg.
func NewBreakerProvider(inner recommend.DataProvider, cfg *config.BreakerConfig) *BreakerProvider {
	name := breakerName

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, recommend.ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
	})

	return &BreakerProvider{inner: inner, cb: cb, name: name}
}

// State returns the current breaker state.
func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}

// guard runs fn through the breaker and converts the result back to T.
func guard[T any](p *BreakerProvider, fn func() (T, error)) (T, error) {
	var zero T

	result, err := p.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(p.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return zero, fmt.Errorf("%s: %w", p.name, err)
		case errors.Is(err, recommend.ErrNotFound):
			metrics.CircuitBreakerRequests.WithLabelValues(p.name, "success").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(p.name, "failure").Inc()
			counts := p.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(p.name).Set(float64(counts.ConsecutiveFailures))
		}
		return zero, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(p.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(p.name).Set(0)

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// ListUsers implements recommend.DataProvider.
func (p *BreakerProvider) ListUsers(ctx context.Context) ([]models.User, error) {
	return guard(p, func() ([]models.User, error) { return p.inner.ListUsers(ctx) })
}

// ListFilms implements recommend.DataProvider.
func (p *BreakerProvider) ListFilms(ctx context.Context) ([]models.Film, error) {
	return guard(p, func() ([]models.Film, error) { return p.inner.ListFilms(ctx) })
}

// ListGenres implements recommend.DataProvider.
func (p *BreakerProvider) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return guard(p, func() ([]models.Genre, error) { return p.inner.ListGenres(ctx) })
}

// ListUserFilms implements recommend.DataProvider.
func (p *BreakerProvider) ListUserFilms(ctx context.Context) ([]models.UserFilm, error) {
	return guard(p, func() ([]models.UserFilm, error) { return p.inner.ListUserFilms(ctx) })
}

// ListUserGenres implements recommend.DataProvider.
func (p *BreakerProvider) ListUserGenres(ctx context.Context) ([]models.UserGenre, error) {
	return guard(p, func() ([]models.UserGenre, error) { return p.inner.ListUserGenres(ctx) })
}

// ListRatings implements recommend.DataProvider.
func (p *BreakerProvider) ListRatings(ctx context.Context) ([]models.Rating, error) {
	return guard(p, func() ([]models.Rating, error) { return p.inner.ListRatings(ctx) })
}

// GetFilmByID implements recommend.Catalog.
func (p *BreakerProvider) GetFilmByID(ctx context.Context, id int) (*models.Film, error) {
	return guard(p, func() (*models.Film, error) { return p.inner.GetFilmByID(ctx, id) })
}

// GetGenreByID implements recommend.Catalog.
func (p *BreakerProvider) GetGenreByID(ctx context.Context, id int) (*models.Genre, error) {
	return guard(p, func() (*models.Genre, error) { return p.inner.GetGenreByID(ctx, id) })
}

// DataVersion implements recommend.DataProvider. It reads process memory and
// bypasses the breaker.
func (p *BreakerProvider) DataVersion() int64 {
	return p.inner.DataVersion()
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

var _ recommend.DataProvider = (*BreakerProvider)(nil)
