// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend"
)

// GetRecommendations serves the composite recommendation for one user.
//
// GET /api/v1/recommendations/user/{userID}?k=5&top_films=10&top_genres=10
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := userIDParam(r)
	if err != nil {
		respondParamError(w, r, err)
		return
	}
	k, err := intQueryParam(r, "k", h.recommender.Config().Limits.DefaultK)
	if err != nil {
		respondParamError(w, r, err)
		return
	}
	topFilms, err := intQueryParam(r, "top_films", 0)
	if err != nil {
		respondParamError(w, r, err)
		return
	}
	topGenres, err := intQueryParam(r, "top_genres", 0)
	if err != nil {
		respondParamError(w, r, err)
		return
	}

	req := RecommendationRequest{UserID: userID, K: k, TopFilms: topFilms, TopGenres: topGenres}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.recommender.Compute(ctx, recommend.Request{
		RequestID: logging.RequestIDFromContext(r.Context()),
		UserID:    req.UserID,
		K:         req.K,
		TopFilms:  req.TopFilms,
		TopGenres: req.TopGenres,
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	// A lost statistic must not fail the request.
	if _, err := h.store.RecordRecommendationStatistic(ctx, req.UserID,
		len(result.Recommendations.Films), len(result.Recommendations.Genres)); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Int("user_id", req.UserID).
			Msg("Failed to record recommendation statistic")
	}

	respondSuccess(w, r, result, start, result.Metadata.CacheHit)
}

// GetAnalysis serves the raw PageRank scores and similarity lists for one user.
//
// GET /api/v1/recommendations/user/{userID}/analysis?k=5
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := userIDParam(r)
	if err != nil {
		respondParamError(w, r, err)
		return
	}
	k, err := intQueryParam(r, "k", h.recommender.Config().Limits.DefaultK)
	if err != nil {
		respondParamError(w, r, err)
		return
	}

	req := AnalysisRequest{UserID: userID, K: k}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	analysis, err := h.recommender.Analyze(ctx, req.UserID, req.K)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, analysis, start, false)
}

// GetStatistics lists the recommendations served to one user, newest first.
//
// GET /api/v1/recommendations/user/{userID}/statistics?limit=20
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := userIDParam(r)
	if err != nil {
		respondParamError(w, r, err)
		return
	}
	limit, err := intQueryParam(r, "limit", defaultStatisticsLimit)
	if err != nil {
		respondParamError(w, r, err)
		return
	}

	req := StatisticsRequest{UserID: userID, Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	stats, err := h.store.ListRecommendationStatistics(ctx, req.UserID, req.Limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, &models.APIError{
			Code:    "DATABASE_ERROR",
			Message: "failed to list recommendation statistics",
		}, err)
		return
	}

	respondSuccess(w, r, stats, start, false)
}
