// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend"
)

// healthPingTimeout bounds the database ping.
const healthPingTimeout = 2 * time.Second

// healthResponse adds the engine counters to the health payload.
type healthResponse struct {
	models.HealthStatus
	Engine recommend.EngineStats `json:"engine"`
}

// Health reports liveness and engine counters. The status is "degraded"
// with 503 when the database does not answer a ping.
//
// GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	status := healthResponse{
		HealthStatus: models.HealthStatus{
			Status:            "healthy",
			Version:           Version,
			DatabaseConnected: true,
			Uptime:            time.Since(h.startTime).Seconds(),
		},
		Engine: h.recommender.Stats(),
	}
	code := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		status.Status = "degraded"
		status.DatabaseConnected = false
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, &models.APIResponse{
		Status: "success",
		Data:   status,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
