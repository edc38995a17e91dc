// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/filmgraph/internal/middleware"
)

// slowRequestThreshold triggers a warn-level access log entry.
const slowRequestThreshold = 2 * time.Second

// Router builds the Chi route tree.
type Router struct {
	handler *Handler
	chiMW   *ChiMiddleware
}

// NewRouter creates a router for handler.
func NewRouter(handler *Handler, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMW: chiMW}
}

// Setup returns the root http.Handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog(slowRequestThreshold))
	r.Use(router.chiMW.CORS())

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(APISecurityHeaders())

		r.With(router.chiMW.RateLimitHealth()).Get("/health", router.handler.Health)

		r.Route("/recommendations/user/{userID}", func(r chi.Router) {
			r.Use(router.chiMW.RateLimit())
			r.Get("/", router.handler.GetRecommendations)
			r.Get("/analysis", router.handler.GetAnalysis)
			r.Get("/statistics", router.handler.GetStatistics)
		})
	})

	return r
}
