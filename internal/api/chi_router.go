// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tyremark/tyremark/internal/config"
	"github.com/tyremark/tyremark/internal/middleware"
)

// Router sets up HTTP routes using Chi.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given handler, configuring CORS and
// rate limiting from the service security settings.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler: handler,
		chiMiddleware: NewChiMiddlewareFromConfig(
			cfg.Security.CORSOrigins,
			cfg.Security.RateLimitReqs,
			cfg.Security.RateLimitWindow,
			cfg.Security.RateLimitDisabled,
		),
	}
}

// chiMiddlewareAdapter adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
// This allows the middleware package's handlers to work with Chi's r.Use().
func chiMiddlewareAdapter(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order. CORS must be
	// global to handle OPTIONS preflight.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	// Health endpoints: permissive rate limiting for monitoring tools.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Marker repository endpoints. Writes get stricter limiting since
	// every create and delete checkpoints the database.
	r.Route("/api/v1/markers", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddlewareAdapter(middleware.PrometheusMetrics))

		r.With(router.chiMiddleware.RateLimitWrite()).Post("/", router.handler.CreateMarker)
		r.With(router.chiMiddleware.RateLimitWrite()).Delete("/{id}", router.handler.DeleteMarker)
		r.With(router.chiMiddleware.RateLimit()).Get("/", router.handler.ListMarkers)
	})

	// Stats endpoint uses the default API limit.
	r.Route("/api/v1/stats", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddlewareAdapter(middleware.PrometheusMetrics))
		r.Get("/", router.handler.Stats)
	})

	// Analytics view endpoints: read-only, permissive limiting, gzip
	// compression for the larger payloads.
	r.Route("/api/v1/views", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitViews())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddlewareAdapter(middleware.PrometheusMetrics))
		r.Use(chiMiddlewareAdapter(middleware.Compression))

		r.Get("/time-series", router.handler.TimeSeriesView)
		r.Get("/model-summary", router.handler.ModelSummaryView)
		r.Get("/pressure-histogram", router.handler.PressureHistogramView)
		r.Get("/pressure-temperature", router.handler.ScatterView)
		r.Get("/heatmap", router.handler.HeatmapView)
	})

	// Prometheus metrics endpoint.
	r.Handle("/metrics", promhttp.Handler())

	// Frontend bundle with index.html fallback for client-side routing.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Get("/*", router.serveStaticOrIndex)
	})

	return r
}
