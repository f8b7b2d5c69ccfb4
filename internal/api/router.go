// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/carolgate/internal/config"
	"github.com/tomtom215/carolgate/internal/middleware"
)

// RouterConfig carries what the router needs beyond the handlers.
type RouterConfig struct {
	Security config.SecurityConfig
}

// NewRouter assembles the chi router. Route groups carry their own rate
// limit tiers: case endpoints trigger a full upstream export per request,
// raw downloads even more so.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins:   cfg.Security.CORSOrigins,
		CORSAllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		CORSExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		CORSAllowCredentials: false,
		CORSMaxAge:           86400,

		RateLimitRequests: cfg.Security.RateLimitReqs,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
		RateLimitDisabled: cfg.Security.RateLimitDisabled,
	})

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(mw.CORS())
	r.Use(APISecurityHeaders())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimitCustom(RateLimitHealth))

			r.Get("/health", h.Health)
			r.Get("/health/live", h.HealthLive)
			r.Get("/health/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimitCustom(RateLimitCases))
			r.Use(middleware.PrometheusMetrics)
			r.Use(middleware.Compression)

			r.Get("/cases", h.ListCases)
			r.Post("/cases/search", h.SearchCases)
			r.Get("/stats", h.CaseStats)
		})

		// No Compression here: export archives are already deflated.
		r.Route("/download", func(r chi.Router) {
			r.Use(mw.RateLimitCustom(RateLimitDownload))
			r.Use(middleware.PrometheusMetrics)

			r.Get("/date-range", h.DownloadRange)
			r.Get("/month", h.DownloadMonth)
			r.Get("/ntsb-number", h.DownloadByNTSBNumber)
			r.Get("/mkey", h.DownloadByMKey)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeValidation, "Method not allowed")
	})

	return r
}
