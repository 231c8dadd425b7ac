// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/preprintlabs/paperscope/internal/config"
)

// rateLimit builds an IP-keyed limiter, or a no-op when rate limiting is
// disabled in config.
func rateLimit(cfg *config.APIConfig, requests int, window time.Duration) func(http.Handler) http.Handler {
	if cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(requests, window, httprate.WithKeyFuncs(httprate.KeyByIP))
}

// NewRouter assembles the chi router with the full middleware stack and every
// API route. Read-only cached analytics endpoints get a more permissive rate
// limit than the search endpoints that always reach the database planner.
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.API.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "If-None-Match"},
		MaxAge:         86400,
	}))
	r.Use(SecurityHeaders)
	r.Use(PrometheusMetrics)

	standard := rateLimit(&cfg.API, cfg.API.RateLimitReqs, cfg.API.RateLimitWindow)
	// Cached aggregates tolerate dashboard polling at 10x the default rate.
	analytics := rateLimit(&cfg.API, cfg.API.RateLimitReqs*10, cfg.API.RateLimitWindow)

	r.Route("/api", func(r chi.Router) {
		r.Route("/papers", func(r chi.Router) {
			r.Use(standard)
			r.Get("/", h.ListPapers)
			r.Get("/search", h.SearchPapers)
			r.Get("/{ppc_id}", h.GetPaper)
		})

		r.Route("/authors", func(r chi.Router) {
			r.Use(standard)
			r.Get("/", h.ListInstitutions)
			r.Get("/search", h.SearchAuthors)
			r.Get("/{name}/papers", h.AuthorPapers)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(analytics)
			r.Get("/dashboard", h.Dashboard)
			r.Get("/country-data", h.CountryData)
			r.Get("/subjects", h.Subjects)
			r.Get("/citations", h.Citations)
		})

		r.With(analytics).Get("/subjects/analysis", h.SubjectAnalysis)

		r.Route("/advanced", func(r chi.Router) {
			r.Use(analytics)
			r.Get("/publication-timeline", h.PublicationTimeline)
			r.Get("/submission-types", h.SubmissionTypes)
			r.Get("/citation-network", h.CitationNetwork)
			r.Get("/citation-sources", h.CitationSources)
			r.Get("/versions", h.Versions)
			r.Get("/licenses", h.Licenses)
			r.Get("/publication-status", h.PublicationStatus)
		})

		r.With(analytics).Get("/health", h.Health)
		r.With(analytics).Get("/cache/stats", h.CacheStats)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
