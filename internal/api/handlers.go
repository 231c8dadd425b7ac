// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

// Package api implements the HTTP surface: the chi router, middleware stack,
// request parsing, the cache-first query executor and the JSON response
// envelope shared by every endpoint.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/preprintlabs/paperscope/internal/cache"
	"github.com/preprintlabs/paperscope/internal/config"
	"github.com/preprintlabs/paperscope/internal/database"
)

// Handler carries the shared dependencies of every endpoint. The two cache
// pools are split by workload: general for high-cardinality listing keys,
// analytics for slow-changing aggregate documents.
type Handler struct {
	db        *database.DB
	cfg       *config.Config
	general   *cache.Store
	analytics *cache.Store
	startTime time.Time
}

// NewHandler creates the API handler with its injected dependencies.
func NewHandler(db *database.DB, cfg *config.Config, general, analytics *cache.Store) *Handler {
	return &Handler{
		db:        db,
		cfg:       cfg,
		general:   general,
		analytics: analytics,
		startTime: time.Now(),
	}
}

// buildFilter extracts the shared filter parameters from the query string.
// Absent parameters leave the corresponding filter field unset; a malformed
// month is carried through and ignored at the predicate layer.
func (h *Handler) buildFilter(r *http.Request) database.PaperFilter {
	q := r.URL.Query()

	f := database.PaperFilter{
		Subject:     q.Get("subject"),
		Server:      q.Get("server"),
		Country:     q.Get("country"),
		Author:      q.Get("author"),
		Institution: q.Get("institution"),
		License:     q.Get("license"),
		Month:       q.Get("month"),
	}

	if subjects := parseCommaSeparated(q.Get("subjects")); len(subjects) > 0 {
		f.Subjects = subjects
	}

	// year is shorthand for year_from = year_to.
	if year, ok := parseOptionalInt(q.Get("year")); ok {
		f.YearFrom = &year
		yearTo := year
		f.YearTo = &yearTo
	} else {
		if from, ok := parseOptionalInt(q.Get("year_from")); ok {
			f.YearFrom = &from
		}
		if to, ok := parseOptionalInt(q.Get("year_to")); ok {
			f.YearTo = &to
		}
	}

	if min, ok := parseOptionalInt(q.Get("citation_min")); ok {
		f.CitationMin = &min
	}
	if max, ok := parseOptionalInt(q.Get("citation_max")); ok {
		f.CitationMax = &max
	}

	return f
}

// pageParams carries the pagination query parameters through validation.
// The upper page_size bound is config-driven and checked separately.
type pageParams struct {
	Page     int `validate:"min=1"`
	PageSize int `validate:"min=1"`
}

// parsePage validates the pagination parameters against the configured
// bounds. Returns false after writing a VALIDATION_ERROR response.
func (h *Handler) parsePage(w http.ResponseWriter, r *http.Request) (database.Page, bool) {
	params := pageParams{
		Page:     getIntParam(r, "page", 1),
		PageSize: getIntParam(r, "page_size", h.cfg.API.DefaultPageSize),
	}

	if apiErr := validateRequest(&params); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return database.Page{}, false
	}
	if params.PageSize > h.cfg.API.MaxPageSize {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"page_size must be at most "+itoa(h.cfg.API.MaxPageSize), nil)
		return database.Page{}, false
	}

	return database.Page{Number: params.Page, Size: params.PageSize}, true
}

// limitParams validates the limit parameter of catalog-style endpoints.
type limitParams struct {
	Limit int `validate:"min=1,max=500"`
}

// topLimitParams validates the tighter limit of top-N sections.
type topLimitParams struct {
	Limit int `validate:"min=1,max=100"`
}

// minCitationsParams validates the citation-network inclusion threshold.
type minCitationsParams struct {
	MinCitations int `validate:"min=1"`
}

// parseLimit validates a limit query parameter through params, which must be
// a pointer to a struct with a Limit field. Returns false after writing a
// VALIDATION_ERROR response.
func parseLimit(w http.ResponseWriter, params interface{}) bool {
	if apiErr := validateRequest(params); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return false
	}
	return true
}

// requiredQueryParam fetches a non-blank query parameter or writes a
// VALIDATION_ERROR response.
func requiredQueryParam(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"query parameter '"+key+"' is required", nil)
		return "", false
	}
	return value, true
}
