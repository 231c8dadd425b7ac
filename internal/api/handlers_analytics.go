// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package api

import (
	"context"
	"net/http"

	"github.com/preprintlabs/paperscope/internal/database"
)

// Dashboard handles GET /api/analytics/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	filter := h.buildFilter(r)
	h.executeAnalytics(w, r, "analytics.dashboard", filter,
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetDashboard(ctx, filter)
		})
}

// CountryData handles GET /api/analytics/country-data.
func (h *Handler) CountryData(w http.ResponseWriter, r *http.Request) {
	filter := h.buildFilter(r)
	h.executeAnalytics(w, r, "analytics.country_data", filter,
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetCountryData(ctx, filter)
		})
}

// Subjects handles GET /api/analytics/subjects.
func (h *Handler) Subjects(w http.ResponseWriter, r *http.Request) {
	h.executeAnalytics(w, r, "analytics.subjects", struct{}{},
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetSubjects(ctx)
		})
}

// citationsParams is the cache key shape for the citation analytics document.
type citationsParams struct {
	Filter    database.PaperFilter `json:"filter"`
	TimeRange string               `json:"time_range"`
	Limit     int                  `json:"limit"`
	SortBy    string               `json:"sort_by"`
}

// Citations handles GET /api/analytics/citations. Unknown time_range and
// sort_by values fall back to their defaults rather than erroring.
func (h *Handler) Citations(w http.ResponseWriter, r *http.Request) {
	filter := h.buildFilter(r)
	timeRange := r.URL.Query().Get("time_range")
	if timeRange == "" {
		timeRange = "all"
	}
	sortBy := r.URL.Query().Get("sort_by")
	if sortBy == "" {
		sortBy = "citations"
	}
	limits := topLimitParams{Limit: getIntParam(r, "limit", 20)}
	if !parseLimit(w, &limits) {
		return
	}
	limit := limits.Limit

	params := citationsParams{Filter: filter, TimeRange: timeRange, Limit: limit, SortBy: sortBy}
	h.executeAnalytics(w, r, "analytics.citations", params,
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetCitationsAnalytics(ctx, filter, timeRange, limit, sortBy)
		})
}

// SubjectAnalysis handles GET /api/subjects/analysis. A subjects CSV switches
// the filter to exact IN membership.
func (h *Handler) SubjectAnalysis(w http.ResponseWriter, r *http.Request) {
	filter := h.buildFilter(r)
	h.executeAnalytics(w, r, "subjects.analysis", filter,
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetSubjectAnalysis(ctx, filter)
		})
}
