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

// PublicationTimeline handles GET /api/advanced/publication-timeline.
func (h *Handler) PublicationTimeline(w http.ResponseWriter, r *http.Request) {
	filter := h.buildFilter(r)
	h.executeAnalytics(w, r, "advanced.publication_timeline", filter,
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetPublicationTimeline(ctx, filter)
		})
}

// SubmissionTypes handles GET /api/advanced/submission-types.
func (h *Handler) SubmissionTypes(w http.ResponseWriter, r *http.Request) {
	filter := h.buildFilter(r)
	h.executeAnalytics(w, r, "advanced.submission_types", filter,
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetSubmissionTypeAnalytics(ctx, filter)
		})
}

type networkParams struct {
	Filter       database.PaperFilter `json:"filter"`
	Limit        int                  `json:"limit"`
	MinCitations int                  `json:"min_citations,omitempty"`
}

// CitationNetwork handles GET /api/advanced/citation-network. Papers below
// the min_citations threshold (default 10) are left out of the graph.
func (h *Handler) CitationNetwork(w http.ResponseWriter, r *http.Request) {
	filter := h.buildFilter(r)
	limits := limitParams{Limit: getIntParam(r, "limit", 100)}
	if !parseLimit(w, &limits) {
		return
	}
	minCites := minCitationsParams{MinCitations: getIntParam(r, "min_citations", 10)}
	if !parseLimit(w, &minCites) {
		return
	}
	limit := limits.Limit
	minCitations := minCites.MinCitations

	params := networkParams{Filter: filter, Limit: limit, MinCitations: minCitations}
	h.executeAnalytics(w, r, "advanced.citation_network", params,
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetCitationNetwork(ctx, filter, limit, minCitations)
		})
}

// CitationSources handles GET /api/advanced/citation-sources.
func (h *Handler) CitationSources(w http.ResponseWriter, r *http.Request) {
	filter := h.buildFilter(r)
	limits := limitParams{Limit: getIntParam(r, "limit", 50)}
	if !parseLimit(w, &limits) {
		return
	}
	limit := limits.Limit

	h.executeAnalytics(w, r, "advanced.citation_sources", networkParams{Filter: filter, Limit: limit},
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetCitationSources(ctx, filter, limit)
		})
}

// Versions handles GET /api/advanced/versions.
func (h *Handler) Versions(w http.ResponseWriter, r *http.Request) {
	filter := h.buildFilter(r)
	h.executeAnalytics(w, r, "advanced.versions", filter,
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetVersionAnalytics(ctx, filter)
		})
}

// Licenses handles GET /api/advanced/licenses.
func (h *Handler) Licenses(w http.ResponseWriter, r *http.Request) {
	filter := h.buildFilter(r)
	h.executeAnalytics(w, r, "advanced.licenses", filter,
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetLicenseAnalytics(ctx, filter)
		})
}

// PublicationStatus handles GET /api/advanced/publication-status.
func (h *Handler) PublicationStatus(w http.ResponseWriter, r *http.Request) {
	filter := h.buildFilter(r)
	h.executeAnalytics(w, r, "advanced.publication_status", filter,
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetPublicationStatus(ctx, filter)
		})
}
