// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preprintlabs/paperscope/internal/database"
)

type authorSearchParams struct {
	Query string        `json:"q"`
	Page  database.Page `json:"page"`
}

// SearchAuthors handles GET /api/authors/search: papers whose author list
// contains the query substring.
func (h *Handler) SearchAuthors(w http.ResponseWriter, r *http.Request) {
	query, ok := requiredQueryParam(w, r, "q")
	if !ok {
		return
	}
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	h.executeGeneral(w, r, "authors.search", authorSearchParams{Query: query, Page: page},
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetPapersByAuthor(ctx, query, page)
		})
}

// ListInstitutions handles GET /api/authors: submission contact institutions
// ranked by paper count, paginated.
func (h *Handler) ListInstitutions(w http.ResponseWriter, r *http.Request) {
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	h.executeGeneral(w, r, "authors.institutions", page,
		func(ctx context.Context) (interface{}, error) {
			return h.db.ListInstitutions(ctx, page)
		})
}

// AuthorPapers handles GET /api/authors/{name}/papers.
func (h *Handler) AuthorPapers(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "author name is required", nil)
		return
	}
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	h.executeGeneral(w, r, "authors.papers", authorSearchParams{Query: name, Page: page},
		func(ctx context.Context) (interface{}, error) {
			return h.db.GetPapersByAuthor(ctx, name, page)
		})
}
