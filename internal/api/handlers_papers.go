// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preprintlabs/paperscope/internal/database"
)

// listPapersParams is the cache key shape for the listing endpoint.
type listPapersParams struct {
	Filter database.PaperFilter `json:"filter"`
	Page   database.Page        `json:"page"`
}

// ListPapers handles GET /api/papers.
func (h *Handler) ListPapers(w http.ResponseWriter, r *http.Request) {
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}
	filter := h.buildFilter(r)

	h.executeGeneral(w, r, "papers.list", listPapersParams{Filter: filter, Page: page},
		func(ctx context.Context) (interface{}, error) {
			return h.db.ListPapers(ctx, filter, page)
		})
}

type searchPapersParams struct {
	Query string        `json:"q"`
	Page  database.Page `json:"page"`
}

// SearchPapers handles GET /api/papers/search.
func (h *Handler) SearchPapers(w http.ResponseWriter, r *http.Request) {
	query, ok := requiredQueryParam(w, r, "q")
	if !ok {
		return
	}
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	h.executeGeneral(w, r, "papers.search", searchPapersParams{Query: query, Page: page},
		func(ctx context.Context) (interface{}, error) {
			return h.db.SearchPapers(ctx, query, page)
		})
}

// GetPaper handles GET /api/papers/{ppc_id}. A missing record is 404, never
// a storage failure.
func (h *Handler) GetPaper(w http.ResponseWriter, r *http.Request) {
	ppcID := chi.URLParam(r, "ppc_id")
	if ppcID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "ppc_id is required", nil)
		return
	}

	key := "papers.detail:" + ppcID
	if cached, found := h.general.Get(key); found {
		respondSuccess(w, cached, 0, true)
		return
	}

	start := time.Now()
	paper, err := h.db.GetPaper(r.Context(), ppcID)
	if errors.Is(err, database.ErrPaperNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Paper not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Failed to load paper", err)
		return
	}

	h.general.Set(key, paper)
	respondSuccess(w, paper, time.Since(start), false)
}
