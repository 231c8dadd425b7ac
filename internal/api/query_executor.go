// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/preprintlabs/paperscope/internal/cache"
)

// queryFunc executes one store query for the executor.
type queryFunc func(ctx context.Context) (interface{}, error)

// execute runs the cache-first flow shared by every read endpoint:
// key lookup, query on miss, store, respond. Cached values are returned
// unchanged; they are immutable once stored. A hit reports query_time_ms 0
// and cached true.
func (h *Handler) execute(w http.ResponseWriter, r *http.Request, pool *cache.Store, key string, query queryFunc) {
	if pool != nil {
		if cached, found := pool.Get(key); found {
			respondSuccess(w, cached, 0, true)
			return
		}
	}

	start := time.Now()
	data, err := query(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Failed to execute query", err)
		return
	}

	if pool != nil {
		pool.Set(key, data)
	}
	respondSuccess(w, data, time.Since(start), false)
}

// executeGeneral runs a query through the general pool (listing, search,
// detail, author endpoints).
func (h *Handler) executeGeneral(w http.ResponseWriter, r *http.Request, method string, params interface{}, query queryFunc) {
	h.execute(w, r, h.general, cache.GenerateKey(method, params), query)
}

// executeAnalytics runs a query through the analytics pool (aggregate
// documents).
func (h *Handler) executeAnalytics(w http.ResponseWriter, r *http.Request, method string, params interface{}, query queryFunc) {
	h.execute(w, r, h.analytics, cache.GenerateKey(method, params), query)
}
