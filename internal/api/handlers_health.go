// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package api

import (
	"net/http"
	"time"

	"github.com/preprintlabs/paperscope/internal/cache"
	"github.com/preprintlabs/paperscope/internal/logging"
	"github.com/preprintlabs/paperscope/internal/models"
)

// poolStats converts a cache snapshot to the response shape.
func poolStats(s *cache.Store) models.CachePoolStats {
	st := s.GetStats()
	return models.CachePoolStats{
		Hits:      st.Hits,
		Misses:    st.Misses,
		Evictions: st.Evictions,
		Keys:      st.Keys,
		HitRate:   s.HitRate(),
	}
}

// Health handles GET /api/health. Never cached: the database ping and paper
// count are the point of the endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := &models.HealthStatus{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Database:      "connected",
		Caches: map[string]models.CachePoolStats{
			"general":   poolStats(h.general),
			"analytics": poolStats(h.analytics),
		},
	}

	httpStatus := http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		logging.Error().Err(err).Msg("Health check database ping failed")
		status.Status = "degraded"
		status.Database = "unreachable"
		httpStatus = http.StatusServiceUnavailable
	} else if total, err := h.db.CountPapers(r.Context()); err == nil {
		status.TotalPapers = total
	}

	respondJSON(w, httpStatus, &models.APIResponse{
		Status: "success",
		Data:   status,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// CacheStats handles GET /api/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]models.CachePoolStats{
		"general":   poolStats(h.general),
		"analytics": poolStats(h.analytics),
	}, 0, false)
}
