// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package database

import (
	"database/sql"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/preprintlabs/paperscope/internal/models"
)

// parseCitationSources decodes the raw citation column, a JSON-ish list of
// {doi, count} objects written with single quotes by the importer. A row that
// fails to parse contributes no sources; the caller skips it rather than
// aborting the whole response.
func parseCitationSources(raw string) ([]models.CitationSource, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return nil, false
	}

	// Importer writes Python-style single quotes.
	normalized := strings.ReplaceAll(raw, "'", `"`)

	var sources []models.CitationSource
	if err := json.Unmarshal([]byte(normalized), &sources); err != nil {
		return nil, false
	}
	if len(sources) == 0 {
		return nil, false
	}
	return sources, true
}

// parseVersions decodes the versions column, a JSON array of version labels.
// Null or malformed arrays yield nil.
func parseVersions(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	normalized := strings.ReplaceAll(raw, "'", `"`)

	var versions []string
	if err := json.Unmarshal([]byte(normalized), &versions); err != nil {
		return nil
	}
	return versions
}

// nullableDate converts a scanned DATE into a plain "YYYY-MM-DD" string
// pointer, nil when the column was NULL.
func nullableDate(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	s := t.Time.Format("2006-01-02")
	return &s
}

// nullableString converts a scanned text column, treating empty string and
// NULL as the same missing state.
func nullableString(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

// nullableInt preserves NULL for detail projections.
func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// round1 rounds to one decimal place, the fixed precision of every
// percentage field.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// percentOf is part/total as a percentage rounded to one decimal. A zero
// total yields 0, never a division error.
func percentOf(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

// newMeta builds the metadata block attached to composite documents: the
// exact filters applied plus per-section row counts.
func newMeta(filters map[string]string, sections map[string]int) models.AnalyticsMeta {
	if filters == nil {
		filters = make(map[string]string)
	}
	if sections == nil {
		sections = make(map[string]int)
	}
	return models.AnalyticsMeta{
		Filters:       filters,
		SectionCounts: sections,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}
