// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package models

// Paper is the full projection of a single preprint record, returned only by
// detail lookups. Nullable fields stay nil in JSON so callers can distinguish
// "unknown" from "zero"/"empty"; this is deliberate and differs from the
// summary projection below.
type Paper struct {
	PPCID             string           `json:"ppc_id"`
	Title             *string          `json:"title"`
	DOI               *string          `json:"doi"`
	Subject           *string          `json:"subject"`
	Server            *string          `json:"server"`
	SubmissionDate    *string          `json:"submission_date"`
	Abstract          *string          `json:"abstract"`
	Authors           *string          `json:"authors"`
	SubmissionContact *string          `json:"submission_contact"`
	Country           *string          `json:"country"`
	TotalCitation     *int             `json:"total_citation"`
	CitationSources   []CitationSource `json:"citation_sources"`
	Versions          []string         `json:"versions"`
	PublishedDOI      *string          `json:"published_doi"`
	PublishedDate     *string          `json:"published_date"`
	DaysToPublish     *int             `json:"days_to_publish"`
	SubmissionType    *string          `json:"submission_type"`
	License           *string          `json:"license"`
}

// CitationSource is one entry of a paper's per-source citation breakdown,
// parsed from the raw citation column.
type CitationSource struct {
	DOI   string `json:"doi"`
	Count int    `json:"count"`
}

// PaperSummary is the column projection used by listing and search responses.
// A missing citation count is coerced to 0 here; only the detail projection
// preserves null.
type PaperSummary struct {
	PPCID          string  `json:"ppc_id"`
	Title          string  `json:"title"`
	TotalCitation  int     `json:"total_citation"`
	SubmissionDate *string `json:"submission_date"`
	Authors        string  `json:"authors"`
}

// PaperList is the shared pagination envelope for listing and search queries.
// HasNext is derived as offset+page_size < total.
type PaperList struct {
	Papers   []PaperSummary `json:"papers"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	HasNext  bool           `json:"has_next"`
}

// InstitutionCount pairs a submission contact institution with its paper
// count and the citation count of its most cited paper.
type InstitutionCount struct {
	Institution  string `json:"institution"`
	Papers       int    `json:"papers"`
	MaxCitations int    `json:"max_citations"`
}

// InstitutionList is one page of the institution ranking.
type InstitutionList struct {
	Institutions []InstitutionCount `json:"institutions"`
	Total        int                `json:"total"`
	Page         int                `json:"page"`
	PageSize     int                `json:"page_size"`
	HasNext      bool               `json:"has_next"`
}
