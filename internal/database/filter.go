// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package database

import (
	"fmt"
	"strconv"
	"strings"
)

// PaperFilter is the immutable filter specification shared by every catalog
// query. Each set field contributes exactly one predicate clause; unset
// fields contribute nothing, not even an IS NULL check. Two filters with the
// same field values are equal, which is the semantic basis of cache keys.
//
// The JSON tags define the canonical serialization used for cache key
// generation; field order is fixed by declaration order.
type PaperFilter struct {
	// Subject is a case-sensitive substring match on the subject column.
	// Ignored when Subjects is set.
	Subject string `json:"subject,omitempty"`

	// Subjects switches subject filtering to exact-match IN membership,
	// used when a caller supplies a comma-separated comparison list.
	Subjects []string `json:"subjects,omitempty"`

	Server      string `json:"server,omitempty"`
	Country     string `json:"country,omitempty"`
	Author      string `json:"author,omitempty"`
	Institution string `json:"institution,omitempty"`
	License     string `json:"license,omitempty"`

	// YearFrom/YearTo compare against the year extracted from the
	// submission date; either alone is an open-ended bound.
	YearFrom *int `json:"year_from,omitempty"`
	YearTo   *int `json:"year_to,omitempty"`

	// Month is a "YYYY-MM" token. Malformed tokens are silently ignored,
	// matching the leniency policy for client input.
	Month string `json:"month,omitempty"`

	// CitationMin/CitationMax compare total_citation numerically. A NULL
	// citation count is excluded by SQL NULL propagation, never coerced
	// to zero.
	CitationMin *int `json:"citation_min,omitempty"`
	CitationMax *int `json:"citation_max,omitempty"`
}

// buildInClause creates a parameterized IN clause.
//
//	placeholders, args := buildInClause([]string{"a", "b"})
//	// placeholders = "?,?", args = ["a", "b"]
func buildInClause(items []string) (string, []interface{}) {
	placeholders := make([]string, len(items))
	args := make([]interface{}, len(items))
	for i, item := range items {
		placeholders[i] = "?"
		args[i] = item
	}
	return strings.Join(placeholders, ","), args
}

// conditions translates the filter into predicate clauses plus bound values.
// Clause order and argument order always match; user-controlled values only
// ever appear as bound parameters.
func (f PaperFilter) conditions() ([]string, []interface{}) {
	var clauses []string
	var args []interface{}

	if len(f.Subjects) > 0 {
		placeholders, inArgs := buildInClause(f.Subjects)
		clauses = append(clauses, fmt.Sprintf("preprint_subject IN (%s)", placeholders))
		args = append(args, inArgs...)
	} else if f.Subject != "" {
		clauses = append(clauses, "preprint_subject LIKE ?")
		args = append(args, "%"+f.Subject+"%")
	}

	if f.Server != "" {
		clauses = append(clauses, "preprint_server LIKE ?")
		args = append(args, "%"+f.Server+"%")
	}

	// Country names come from a fixed vocabulary; match exactly.
	if f.Country != "" {
		clauses = append(clauses, "country_name = ?")
		args = append(args, f.Country)
	}

	if f.Author != "" {
		clauses = append(clauses, "all_authors LIKE ?")
		args = append(args, "%"+f.Author+"%")
	}

	if f.Institution != "" {
		clauses = append(clauses, "submission_contact LIKE ?")
		args = append(args, "%"+f.Institution+"%")
	}

	if f.License != "" {
		clauses = append(clauses, "submission_license LIKE ?")
		args = append(args, "%"+f.License+"%")
	}

	if f.YearFrom != nil {
		clauses = append(clauses, "EXTRACT(YEAR FROM preprint_submission_date) >= ?")
		args = append(args, *f.YearFrom)
	}

	if f.YearTo != nil {
		clauses = append(clauses, "EXTRACT(YEAR FROM preprint_submission_date) <= ?")
		args = append(args, *f.YearTo)
	}

	if validMonth(f.Month) {
		clauses = append(clauses, "strftime(preprint_submission_date, '%Y-%m') = ?")
		args = append(args, f.Month)
	}

	if f.CitationMin != nil {
		clauses = append(clauses, "total_citation >= ?")
		args = append(args, *f.CitationMin)
	}

	if f.CitationMax != nil {
		clauses = append(clauses, "total_citation <= ?")
		args = append(args, *f.CitationMax)
	}

	return clauses, args
}

// validMonth reports whether s is a well-formed "YYYY-MM" token. Anything
// else is treated as if the month filter were unset.
func validMonth(s string) bool {
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	month, err := strconv.Atoi(s[5:])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	return true
}

// echo names exactly the filters that were applied, for the metadata block of
// composite analytics documents. An ignored malformed month is absent here
// too, matching the predicate that actually ran.
func (f PaperFilter) echo() map[string]string {
	m := make(map[string]string)
	if len(f.Subjects) > 0 {
		m["subjects"] = strings.Join(f.Subjects, ",")
	} else if f.Subject != "" {
		m["subject"] = f.Subject
	}
	if f.Server != "" {
		m["server"] = f.Server
	}
	if f.Country != "" {
		m["country"] = f.Country
	}
	if f.Author != "" {
		m["author"] = f.Author
	}
	if f.Institution != "" {
		m["institution"] = f.Institution
	}
	if f.License != "" {
		m["license"] = f.License
	}
	if f.YearFrom != nil {
		m["year_from"] = strconv.Itoa(*f.YearFrom)
	}
	if f.YearTo != nil {
		m["year_to"] = strconv.Itoa(*f.YearTo)
	}
	if validMonth(f.Month) {
		m["month"] = f.Month
	}
	if f.CitationMin != nil {
		m["citation_min"] = strconv.Itoa(*f.CitationMin)
	}
	if f.CitationMax != nil {
		m["citation_max"] = strconv.Itoa(*f.CitationMax)
	}
	return m
}
