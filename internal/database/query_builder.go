// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/preprintlabs/paperscope/internal/metrics"
)

// queryBuilder assembles a catalog query from a base statement (ending in
// "WHERE 1=1" or a static predicate), the filter's predicate clauses, and a
// static tail (GROUP BY / ORDER BY / LIMIT). Only static clause text is ever
// interpolated; every value, including LIMIT and OFFSET, is bound.
type queryBuilder struct {
	base    string
	clauses []string
	args    []interface{}
}

func newQueryBuilder(base string) *queryBuilder {
	return &queryBuilder{base: base}
}

// addFilter appends the filter's predicate clauses and bound values.
func (qb *queryBuilder) addFilter(f PaperFilter) *queryBuilder {
	clauses, args := f.conditions()
	qb.clauses = append(qb.clauses, clauses...)
	qb.args = append(qb.args, args...)
	return qb
}

// add appends one static clause with its bound values.
func (qb *queryBuilder) add(clause string, args ...interface{}) *queryBuilder {
	qb.clauses = append(qb.clauses, clause)
	qb.args = append(qb.args, args...)
	return qb
}

// build returns the final query and argument list. The tail is static SQL
// appended after the predicate; tailArgs bind its placeholders in order.
func (qb *queryBuilder) build(tail string, tailArgs ...interface{}) (string, []interface{}) {
	query := qb.base
	if len(qb.clauses) > 0 {
		query += " AND " + strings.Join(qb.clauses, " AND ")
	}
	if tail != "" {
		query += " " + tail
	}
	args := make([]interface{}, 0, len(qb.args)+len(tailArgs))
	args = append(args, qb.args...)
	args = append(args, tailArgs...)
	return query, args
}

// Page carries 1-based pagination parameters, pre-validated at the HTTP
// boundary (page >= 1, size within the configured maximum).
type Page struct {
	Number int `json:"page"`
	Size   int `json:"page_size"`
}

// Offset is (page-1)*size.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// HasNext reports whether another page exists: offset+size < total.
func (p Page) HasNext(total int) bool {
	return p.Offset()+p.Size < total
}

// queryAndScan executes a query and scans every row through scan. The
// operation name labels metrics and wrapped errors. Always returns a non-nil
// slice so empty results serialize as [].
func queryAndScan[T any](ctx context.Context, conn *sql.DB, operation, query string, args []interface{}, scan func(*sql.Rows) (T, error)) ([]T, error) {
	start := time.Now()
	rows, err := conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery(operation, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", operation, err)
	}
	defer rows.Close()

	results := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", operation, err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", operation, err)
	}
	return results, nil
}

// queryCount executes a COUNT query built with the same filter fragment as
// its companion listing query.
func queryCount(ctx context.Context, conn *sql.DB, operation, query string, args []interface{}) (int, error) {
	start := time.Now()
	var total int
	err := conn.QueryRowContext(ctx, query, args...).Scan(&total)
	metrics.RecordDBQuery(operation, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", operation, err)
	}
	return total, nil
}
