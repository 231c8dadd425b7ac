// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package database

import (
	"context"
	"database/sql"

	"github.com/preprintlabs/paperscope/internal/models"
)

// GetPapersByAuthor pages through papers whose author list contains the given
// name, ordered by citation count like every listing.
func (db *DB) GetPapersByAuthor(ctx context.Context, author string, page Page) (*models.PaperList, error) {
	ctx = db.ensureContext(ctx)
	pattern := "%" + author + "%"

	countQuery, countArgs := newQueryBuilder(countPapersBase).
		add("all_authors LIKE ?", pattern).build("")
	total, err := queryCount(ctx, db.conn, "PapersByAuthor", countQuery, countArgs)
	if err != nil {
		return nil, err
	}

	listQuery, listArgs := newQueryBuilder(listPapersBase).
		add("all_authors LIKE ?", pattern).
		build(listPapersTail, page.Size, page.Offset())
	papers, err := queryAndScan(ctx, db.conn, "PapersByAuthor", listQuery, listArgs, scanPaperSummary)
	if err != nil {
		return nil, err
	}

	return &models.PaperList{
		Papers:   papers,
		Total:    total,
		Page:     page.Number,
		PageSize: page.Size,
		HasNext:  page.HasNext(total),
	}, nil
}

// ListInstitutions pages through submission contact institutions ranked by
// paper count, each with the citation count of its most cited paper.
func (db *DB) ListInstitutions(ctx context.Context, page Page) (*models.InstitutionList, error) {
	ctx = db.ensureContext(ctx)

	const countQuery = `SELECT COUNT(DISTINCT submission_contact)
FROM papers
WHERE submission_contact IS NOT NULL AND submission_contact != ''`
	total, err := queryCount(ctx, db.conn, "ListInstitutions", countQuery, nil)
	if err != nil {
		return nil, err
	}

	const query = `SELECT submission_contact, COUNT(*) AS papers, MAX(total_citation)
FROM papers
WHERE submission_contact IS NOT NULL AND submission_contact != ''
GROUP BY submission_contact
ORDER BY papers DESC, submission_contact
LIMIT ? OFFSET ?`

	institutions, err := queryAndScan(ctx, db.conn, "ListInstitutions", query,
		[]interface{}{page.Size, page.Offset()},
		func(rows *sql.Rows) (models.InstitutionCount, error) {
			var (
				ic   models.InstitutionCount
				most sql.NullInt64
			)
			if err := rows.Scan(&ic.Institution, &ic.Papers, &most); err != nil {
				return ic, err
			}
			ic.MaxCitations = int(most.Int64)
			return ic, nil
		})
	if err != nil {
		return nil, err
	}

	return &models.InstitutionList{
		Institutions: institutions,
		Total:        total,
		Page:         page.Number,
		PageSize:     page.Size,
		HasNext:      page.HasNext(total),
	}, nil
}
