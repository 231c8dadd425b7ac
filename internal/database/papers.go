// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/preprintlabs/paperscope/internal/metrics"
	"github.com/preprintlabs/paperscope/internal/models"
)

// Summary projection is explicit: never SELECT * outside detail lookups.
const (
	listPapersBase = `SELECT PPC_Id, preprint_title, total_citation, preprint_submission_date, all_authors
FROM papers WHERE 1=1`

	countPapersBase = `SELECT COUNT(*) FROM papers WHERE 1=1`

	// Default listing order: descending citation count. NULL citation
	// counts sort last so unknown papers never outrank cited ones.
	listPapersTail = `ORDER BY total_citation DESC NULLS LAST, PPC_Id LIMIT ? OFFSET ?`
)

// scanPaperSummary shapes one summary row. A NULL citation count is coerced
// to 0 here; only GetPaper preserves null.
func scanPaperSummary(rows *sql.Rows) (models.PaperSummary, error) {
	var (
		p        models.PaperSummary
		title    sql.NullString
		citation sql.NullInt64
		date     sql.NullTime
		authors  sql.NullString
	)
	if err := rows.Scan(&p.PPCID, &title, &citation, &date, &authors); err != nil {
		return p, err
	}
	p.Title = title.String
	p.TotalCitation = int(citation.Int64)
	p.SubmissionDate = nullableDate(date)
	p.Authors = authors.String
	return p, nil
}

// ListPapers returns one page of papers matching the filter, with the total
// row count computed by a COUNT query sharing the identical filter fragment.
func (db *DB) ListPapers(ctx context.Context, f PaperFilter, page Page) (*models.PaperList, error) {
	ctx = db.ensureContext(ctx)

	countQuery, countArgs := newQueryBuilder(countPapersBase).addFilter(f).build("")
	total, err := queryCount(ctx, db.conn, "ListPapers", countQuery, countArgs)
	if err != nil {
		return nil, err
	}

	listQuery, listArgs := newQueryBuilder(listPapersBase).addFilter(f).
		build(listPapersTail, page.Size, page.Offset())
	papers, err := queryAndScan(ctx, db.conn, "ListPapers", listQuery, listArgs, scanPaperSummary)
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

// SearchPapers matches the query substring against title, DOI and author
// list, OR-combined, with the same pagination contract as ListPapers.
func (db *DB) SearchPapers(ctx context.Context, query string, page Page) (*models.PaperList, error) {
	ctx = db.ensureContext(ctx)
	pattern := "%" + query + "%"

	const searchClause = `(preprint_title LIKE ? OR preprint_doi LIKE ? OR all_authors LIKE ?)`

	countQuery, countArgs := newQueryBuilder(countPapersBase).
		add(searchClause, pattern, pattern, pattern).build("")
	total, err := queryCount(ctx, db.conn, "SearchPapers", countQuery, countArgs)
	if err != nil {
		return nil, err
	}

	listQuery, listArgs := newQueryBuilder(listPapersBase).
		add(searchClause, pattern, pattern, pattern).
		build(listPapersTail, page.Size, page.Offset())
	papers, err := queryAndScan(ctx, db.conn, "SearchPapers", listQuery, listArgs, scanPaperSummary)
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

// GetPaper fetches the full projection of a single record by PPC_Id. Zero
// rows is the defined ErrPaperNotFound outcome, not a storage failure.
// Nullable fields stay null to distinguish "unknown" from "zero".
func (db *DB) GetPaper(ctx context.Context, ppcID string) (*models.Paper, error) {
	ctx = db.ensureContext(ctx)

	const query = `SELECT PPC_Id, preprint_title, preprint_doi, preprint_subject, preprint_server,
	preprint_submission_date, preprint_abstract, all_authors, submission_contact, country_name,
	total_citation, citation, versions, published_DOI, published_date, no_of_days_for_publish,
	submission_type, submission_license
FROM papers WHERE PPC_Id = ?`

	var (
		p             models.Paper
		title         sql.NullString
		doi           sql.NullString
		subject       sql.NullString
		server        sql.NullString
		submitted     sql.NullTime
		abstract      sql.NullString
		authors       sql.NullString
		contact       sql.NullString
		country       sql.NullString
		citationCount sql.NullInt64
		citationRaw   sql.NullString
		versionsRaw   sql.NullString
		publishedDOI  sql.NullString
		publishedDate sql.NullTime
		daysToPublish sql.NullInt64
		subType       sql.NullString
		license       sql.NullString
	)

	start := time.Now()
	err := db.conn.QueryRowContext(ctx, query, ppcID).Scan(
		&p.PPCID, &title, &doi, &subject, &server, &submitted, &abstract, &authors,
		&contact, &country, &citationCount, &citationRaw, &versionsRaw,
		&publishedDOI, &publishedDate, &daysToPublish, &subType, &license,
	)
	metrics.RecordDBQuery("GetPaper", time.Since(start), err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaperNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query GetPaper: %w", err)
	}

	p.Title = nullableString(title)
	p.DOI = nullableString(doi)
	p.Subject = nullableString(subject)
	p.Server = nullableString(server)
	p.SubmissionDate = nullableDate(submitted)
	p.Abstract = nullableString(abstract)
	p.Authors = nullableString(authors)
	p.SubmissionContact = nullableString(contact)
	p.Country = nullableString(country)
	p.TotalCitation = nullableInt(citationCount)
	if citationRaw.Valid {
		if sources, ok := parseCitationSources(citationRaw.String); ok {
			p.CitationSources = sources
		}
	}
	if versionsRaw.Valid {
		p.Versions = parseVersions(versionsRaw.String)
	}
	p.PublishedDOI = nullableString(publishedDOI)
	p.PublishedDate = nullableDate(publishedDate)
	p.DaysToPublish = nullableInt(daysToPublish)
	p.SubmissionType = nullableString(subType)
	p.License = nullableString(license)

	return &p, nil
}

// CountPapers reports the total number of loaded papers, used by the health
// endpoint.
func (db *DB) CountPapers(ctx context.Context) (int, error) {
	return queryCount(db.ensureContext(ctx), db.conn, "CountPapers", countPapersBase, nil)
}
