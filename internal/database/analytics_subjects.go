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

// versionsValid guards version-based aggregates: a NULL or malformed array is
// excluded entirely, never coerced to zero versions.
const versionsValid = `versions IS NOT NULL AND versions != '' AND json_valid(versions)`

// GetSubjectAnalysis assembles the subject comparison document. The filter's
// Subjects list (exact IN membership) or Subject substring scopes every
// section identically.
func (db *DB) GetSubjectAnalysis(ctx context.Context, f PaperFilter) (*models.SubjectAnalysis, error) {
	ctx = db.ensureContext(ctx)

	ranking, err := db.getSubjectRanking(ctx, f)
	if err != nil {
		return nil, err
	}
	evolution, err := db.getSubjectEvolution(ctx, f)
	if err != nil {
		return nil, err
	}
	versionDist, err := db.getVersionDistribution(ctx, f)
	if err != nil {
		return nil, err
	}
	monthlyTrends, err := db.GetTimeline(ctx, f)
	if err != nil {
		return nil, err
	}
	servers, err := db.GetServerDistribution(ctx, f)
	if err != nil {
		return nil, err
	}
	citationGrowth, err := db.getCitationGrowth(ctx, f)
	if err != nil {
		return nil, err
	}
	summary, err := db.getVersionSummary(ctx, f)
	if err != nil {
		return nil, err
	}

	return &models.SubjectAnalysis{
		Ranking:             ranking,
		Evolution:           evolution,
		VersionDistribution: versionDist,
		MonthlyTrends:       monthlyTrends,
		Servers:             servers,
		CitationGrowth:      citationGrowth,
		VersionSummary:      *summary,
		Meta: newMeta(f.echo(), map[string]int{
			"ranking":              len(ranking),
			"evolution":            len(evolution),
			"version_distribution": len(versionDist),
			"monthly_trends":       len(monthlyTrends),
			"servers":              len(servers),
			"citation_growth":      len(citationGrowth),
		}),
	}, nil
}

// getSubjectRanking aggregates paper and citation counts per subject, ordered
// by total citations. SUM and AVG ignore NULL citation counts naturally.
func (db *DB) getSubjectRanking(ctx context.Context, f PaperFilter) ([]models.SubjectRank, error) {
	const base = `SELECT preprint_subject, COUNT(*) AS papers,
	CAST(COALESCE(SUM(total_citation), 0) AS INTEGER) AS total_citations,
	AVG(total_citation)
FROM papers WHERE preprint_subject IS NOT NULL AND preprint_subject != ''`

	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY preprint_subject ORDER BY total_citations DESC, preprint_subject`)

	return queryAndScan(ctx, db.conn, "SubjectRanking", query, args,
		func(rows *sql.Rows) (models.SubjectRank, error) {
			var (
				sr  models.SubjectRank
				avg sql.NullFloat64
			)
			if err := rows.Scan(&sr.Subject, &sr.Papers, &sr.TotalCitations, &avg); err != nil {
				return sr, err
			}
			sr.AvgCitations = round1(avg.Float64)
			return sr, nil
		})
}

// getSubjectEvolution cross-tabulates paper counts by subject and year.
func (db *DB) getSubjectEvolution(ctx context.Context, f PaperFilter) ([]models.SubjectYearCount, error) {
	const base = `SELECT preprint_subject, strftime(preprint_submission_date, '%Y') AS year, COUNT(*)
FROM papers WHERE preprint_subject IS NOT NULL AND preprint_subject != ''
	AND preprint_submission_date IS NOT NULL`

	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY preprint_subject, year ORDER BY preprint_subject, year`)

	return queryAndScan(ctx, db.conn, "SubjectEvolution", query, args,
		func(rows *sql.Rows) (models.SubjectYearCount, error) {
			var syc models.SubjectYearCount
			err := rows.Scan(&syc.Subject, &syc.Year, &syc.Count)
			return syc, err
		})
}

// getVersionDistribution buckets papers by version-history length.
func (db *DB) getVersionDistribution(ctx context.Context, f PaperFilter) ([]models.VersionCount, error) {
	const base = `SELECT CAST(json_array_length(versions) AS INTEGER) AS v, COUNT(*)
FROM papers WHERE ` + versionsValid

	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY v ORDER BY v`)

	return queryAndScan(ctx, db.conn, "VersionDistribution", query, args,
		func(rows *sql.Rows) (models.VersionCount, error) {
			var vc models.VersionCount
			err := rows.Scan(&vc.Versions, &vc.Count)
			return vc, err
		})
}

// getCitationGrowth aggregates citation totals per submission year.
func (db *DB) getCitationGrowth(ctx context.Context, f PaperFilter) ([]models.CitationTrend, error) {
	const base = `SELECT strftime(preprint_submission_date, '%Y') AS year,
	CAST(SUM(total_citation) AS INTEGER), COUNT(*)
FROM papers WHERE total_citation IS NOT NULL AND preprint_submission_date IS NOT NULL`

	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY year ORDER BY year`)

	return queryAndScan(ctx, db.conn, "CitationGrowth", query, args,
		func(rows *sql.Rows) (models.CitationTrend, error) {
			var ct models.CitationTrend
			err := rows.Scan(&ct.Year, &ct.Total, &ct.Papers)
			return ct, err
		})
}

// getVersionSummary computes the multi-version revision share over papers
// with a valid version history.
func (db *DB) getVersionSummary(ctx context.Context, f PaperFilter) (*models.VersionSummary, error) {
	const base = `SELECT COUNT(*),
	COUNT(CASE WHEN json_array_length(versions) >= 2 THEN 1 END)
FROM papers WHERE ` + versionsValid

	query, args := newQueryBuilder(base).addFilter(f).build("")

	var summary models.VersionSummary
	if err := db.conn.QueryRowContext(ctx, query, args...).
		Scan(&summary.TotalPapers, &summary.MultiVersionPapers); err != nil {
		return nil, err
	}
	summary.PercentMultiVersion = percentOf(summary.MultiVersionPapers, summary.TotalPapers)
	return &summary, nil
}
