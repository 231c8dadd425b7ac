// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package database

import (
	"context"
	"database/sql"
	"sort"
	"strconv"
	"time"

	"github.com/preprintlabs/paperscope/internal/metrics"
	"github.com/preprintlabs/paperscope/internal/models"
)

// Minimum group sizes suppress noisy small-sample categories in the
// per-subject reports.
const (
	publicationTimelineFloor = 5
	publicationStatusFloor   = 10
)

// Bounds for the citation network and unpublished-gems sections.
const (
	citationNetworkDefaultNodes = 100
	citationNetworkMinCitations = 10
	unpublishedGemsMinCitations = 10
	unpublishedGemsLimit        = 50
)

// GetPublicationTimeline cross-tabulates paper counts by subject and year,
// keeping only groups with at least publicationTimelineFloor papers.
func (db *DB) GetPublicationTimeline(ctx context.Context, f PaperFilter) ([]models.SubjectYearCount, error) {
	ctx = db.ensureContext(ctx)

	const base = `SELECT preprint_subject, strftime(preprint_submission_date, '%Y') AS year, COUNT(*) AS count
FROM papers WHERE preprint_subject IS NOT NULL AND preprint_subject != ''
	AND preprint_submission_date IS NOT NULL`

	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY preprint_subject, year HAVING COUNT(*) >= ? ORDER BY preprint_subject, year`,
			publicationTimelineFloor)

	return queryAndScan(ctx, db.conn, "PublicationTimeline", query, args,
		func(rows *sql.Rows) (models.SubjectYearCount, error) {
			var syc models.SubjectYearCount
			err := rows.Scan(&syc.Subject, &syc.Year, &syc.Count)
			return syc, err
		})
}

// GetSubmissionTypeAnalytics reports the distribution of submission types
// with percentage shares and mean citation counts. AVG skips NULL citation
// counts; a subject whose citations are all unknown averages 0.
func (db *DB) GetSubmissionTypeAnalytics(ctx context.Context, f PaperFilter) ([]models.SubmissionTypeStats, error) {
	ctx = db.ensureContext(ctx)

	const countBase = `SELECT COUNT(*) FROM papers
WHERE submission_type IS NOT NULL AND submission_type != ''`
	countQuery, countArgs := newQueryBuilder(countBase).addFilter(f).build("")
	total, err := queryCount(ctx, db.conn, "SubmissionTypes", countQuery, countArgs)
	if err != nil {
		return nil, err
	}

	const base = `SELECT submission_type, COUNT(*) AS count, AVG(total_citation)
FROM papers WHERE submission_type IS NOT NULL AND submission_type != ''`
	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY submission_type ORDER BY count DESC, submission_type`)

	types, err := queryAndScan(ctx, db.conn, "SubmissionTypes", query, args,
		func(rows *sql.Rows) (models.SubmissionTypeStats, error) {
			var (
				st  models.SubmissionTypeStats
				avg sql.NullFloat64
			)
			if err := rows.Scan(&st.Type, &st.Count, &avg); err != nil {
				return st, err
			}
			st.AvgCitations = round1(avg.Float64)
			return st, nil
		})
	if err != nil {
		return nil, err
	}

	for i := range types {
		types[i].Percentage = percentOf(types[i].Count, total)
	}
	return types, nil
}

// GetCitationNetwork builds the citation graph: papers with at least
// minCitations citations as nodes, and edges from each citing source DOI
// parsed out of the citation column. A row whose citation payload fails to
// parse keeps its node but contributes no edges.
func (db *DB) GetCitationNetwork(ctx context.Context, f PaperFilter, limit, minCitations int) (*models.CitationNetwork, error) {
	ctx = db.ensureContext(ctx)
	if limit <= 0 {
		limit = citationNetworkDefaultNodes
	}
	if minCitations <= 0 {
		minCitations = citationNetworkMinCitations
	}

	const base = `SELECT PPC_Id, preprint_title, preprint_subject, total_citation, citation
FROM papers WHERE total_citation >= ? AND citation IS NOT NULL AND citation != ''`

	qb := newQueryBuilder(base)
	qb.args = append(qb.args, minCitations)
	query, args := qb.addFilter(f).
		build(`ORDER BY total_citation DESC NULLS LAST, PPC_Id LIMIT ?`, limit)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("CitationNetwork", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	nodes := make([]models.NetworkNode, 0)
	edges := make([]models.NetworkEdge, 0)
	skipped := 0
	for rows.Next() {
		var (
			id          string
			title       sql.NullString
			subject     sql.NullString
			citations   sql.NullInt64
			citationRaw sql.NullString
		)
		if err := rows.Scan(&id, &title, &subject, &citations, &citationRaw); err != nil {
			return nil, err
		}

		nodes = append(nodes, models.NetworkNode{
			ID:        id,
			Title:     title.String,
			Subject:   subject.String,
			Citations: int(citations.Int64),
		})

		sources, ok := parseCitationSources(citationRaw.String)
		if !ok {
			skipped++
			continue
		}
		for _, src := range sources {
			edges = append(edges, models.NetworkEdge{
				Source: src.DOI,
				Target: id,
				Count:  src.Count,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	filters := f.echo()
	filters["min_citations"] = strconv.Itoa(minCitations)

	return &models.CitationNetwork{
		Nodes: nodes,
		Edges: edges,
		Meta: newMeta(filters, map[string]int{
			"nodes":        len(nodes),
			"edges":        len(edges),
			"skipped_rows": skipped,
		}),
	}, nil
}

// GetCitationSources aggregates per-source citation counts across every
// paper's citation payload, ranked by total citations. Unparseable rows are
// skipped.
func (db *DB) GetCitationSources(ctx context.Context, f PaperFilter, limit int) ([]models.CitationSourceCount, error) {
	ctx = db.ensureContext(ctx)

	const base = `SELECT citation FROM papers
WHERE citation IS NOT NULL AND citation != ''`
	query, args := newQueryBuilder(base).addFilter(f).build("")

	raws, err := queryAndScan(ctx, db.conn, "CitationSources", query, args,
		func(rows *sql.Rows) (string, error) {
			var raw string
			err := rows.Scan(&raw)
			return raw, err
		})
	if err != nil {
		return nil, err
	}

	type agg struct {
		papers int
		total  int
	}
	bySource := make(map[string]*agg)
	for _, raw := range raws {
		sources, ok := parseCitationSources(raw)
		if !ok {
			continue
		}
		for _, src := range sources {
			a := bySource[src.DOI]
			if a == nil {
				a = &agg{}
				bySource[src.DOI] = a
			}
			a.papers++
			a.total += src.Count
		}
	}

	results := make([]models.CitationSourceCount, 0, len(bySource))
	for doi, a := range bySource {
		results = append(results, models.CitationSourceCount{
			SourceDOI: doi,
			Papers:    a.papers,
			Total:     a.total,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Total != results[j].Total {
			return results[i].Total > results[j].Total
		}
		return results[i].SourceDOI < results[j].SourceDOI
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetVersionAnalytics assembles the version-history document: the global
// version-count distribution, per-subject multi-version shares, and the
// overall summary.
func (db *DB) GetVersionAnalytics(ctx context.Context, f PaperFilter) (*models.VersionAnalytics, error) {
	ctx = db.ensureContext(ctx)

	distribution, err := db.getVersionDistribution(ctx, f)
	if err != nil {
		return nil, err
	}

	const base = `SELECT preprint_subject, COUNT(*),
	COUNT(CASE WHEN json_array_length(versions) >= 2 THEN 1 END)
FROM papers WHERE preprint_subject IS NOT NULL AND preprint_subject != '' AND ` + versionsValid
	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY preprint_subject ORDER BY preprint_subject`)

	bySubject, err := queryAndScan(ctx, db.conn, "VersionsBySubject", query, args,
		func(rows *sql.Rows) (models.SubjectVersionShare, error) {
			var svs models.SubjectVersionShare
			if err := rows.Scan(&svs.Subject, &svs.Papers, &svs.MultiVersion); err != nil {
				return svs, err
			}
			svs.PercentMultiVersion = percentOf(svs.MultiVersion, svs.Papers)
			return svs, nil
		})
	if err != nil {
		return nil, err
	}

	summary, err := db.getVersionSummary(ctx, f)
	if err != nil {
		return nil, err
	}

	return &models.VersionAnalytics{
		Distribution: distribution,
		BySubject:    bySubject,
		Summary:      *summary,
		Meta: newMeta(f.echo(), map[string]int{
			"distribution": len(distribution),
			"by_subject":   len(bySubject),
		}),
	}, nil
}

// GetLicenseAnalytics reports the license distribution, grouping Creative
// Commons variants under the "Open Access" category.
func (db *DB) GetLicenseAnalytics(ctx context.Context, f PaperFilter) ([]models.LicenseCount, error) {
	ctx = db.ensureContext(ctx)

	const countBase = `SELECT COUNT(*) FROM papers
WHERE submission_license IS NOT NULL AND submission_license != ''`
	countQuery, countArgs := newQueryBuilder(countBase).addFilter(f).build("")
	total, err := queryCount(ctx, db.conn, "LicenseAnalytics", countQuery, countArgs)
	if err != nil {
		return nil, err
	}

	const base = `SELECT submission_license,
	CASE WHEN upper(submission_license) LIKE 'CC%' THEN 'Open Access' ELSE 'Other' END AS category,
	COUNT(*) AS count
FROM papers WHERE submission_license IS NOT NULL AND submission_license != ''`
	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY submission_license ORDER BY count DESC, submission_license`)

	licenses, err := queryAndScan(ctx, db.conn, "LicenseAnalytics", query, args,
		func(rows *sql.Rows) (models.LicenseCount, error) {
			var lc models.LicenseCount
			err := rows.Scan(&lc.License, &lc.Category, &lc.Count)
			return lc, err
		})
	if err != nil {
		return nil, err
	}

	for i := range licenses {
		licenses[i].Percentage = percentOf(licenses[i].Count, total)
	}
	return licenses, nil
}

// GetPublicationStatus reports published vs unpublished papers per subject
// (a paper counts as published when a journal DOI is recorded), keeping only
// subjects with at least publicationStatusFloor papers, plus the highly
// cited papers that never appeared in a journal.
func (db *DB) GetPublicationStatus(ctx context.Context, f PaperFilter) (*models.PublicationStatus, error) {
	ctx = db.ensureContext(ctx)

	const statusBase = `SELECT preprint_subject, COUNT(*) AS total,
	COUNT(CASE WHEN published_DOI IS NOT NULL AND published_DOI != '' THEN 1 END) AS published
FROM papers WHERE preprint_subject IS NOT NULL AND preprint_subject != ''`
	statusQuery, statusArgs := newQueryBuilder(statusBase).addFilter(f).
		build(`GROUP BY preprint_subject HAVING COUNT(*) >= ? ORDER BY total DESC, preprint_subject`,
			publicationStatusFloor)

	bySubject, err := queryAndScan(ctx, db.conn, "PublicationStatus", statusQuery, statusArgs,
		func(rows *sql.Rows) (models.PublicationStatusEntry, error) {
			var e models.PublicationStatusEntry
			if err := rows.Scan(&e.Subject, &e.Total, &e.Published); err != nil {
				return e, err
			}
			e.Unpublished = e.Total - e.Published
			e.PublicationRate = percentOf(e.Published, e.Total)
			return e, nil
		})
	if err != nil {
		return nil, err
	}

	const gemsBase = `SELECT PPC_Id, preprint_title, preprint_subject, total_citation, preprint_submission_date
FROM papers WHERE (published_DOI IS NULL OR published_DOI = '') AND total_citation >= ?`
	gemsQB := newQueryBuilder(gemsBase)
	gemsQB.args = append(gemsQB.args, unpublishedGemsMinCitations)
	gemsQuery, gemsArgs := gemsQB.addFilter(f).
		build(`ORDER BY total_citation DESC, PPC_Id LIMIT ?`, unpublishedGemsLimit)

	gems, err := queryAndScan(ctx, db.conn, "UnpublishedGems", gemsQuery, gemsArgs, scanCitationImpact)
	if err != nil {
		return nil, err
	}

	return &models.PublicationStatus{
		BySubject:       bySubject,
		UnpublishedGems: gems,
		Meta: newMeta(f.echo(), map[string]int{
			"by_subject":       len(bySubject),
			"unpublished_gems": len(gems),
		}),
	}, nil
}
