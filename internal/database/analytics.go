// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package database

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/preprintlabs/paperscope/internal/models"
)

// Grouping keys from date truncation are plain "YYYY" / "YYYY-MM" strings;
// downstream shaping and cache keys treat them as opaque.

// scanTimelinePoint shapes one (period, count) row.
func scanTimelinePoint(rows *sql.Rows) (models.TimelinePoint, error) {
	var tp models.TimelinePoint
	err := rows.Scan(&tp.Period, &tp.Count)
	return tp, err
}

// GetTimeline counts papers per month matching the filter.
func (db *DB) GetTimeline(ctx context.Context, f PaperFilter) ([]models.TimelinePoint, error) {
	ctx = db.ensureContext(ctx)

	const base = `SELECT strftime(preprint_submission_date, '%Y-%m') AS period, COUNT(*) AS count
FROM papers WHERE preprint_submission_date IS NOT NULL`

	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY period ORDER BY period`)
	return queryAndScan(ctx, db.conn, "Timeline", query, args, scanTimelinePoint)
}

// GetYearlyTimeline counts papers per year matching the filter.
func (db *DB) GetYearlyTimeline(ctx context.Context, f PaperFilter) ([]models.TimelinePoint, error) {
	ctx = db.ensureContext(ctx)

	const base = `SELECT strftime(preprint_submission_date, '%Y') AS period, COUNT(*) AS count
FROM papers WHERE preprint_submission_date IS NOT NULL`

	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY period ORDER BY period`)
	return queryAndScan(ctx, db.conn, "YearlyTimeline", query, args, scanTimelinePoint)
}

// GetSubjectDistribution returns the top subject counts with percentages of
// the filtered total. Percentages are rounded to one decimal and 0 when the
// total is 0.
func (db *DB) GetSubjectDistribution(ctx context.Context, f PaperFilter, limit int) ([]models.SubjectCount, error) {
	ctx = db.ensureContext(ctx)

	const countBase = `SELECT COUNT(*) FROM papers
WHERE preprint_subject IS NOT NULL AND preprint_subject != ''`
	countQuery, countArgs := newQueryBuilder(countBase).addFilter(f).build("")
	total, err := queryCount(ctx, db.conn, "SubjectDistribution", countQuery, countArgs)
	if err != nil {
		return nil, err
	}

	const base = `SELECT preprint_subject, COUNT(*) AS count FROM papers
WHERE preprint_subject IS NOT NULL AND preprint_subject != ''`
	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY preprint_subject ORDER BY count DESC, preprint_subject LIMIT ?`, limit)

	subjects, err := queryAndScan(ctx, db.conn, "SubjectDistribution", query, args,
		func(rows *sql.Rows) (models.SubjectCount, error) {
			var sc models.SubjectCount
			err := rows.Scan(&sc.Subject, &sc.Count)
			return sc, err
		})
	if err != nil {
		return nil, err
	}

	for i := range subjects {
		subjects[i].Percentage = percentOf(subjects[i].Count, total)
	}
	return subjects, nil
}

// GetServerDistribution counts papers per hosting server.
func (db *DB) GetServerDistribution(ctx context.Context, f PaperFilter) ([]models.ServerCount, error) {
	ctx = db.ensureContext(ctx)

	const base = `SELECT preprint_server, COUNT(*) AS count FROM papers
WHERE preprint_server IS NOT NULL AND preprint_server != ''`
	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY preprint_server ORDER BY count DESC, preprint_server`)

	return queryAndScan(ctx, db.conn, "ServerDistribution", query, args,
		func(rows *sql.Rows) (models.ServerCount, error) {
			var sc models.ServerCount
			err := rows.Scan(&sc.Server, &sc.Count)
			return sc, err
		})
}

// GetCountryData counts papers per country of origin.
func (db *DB) GetCountryData(ctx context.Context, f PaperFilter) ([]models.CountryCount, error) {
	ctx = db.ensureContext(ctx)

	const base = `SELECT country_name, COUNT(*) AS count FROM papers
WHERE country_name IS NOT NULL AND country_name != ''`
	query, args := newQueryBuilder(base).addFilter(f).
		build(`GROUP BY country_name ORDER BY count DESC, country_name`)

	return queryAndScan(ctx, db.conn, "CountryData", query, args,
		func(rows *sql.Rows) (models.CountryCount, error) {
			var cc models.CountryCount
			err := rows.Scan(&cc.Country, &cc.Count)
			return cc, err
		})
}

// GetSubjects lists the distinct non-empty subject areas.
func (db *DB) GetSubjects(ctx context.Context) ([]string, error) {
	ctx = db.ensureContext(ctx)

	const query = `SELECT DISTINCT preprint_subject FROM papers
WHERE preprint_subject IS NOT NULL AND preprint_subject != ''
ORDER BY preprint_subject`

	return queryAndScan(ctx, db.conn, "Subjects", query, nil,
		func(rows *sql.Rows) (string, error) {
			var s string
			err := rows.Scan(&s)
			return s, err
		})
}

// GetDashboard bundles the dashboard sections: monthly timeline, subject and
// server distributions, and the derived statistics block. Each section is
// computed independently with the same filter fragment.
func (db *DB) GetDashboard(ctx context.Context, f PaperFilter) (*models.Dashboard, error) {
	ctx = db.ensureContext(ctx)

	timeline, err := db.GetTimeline(ctx, f)
	if err != nil {
		return nil, err
	}
	subjects, err := db.GetSubjectDistribution(ctx, f, 10)
	if err != nil {
		return nil, err
	}
	servers, err := db.GetServerDistribution(ctx, f)
	if err != nil {
		return nil, err
	}
	stats, err := db.getDashboardStats(ctx, f, timeline)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Timeline: timeline,
		Subjects: subjects,
		Servers:  servers,
		Stats:    *stats,
		Meta: newMeta(f.echo(), map[string]int{
			"timeline": len(timeline),
			"subjects": len(subjects),
			"servers":  len(servers),
		}),
	}, nil
}

func (db *DB) getDashboardStats(ctx context.Context, f PaperFilter, timeline []models.TimelinePoint) (*models.DashboardStats, error) {
	const base = `SELECT COUNT(*),
	MIN(preprint_submission_date),
	MAX(preprint_submission_date),
	COUNT(DISTINCT CASE WHEN preprint_subject != '' THEN preprint_subject END),
	COUNT(DISTINCT CASE WHEN preprint_server != '' THEN preprint_server END)
FROM papers WHERE 1=1`

	query, args := newQueryBuilder(base).addFilter(f).build("")

	var (
		stats            models.DashboardStats
		earliest, latest sql.NullTime
		activeSubjects   int
		activeServers    int
	)
	if err := db.conn.QueryRowContext(ctx, query, args...).
		Scan(&stats.TotalPapers, &earliest, &latest, &activeSubjects, &activeServers); err != nil {
		return nil, err
	}
	stats.DateRange = models.DateRange{
		Earliest: nullableDate(earliest),
		Latest:   nullableDate(latest),
	}
	stats.ActiveSubjects = activeSubjects
	stats.ActiveServers = activeServers

	// Most active period and per-month average derive from the timeline.
	dated := 0
	best := 0
	for _, tp := range timeline {
		dated += tp.Count
		if tp.Count > best {
			best = tp.Count
			stats.MostActivePeriod = tp.Period
		}
	}
	if len(timeline) > 0 {
		stats.AveragePapersPerMonth = round1(float64(dated) / float64(len(timeline)))
	}
	return &stats, nil
}

// timeRangeClauses maps the citation analytics time_range parameter to a
// static predicate. Unknown values fall back to "all".
var timeRangeClauses = map[string]string{
	"all":           "",
	"last_year":     "preprint_submission_date >= current_date - INTERVAL 1 YEAR",
	"last_5_years":  "preprint_submission_date >= current_date - INTERVAL 5 YEAR",
	"last_10_years": "preprint_submission_date >= current_date - INTERVAL 10 YEAR",
}

// citationSortOrders whitelists the sort_by parameter; only static ORDER BY
// text is ever interpolated.
var citationSortOrders = map[string]string{
	"citations": "total_citation DESC NULLS LAST, PPC_Id",
	"date":      "preprint_submission_date DESC NULLS LAST, PPC_Id",
	"title":     "preprint_title, PPC_Id",
}

// citationImpactLimit caps the per-paper impact section.
const citationImpactLimit = 500

func scanCitationImpact(rows *sql.Rows) (models.CitationImpact, error) {
	var (
		ci       models.CitationImpact
		title    sql.NullString
		subject  sql.NullString
		citation sql.NullInt64
		date     sql.NullTime
	)
	if err := rows.Scan(&ci.PPCID, &title, &subject, &citation, &date); err != nil {
		return ci, err
	}
	ci.Title = title.String
	ci.Subject = subject.String
	ci.TotalCitation = int(citation.Int64)
	ci.SubmissionDate = nullableDate(date)
	return ci, nil
}

// citationsQB starts a builder over cited papers with the time range and
// subject filter applied.
func citationsQB(base string, f PaperFilter, timeRange string) *queryBuilder {
	qb := newQueryBuilder(base).addFilter(f)
	if clause := timeRangeClauses[timeRange]; clause != "" {
		qb.add(clause)
	}
	return qb
}

// GetCitationsAnalytics assembles the citation analytics document: per-paper
// impact rows, per-year trends, a subject x year heatmap and the top cited
// papers, with a metadata block echoing the applied parameters.
func (db *DB) GetCitationsAnalytics(ctx context.Context, f PaperFilter, timeRange string, limit int, sortBy string) (*models.CitationsAnalytics, error) {
	ctx = db.ensureContext(ctx)

	if _, ok := timeRangeClauses[timeRange]; !ok {
		timeRange = "all"
	}
	order, ok := citationSortOrders[sortBy]
	if !ok {
		sortBy = "citations"
		order = citationSortOrders[sortBy]
	}

	const impactBase = `SELECT PPC_Id, preprint_title, preprint_subject, total_citation, preprint_submission_date
FROM papers WHERE total_citation IS NOT NULL`

	impactQuery, impactArgs := citationsQB(impactBase, f, timeRange).
		build(`ORDER BY `+order+` LIMIT ?`, citationImpactLimit)
	impact, err := queryAndScan(ctx, db.conn, "CitationsImpact", impactQuery, impactArgs, scanCitationImpact)
	if err != nil {
		return nil, err
	}

	const trendsBase = `SELECT strftime(preprint_submission_date, '%Y') AS year,
	CAST(SUM(total_citation) AS INTEGER), COUNT(*)
FROM papers WHERE total_citation IS NOT NULL AND preprint_submission_date IS NOT NULL`
	trendsQuery, trendsArgs := citationsQB(trendsBase, f, timeRange).
		build(`GROUP BY year ORDER BY year`)
	trends, err := queryAndScan(ctx, db.conn, "CitationsTrends", trendsQuery, trendsArgs,
		func(rows *sql.Rows) (models.CitationTrend, error) {
			var ct models.CitationTrend
			err := rows.Scan(&ct.Year, &ct.Total, &ct.Papers)
			return ct, err
		})
	if err != nil {
		return nil, err
	}

	const heatmapBase = `SELECT preprint_subject, strftime(preprint_submission_date, '%Y') AS year,
	CAST(SUM(total_citation) AS INTEGER)
FROM papers WHERE total_citation IS NOT NULL AND preprint_submission_date IS NOT NULL
	AND preprint_subject IS NOT NULL AND preprint_subject != ''`
	heatmapQuery, heatmapArgs := citationsQB(heatmapBase, f, timeRange).
		build(`GROUP BY preprint_subject, year ORDER BY preprint_subject, year`)
	heatmap, err := queryAndScan(ctx, db.conn, "CitationsHeatmap", heatmapQuery, heatmapArgs,
		func(rows *sql.Rows) (models.HeatmapCell, error) {
			var hc models.HeatmapCell
			err := rows.Scan(&hc.Subject, &hc.Year, &hc.Total)
			return hc, err
		})
	if err != nil {
		return nil, err
	}

	topQuery, topArgs := citationsQB(impactBase, f, timeRange).
		build(`ORDER BY total_citation DESC NULLS LAST, PPC_Id LIMIT ?`, limit)
	topPapers, err := queryAndScan(ctx, db.conn, "CitationsTop", topQuery, topArgs, scanCitationImpact)
	if err != nil {
		return nil, err
	}

	filters := f.echo()
	filters["time_range"] = timeRange
	filters["sort_by"] = sortBy
	filters["limit"] = strconv.Itoa(limit)

	return &models.CitationsAnalytics{
		Impact:    impact,
		Trends:    trends,
		Heatmap:   heatmap,
		TopPapers: topPapers,
		Meta: newMeta(filters, map[string]int{
			"impact":     len(impact),
			"trends":     len(trends),
			"heatmap":    len(heatmap),
			"top_papers": len(topPapers),
		}),
	}, nil
}
