// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package models

// AnalyticsMeta is attached to every composite analytics document. Filters
// names exactly the filter parameters that were applied (echoed back for
// client-side cache invalidation and debugging); SectionCounts records the
// row count of each section of the document.
type AnalyticsMeta struct {
	Filters       map[string]string `json:"filters"`
	SectionCounts map[string]int    `json:"section_counts"`
	GeneratedAt   string            `json:"generated_at"`
}

// TimelinePoint is one bucket of a date-truncated count series. Period is a
// plain "YYYY" or "YYYY-MM" string, never a structured date.
type TimelinePoint struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// SubjectCount is one row of a subject distribution. Percentage is rounded to
// one decimal place and is 0 when the overall total is 0.
type SubjectCount struct {
	Subject    string  `json:"subject"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ServerCount is one row of a preprint-server distribution.
type ServerCount struct {
	Server string `json:"server"`
	Count  int    `json:"count"`
}

// CountryCount is one row of the per-country paper distribution.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// DashboardStats is the derived statistics block of the dashboard document.
type DashboardStats struct {
	TotalPapers           int       `json:"total_papers"`
	DateRange             DateRange `json:"date_range"`
	MostActivePeriod      string    `json:"most_active_period"`
	AveragePapersPerMonth float64   `json:"average_papers_per_month"`
	ActiveSubjects        int       `json:"active_subjects"`
	ActiveServers         int       `json:"active_servers"`
}

// DateRange bounds the submission dates present in the dataset.
type DateRange struct {
	Earliest *string `json:"earliest"`
	Latest   *string `json:"latest"`
}

// Dashboard bundles the independently computed sections of the analytics
// dashboard endpoint.
type Dashboard struct {
	Timeline []TimelinePoint `json:"timeline"`
	Subjects []SubjectCount  `json:"subjects"`
	Servers  []ServerCount   `json:"servers"`
	Stats    DashboardStats  `json:"stats"`
	Meta     AnalyticsMeta   `json:"metadata"`
}

// CitationImpact is one per-paper row of the citation analytics sections.
type CitationImpact struct {
	PPCID          string  `json:"ppc_id"`
	Title          string  `json:"title"`
	Subject        string  `json:"subject"`
	TotalCitation  int     `json:"total_citation"`
	SubmissionDate *string `json:"submission_date"`
}

// CitationTrend is one per-year row of aggregate citation counts.
type CitationTrend struct {
	Year   string `json:"year"`
	Total  int    `json:"total"`
	Papers int    `json:"papers"`
}

// HeatmapCell is one subject x year cell of the citation heatmap.
type HeatmapCell struct {
	Subject string `json:"subject"`
	Year    string `json:"year"`
	Total   int    `json:"total"`
}

// CitationsAnalytics is the composite citation analytics document.
type CitationsAnalytics struct {
	Impact    []CitationImpact `json:"impact"`
	Trends    []CitationTrend  `json:"trends"`
	Heatmap   []HeatmapCell    `json:"heatmap"`
	TopPapers []CitationImpact `json:"top_papers"`
	Meta      AnalyticsMeta    `json:"metadata"`
}

// SubjectRank is one row of the subject ranking section.
type SubjectRank struct {
	Subject        string  `json:"subject"`
	Papers         int     `json:"papers"`
	TotalCitations int     `json:"total_citations"`
	AvgCitations   float64 `json:"avg_citations"`
}

// SubjectYearCount is one subject x year cell of a cross-tabulation.
type SubjectYearCount struct {
	Subject string `json:"subject"`
	Year    string `json:"year"`
	Count   int    `json:"count"`
}

// VersionCount buckets papers by the length of their version history.
type VersionCount struct {
	Versions int `json:"versions"`
	Count    int `json:"count"`
}

// VersionSummary summarizes multi-version revision behavior.
type VersionSummary struct {
	TotalPapers         int     `json:"total_papers"`
	MultiVersionPapers  int     `json:"multi_version_papers"`
	PercentMultiVersion float64 `json:"percent_multi_version"`
}

// SubjectAnalysis is the composite subject comparison document.
type SubjectAnalysis struct {
	Ranking             []SubjectRank      `json:"ranking"`
	Evolution           []SubjectYearCount `json:"evolution"`
	VersionDistribution []VersionCount     `json:"version_distribution"`
	MonthlyTrends       []TimelinePoint    `json:"monthly_trends"`
	Servers             []ServerCount      `json:"servers"`
	CitationGrowth      []CitationTrend    `json:"citation_growth"`
	VersionSummary      VersionSummary     `json:"version_summary"`
	Meta                AnalyticsMeta      `json:"metadata"`
}

// SubmissionTypeStats is one row of the submission-type distribution.
type SubmissionTypeStats struct {
	Type         string  `json:"type"`
	Count        int     `json:"count"`
	Percentage   float64 `json:"percentage"`
	AvgCitations float64 `json:"avg_citations"`
}

// NetworkNode is a paper vertex of the citation network.
type NetworkNode struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	Citations int    `json:"citations"`
}

// NetworkEdge links a citing source DOI to a cited paper with its count.
type NetworkEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Count  int    `json:"count"`
}

// CitationNetwork is the composite node/edge document. Rows whose citation
// column fails to parse keep their node but contribute no edges.
type CitationNetwork struct {
	Nodes []NetworkNode `json:"nodes"`
	Edges []NetworkEdge `json:"edges"`
	Meta  AnalyticsMeta `json:"metadata"`
}

// CitationSourceCount aggregates citation counts per citing source DOI across
// all papers.
type CitationSourceCount struct {
	SourceDOI string `json:"source_doi"`
	Papers    int    `json:"papers"`
	Total     int    `json:"total"`
}

// SubjectVersionShare reports multi-version revision share per subject.
type SubjectVersionShare struct {
	Subject             string  `json:"subject"`
	Papers              int     `json:"papers"`
	MultiVersion        int     `json:"multi_version"`
	PercentMultiVersion float64 `json:"percent_multi_version"`
}

// VersionAnalytics is the composite version-history document.
type VersionAnalytics struct {
	Distribution []VersionCount        `json:"distribution"`
	BySubject    []SubjectVersionShare `json:"by_subject"`
	Summary      VersionSummary        `json:"summary"`
	Meta         AnalyticsMeta         `json:"metadata"`
}

// LicenseCount is one row of the license distribution. Category groups
// Creative Commons variants under "Open Access".
type LicenseCount struct {
	License    string  `json:"license"`
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PublicationStatusEntry reports published vs unpublished papers per subject.
type PublicationStatusEntry struct {
	Subject         string  `json:"subject"`
	Total           int     `json:"total"`
	Published       int     `json:"published"`
	Unpublished     int     `json:"unpublished"`
	PublicationRate float64 `json:"publication_rate"`
}

// PublicationStatus is the composite publication-outcome document.
// UnpublishedGems lists highly cited papers that never appeared in a journal.
type PublicationStatus struct {
	BySubject       []PublicationStatusEntry `json:"by_subject"`
	UnpublishedGems []CitationImpact         `json:"unpublished_gems"`
	Meta            AnalyticsMeta            `json:"metadata"`
}

// CachePoolStats is the per-pool cache snapshot exposed by health and cache
// stats endpoints.
type CachePoolStats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Keys      int64   `json:"keys"`
	HitRate   float64 `json:"hit_rate"`
}

// HealthStatus is the health endpoint document.
type HealthStatus struct {
	Status        string                    `json:"status"`
	UptimeSeconds int64                     `json:"uptime_seconds"`
	Database      string                    `json:"database"`
	TotalPapers   int                       `json:"total_papers"`
	Caches        map[string]CachePoolStats `json:"caches"`
}
