// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package database

import (
	"context"
	"fmt"
)

// Column names follow the upstream CSV importer, which owns the data loading
// pipeline. Empty string and NULL are equivalent "missing" states for every
// non-key column.
const createPapersTable = `
CREATE TABLE IF NOT EXISTS papers (
	PPC_Id                   VARCHAR PRIMARY KEY,
	preprint_title           VARCHAR,
	preprint_doi             VARCHAR,
	preprint_subject         VARCHAR,
	preprint_server          VARCHAR,
	preprint_submission_date DATE,
	preprint_abstract        VARCHAR,
	all_authors              VARCHAR,
	submission_contact       VARCHAR,
	country_name             VARCHAR,
	total_citation           INTEGER,
	citation                 VARCHAR,
	versions                 VARCHAR,
	published_DOI            VARCHAR,
	published_date           DATE,
	no_of_days_for_publish   INTEGER,
	submission_type          VARCHAR,
	submission_license       VARCHAR
)`

var papersIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_papers_subject ON papers(preprint_subject)`,
	`CREATE INDEX IF NOT EXISTS idx_papers_server ON papers(preprint_server)`,
	`CREATE INDEX IF NOT EXISTS idx_papers_country ON papers(country_name)`,
	`CREATE INDEX IF NOT EXISTS idx_papers_submission_date ON papers(preprint_submission_date)`,
	`CREATE INDEX IF NOT EXISTS idx_papers_total_citation ON papers(total_citation)`,
}

// ensureSchema creates the papers table and indexes if absent. Bootstrap is
// idempotent; there is no migration engine.
func (db *DB) ensureSchema(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, createPapersTable); err != nil {
		return fmt.Errorf("failed to create papers table: %w", err)
	}
	for _, stmt := range papersIndexes {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
