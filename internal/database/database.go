// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

// Package database implements the DuckDB-backed paper store: connection
// management, schema bootstrap, the filter builder, and the catalog of
// listing and aggregation queries consumed by the API layer.
//
// The store is read-only at the API layer; the papers table is loaded by an
// external importer. All queries use positional parameter binding, including
// LIMIT and OFFSET values.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"runtime"
	"strconv"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the duckdb driver

	"github.com/preprintlabs/paperscope/internal/config"
	"github.com/preprintlabs/paperscope/internal/logging"
)

// DB wraps the DuckDB connection pool.
type DB struct {
	conn *sql.DB
	cfg  config.DatabaseConfig
}

// New opens the DuckDB database at cfg.Path, configures the connection pool
// and ensures the papers schema exists. An empty path or ":memory:" opens an
// in-memory database (used by tests).
func New(cfg config.DatabaseConfig) (*DB, error) {
	conn, err := sql.Open("duckdb", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Read-heavy workload: one connection per concurrent query worker.
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	db := &DB{conn: conn, cfg: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := db.ensureSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	logging.Info().
		Str("path", cfg.Path).
		Int("max_open_conns", runtime.NumCPU()).
		Msg("Database opened")

	return db, nil
}

// buildDSN assembles the DuckDB DSN with tuning options from config.
func buildDSN(cfg config.DatabaseConfig) string {
	path := cfg.Path
	if path == ":memory:" {
		path = ""
	}
	if path == "" {
		return ""
	}

	params := url.Values{}
	if cfg.MaxMemory != "" {
		params.Set("max_memory", cfg.MaxMemory)
	}
	threads := cfg.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	params.Set("threads", strconv.Itoa(threads))

	return path + "?" + params.Encode()
}

// Conn exposes the underlying pool for query helpers.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping verifies database connectivity.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close releases the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// ensureContext guarantees query methods always run with a context.
func (db *DB) ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
