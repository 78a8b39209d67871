// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// getTableCreationQueries returns the CREATE TABLE statements for the
// catalog schema.
//
// catalog_titles holds one row per media title: the raw ingested columns
// followed by every derived enrichment column. Nullable columns map to
// optional source fields (director, country) and to tags that a title may
// legitimately not carry (category2, watch_level, replay_button_probability).
func getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS catalog_titles (
			-- Raw catalog fields
			show_id VARCHAR PRIMARY KEY,
			title VARCHAR NOT NULL,
			type VARCHAR NOT NULL,
			director VARCHAR,
			release_year INTEGER NOT NULL,
			duration VARCHAR,
			rating VARCHAR,
			country VARCHAR,
			listed_in VARCHAR,
			description VARCHAR,
			-- Genre decomposition
			category1 VARCHAR,
			category2 VARCHAR,
			-- Derived classification and simulated metrics
			movie_release_type VARCHAR NOT NULL,
			imdb_rating DOUBLE NOT NULL,
			stars VARCHAR NOT NULL,
			review_text VARCHAR NOT NULL,
			viewer_count BIGINT NOT NULL,
			watch_level VARCHAR,
			most_traffic_time VARCHAR NOT NULL,
			replay_button_probability VARCHAR,
			nostalgia_factor VARCHAR NOT NULL,
			sequel_potential VARCHAR NOT NULL,
			-- Run provenance
			enriched_at TIMESTAMP NOT NULL,
			run_id VARCHAR NOT NULL
		)`,
	}
}

// createIndexes creates indexes for common query patterns
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_titles_type ON catalog_titles(type)`,
		`CREATE INDEX IF NOT EXISTS idx_titles_release_year ON catalog_titles(release_year)`,
		`CREATE INDEX IF NOT EXISTS idx_titles_release_type ON catalog_titles(movie_release_type)`,
		`CREATE INDEX IF NOT EXISTS idx_titles_run_id ON catalog_titles(run_id)`,
	}

	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
