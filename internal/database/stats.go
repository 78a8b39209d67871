// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/catalogus/internal/metrics"
	"github.com/tomtom215/catalogus/internal/models"
)

// GetCatalogStats computes the aggregate view of the enriched catalog
// served by the stats endpoint. An empty catalog yields zero counts and
// zero rating aggregates rather than an error.
func (db *DB) GetCatalogStats(ctx context.Context) (_ *models.CatalogStats, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveDBQuery("stats", tableTitles, start, err)
	}()

	stats := &models.CatalogStats{
		ByReleaseType:     make(map[string]int64),
		ByTrafficTime:     make(map[string]int64),
		BySequelPotential: make(map[string]int64),
	}

	var (
		avgRating sql.NullFloat64
		minRating sql.NullFloat64
		maxRating sql.NullFloat64
		lastAt    sql.NullTime
		lastRun   sql.NullString
	)

	// One pass for scalar aggregates. run_id is uniform across the table
	// after a full overwrite, so MAX picks the current run.
	err = db.conn.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE type = 'Movie'),
			COUNT(*) FILTER (WHERE type = 'Show'),
			COUNT(*) FILTER (WHERE watch_level IS NOT NULL),
			AVG(imdb_rating),
			MIN(imdb_rating),
			MAX(imdb_rating),
			MAX(enriched_at),
			MAX(run_id)
		FROM catalog_titles`).Scan(
		&stats.TotalTitles,
		&stats.Movies,
		&stats.Shows,
		&stats.HighlyWatched,
		&avgRating,
		&minRating,
		&maxRating,
		&lastAt,
		&lastRun,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog totals: %w", err)
	}

	stats.AvgIMDBRating = avgRating.Float64
	stats.MinIMDBRating = minRating.Float64
	stats.MaxIMDBRating = maxRating.Float64
	if lastAt.Valid {
		t := lastAt.Time
		stats.LastEnrichedAt = &t
	}
	stats.LastRunID = lastRun.String

	groupings := []struct {
		column string
		dest   map[string]int64
	}{
		{"movie_release_type", stats.ByReleaseType},
		{"most_traffic_time", stats.ByTrafficTime},
		{"sequel_potential", stats.BySequelPotential},
	}
	for _, g := range groupings {
		if err = db.fillGroupCounts(ctx, g.column, g.dest); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// fillGroupCounts populates dest with per-value row counts for one tag
// column, skipping NULLs.
func (db *DB) fillGroupCounts(ctx context.Context, column string, dest map[string]int64) error {
	// column comes from a fixed list above, never from request input
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM catalog_titles WHERE %s IS NOT NULL GROUP BY %s`,
		column, column, column)

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to group by %s: %w", column, err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var (
			value string
			count int64
		)
		if err := rows.Scan(&value, &count); err != nil {
			return fmt.Errorf("failed to scan %s group: %w", column, err)
		}
		dest[value] = count
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate %s groups: %w", column, err)
	}
	return nil
}
