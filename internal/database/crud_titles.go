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

	"github.com/tomtom215/catalogus/internal/logging"
	"github.com/tomtom215/catalogus/internal/metrics"
	"github.com/tomtom215/catalogus/internal/models"
)

const tableTitles = "catalog_titles"

// titleColumns is the column list shared by inserts and selects. Order
// matters: insertTitleQuery placeholders and scanTitle destinations follow
// this list exactly.
const titleColumns = `show_id, title, type, director, release_year, duration, rating,
	country, listed_in, description,
	category1, category2,
	movie_release_type, imdb_rating, stars, review_text,
	viewer_count, watch_level, most_traffic_time,
	replay_button_probability, nostalgia_factor, sequel_potential,
	enriched_at, run_id`

const insertTitleQuery = `INSERT INTO catalog_titles (` + titleColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// ReplaceTitles atomically replaces the whole catalog with the given
// enriched titles. The delete and all inserts run inside one transaction,
// so a failed run leaves the previous catalog intact and readers never see
// a partially written one.
func (db *DB) ReplaceTitles(ctx context.Context, titles []models.EnrichedTitle) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveDBQuery("replace", tableTitles, start, err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is finalized
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM catalog_titles`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertTitleQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer closeQuietly(stmt)

	for i := range titles {
		t := &titles[i]
		_, err = stmt.ExecContext(ctx,
			t.ShowID, t.Title, t.Type, t.Director, t.ReleaseYear, t.Duration, t.Rating,
			t.Country, t.ListedIn, t.Description,
			t.Category1, t.Category2,
			t.MovieReleaseType, t.IMDBRating, t.Stars, t.ReviewText,
			t.ViewerCount, nullIfEmpty(t.WatchLevel), t.MostTrafficTime,
			nullIfEmpty(t.ReplayButtonProbability), t.NostalgiaFactor, t.SequelPotential,
			t.EnrichedAt, t.RunID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert title %s: %w", t.ShowID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logging.Debug().
		Int("titles", len(titles)).
		Msg("Catalog replaced")

	return nil
}

// GetTitles returns a page of the enriched catalog ordered by show_id.
// typeFilter narrows the result to one media type when non-empty.
func (db *DB) GetTitles(ctx context.Context, limit, offset int, typeFilter string) (_ []models.EnrichedTitle, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveDBQuery("select", tableTitles, start, err)
	}()

	query := `SELECT ` + titleColumns + ` FROM catalog_titles`
	args := make([]any, 0, 3)
	if typeFilter != "" {
		query += ` WHERE type = ?`
		args = append(args, typeFilter)
	}
	query += ` ORDER BY show_id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query titles: %w", err)
	}
	defer closeQuietly(rows)

	titles := make([]models.EnrichedTitle, 0, limit)
	for rows.Next() {
		t, scanErr := scanTitle(rows)
		if scanErr != nil {
			err = fmt.Errorf("failed to scan title: %w", scanErr)
			return nil, err
		}
		titles = append(titles, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate titles: %w", err)
	}

	return titles, nil
}

// CountTitles returns the number of titles in the catalog, optionally
// narrowed to one media type.
func (db *DB) CountTitles(ctx context.Context, typeFilter string) (_ int64, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveDBQuery("count", tableTitles, start, err)
	}()

	query := `SELECT COUNT(*) FROM catalog_titles`
	args := []any{}
	if typeFilter != "" {
		query += ` WHERE type = ?`
		args = append(args, typeFilter)
	}

	var count int64
	if err = db.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count titles: %w", err)
	}
	return count, nil
}

// scanTitle reads one catalog row in titleColumns order.
func scanTitle(rows *sql.Rows) (models.EnrichedTitle, error) {
	var (
		t          models.EnrichedTitle
		watchLevel sql.NullString
		replayProb sql.NullString
	)

	err := rows.Scan(
		&t.ShowID, &t.Title, &t.Type, &t.Director, &t.ReleaseYear, &t.Duration, &t.Rating,
		&t.Country, &t.ListedIn, &t.Description,
		&t.Category1, &t.Category2,
		&t.MovieReleaseType, &t.IMDBRating, &t.Stars, &t.ReviewText,
		&t.ViewerCount, &watchLevel, &t.MostTrafficTime,
		&replayProb, &t.NostalgiaFactor, &t.SequelPotential,
		&t.EnrichedAt, &t.RunID,
	)
	if err != nil {
		return models.EnrichedTitle{}, err
	}

	t.WatchLevel = watchLevel.String
	t.ReplayButtonProbability = replayProb.String
	return t, nil
}

// nullIfEmpty maps the empty string to SQL NULL. Unset tags are stored
// as NULL rather than empty strings so aggregations can skip them.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
