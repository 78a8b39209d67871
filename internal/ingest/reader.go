// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

// Package ingest reads the raw catalog source file.
//
// The ingestion collaborator delivers RawTitle rows with no validation
// guarantees beyond "field present or null": empty cells become nil pointers
// for nullable fields, a non-numeric release year becomes zero, and columns
// the engine does not know are ignored. Malformed rows are counted and
// skipped; they never abort the batch.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/catalogus/internal/config"
	"github.com/tomtom215/catalogus/internal/logging"
	"github.com/tomtom215/catalogus/internal/models"
)

// Source column names in the catalog export.
const (
	colShowID      = "show_id"
	colTitle       = "title"
	colType        = "type"
	colDirector    = "director"
	colReleaseYear = "release_year"
	colDuration    = "duration"
	colRating      = "rating"
	colCountry     = "country"
	colListedIn    = "listed_in"
	colDescription = "description"
)

// Reader ingests catalog records from a CSV export.
type Reader struct {
	path string
}

// Result holds the outcome of one ingestion pass.
type Result struct {
	Titles  []models.RawTitle
	Skipped int64 // malformed rows dropped by the CSV parser
}

// NewReader creates a catalog reader for the configured source file.
func NewReader(cfg *config.IngestConfig) *Reader {
	return &Reader{path: cfg.Path}
}

// ReadAll reads every record from the source file. Rows the CSV parser
// rejects are skipped and counted; field-level problems (empty cells,
// non-numeric years) degrade to null/zero values on the record.
func (r *Reader) ReadAll(ctx context.Context) (*Result, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog source: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Error closing catalog source")
		}
	}()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // tolerate ragged rows; missing cells become nulls
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns[colShowID]; !ok {
		return nil, fmt.Errorf("catalog source missing %q column", colShowID)
	}

	result := &Result{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Skipped++
				logging.Warn().Int("line", parseErr.Line).Err(err).Msg("Skipping malformed catalog row")
				continue
			}
			return nil, fmt.Errorf("read catalog row: %w", err)
		}

		result.Titles = append(result.Titles, mapRow(columns, row))
	}

	logging.Info().
		Int("titles", len(result.Titles)).
		Int64("skipped", result.Skipped).
		Str("path", r.path).
		Msg("Catalog ingestion complete")

	return result, nil
}

// mapRow converts one CSV row into a RawTitle using the header index.
func mapRow(columns map[string]int, row []string) models.RawTitle {
	return models.RawTitle{
		ShowID:      cell(columns, row, colShowID),
		Title:       cell(columns, row, colTitle),
		Type:        cell(columns, row, colType),
		Director:    cellPtr(columns, row, colDirector),
		ReleaseYear: cellInt(columns, row, colReleaseYear),
		Duration:    cell(columns, row, colDuration),
		Rating:      cell(columns, row, colRating),
		Country:     cellPtr(columns, row, colCountry),
		ListedIn:    cell(columns, row, colListedIn),
		Description: cell(columns, row, colDescription),
	}
}

// cell returns the trimmed value of a named column, or "" when absent.
func cell(columns map[string]int, row []string, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// cellPtr returns a pointer to the value of a nullable column, nil when empty.
func cellPtr(columns map[string]int, row []string, name string) *string {
	v := cell(columns, row, name)
	if v == "" {
		return nil
	}
	return &v
}

// cellInt parses an integer column, returning 0 for empty or non-numeric
// values per the best-effort ingestion contract.
func cellInt(columns map[string]int, row []string, name string) int {
	v := cell(columns, row, name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
