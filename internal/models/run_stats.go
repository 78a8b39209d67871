// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package models

import "time"

// RunStats tracks accounting for a single enrichment pipeline run.
//
// A run covers the whole ingest → enrich → overwrite cycle. Ingested counts
// records read from the source, Enriched counts records transformed, and
// Written counts records committed to the store (always equal to Enriched on
// success since the overwrite is all-or-nothing).
type RunStats struct {
	RunID     string    `json:"run_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitempty"`

	Ingested int64 `json:"ingested"`
	Enriched int64 `json:"enriched"`
	Written  int64 `json:"written"`

	// Failed counts source rows that could not be read at all. Field-level
	// fallbacks (unparseable duration, empty genre list) do not count here;
	// those records are still enriched with default values.
	Failed int64 `json:"failed"`
}

// Duration returns the elapsed run time. For an in-flight run, it is the
// time since start.
func (s *RunStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}
