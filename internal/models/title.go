// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package models

import "time"

// RawTitle is one media title exactly as ingested from the catalog source.
//
// The ingestion collaborator guarantees nothing beyond "field present or
// null": empty CSV cells become nil pointers (for nullable fields) or zero
// values. ShowID is the unique key across the whole pipeline; records are
// never merged or dropped on their way through the engine.
type RawTitle struct {
	ShowID      string  `json:"show_id"`
	Title       string  `json:"title"`
	Type        string  `json:"type"` // "Movie" or "Show"
	Director    *string `json:"director,omitempty"`
	ReleaseYear int     `json:"release_year"`
	Duration    string  `json:"duration"` // e.g. "90 min" or "2 Seasons"
	Rating      string  `json:"rating"`   // maturity rating code, e.g. "TV-MA"
	Country     *string `json:"country,omitempty"`
	ListedIn    string  `json:"listed_in"` // comma-delimited genre list
	Description string  `json:"description"`
}

// EnrichedTitle is a RawTitle plus every derived analytics field.
//
// All derived fields are pure functions of the raw record (plus, for the
// simulated fields, a record-addressable deterministic seed). ViewerCount is
// reproducible across runs for the same ShowID; IMDBRating varies run to run
// unless the rating seed is pinned.
type EnrichedTitle struct {
	RawTitle

	// Field decomposition: first two genre tokens of ListedIn.
	Category1 *string `json:"category1,omitempty"`
	Category2 *string `json:"category2,omitempty"`

	// Freshness classification from release year age.
	MovieReleaseType string `json:"movie_release_type"` // New, Moderate, Old

	// Simulated quality metrics.
	IMDBRating float64 `json:"imdb_rating"` // [4.0, 9.5], one decimal
	Stars      string  `json:"stars"`       // glyph repeated floor(imdb_rating/2) times
	ReviewText string  `json:"review_text"`

	// Simulated audience metrics.
	ViewerCount int64  `json:"viewer_count"` // [1000, 999999], stable per ShowID
	WatchLevel  string `json:"watch_level,omitempty"`

	// Behavioral tags.
	MostTrafficTime         string `json:"most_traffic_time"`
	ReplayButtonProbability string `json:"replay_button_probability,omitempty"`
	NostalgiaFactor         string `json:"nostalgia_factor"` // High, Low
	SequelPotential         string `json:"sequel_potential"` // Yes, Maybe

	// Run provenance.
	EnrichedAt time.Time `json:"enriched_at"`
	RunID      string    `json:"run_id"`
}

// CatalogStats holds aggregate statistics over the enriched catalog,
// served to the dashboard via the stats endpoint.
type CatalogStats struct {
	TotalTitles       int64            `json:"total_titles"`
	Movies            int64            `json:"movies"`
	Shows             int64            `json:"shows"`
	HighlyWatched     int64            `json:"highly_watched"`
	AvgIMDBRating     float64          `json:"avg_imdb_rating"`
	MinIMDBRating     float64          `json:"min_imdb_rating"`
	MaxIMDBRating     float64          `json:"max_imdb_rating"`
	ByReleaseType     map[string]int64 `json:"by_release_type"`
	ByTrafficTime     map[string]int64 `json:"by_traffic_time"`
	BySequelPotential map[string]int64 `json:"by_sequel_potential"`
	LastEnrichedAt    *time.Time       `json:"last_enriched_at,omitempty"`
	LastRunID         string           `json:"last_run_id,omitempty"`
}
