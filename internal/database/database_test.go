// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package database

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/catalogus/internal/config"
	"github.com/tomtom215/catalogus/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "500MB",
		Threads:   2,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func strPtr(s string) *string { return &s }

// testTitle builds an enriched title with every derived field populated,
// suitable for roundtrip checks.
func testTitle(showID string) models.EnrichedTitle {
	return models.EnrichedTitle{
		RawTitle: models.RawTitle{
			ShowID:      showID,
			Title:       "Midnight Harvest",
			Type:        "Movie",
			Director:    strPtr("R. Calloway"),
			ReleaseYear: 2024,
			Duration:    "85 min",
			Rating:      "R",
			Country:     strPtr("United States"),
			ListedIn:    "Horror, Thrillers",
			Description: "A remote farm hides something under the soil.",
		},
		Category1:               strPtr("Horror"),
		Category2:               strPtr("Thrillers"),
		MovieReleaseType:        "New",
		IMDBRating:              8.7,
		Stars:                   "⭐⭐⭐⭐",
		ReviewText:              "An outstanding movie that critics and audiences love.",
		ViewerCount:             734210,
		MostTrafficTime:         "10PM–1AM",
		ReplayButtonProbability: "High",
		NostalgiaFactor:         "Low",
		SequelPotential:         "Yes",
		EnrichedAt:              time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		RunID:                   "run-1",
	}
}

func TestNewAndPing(t *testing.T) {
	db := setupTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestReplaceTitlesRoundtrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	want := testTitle("s1")
	if err := db.ReplaceTitles(ctx, []models.EnrichedTitle{want}); err != nil {
		t.Fatalf("ReplaceTitles() error = %v", err)
	}

	titles, err := db.GetTitles(ctx, 10, 0, "")
	if err != nil {
		t.Fatalf("GetTitles() error = %v", err)
	}
	if len(titles) != 1 {
		t.Fatalf("GetTitles() returned %d titles, want 1", len(titles))
	}

	got := titles[0]
	if got.ShowID != want.ShowID {
		t.Errorf("ShowID = %q, want %q", got.ShowID, want.ShowID)
	}
	if got.Director == nil || *got.Director != *want.Director {
		t.Errorf("Director = %v, want %q", got.Director, *want.Director)
	}
	if got.Category1 == nil || *got.Category1 != "Horror" {
		t.Errorf("Category1 = %v, want Horror", got.Category1)
	}
	if got.Category2 == nil || *got.Category2 != "Thrillers" {
		t.Errorf("Category2 = %v, want Thrillers", got.Category2)
	}
	if got.IMDBRating != want.IMDBRating {
		t.Errorf("IMDBRating = %v, want %v", got.IMDBRating, want.IMDBRating)
	}
	if got.ViewerCount != want.ViewerCount {
		t.Errorf("ViewerCount = %d, want %d", got.ViewerCount, want.ViewerCount)
	}
	if got.WatchLevel != "" {
		t.Errorf("WatchLevel = %q, want empty", got.WatchLevel)
	}
	if got.ReplayButtonProbability != "High" {
		t.Errorf("ReplayButtonProbability = %q, want High", got.ReplayButtonProbability)
	}
	if !got.EnrichedAt.Equal(want.EnrichedAt) {
		t.Errorf("EnrichedAt = %v, want %v", got.EnrichedAt, want.EnrichedAt)
	}
	if got.RunID != want.RunID {
		t.Errorf("RunID = %q, want %q", got.RunID, want.RunID)
	}
}

func TestReplaceTitlesNullableFields(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	title := testTitle("s1")
	title.Director = nil
	title.Country = nil
	title.Category2 = nil
	title.ReplayButtonProbability = ""

	if err := db.ReplaceTitles(ctx, []models.EnrichedTitle{title}); err != nil {
		t.Fatalf("ReplaceTitles() error = %v", err)
	}

	titles, err := db.GetTitles(ctx, 10, 0, "")
	if err != nil {
		t.Fatalf("GetTitles() error = %v", err)
	}
	got := titles[0]
	if got.Director != nil {
		t.Errorf("Director = %v, want nil", got.Director)
	}
	if got.Category2 != nil {
		t.Errorf("Category2 = %v, want nil", got.Category2)
	}
	if got.ReplayButtonProbability != "" {
		t.Errorf("ReplayButtonProbability = %q, want empty", got.ReplayButtonProbability)
	}
}

func TestReplaceTitlesOverwrites(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := []models.EnrichedTitle{testTitle("s1"), testTitle("s2"), testTitle("s3")}
	if err := db.ReplaceTitles(ctx, first); err != nil {
		t.Fatalf("ReplaceTitles(first) error = %v", err)
	}

	second := testTitle("s9")
	second.RunID = "run-2"
	if err := db.ReplaceTitles(ctx, []models.EnrichedTitle{second}); err != nil {
		t.Fatalf("ReplaceTitles(second) error = %v", err)
	}

	count, err := db.CountTitles(ctx, "")
	if err != nil {
		t.Fatalf("CountTitles() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountTitles() = %d after overwrite, want 1", count)
	}

	titles, err := db.GetTitles(ctx, 10, 0, "")
	if err != nil {
		t.Fatalf("GetTitles() error = %v", err)
	}
	if titles[0].ShowID != "s9" || titles[0].RunID != "run-2" {
		t.Errorf("surviving title = %s/%s, want s9/run-2", titles[0].ShowID, titles[0].RunID)
	}
}

func TestReplaceTitlesEmptySlice(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.ReplaceTitles(ctx, []models.EnrichedTitle{testTitle("s1")}); err != nil {
		t.Fatalf("ReplaceTitles() error = %v", err)
	}
	if err := db.ReplaceTitles(ctx, nil); err != nil {
		t.Fatalf("ReplaceTitles(nil) error = %v", err)
	}

	count, err := db.CountTitles(ctx, "")
	if err != nil {
		t.Fatalf("CountTitles() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountTitles() = %d, want 0 after empty overwrite", count)
	}
}

func TestGetTitlesPaginationAndFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	titles := make([]models.EnrichedTitle, 0, 5)
	for _, id := range []string{"s1", "s2", "s3", "s4", "s5"} {
		tt := testTitle(id)
		if id == "s2" || id == "s4" {
			tt.Type = "Show"
		}
		titles = append(titles, tt)
	}
	if err := db.ReplaceTitles(ctx, titles); err != nil {
		t.Fatalf("ReplaceTitles() error = %v", err)
	}

	t.Run("pagination", func(t *testing.T) {
		page, err := db.GetTitles(ctx, 2, 2, "")
		if err != nil {
			t.Fatalf("GetTitles() error = %v", err)
		}
		if len(page) != 2 {
			t.Fatalf("page length = %d, want 2", len(page))
		}
		if page[0].ShowID != "s3" || page[1].ShowID != "s4" {
			t.Errorf("page = [%s %s], want [s3 s4]", page[0].ShowID, page[1].ShowID)
		}
	})

	t.Run("type filter", func(t *testing.T) {
		shows, err := db.GetTitles(ctx, 10, 0, "Show")
		if err != nil {
			t.Fatalf("GetTitles() error = %v", err)
		}
		if len(shows) != 2 {
			t.Fatalf("filtered length = %d, want 2", len(shows))
		}
		for _, s := range shows {
			if s.Type != "Show" {
				t.Errorf("title %s has type %q, want Show", s.ShowID, s.Type)
			}
		}

		count, err := db.CountTitles(ctx, "Show")
		if err != nil {
			t.Fatalf("CountTitles(Show) error = %v", err)
		}
		if count != 2 {
			t.Errorf("CountTitles(Show) = %d, want 2", count)
		}
	})

	t.Run("offset past end", func(t *testing.T) {
		page, err := db.GetTitles(ctx, 10, 100, "")
		if err != nil {
			t.Fatalf("GetTitles() error = %v", err)
		}
		if len(page) != 0 {
			t.Errorf("page length = %d, want 0", len(page))
		}
	})
}

func TestGetCatalogStatsEmpty(t *testing.T) {
	db := setupTestDB(t)

	stats, err := db.GetCatalogStats(context.Background())
	if err != nil {
		t.Fatalf("GetCatalogStats() error = %v", err)
	}
	if stats.TotalTitles != 0 {
		t.Errorf("TotalTitles = %d, want 0", stats.TotalTitles)
	}
	if stats.AvgIMDBRating != 0 {
		t.Errorf("AvgIMDBRating = %v, want 0", stats.AvgIMDBRating)
	}
	if stats.LastEnrichedAt != nil {
		t.Errorf("LastEnrichedAt = %v, want nil", stats.LastEnrichedAt)
	}
	if len(stats.ByReleaseType) != 0 {
		t.Errorf("ByReleaseType = %v, want empty", stats.ByReleaseType)
	}
}

func TestGetCatalogStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	movie := testTitle("s1")
	movie.IMDBRating = 8.0

	show := testTitle("s2")
	show.Type = "Show"
	show.IMDBRating = 6.0
	show.MovieReleaseType = "Old"
	show.WatchLevel = "Highly Watched"
	show.MostTrafficTime = "8AM–12PM"
	show.SequelPotential = "Maybe"

	if err := db.ReplaceTitles(ctx, []models.EnrichedTitle{movie, show}); err != nil {
		t.Fatalf("ReplaceTitles() error = %v", err)
	}

	stats, err := db.GetCatalogStats(ctx)
	if err != nil {
		t.Fatalf("GetCatalogStats() error = %v", err)
	}

	if stats.TotalTitles != 2 || stats.Movies != 1 || stats.Shows != 1 {
		t.Errorf("totals = %d/%d/%d, want 2/1/1", stats.TotalTitles, stats.Movies, stats.Shows)
	}
	if stats.HighlyWatched != 1 {
		t.Errorf("HighlyWatched = %d, want 1", stats.HighlyWatched)
	}
	if stats.AvgIMDBRating != 7.0 {
		t.Errorf("AvgIMDBRating = %v, want 7.0", stats.AvgIMDBRating)
	}
	if stats.MinIMDBRating != 6.0 || stats.MaxIMDBRating != 8.0 {
		t.Errorf("rating range = [%v, %v], want [6.0, 8.0]", stats.MinIMDBRating, stats.MaxIMDBRating)
	}
	if stats.ByReleaseType["New"] != 1 || stats.ByReleaseType["Old"] != 1 {
		t.Errorf("ByReleaseType = %v, want New:1 Old:1", stats.ByReleaseType)
	}
	if stats.ByTrafficTime["10PM–1AM"] != 1 || stats.ByTrafficTime["8AM–12PM"] != 1 {
		t.Errorf("ByTrafficTime = %v", stats.ByTrafficTime)
	}
	if stats.BySequelPotential["Yes"] != 1 || stats.BySequelPotential["Maybe"] != 1 {
		t.Errorf("BySequelPotential = %v", stats.BySequelPotential)
	}
	if stats.LastEnrichedAt == nil || !stats.LastEnrichedAt.Equal(movie.EnrichedAt) {
		t.Errorf("LastEnrichedAt = %v, want %v", stats.LastEnrichedAt, movie.EnrichedAt)
	}
	if stats.LastRunID != "run-1" {
		t.Errorf("LastRunID = %q, want run-1", stats.LastRunID)
	}
}
