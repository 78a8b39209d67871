// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package enrich

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/tomtom215/catalogus/internal/config"
	"github.com/tomtom215/catalogus/internal/models"
)

// Engine derives the full set of analytics fields for catalog records.
//
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	viewerSeed  int64
	ratingSeed  int64 // 0 = derive a fresh seed per run
	currentYear int   // 0 = wall-clock year at enrichment time
	workers     int
}

// NewEngine creates an enrichment engine from configuration, applying
// defaults for zero values.
func NewEngine(cfg *config.EnrichConfig) *Engine {
	e := &Engine{
		viewerSeed:  DefaultViewerSeed,
		ratingSeed:  0,
		currentYear: 0,
		workers:     runtime.NumCPU(),
	}
	if cfg != nil {
		if cfg.ViewerSeed != 0 {
			e.viewerSeed = cfg.ViewerSeed
		}
		e.ratingSeed = cfg.RatingSeed
		e.currentYear = cfg.CurrentYear
		if cfg.Workers > 0 {
			e.workers = cfg.Workers
		}
	}
	return e
}

// Enrich derives all analytics fields for a single record.
//
// The transform is pure: the same record, rating seed, and configuration
// always produce the same output. Run provenance (RunID, EnrichedAt) is
// stamped by the pipeline, not here.
func (e *Engine) Enrich(raw models.RawTitle) models.EnrichedTitle {
	return e.enrich(raw, e.runRatingSeed())
}

// EnrichAll enriches a batch of records on a bounded worker pool, preserving
// input order in the output. A single rating seed is drawn for the whole run
// so every record in the batch shares one rating stream generation.
func (e *Engine) EnrichAll(ctx context.Context, raws []models.RawTitle) ([]models.EnrichedTitle, error) {
	out := make([]models.EnrichedTitle, len(raws))
	ratingSeed := e.runRatingSeed()

	workers := e.workers
	if workers > len(raws) {
		workers = len(raws)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				out[idx] = e.enrich(raws[idx], ratingSeed)
			}
		}()
	}

	var feedErr error
feed:
	for i := range raws {
		select {
		case <-ctx.Done():
			feedErr = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if feedErr != nil {
		return nil, feedErr
	}
	return out, nil
}

// enrich runs the four enrichment stages for one record.
func (e *Engine) enrich(raw models.RawTitle, ratingSeed int64) models.EnrichedTitle {
	enriched := models.EnrichedTitle{RawTitle: raw}

	// Stage 1: field decomposition.
	enriched.Category1, enriched.Category2 = SplitGenres(raw.ListedIn)

	// Stage 2: deterministic simulation.
	enriched.IMDBRating = simulateIMDBRating(raw.ShowID, ratingSeed)
	enriched.ViewerCount = simulateViewerCount(raw.ShowID, e.viewerSeed)

	// Stage 3: rule-based classification.
	durationVal, durationOK := parseDurationValue(raw.Duration)
	in := ruleInput{
		releaseAge:  e.year() - raw.ReleaseYear,
		releaseYear: raw.ReleaseYear,
		listedIn:    raw.ListedIn,
		imdbRating:  enriched.IMDBRating,
		viewerCount: enriched.ViewerCount,
		durationVal: durationVal,
		durationOK:  durationOK,
	}
	enriched.MovieReleaseType = movieReleaseTypeRule.eval(in)
	enriched.WatchLevel = watchLevelRule.eval(in)
	enriched.MostTrafficTime = mostTrafficTimeRule.eval(in)
	enriched.ReplayButtonProbability = replayButtonRule.eval(in)
	enriched.NostalgiaFactor = nostalgiaFactorRule.eval(in)
	enriched.SequelPotential = sequelPotentialRule.eval(in)

	// Stage 4: templated text synthesis.
	enriched.ReviewText = reviewText(enriched.IMDBRating, raw.Type)
	enriched.Stars = starGlyphs(enriched.IMDBRating)

	return enriched
}

// year returns the reference year for freshness classification.
func (e *Engine) year() int {
	if e.currentYear != 0 {
		return e.currentYear
	}
	return time.Now().Year()
}

// runRatingSeed resolves the rating stream seed for one run: the configured
// seed when pinned, otherwise a time-derived value so ratings vary run to
// run while the viewer-count stream stays fixed.
func (e *Engine) runRatingSeed() int64 {
	if e.ratingSeed != 0 {
		return e.ratingSeed
	}
	return time.Now().UnixNano()
}
