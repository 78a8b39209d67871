// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

// Package pipeline orchestrates the ingest, enrich, and overwrite stages
// of a catalog refresh run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/catalogus/internal/ingest"
	"github.com/tomtom215/catalogus/internal/logging"
	"github.com/tomtom215/catalogus/internal/metrics"
	"github.com/tomtom215/catalogus/internal/models"
)

// ErrRunInProgress is returned by Run when another run holds the pipeline.
var ErrRunInProgress = errors.New("enrichment run already in progress")

// Source yields the raw catalog to be enriched.
type Source interface {
	ReadAll(ctx context.Context) (*ingest.Result, error)
}

// Enricher transforms raw titles into enriched ones.
type Enricher interface {
	EnrichAll(ctx context.Context, titles []models.RawTitle) ([]models.EnrichedTitle, error)
}

// Store persists the enriched catalog.
type Store interface {
	ReplaceTitles(ctx context.Context, titles []models.EnrichedTitle) error
}

// Runner drives full catalog refresh runs. At most one run is active at a
// time; concurrent Run calls fail fast with ErrRunInProgress instead of
// queueing.
type Runner struct {
	source   Source
	enricher Enricher
	store    Store

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	lastRun *models.RunStats
}

// NewRunner creates a pipeline runner over the given stages.
func NewRunner(source Source, enricher Enricher, store Store) *Runner {
	return &Runner{
		source:   source,
		enricher: enricher,
		store:    store,
	}
}

// Run executes one full refresh: read the source catalog, enrich every
// record, and overwrite the store in a single transaction. The returned
// stats are also retained as LastRun.
func (r *Runner) Run(ctx context.Context) (*models.RunStats, error) {
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		cancelRun()
		return nil, ErrRunInProgress
	}
	r.running = true
	r.cancel = cancelRun
	r.mu.Unlock()

	stats := &models.RunStats{
		RunID:     uuid.NewString(),
		StartTime: time.Now().UTC(),
	}

	logging.Info().
		Str("run_id", stats.RunID).
		Msg("Enrichment run started")

	err := r.run(runCtx, stats)

	stats.EndTime = time.Now().UTC()

	r.mu.Lock()
	r.running = false
	r.cancel = nil
	r.lastRun = stats
	r.mu.Unlock()

	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.ObserveRun(status, stats.Duration(), stats.Written)

	if err != nil {
		logging.Error().
			Err(err).
			Str("run_id", stats.RunID).
			Dur("duration", stats.Duration()).
			Msg("Enrichment run failed")
		return stats, err
	}

	logging.Info().
		Str("run_id", stats.RunID).
		Int64("ingested", stats.Ingested).
		Int64("written", stats.Written).
		Int64("skipped", stats.Failed).
		Dur("duration", stats.Duration()).
		Msg("Enrichment run completed")

	return stats, nil
}

func (r *Runner) run(ctx context.Context, stats *models.RunStats) error {
	result, err := r.source.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	stats.Ingested = int64(len(result.Titles))
	stats.Failed = int64(result.Skipped)
	metrics.RecordsIngestedTotal.Add(float64(len(result.Titles)))

	enriched, err := r.enricher.EnrichAll(ctx, result.Titles)
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}
	stats.Enriched = int64(len(enriched))
	metrics.RecordsEnrichedTotal.Add(float64(len(enriched)))

	// Stamp run provenance on every record before the overwrite
	enrichedAt := time.Now().UTC()
	for i := range enriched {
		enriched[i].EnrichedAt = enrichedAt
		enriched[i].RunID = stats.RunID
	}

	if err := r.store.ReplaceTitles(ctx, enriched); err != nil {
		return fmt.Errorf("catalog overwrite failed: %w", err)
	}
	stats.Written = int64(len(enriched))

	return nil
}

// Stop cancels the active run, if any. The canceled run finishes with a
// context error and the previous catalog stays in place.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// IsRunning reports whether a refresh run is currently active.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// LastRun returns a copy of the most recently completed run's stats, or
// nil when no run has finished yet.
func (r *Runner) LastRun() *models.RunStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastRun == nil {
		return nil
	}
	stats := *r.lastRun
	return &stats
}
