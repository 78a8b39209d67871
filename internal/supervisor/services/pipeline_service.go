// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/catalogus/internal/logging"
	"github.com/tomtom215/catalogus/internal/models"
	"github.com/tomtom215/catalogus/internal/pipeline"
)

// PipelineRunner is the slice of the pipeline the service drives.
type PipelineRunner interface {
	Run(ctx context.Context) (*models.RunStats, error)
	Stop()
	IsRunning() bool
}

// PipelineService runs the enrichment pipeline under supervision.
//
// With autoRun, one run executes at startup; a startup failure is
// returned to the supervisor, whose backoff paces the retries. With a
// refresh interval, further runs repeat on a ticker; periodic failures
// are logged and the loop keeps going, since the previous catalog stays
// valid. Without either, the service idles and runs are triggered via
// the API.
type PipelineService struct {
	runner          PipelineRunner
	autoRun         bool
	refreshInterval time.Duration
	name            string
}

// NewPipelineService creates a pipeline service wrapper.
func NewPipelineService(runner PipelineRunner, autoRun bool, refreshInterval time.Duration) *PipelineService {
	return &PipelineService{
		runner:          runner,
		autoRun:         autoRun,
		refreshInterval: refreshInterval,
		name:            "enrichment-pipeline",
	}
}

// Serve implements suture.Service.
func (s *PipelineService) Serve(ctx context.Context) error {
	if s.autoRun {
		logging.Info().Msg("Starting automatic enrichment run")
		stats, err := s.runner.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logging.Info().Msg("Enrichment run canceled due to shutdown")
				return ctx.Err()
			}
			return fmt.Errorf("startup enrichment run failed: %w", err)
		}
		logging.Info().
			Str("run_id", stats.RunID).
			Int64("written", stats.Written).
			Msg("Startup enrichment run completed")
	}

	if s.refreshInterval > 0 {
		return s.serveTicker(ctx)
	}

	// On-demand mode - just wait for shutdown
	logging.Info().Msg("Pipeline service started (on-demand mode - use API to trigger runs)")
	<-ctx.Done()

	// API-triggered runs are detached from this context; stop them explicitly
	if s.runner.IsRunning() {
		logging.Info().Msg("Stopping active enrichment run due to shutdown")
		s.runner.Stop()
	}

	return ctx.Err()
}

func (s *PipelineService) serveTicker(ctx context.Context) error {
	logging.Info().
		Dur("interval", s.refreshInterval).
		Msg("Pipeline service started (periodic refresh mode)")

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.runner.Run(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if errors.Is(err, pipeline.ErrRunInProgress) {
					logging.Debug().Msg("Skipping scheduled run, another run is active")
					continue
				}
				logging.Error().Err(err).Msg("Scheduled enrichment run failed")
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// String implements fmt.Stringer for suture's log messages.
func (s *PipelineService) String() string {
	return s.name
}
