// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/catalogus/internal/config"
	"github.com/tomtom215/catalogus/internal/logging"
	"github.com/tomtom215/catalogus/internal/models"
	"github.com/tomtom215/catalogus/internal/pipeline"
)

// Store is the catalog read surface the handlers need.
type Store interface {
	GetTitles(ctx context.Context, limit, offset int, typeFilter string) ([]models.EnrichedTitle, error)
	CountTitles(ctx context.Context, typeFilter string) (int64, error)
	GetCatalogStats(ctx context.Context) (*models.CatalogStats, error)
	Ping(ctx context.Context) error
}

// Pipeline is the enrichment control surface the handlers need.
type Pipeline interface {
	Run(ctx context.Context) (*models.RunStats, error)
	IsRunning() bool
	LastRun() *models.RunStats
}

// Handler holds dependencies for all HTTP handlers
type Handler struct {
	store     Store
	pipeline  Pipeline
	cfg       *config.APIConfig
	version   string
	startTime time.Time
}

// NewHandler creates an API handler over the given store and pipeline.
func NewHandler(store Store, pl Pipeline, cfg *config.APIConfig, version string) *Handler {
	return &Handler{
		store:     store,
		pipeline:  pl,
		cfg:       cfg,
		version:   version,
		startTime: time.Now(),
	}
}

// TitlesRequest carries the validated query parameters of the titles
// endpoint.
type TitlesRequest struct {
	Limit  int    `validate:"min=1,max=500"`
	Offset int    `validate:"min=0"`
	Type   string `validate:"omitempty,oneof=Movie Show"`
}

// Health reports overall service health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.store.Ping(r.Context()) == nil

	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}

	var lastRunTime *time.Time
	if last := h.pipeline.LastRun(); last != nil {
		t := last.EndTime
		lastRunTime = &t
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:            status,
			Version:           h.version,
			DatabaseConnected: dbConnected,
			PipelineRunning:   h.pipeline.IsRunning(),
			LastRunTime:       lastRunTime,
			Uptime:            time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests. The service is ready once
// the catalog store answers pings; an empty catalog is still ready.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.store.Ping(r.Context()) == nil

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status":   status,
			"database": ready,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Titles serves a paginated page of the enriched catalog
func (h *Handler) Titles(w http.ResponseWriter, r *http.Request) {
	req := TitlesRequest{
		Limit:  getIntParam(r, "limit", h.cfg.DefaultPageSize),
		Offset: getIntParam(r, "offset", 0),
		Type:   r.URL.Query().Get("type"),
	}
	if req.Limit > h.cfg.MaxPageSize {
		req.Limit = h.cfg.MaxPageSize
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	titles, err := h.store.GetTitles(r.Context(), req.Limit, req.Offset, req.Type)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query catalog", err)
		return
	}

	total, err := h.store.CountTitles(r.Context(), req.Type)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count catalog", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   titles,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			Count:     len(titles),
			Pagination: &models.Pagination{
				Limit:  req.Limit,
				Offset: req.Offset,
				Total:  total,
			},
		},
	})
}

// Stats serves aggregate catalog statistics
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetCatalogStats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute catalog stats", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   stats,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// EnrichRun triggers an enrichment run in the background. Returns 202 when
// the run was accepted, 409 when a run is already active.
func (h *Handler) EnrichRun(w http.ResponseWriter, r *http.Request) {
	if h.pipeline.IsRunning() {
		respondError(w, http.StatusConflict, "RUN_IN_PROGRESS", "An enrichment run is already in progress", nil)
		return
	}

	go func() {
		// Detached from the request context: the run outlives the response
		if _, err := h.pipeline.Run(context.Background()); err != nil && !errors.Is(err, pipeline.ErrRunInProgress) {
			logging.Error().Err(err).Msg("Background enrichment run failed")
		}
	}()

	respondJSON(w, http.StatusAccepted, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"accepted": true,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// EnrichStatus reports whether a run is active and the stats of the last
// completed run.
func (h *Handler) EnrichStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"running":  h.pipeline.IsRunning(),
			"last_run": h.pipeline.LastRun(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
