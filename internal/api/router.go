// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

// Package api exposes the enriched catalog over HTTP: paginated title
// listings, aggregate stats, enrichment run control, health probes, and
// Prometheus metrics.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/catalogus/internal/config"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handler *Handler
	cfg     *config.APIConfig
}

// NewRouter creates a router over the given handler.
func NewRouter(handler *Handler, cfg *config.APIConfig) *Router {
	return &Router{
		handler: handler,
		cfg:     cfg,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware(router.cfg)) // CORS must be global to handle OPTIONS preflight

	// Health endpoints: no rate limiting so probes never get throttled
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Catalog and enrichment endpoints
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimitMiddleware(router.cfg))
		r.Use(prometheusMiddleware)

		r.Get("/titles", router.handler.Titles)
		r.Get("/stats", router.handler.Stats)
		r.Post("/enrich/run", router.handler.EnrichRun)
		r.Get("/enrich/status", router.handler.EnrichStatus)
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
