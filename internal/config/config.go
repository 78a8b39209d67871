// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables.
type Config struct {
	Ingest   IngestConfig   `koanf:"ingest"`
	Enrich   EnrichConfig   `koanf:"enrich"`
	Pipeline PipelineConfig `koanf:"pipeline"`
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// IngestConfig describes the catalog source file.
//
// Environment Variables:
//   - INGEST_PATH: path to the catalog CSV export
type IngestConfig struct {
	// Path is the catalog CSV file to ingest. Required.
	Path string `koanf:"path"`
}

// EnrichConfig tunes the enrichment engine.
//
// The two seeds control the engine's two independent draw streams. The
// viewer seed is fixed so viewer counts reproduce bit-identically run to
// run; the rating seed defaults to 0, meaning a fresh time-derived seed per
// run, so ratings vary between runs. Pin RatingSeed for fully reproducible
// output (tests do).
//
// Environment Variables:
//   - ENRICH_VIEWER_SEED, ENRICH_RATING_SEED
//   - ENRICH_CURRENT_YEAR: reference year for freshness classification
//     (0 = wall clock)
//   - ENRICH_WORKERS: parallel enrichment workers (0 = NumCPU)
type EnrichConfig struct {
	ViewerSeed  int64 `koanf:"viewer_seed"`
	RatingSeed  int64 `koanf:"rating_seed"`
	CurrentYear int   `koanf:"current_year"`
	Workers     int   `koanf:"workers"`
}

// PipelineConfig controls pipeline scheduling.
//
// Environment Variables:
//   - PIPELINE_AUTO_RUN: run the pipeline once at startup (default: true)
//   - PIPELINE_REFRESH_INTERVAL: re-run period (0 = no periodic refresh)
type PipelineConfig struct {
	AutoRun         bool          `koanf:"auto_run"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// DatabaseConfig holds DuckDB settings.
//
// Environment Variables:
//   - DATABASE_PATH, DATABASE_MAX_MEMORY, DATABASE_THREADS
type DatabaseConfig struct {
	// Path is the DuckDB database file. ":memory:" for an in-memory store.
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB memory usage, e.g. "2GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 = runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - SERVER_HOST, SERVER_PORT, SERVER_TIMEOUT
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// APIConfig holds API pagination and middleware settings.
//
// Environment Variables:
//   - API_DEFAULT_PAGE_SIZE, API_MAX_PAGE_SIZE
//   - API_CORS_ORIGINS (comma-separated)
//   - API_RATE_LIMIT_REQS, API_RATE_LIMIT_WINDOW, API_RATE_LIMIT_DISABLED
type APIConfig struct {
	DefaultPageSize   int           `koanf:"default_page_size"`
	MaxPageSize       int           `koanf:"max_page_size"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks required fields and value ranges. It is called by Load;
// call it directly when constructing a Config by hand.
func (c *Config) Validate() error {
	if c.Ingest.Path == "" {
		return fmt.Errorf("ingest.path is required (set INGEST_PATH)")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Enrich.Workers < 0 {
		return fmt.Errorf("enrich.workers must not be negative, got %d", c.Enrich.Workers)
	}
	if c.Pipeline.RefreshInterval < 0 {
		return fmt.Errorf("pipeline.refresh_interval must not be negative, got %s", c.Pipeline.RefreshInterval)
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be at least 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must not be below api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("api.rate_limit_reqs must be at least 1, got %d", c.API.RateLimitReqs)
	}
	return nil
}
