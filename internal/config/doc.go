// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

// Package config provides centralized configuration management for Catalogus.
//
// Configuration is loaded via Koanf v2 with layered sources, highest
// priority last:
//
//  1. Built-in defaults for every optional setting
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables
//
// Sections cover ingestion (catalog source file), the enrichment engine
// (seeds, reference year, workers), the pipeline (auto-run, refresh
// interval), the DuckDB database, the HTTP server, the API, and logging.
//
// The Config returned by Load is validated and immutable; it is safe for
// concurrent read access from multiple goroutines.
package config
