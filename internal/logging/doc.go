// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

// Package logging provides centralized zerolog-based structured logging for Catalogus.
//
// The package exposes a single global logger configured once at startup,
// with JSON output for production and human-readable console output for
// development.
//
// # Quick Start
//
//	import "github.com/tomtom215/catalogus/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("show_id", id).Msg("Record enriched")
//	logging.Error().Err(err).Msg("Overwrite failed")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # slog Bridge
//
// NewSlogHandler adapts the global zerolog logger to a slog.Handler so that
// libraries requiring *slog.Logger (such as sutureslog) share the same sink:
//
//	slogger := slog.New(logging.NewSlogHandler())
//
// Always terminate log chains with .Msg() or .Send(); a chain without a
// terminator is silently dropped by zerolog.
package logging
