// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

// Package models defines the core data structures shared across Catalogus.
//
// The central types are RawTitle (a catalog record exactly as ingested) and
// EnrichedTitle (the same record plus every derived analytics field produced
// by the enrichment engine). RunStats tracks pipeline run accounting, and the
// API response envelope types mirror the JSON contract consumed by the
// dashboard.
//
// Nullable source fields (director, country, the positional genre columns)
// are represented as pointers so that absent values survive the round trip
// to the database and the API as real NULLs rather than empty strings.
package models
