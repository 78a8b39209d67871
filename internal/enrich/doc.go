// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

// Package enrich implements the catalog enrichment rule engine.
//
// For each RawTitle the engine deterministically derives the full set of
// analytics fields through four stages:
//
//  1. Field decomposition - the comma-delimited genre list is split into
//     fixed-arity positional columns (SplitGenres).
//  2. Deterministic simulation - viewer count and IMDb-style rating are drawn
//     from pseudo-random streams seeded per record (simulate.go).
//  3. Rule-based classification - ordered first-match condition chains map
//     raw and simulated inputs to discrete tags (rules.go).
//  4. Templated text synthesis - review text and star glyphs are rendered
//     from the classification inputs (review.go).
//
// Every stage is a pure function of the record, so records can be enriched
// in parallel with no ordering guarantees. The viewer-count stream is seeded
// from the show ID combined with a fixed application seed, which makes it
// bit-identical across runs and safe under concurrent scheduling. The rating
// stream is seeded per run, so ratings vary between runs unless the rating
// seed is pinned in configuration; this asymmetry between the two streams is
// intentional and relied on by downstream reporting.
//
// Enrichment never fails a record: an unparseable duration or an empty genre
// list degrades to the rule's default value rather than aborting the batch.
package enrich
