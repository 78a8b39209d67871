// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package enrich

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
)

// DefaultViewerSeed is the fixed application seed for the viewer-count
// stream. Combined with each record's show ID it yields a viewer count that
// is bit-identical across runs regardless of record ordering or parallelism.
const DefaultViewerSeed = 42

// Simulated value ranges.
const (
	ratingMin  = 4.0
	ratingSpan = 5.5 // rating = U*span + min, so the range is [4.0, 9.5)

	viewerMin  = 1000
	viewerSpan = 999000 // viewer = floor(U*span) + min, so the range is [1000, 999999]
)

// recordSeed derives a deterministic generator seed from a record identity
// and an application seed. SHA-256 keeps the derivation stable across
// platforms and Go releases.
func recordSeed(showID string, seed int64) int64 {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", showID, seed)))
	return int64(binary.BigEndian.Uint64(sum[:8]) & math.MaxInt64)
}

// simulateViewerCount draws the simulated viewer count for a record.
// The draw stream is bound to the show ID so the result is reproducible
// under any scheduling of records.
func simulateViewerCount(showID string, seed int64) int64 {
	r := rand.New(rand.NewSource(recordSeed(showID, seed)))
	return int64(math.Floor(r.Float64()*viewerSpan)) + viewerMin
}

// simulateIMDBRating draws the simulated rating for a record, rounded to one
// decimal place. The stream is seeded per run, so unlike the viewer count the
// rating is free to vary between runs.
func simulateIMDBRating(showID string, runSeed int64) float64 {
	r := rand.New(rand.NewSource(recordSeed(showID, runSeed)))
	return math.Round((r.Float64()*ratingSpan+ratingMin)*10) / 10
}
