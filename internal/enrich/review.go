// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package enrich

import (
	"fmt"
	"strings"
)

const (
	// reviewPositiveThreshold is the rating at which the synthesized review
	// switches from the negative to the positive template.
	reviewPositiveThreshold = 8.5

	reviewPositiveTemplate = "An outstanding %s that critics and audiences love."
	reviewNegativeTemplate = "A below-average %s experience that struggles to engage viewers."

	starGlyph = "⭐"
)

// reviewText synthesizes the human-readable review sentence from the
// simulated rating and the media type ("Movie" or "Show").
func reviewText(imdbRating float64, mediaType string) string {
	if imdbRating >= reviewPositiveThreshold {
		return fmt.Sprintf(reviewPositiveTemplate, mediaType)
	}
	return fmt.Sprintf(reviewNegativeTemplate, mediaType)
}

// starGlyphs renders the star column: the glyph repeated floor(rating/2)
// times. With ratings in [4.0, 9.5] the count is always 2 to 4, but the
// count is clamped at zero to stay total if the rating range ever changes.
func starGlyphs(imdbRating float64) string {
	n := int(imdbRating / 2)
	if n < 0 {
		n = 0
	}
	return strings.Repeat(starGlyph, n)
}
