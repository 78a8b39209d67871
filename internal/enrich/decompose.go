// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package enrich

import "strings"

// SplitGenres splits a comma-delimited genre list into the first two
// positional category columns. Tokens are trimmed of surrounding whitespace;
// empty tokens (from stray delimiters) are discarded. A missing position
// yields nil, so an empty or absent genre list produces two nil categories
// and a single-genre list produces a nil second category.
func SplitGenres(listedIn string) (category1, category2 *string) {
	if strings.TrimSpace(listedIn) == "" {
		return nil, nil
	}

	var tokens []string
	for _, tok := range strings.Split(listedIn, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}

	if len(tokens) > 0 {
		category1 = &tokens[0]
	}
	if len(tokens) > 1 {
		category2 = &tokens[1]
	}
	return category1, category2
}
