// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package enrich

import "strings"

// parseDurationValue extracts the leading integer from a duration string such
// as "90 min" or "2 Seasons". The unit is ignored; only the magnitude is
// compared by the classification rules. Returns ok=false when the string has
// no numeric prefix, in which case duration-based conditions are treated as
// unsatisfied rather than failing the record.
//
// Comparing magnitudes numerically (instead of lexically on the raw string)
// is deliberate: a lexical comparison would order "100 min" before "90 min".
func parseDurationValue(duration string) (value int, ok bool) {
	s := strings.TrimSpace(duration)

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}

	for _, c := range s[:i] {
		value = value*10 + int(c-'0')
	}
	return value, true
}
