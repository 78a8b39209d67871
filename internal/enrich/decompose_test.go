// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package enrich

import "testing"

func TestSplitGenres(t *testing.T) {
	tests := []struct {
		name     string
		listedIn string
		want1    string
		want2    string
		nil1     bool
		nil2     bool
	}{
		{name: "two genres", listedIn: "Horror, Drama", want1: "Horror", want2: "Drama"},
		{name: "single genre", listedIn: "Animation", want1: "Animation", nil2: true},
		{name: "three genres keeps first two", listedIn: "Action, Comedy, Drama", want1: "Action", want2: "Comedy"},
		{name: "untrimmed tokens", listedIn: "  Horror ,  Thriller  ", want1: "Horror", want2: "Thriller"},
		{name: "empty string", listedIn: "", nil1: true, nil2: true},
		{name: "whitespace only", listedIn: "   ", nil1: true, nil2: true},
		{name: "trailing delimiter", listedIn: "Drama,", want1: "Drama", nil2: true},
		{name: "leading delimiter", listedIn: ",Drama", want1: "Drama", nil2: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c1, c2 := SplitGenres(tt.listedIn)

			if tt.nil1 {
				if c1 != nil {
					t.Errorf("category1 = %q, want nil", *c1)
				}
			} else if c1 == nil || *c1 != tt.want1 {
				t.Errorf("category1 = %v, want %q", c1, tt.want1)
			}

			if tt.nil2 {
				if c2 != nil {
					t.Errorf("category2 = %q, want nil", *c2)
				}
			} else if c2 == nil || *c2 != tt.want2 {
				t.Errorf("category2 = %v, want %q", c2, tt.want2)
			}
		})
	}
}
