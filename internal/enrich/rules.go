// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package enrich

import "regexp"

// Classification output values. Empty string means the rule's tag is unset
// for the record and serializes as NULL / an omitted JSON field.
const (
	ReleaseTypeNew      = "New"
	ReleaseTypeModerate = "Moderate"
	ReleaseTypeOld      = "Old"

	WatchLevelHigh = "Highly Watched"

	TrafficLateNight = "10PM–1AM"
	TrafficMorning   = "8AM–12PM"
	TrafficAfternoon = "12PM–4PM"

	ReplayHigh = "High"

	NostalgiaHigh = "High"
	NostalgiaLow  = "Low"

	SequelYes   = "Yes"
	SequelMaybe = "Maybe"
)

// Classification thresholds.
const (
	releaseAgeNew      = 2
	releaseAgeModerate = 5

	watchLevelViewerMin = 1_000_000

	replayRatingMin   = 8.0
	replayDurationMax = 90

	nostalgiaYearBefore = 2010

	sequelViewerMin = 500_000
	sequelRatingMin = 7.0
)

var (
	lateNightGenres = regexp.MustCompile(`(?i)Horror|Thriller`)
	morningGenres   = regexp.MustCompile(`(?i)Kids|Animation`)
)

// ruleInput carries the raw and simulated inputs the classification rules
// read. Rules never read each other's outputs, only this shared input, so
// the rules themselves can be evaluated in any order.
type ruleInput struct {
	releaseAge  int
	releaseYear int
	listedIn    string
	imdbRating  float64
	viewerCount int64
	durationVal int
	durationOK  bool
}

// clause is a single (predicate, value) pair within a rule.
type clause struct {
	when  func(in ruleInput) bool
	value string
}

// rule is an ordered first-match condition chain producing one categorical
// output. Clauses are checked in declaration order; the first satisfied
// clause wins, and fallback applies when none match.
type rule struct {
	clauses  []clause
	fallback string
}

func (r rule) eval(in ruleInput) string {
	for _, c := range r.clauses {
		if c.when(in) {
			return c.value
		}
	}
	return r.fallback
}

// The classification rule table. One rule per derived categorical field;
// thresholds and clause order mirror the reporting contract exactly.
var (
	movieReleaseTypeRule = rule{
		clauses: []clause{
			{func(in ruleInput) bool { return in.releaseAge <= releaseAgeNew }, ReleaseTypeNew},
			{func(in ruleInput) bool { return in.releaseAge <= releaseAgeModerate }, ReleaseTypeModerate},
		},
		fallback: ReleaseTypeOld,
	}

	watchLevelRule = rule{
		clauses: []clause{
			{func(in ruleInput) bool { return in.viewerCount >= watchLevelViewerMin }, WatchLevelHigh},
		},
		fallback: "",
	}

	mostTrafficTimeRule = rule{
		clauses: []clause{
			{func(in ruleInput) bool { return lateNightGenres.MatchString(in.listedIn) }, TrafficLateNight},
			{func(in ruleInput) bool { return morningGenres.MatchString(in.listedIn) }, TrafficMorning},
		},
		fallback: TrafficAfternoon,
	}

	replayButtonRule = rule{
		clauses: []clause{
			{func(in ruleInput) bool {
				return in.imdbRating > replayRatingMin && in.durationOK && in.durationVal < replayDurationMax
			}, ReplayHigh},
		},
		fallback: "",
	}

	nostalgiaFactorRule = rule{
		clauses: []clause{
			{func(in ruleInput) bool { return in.releaseYear < nostalgiaYearBefore }, NostalgiaHigh},
		},
		fallback: NostalgiaLow,
	}

	sequelPotentialRule = rule{
		clauses: []clause{
			{func(in ruleInput) bool {
				return in.viewerCount > sequelViewerMin && in.imdbRating > sequelRatingMin
			}, SequelYes},
		},
		fallback: SequelMaybe,
	}
)
