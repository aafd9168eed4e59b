// Copyright (c) 2026 Patriarchia. All rights reserved.

/*
Package recommend implements the interest-matching engine of the catalogue.

Given either a structured preference selection or a free-form interest
description, it scores every active patriarch record, attaches a
human-readable justification list, and returns a ranked shortlist.

Core Responsibility:

  - Structured scoring: Independent weighted rule categories (era, heresy,
    time-period bucket, topic bucket, personality-trait bucket, search text).
  - Free-text scoring: A static keyword-topic knowledge base resolves the
    description to canonical candidates.
  - Fallback: When free-text matching finds nothing, the service substitutes
    a rotating selection of landmark figures so an open-ended request never
    renders a bare empty state.

The scoring functions are pure, synchronous computations over in-memory
records; the optional generative-language advice annotation lives outside
this package and never influences ranking.
*/
package recommend

import "github.com/copticarchive/patriarchia/internal/patriarch"

// # Scoring Weights

const (
	// scoreEra is awarded when the record's era is among the selected eras.
	scoreEra = 30
	// scoreHeresy is awarded per intersecting heresy name.
	scoreHeresy = 20
	// scorePeriod is awarded when the record falls in the selected time-period bucket.
	scorePeriod = 25
	// scoreTopic is awarded when the contributions text matches the selected topic bucket.
	scoreTopic = 20
	// scoreTrait is awarded when the contributions+biography text matches the selected trait bucket.
	scoreTrait = 15
	// scoreSearch is awarded when the free search text appears in the record.
	scoreSearch = 10

	// scoreKnowledgeBase is the fixed score for knowledge-base candidates.
	scoreKnowledgeBase = 95

	// maxResults bounds the structured ranking output.
	maxResults = 6
)

// Preferences is the structured selection a visitor makes in the
// recommendation form. Every field is optional; empty fields are
// always-true and contribute no score.
type Preferences struct {
	// Eras is the set of acceptable era labels (exact match).
	Eras []string `json:"eras,omitempty"`

	// Heresies is the set of heresy names of interest (matched against the
	// record's normalized heresy list).
	Heresies []string `json:"heresies,omitempty"`

	// Period selects one time-period bucket keyed off the start year:
	// "early", "golden", "councils", or "modern". Bucket ranges overlap;
	// only the single selected bucket is evaluated per scoring run.
	Period string `json:"period,omitempty"`

	// Topic selects one contribution-topic bucket: "theology",
	// "leadership", "missions", or "defense".
	Topic string `json:"topic,omitempty"`

	// Trait selects one personality-trait bucket: "courage", "wisdom",
	// "compassion", or "perseverance".
	Trait string `json:"trait,omitempty"`

	// SearchText is free text matched as a substring of the name, Coptic
	// name, or contributions.
	SearchText string `json:"search_text,omitempty"`
}

// IsZero reports whether no structured preference is set.
func (p Preferences) IsZero() bool {
	return len(p.Eras) == 0 && len(p.Heresies) == 0 &&
		p.Period == "" && p.Topic == "" && p.Trait == "" && p.SearchText == ""
}

// Match is one ranked recommendation: a record, its cumulative relevance
// score, and one human-readable justification per matched rule category.
type Match struct {
	Patriarch *patriarch.Patriarch `json:"patriarch"`
	Score     int                  `json:"score"`
	Reasons   []string             `json:"reasons"`

	// Advice is an optional generative-language annotation attached after
	// ranking. It never influences scores and is absent when the AI layer
	// is unavailable.
	Advice string `json:"advice,omitempty"`
}
