// Copyright (c) 2026 Patriarchia. All rights reserved.

package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/copticarchive/patriarchia/internal/patriarch"
	"github.com/copticarchive/patriarchia/pkg/slice"
)

// # Bucket Tables

// periodBucket is a fixed start-year range with its justification string.
// Ranges deliberately overlap (a 4th-century patriarch is both "early" and
// "golden"); only the single selected bucket is evaluated per scoring run.
type periodBucket struct {
	Min    int
	Max    int
	Reason string
}

var periodBuckets = map[string]periodBucket{
	"early":    {Min: math.MinInt, Max: 399, Reason: "Served in the early centuries of the church"},
	"golden":   {Min: 300, Max: 600, Reason: "Served during the golden age of the church fathers"},
	"councils": {Min: 300, Max: 800, Reason: "Served in the age of the ecumenical councils"},
	"modern":   {Min: 1800, Max: math.MaxInt, Reason: "Served in the modern era"},
}

// keywordBucket matches a fixed keyword set as substrings of a text field.
type keywordBucket struct {
	Keywords []string
	Reason   string
}

// topicBuckets are matched against the lower-cased contributions text.
var topicBuckets = map[string]keywordBucket{
	"theology":   {Keywords: []string{"theolog", "doctrin", "creed", "trinit"}, Reason: "Known for theological contributions"},
	"leadership": {Keywords: []string{"led", "leader", "reform", "organiz", "guid"}, Reason: "Known for strong church leadership"},
	"missions":   {Keywords: []string{"mission", "evangel", "spread", "convert"}, Reason: "Known for missionary outreach"},
	"defense":    {Keywords: []string{"defen", "protect", "against", "heres"}, Reason: "Known for defending the faith"},
}

// traitBuckets are matched against the lower-cased contributions plus biography.
var traitBuckets = map[string]keywordBucket{
	"courage":      {Keywords: []string{"courag", "brave", "bold", "martyr", "stood"}, Reason: "Remembered for courage under pressure"},
	"wisdom":       {Keywords: []string{"wisdom", "wise", "scholar", "learn", "teach"}, Reason: "Remembered for wisdom and learning"},
	"compassion":   {Keywords: []string{"compassion", "mercy", "care", "poor", "humble"}, Reason: "Remembered for compassion and humility"},
	"perseverance": {Keywords: []string{"persever", "endur", "exile", "patien", "stead"}, Reason: "Remembered for perseverance through trials"},
}

// # Structured Scoring

/*
ScoreStructured computes a ranked, justified shortlist from explicit
preference selections.

Each rule category is evaluated independently and its weight added to the
record's cumulative score; every matched category appends exactly one
justification string. Records with a cumulative score of zero are excluded
entirely — they are never returned as low-confidence matches. Ties keep
input order (stable sort) and at most six results are returned.

Contradictory or impossible selections are not validated: they simply
produce zero matches.
*/
func ScoreStructured(records []*patriarch.Patriarch, prefs Preferences) []Match {
	matches := make([]Match, 0)

	for _, record := range records {
		score := 0
		reasons := make([]string, 0, 4)

		// Era membership.
		if len(prefs.Eras) > 0 && slice.Contains(prefs.Eras, record.Era) {
			score += scoreEra
			reasons = append(reasons, fmt.Sprintf("From the %s era", record.Era))
		}

		// Heresy intersection: each shared name counts.
		if len(prefs.Heresies) > 0 {
			normalized := patriarch.NormalizeHeresies(record.HeresiesFought)
			shared := slice.Filter(normalized, func(h string) bool {
				return slice.Contains(prefs.Heresies, h)
			})
			if len(shared) > 0 {
				score += scoreHeresy * len(shared)
				reasons = append(reasons, "Fought against "+strings.Join(shared, ", "))
			}
		}

		// Time-period bucket keyed off the start year.
		if bucket, ok := periodBuckets[prefs.Period]; ok {
			if record.StartYear >= bucket.Min && record.StartYear <= bucket.Max {
				score += scorePeriod
				reasons = append(reasons, bucket.Reason)
			}
		}

		// Topic bucket over the contributions text.
		if bucket, ok := topicBuckets[prefs.Topic]; ok {
			if containsAny(strings.ToLower(record.Contributions), bucket.Keywords) {
				score += scoreTopic
				reasons = append(reasons, bucket.Reason)
			}
		}

		// Personality-trait bucket over contributions plus biography.
		if bucket, ok := traitBuckets[prefs.Trait]; ok {
			haystack := strings.ToLower(record.Contributions + " " + record.Biography)
			if containsAny(haystack, bucket.Keywords) {
				score += scoreTrait
				reasons = append(reasons, bucket.Reason)
			}
		}

		// Free search text across identity and contributions.
		if search := strings.ToLower(strings.TrimSpace(prefs.SearchText)); search != "" {
			if strings.Contains(strings.ToLower(record.Name), search) ||
				strings.Contains(strings.ToLower(record.CopticName), search) ||
				strings.Contains(strings.ToLower(record.Contributions), search) {
				score += scoreSearch
				reasons = append(reasons, "Matches your search")
			}
		}

		if score > 0 {
			matches = append(matches, Match{Patriarch: record, Score: score, Reasons: reasons})
		}
	}

	// Stable descending sort preserves input order among ties.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}

// # Free-Text Scoring

/*
ScoreFreeText resolves a free-form interest description through the
knowledge base.

For every topic whose keyword set has a case-insensitive substring hit in
the description, each candidate name fragment is resolved to the first
record whose name or Coptic name contains it. Candidates carry the fixed
knowledge-base score and a topic plus era justification, deduplicated by
record identity across topics.

When no topic matches, the result is empty — the caller substitutes the
fallback presentation; this function never guesses.
*/
func ScoreFreeText(records []*patriarch.Patriarch, description string) []Match {
	lowered := strings.ToLower(description)

	matches := make([]Match, 0)
	seen := make(map[int]struct{})

	for _, entry := range KnowledgeBase {
		if !containsAny(lowered, lowerAll(entry.Keywords)) {
			continue
		}

		for _, fragment := range entry.NameFragments {
			record := firstByNameFragment(records, fragment)
			if record == nil {
				continue
			}
			if _, duplicate := seen[record.ID]; duplicate {
				continue
			}
			seen[record.ID] = struct{}{}

			reasons := []string{entry.Reason}
			if record.Era != "" {
				reasons = append(reasons, fmt.Sprintf("Served during the %s era", record.Era))
			}

			matches = append(matches, Match{
				Patriarch: record,
				Score:     scoreKnowledgeBase,
				Reasons:   reasons,
			})
		}
	}

	return matches
}

// FallbackSelection returns a rotating pick of landmark figures for the
// empty free-text result. The rotation is keyed by day of year so repeat
// visitors see variety while a single day stays deterministic.
func FallbackSelection(records []*patriarch.Patriarch, now time.Time) []Match {
	resolved := make([]*patriarch.Patriarch, 0, len(CanonicalNameFragments))
	seen := make(map[int]struct{})

	for _, fragment := range CanonicalNameFragments {
		record := firstByNameFragment(records, fragment)
		if record == nil {
			continue
		}
		if _, duplicate := seen[record.ID]; duplicate {
			continue
		}
		seen[record.ID] = struct{}{}
		resolved = append(resolved, record)
	}

	if len(resolved) == 0 {
		return []Match{}
	}

	const picks = 3
	start := now.YearDay() % len(resolved)

	matches := make([]Match, 0, picks)
	for i := 0; i < picks && i < len(resolved); i++ {
		record := resolved[(start+i)%len(resolved)]
		matches = append(matches, Match{
			Patriarch: record,
			Reasons:   []string{FallbackReason},
		})
	}
	return matches
}

// # Scoring Helpers

// containsAny reports whether any keyword appears as a substring of text.
func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// lowerAll lower-cases every keyword.
func lowerAll(keywords []string) []string {
	return slice.Map(keywords, strings.ToLower)
}

// firstByNameFragment returns the first record whose name or Coptic name
// contains the fragment, case-insensitively.
func firstByNameFragment(records []*patriarch.Patriarch, fragment string) *patriarch.Patriarch {
	needle := strings.ToLower(fragment)
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.Name), needle) ||
			strings.Contains(strings.ToLower(record.CopticName), needle) {
			return record
		}
	}
	return nil
}
