// Copyright (c) 2026 Patriarchia. All rights reserved.

package patriarch

import "strings"

// EraAll is the sentinel era value meaning "no era predicate".
const EraAll = "all"

// Filter holds the compound predicate configuration for catalogue matching.
//
// Predicates left at their zero value (or at the [EraAll] sentinel) are
// treated as always-true, so an empty Filter matches every record.
type Filter struct {
	// SearchText matches case-insensitively as a substring of the name,
	// Coptic name, biography, or contributions field (any one suffices).
	SearchText string

	// Era matches on exact, case-sensitive equality. Empty or "all" disables
	// the predicate.
	Era string

	// Heresies matches when the record's normalized heresy set intersects
	// this set in at least one element (exact equality after normalization).
	Heresies []string
}

// IsZero reports whether no predicate is configured.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.SearchText) == "" &&
		(f.Era == "" || f.Era == EraAll) &&
		len(f.Heresies) == 0
}

/*
ApplyFilter returns the subset of records matching every configured
predicate (logical AND across predicate categories; logical OR within
fields of the text search and within the heresies set).

Guarantees:

  - Relative input order is preserved; nothing is duplicated.
  - A record whose stored heresy field cannot be decoded simply has zero
    heresies: it fails the heresies predicate when one is supplied but is
    unaffected by the search and era predicates.
  - An entirely empty Filter returns every record unchanged.

ApplyFilter is a pure function over in-memory data: no I/O, no shared
mutable state, safe for concurrent callers.
*/
func ApplyFilter(records []*Patriarch, criteria Filter) []*Patriarch {
	matched := make([]*Patriarch, 0, len(records))
	for _, record := range records {
		if matchesFilter(record, criteria) {
			matched = append(matched, record)
		}
	}
	return matched
}

// matchesFilter evaluates the conjunction of all configured predicates.
func matchesFilter(record *Patriarch, criteria Filter) bool {

	// ── Free-text search across name fields ───────────────────────────────
	if search := strings.ToLower(strings.TrimSpace(criteria.SearchText)); search != "" {
		haystacks := []string{record.Name, record.CopticName, record.Biography, record.Contributions}
		found := false
		for _, field := range haystacks {
			if strings.Contains(strings.ToLower(field), search) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// ── Exact era match ───────────────────────────────────────────────────
	if criteria.Era != "" && criteria.Era != EraAll && record.Era != criteria.Era {
		return false
	}

	// ── Heresy intersection ───────────────────────────────────────────────
	if len(criteria.Heresies) > 0 {
		normalized := NormalizeHeresies(record.HeresiesFought)
		if !intersects(normalized, criteria.Heresies) {
			return false
		}
	}

	return true
}

// intersects reports whether the two string sets share at least one element.
func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
