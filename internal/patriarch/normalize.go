// Copyright (c) 2026 Patriarchia. All rights reserved.

package patriarch

import (
	"encoding/json"
	"fmt"
	"strings"
)

/*
NormalizeHeresies converts any raw stored representation of the "heresies
fought" attribute into a canonical flat sequence of trimmed, non-empty
strings.

The same logical field has been persisted under at least two database
engines with different native array-literal conventions, plus a legacy
JSON-string convention and a plain comma-joined form. Historical rows were
written under all of them simultaneously, so every read path must tolerate
every encoding. This function is the single shared decoding boundary — the
filter engine, the scorer, the export routine, and the storage scan path
all call it and never re-implement the rules.

Decoding rules, tried in priority order:

 1. Native string slice      → elements trimmed, empties dropped.
 2. "{...}" brace literal    → outer braces stripped, split on ",",
    wrapping '"' stripped per element, trimmed, empties dropped.
 3. "[...]" JSON array       → parsed; on parse failure the whole trimmed
    string is kept as a single bare value (rule 5).
 4. string containing ","    → split on ",", trimmed, empties dropped.
 5. non-empty bare string    → single-element sequence.
 6. anything else            → empty sequence.

NormalizeHeresies is total: it never panics and never returns nil.
*/
func NormalizeHeresies(raw any) []string {
	switch value := raw.(type) {
	case nil:
		return []string{}

	case []string:
		return cleanElements(value)

	case []any:
		// JSON decoding of an array payload yields []any.
		return cleanElements(coerceStrings(value))

	case *string:
		if value == nil {
			return []string{}
		}
		return normalizeText(*value)

	case string:
		return normalizeText(value)

	default:
		// Unknown shapes are a decoding failure: recover with an empty set.
		return []string{}
	}
}

// coerceStrings coerces a heterogeneous decoded array to strings.
func coerceStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		switch element := v.(type) {
		case string:
			out = append(out, element)
		case nil:
			// skip
		default:
			out = append(out, fmt.Sprintf("%v", element))
		}
	}
	return out
}

// normalizeText applies the textual decoding chain (rules 2–6).
func normalizeText(raw string) []string {
	trimmed := strings.TrimSpace(raw)

	// Rule 2: database array-literal encoding, e.g. {"Arianism","Nestorianism"}.
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		inner := trimmed[1 : len(trimmed)-1]
		parts := strings.Split(inner, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			part = strings.Trim(part, `"`)
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
		return out
	}

	// Rule 3: legacy JSON array encoding, e.g. ["Arianism","Nestorianism"].
	if strings.HasPrefix(trimmed, "[") {
		var decoded []any
		if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
			return cleanElements(coerceStrings(decoded))
		}
		// Malformed JSON falls through to the bare-value rule: the trimmed
		// string is non-empty here because it begins with '['.
		return []string{trimmed}
	}

	// Rule 4: plain comma-joined legacy form.
	if strings.Contains(trimmed, ",") {
		parts := strings.Split(trimmed, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
		return out
	}

	// Rule 5: single bare value.
	if trimmed != "" {
		return []string{trimmed}
	}

	// Rule 6: empty input.
	return []string{}
}

// cleanElements trims every element and drops the empties, preserving order.
func cleanElements(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// EncodeHeresies renders a normalized heresy list in the brace-literal
// dialect used for newly written rows. Decoding any EncodeHeresies output
// with [NormalizeHeresies] yields the original list.
func EncodeHeresies(heresies []string) string {
	if len(heresies) == 0 {
		return "{}"
	}
	quoted := make([]string, 0, len(heresies))
	for _, h := range heresies {
		quoted = append(quoted, `"`+h+`"`)
	}
	return "{" + strings.Join(quoted, ",") + "}"
}
