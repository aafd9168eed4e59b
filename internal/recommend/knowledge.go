// Copyright (c) 2026 Patriarchia. All rights reserved.

package recommend

// TopicEntry maps one keyword cluster to canonical candidate names and a
// canned justification. The table is data-only: extending domain coverage
// means appending entries here, never touching the matching logic.
type TopicEntry struct {
	// Topic is the human-readable label of the cluster.
	Topic string

	// Keywords are matched case-insensitively as substrings of the
	// visitor's description. Substring (not word-boundary) matching is the
	// long-standing behavior; short fragments can over-match inside
	// unrelated words, so keep keywords reasonably specific.
	Keywords []string

	// NameFragments resolve to the first active record whose name or
	// Coptic name contains the fragment.
	NameFragments []string

	// Reason is the topic-level justification attached to every candidate
	// resolved from this entry.
	Reason string
}

// KnowledgeBase is the static topic table consulted by free-text scoring.
var KnowledgeBase = []TopicEntry{
	{
		Topic:         "Arianism",
		Keywords:      []string{"arian", "arius", "nicaea", "nicene", "council of nicea"},
		NameFragments: []string{"Athanasius", "Alexander"},
		Reason:        "Led the defense of Nicene orthodoxy against Arianism",
	},
	{
		Topic:         "Nestorianism",
		Keywords:      []string{"nestori", "ephesus", "theotokos"},
		NameFragments: []string{"Cyril"},
		Reason:        "Championed the Theotokos doctrine at the Council of Ephesus",
	},
	{
		Topic:         "Chalcedon",
		Keywords:      []string{"chalcedon", "miaphysite", "two natures", "one nature"},
		NameFragments: []string{"Dioscorus", "Timothy"},
		Reason:        "Defined the miaphysite confession after the Council of Chalcedon",
	},
	{
		Topic:         "persecution era",
		Keywords:      []string{"persecution", "martyr", "diocletian", "era of the martyrs"},
		NameFragments: []string{"Peter", "Demetrius"},
		Reason:        "Shepherded the church through the age of martyrdom",
	},
	{
		Topic:         "monasticism",
		Keywords:      []string{"monastic", "monaster", "monk", "desert", "ascetic"},
		NameFragments: []string{"Macarius", "Shenouda", "Cyril VI"},
		Reason:        "Revived and strengthened the desert monastic tradition",
	},
	{
		Topic:         "catechetical school",
		Keywords:      []string{"school", "catechetical", "education", "teaching", "scholar"},
		NameFragments: []string{"Demetrius", "Heraclas", "Dionysius"},
		Reason:        "Built up the Catechetical School of Alexandria",
	},
	{
		Topic:         "modern revival",
		Keywords:      []string{"modern", "contemporary", "twentieth", "20th", "revival", "diaspora"},
		NameFragments: []string{"Cyril VI", "Shenouda III", "Tawadros"},
		Reason:        "Led the modern revival and worldwide expansion of the church",
	},
	{
		Topic:         "missions",
		Keywords:      []string{"mission", "evangel", "ethiopia", "nubia", "africa"},
		NameFragments: []string{"Athanasius", "John"},
		Reason:        "Extended the church's reach beyond Egypt through missions",
	},
}

// CanonicalNameFragments identifies the landmark figures used for the
// rotating fallback selection when free-text matching yields nothing.
var CanonicalNameFragments = []string{
	"Mark",
	"Athanasius",
	"Cyril",
	"Dioscorus",
	"Cyril VI",
	"Shenouda III",
	"Tawadros",
}

// FallbackReason is the justification attached to fallback selections.
const FallbackReason = "A landmark figure in the history of the See of St. Mark"
