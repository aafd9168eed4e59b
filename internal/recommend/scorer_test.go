// Copyright (c) 2026 Patriarchia. All rights reserved.

package recommend_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copticarchive/patriarchia/internal/patriarch"
	"github.com/copticarchive/patriarchia/internal/recommend"
)

func activeFixture() []*patriarch.Patriarch {
	return []*patriarch.Patriarch{
		{
			ID: 1, Name: "Mark the Evangelist", Era: "Apostolic",
			StartYear: 43, Contributions: "Founded the Church of Alexandria",
			Active: true,
		},
		{
			ID: 2, Name: "Athanasius I", Era: "Golden Age",
			StartYear: 328, Contributions: "Defended Nicene theology through five exiles",
			Biography:      "Father of Orthodoxy, known for courage in exile",
			HeresiesFought: []string{"Arianism"},
			Active:         true,
		},
		{
			ID: 3, Name: "Cyril I", Era: "Golden Age",
			StartYear: 412, Contributions: "Championed doctrine at the Council of Ephesus",
			HeresiesFought: []string{"Nestorianism"},
			Active:         true,
		},
		{
			ID: 4, Name: "Shenouda III", Era: "Modern",
			StartYear: 1971, Contributions: "Expanded Coptic missions worldwide and taught a generation",
			Active: true,
		},
	}
}

/*
TestScoreStructured_ScenarioWeights pins the additive weight model: era 30,
heresy 20, topic 20 gives score 70 with exactly three reason strings.
*/
func TestScoreStructured_ScenarioWeights(t *testing.T) {
	records := []*patriarch.Patriarch{
		{
			ID: 10, Name: "Anianus", Era: "Apostolic", StartYear: 61,
			HeresiesFought: patriarch.NormalizeHeresies(`{"Roman Paganism"}`),
			Contributions:  "Laid foundations of Alexandrian theology",
			Active:         true,
		},
	}

	matches := recommend.ScoreStructured(records, recommend.Preferences{
		Eras:     []string{"Apostolic"},
		Heresies: []string{"Roman Paganism"},
		Topic:    "theology",
	})

	require.Len(t, matches, 1)
	assert.Equal(t, 70, matches[0].Score)
	assert.Len(t, matches[0].Reasons, 3)
}

/*
TestScoreStructured_Monotonicity verifies that adding one more matching
category never decreases a fixed candidate's score.
*/
func TestScoreStructured_Monotonicity(t *testing.T) {
	records := activeFixture()

	// Each step adds one matching category for Athanasius (ID 2).
	steps := []recommend.Preferences{
		{Eras: []string{"Golden Age"}},
		{Eras: []string{"Golden Age"}, Heresies: []string{"Arianism"}},
		{Eras: []string{"Golden Age"}, Heresies: []string{"Arianism"}, Period: "golden"},
		{Eras: []string{"Golden Age"}, Heresies: []string{"Arianism"}, Period: "golden", Topic: "theology"},
		{Eras: []string{"Golden Age"}, Heresies: []string{"Arianism"}, Period: "golden", Topic: "theology", Trait: "courage"},
		{Eras: []string{"Golden Age"}, Heresies: []string{"Arianism"}, Period: "golden", Topic: "theology", Trait: "courage", SearchText: "Athanasius"},
	}

	previous := 0
	for i, prefs := range steps {
		matches := recommend.ScoreStructured(records, prefs)

		score := 0
		for _, match := range matches {
			if match.Patriarch.ID == 2 {
				score = match.Score
			}
		}

		assert.GreaterOrEqual(t, score, previous, "step %d lowered the score", i)
		previous = score
	}

	// All six categories matched.
	assert.Equal(t, 30+20+25+20+15+10, previous)
}

/*
TestScoreStructured_TopNBound verifies the result cap and the strict
positive-score floor.
*/
func TestScoreStructured_TopNBound(t *testing.T) {
	records := make([]*patriarch.Patriarch, 0, 10)
	for i := 1; i <= 10; i++ {
		records = append(records, &patriarch.Patriarch{
			ID: i, Name: fmt.Sprintf("Patriarch %d", i), Era: "Golden Age",
			StartYear: 300 + i, Active: true,
		})
	}

	matches := recommend.ScoreStructured(records, recommend.Preferences{Eras: []string{"Golden Age"}})
	assert.LessOrEqual(t, len(matches), 6)
	for _, match := range matches {
		assert.Positive(t, match.Score)
	}

	// Nothing matches: nothing returned, not zero-score placeholders.
	matches = recommend.ScoreStructured(records, recommend.Preferences{Eras: []string{"Apostolic"}})
	assert.Empty(t, matches)
}

/*
TestScoreStructured_Ranking verifies descending order with stable ties.
*/
func TestScoreStructured_Ranking(t *testing.T) {
	records := activeFixture()

	matches := recommend.ScoreStructured(records, recommend.Preferences{
		Eras:     []string{"Golden Age"},
		Heresies: []string{"Arianism"},
	})

	require.Len(t, matches, 2)
	assert.Equal(t, "Athanasius I", matches[0].Patriarch.Name) // 30 + 20
	assert.Equal(t, "Cyril I", matches[1].Patriarch.Name)      // 30
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

/*
TestScoreFreeText_KnowledgeBase verifies keyword-to-candidate resolution at
the fixed knowledge-base score.
*/
func TestScoreFreeText_KnowledgeBase(t *testing.T) {
	records := activeFixture()

	matches := recommend.ScoreFreeText(records, "I am interested in the defenders against Arianism")

	require.NotEmpty(t, matches)

	var athanasius *recommend.Match
	for i := range matches {
		if matches[i].Patriarch.Name == "Athanasius I" {
			athanasius = &matches[i]
		}
	}
	require.NotNil(t, athanasius, "expected a match resolved through the Athanasius name fragment")
	assert.Equal(t, 95, athanasius.Score)
	assert.NotEmpty(t, athanasius.Reasons)
}

/*
TestScoreFreeText_NoTopicMatch verifies an unrecognized description yields
no matches rather than guesses.
*/
func TestScoreFreeText_NoTopicMatch(t *testing.T) {
	matches := recommend.ScoreFreeText(activeFixture(), "tell me about submarine warfare")
	assert.Empty(t, matches)
}

/*
TestScoreFreeText_Deduplication verifies a record reachable through two
matched topics appears once.
*/
func TestScoreFreeText_Deduplication(t *testing.T) {
	records := activeFixture()

	// "arius" and "nicaea" both hit the Arianism entry; mentioning councils
	// can pull Cyril through a second entry. No ID may repeat.
	matches := recommend.ScoreFreeText(records, "arius, nicaea, and the nestorian controversy")

	seen := make(map[int]int)
	for _, match := range matches {
		seen[match.Patriarch.ID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "record %d returned more than once", id)
	}
}

/*
TestFallbackSelection verifies the rotating landmark selection is
deterministic for a fixed day and rotates across days.
*/
func TestFallbackSelection(t *testing.T) {
	records := activeFixture()

	day1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	first := recommend.FallbackSelection(records, day1)
	again := recommend.FallbackSelection(records, day1)
	assert.Equal(t, first, again)

	require.NotEmpty(t, first)
	assert.LessOrEqual(t, len(first), 3)
	for _, match := range first {
		assert.Zero(t, match.Score)
		assert.Equal(t, []string{recommend.FallbackReason}, match.Reasons)
	}

	next := recommend.FallbackSelection(records, day2)
	assert.NotEqual(t, first[0].Patriarch.ID, next[0].Patriarch.ID)
}

/*
TestFallbackSelection_Empty verifies an empty catalogue yields an empty,
non-nil selection.
*/
func TestFallbackSelection_Empty(t *testing.T) {
	matches := recommend.FallbackSelection(nil, time.Now())
	require.NotNil(t, matches)
	assert.Empty(t, matches)
}
