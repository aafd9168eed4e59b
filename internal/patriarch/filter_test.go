// Copyright (c) 2026 Patriarchia. All rights reserved.

package patriarch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copticarchive/patriarchia/internal/patriarch"
)

// catalogueFixture builds a small in-memory catalogue covering the eras and
// legacy heresy encodings exercised by the filter tests.
func catalogueFixture() []*patriarch.Patriarch {
	return []*patriarch.Patriarch{
		{
			ID: 1, Name: "Mark the Evangelist", Era: "Apostolic",
			StartYear: 43, Contributions: "Founded the Church of Alexandria",
			Biography: "Apostle and evangelist", Active: true,
		},
		{
			ID: 2, Name: "Athanasius I", Era: "Golden Age",
			StartYear: 328, Contributions: "Defended Nicene theology",
			Biography:      "Father of Orthodoxy",
			HeresiesFought: patriarch.NormalizeHeresies("Arianism,Nestorianism"),
			Active:         true,
		},
		{
			ID: 3, Name: "Dioscorus I", Era: "Golden Age",
			StartYear: 444, Contributions: "Defended the miaphysite confession",
			HeresiesFought: patriarch.NormalizeHeresies(`{"Chalcedonianism"}`),
			Active:         true,
		},
		{
			ID: 4, Name: "Shenouda III", Era: "Modern",
			StartYear: 1971, Contributions: "Expanded Coptic missions worldwide",
			Biography: "Scholar and teacher", Active: true,
		},
	}
}

/*
TestApplyFilter_Identity verifies that an empty filter returns the input
unchanged in order and count.
*/
func TestApplyFilter_Identity(t *testing.T) {
	records := catalogueFixture()

	got := patriarch.ApplyFilter(records, patriarch.Filter{})
	require.Len(t, got, len(records))
	for i := range records {
		assert.Same(t, records[i], got[i])
	}

	// The "all" era sentinel is equivalent to no era predicate.
	got = patriarch.ApplyFilter(records, patriarch.Filter{Era: patriarch.EraAll})
	assert.Len(t, got, len(records))
}

/*
TestApplyFilter_Conjunction verifies that a multi-dimension filter equals
the intersection of each dimension applied independently.
*/
func TestApplyFilter_Conjunction(t *testing.T) {
	records := catalogueFixture()

	combined := patriarch.Filter{
		SearchText: "defended",
		Era:        "Golden Age",
		Heresies:   []string{"Arianism"},
	}

	got := patriarch.ApplyFilter(records, combined)

	// Independent passes.
	bySearch := patriarch.ApplyFilter(records, patriarch.Filter{SearchText: "defended"})
	byEra := patriarch.ApplyFilter(records, patriarch.Filter{Era: "Golden Age"})
	byHeresy := patriarch.ApplyFilter(records, patriarch.Filter{Heresies: []string{"Arianism"}})

	intersection := make([]*patriarch.Patriarch, 0)
	for _, record := range records {
		if containsRecord(bySearch, record) && containsRecord(byEra, record) && containsRecord(byHeresy, record) {
			intersection = append(intersection, record)
		}
	}

	assert.Equal(t, intersection, got)
	require.Len(t, got, 1)
	assert.Equal(t, "Athanasius I", got[0].Name)
}

/*
TestApplyFilter_LegacyHeresyEncodings pins the two concrete legacy-encoding
behaviors: a comma-joined record matches its decoded elements, and a
brace-literal record does not match an unrelated heresy.
*/
func TestApplyFilter_LegacyHeresyEncodings(t *testing.T) {
	records := catalogueFixture()

	// Comma-joined legacy value decodes to both names.
	got := patriarch.ApplyFilter(records, patriarch.Filter{Heresies: []string{"Nestorianism"}})
	require.Len(t, got, 1)
	assert.Equal(t, "Athanasius I", got[0].Name)

	// Brace-literal record holds only Chalcedonianism, so Monophysitism
	// must exclude it.
	got = patriarch.ApplyFilter(records, patriarch.Filter{Heresies: []string{"Monophysitism"}})
	assert.Empty(t, got)
}

/*
TestApplyFilter_Search verifies the case-insensitive multi-field search.
*/
func TestApplyFilter_Search(t *testing.T) {
	records := catalogueFixture()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"name_match", "athanasius", []string{"Athanasius I"}},
		{"biography_match", "apostle", []string{"Mark the Evangelist"}},
		{"contributions_match", "missions", []string{"Shenouda III"}},
		{"case_insensitive", "NICENE", []string{"Athanasius I"}},
		{"no_match", "byzantium", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := patriarch.ApplyFilter(records, patriarch.Filter{SearchText: tt.search})

			names := make([]string, 0, len(got))
			for _, record := range got {
				names = append(names, record.Name)
			}
			if tt.want == nil {
				assert.Empty(t, names)
			} else {
				assert.Equal(t, tt.want, names)
			}
		})
	}
}

/*
TestApplyFilter_EraExact verifies the era predicate is exact and
case-sensitive.
*/
func TestApplyFilter_EraExact(t *testing.T) {
	records := catalogueFixture()

	got := patriarch.ApplyFilter(records, patriarch.Filter{Era: "Golden Age"})
	assert.Len(t, got, 2)

	got = patriarch.ApplyFilter(records, patriarch.Filter{Era: "golden age"})
	assert.Empty(t, got)
}

func containsRecord(records []*patriarch.Patriarch, target *patriarch.Patriarch) bool {
	for _, record := range records {
		if record == target {
			return true
		}
	}
	return false
}
