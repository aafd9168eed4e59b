// Copyright (c) 2026 Patriarchia. All rights reserved.

package patriarch_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copticarchive/patriarchia/internal/patriarch"
)

/*
TestNormalizeHeresies_RoundTrip verifies that every supported textual
encoding of a clean value list decodes back to the original sequence.
*/
func TestNormalizeHeresies_RoundTrip(t *testing.T) {
	sequences := [][]string{
		{"Arianism"},
		{"Arianism", "Nestorianism"},
		{"Gnosticism", "Sabellianism", "Chalcedonianism"},
	}

	for _, want := range sequences {
		t.Run(strings.Join(want, "+"), func(t *testing.T) {
			// Brace literal: {"A","B"}
			braceLiteral := patriarch.EncodeHeresies(want)
			assert.Equal(t, want, patriarch.NormalizeHeresies(braceLiteral))

			// JSON array: ["A","B"]
			jsonArray, err := json.Marshal(want)
			require.NoError(t, err)
			assert.Equal(t, want, patriarch.NormalizeHeresies(string(jsonArray)))

			// Comma joined: A,B
			assert.Equal(t, want, patriarch.NormalizeHeresies(strings.Join(want, ",")))
		})
	}
}

/*
TestNormalizeHeresies_Totality verifies the decoder never panics and always
returns a non-nil sequence, whatever the input shape.
*/
func TestNormalizeHeresies_Totality(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"nil", nil, []string{}},
		{"empty_string", "", []string{}},
		{"whitespace", "   ", []string{}},
		{"nil_string_pointer", (*string)(nil), []string{}},
		{"empty_braces", "{}", []string{}},
		{"empty_json_array", "[]", []string{}},
		{"malformed_json", `["Arianism`, []string{`["Arianism`}},
		{"bare_value", "Arianism", []string{"Arianism"}},
		{"unexpected_type", 42, []string{}},
		{"map_input", map[string]string{"a": "b"}, []string{}},
		{"any_slice", []any{"Arianism", nil, "Nestorianism"}, []string{"Arianism", "Nestorianism"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			assert.NotPanics(t, func() {
				got = patriarch.NormalizeHeresies(tt.input)
			})
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestNormalizeHeresies_Idempotent verifies that normalizing an already
normalized slice returns an equal sequence.
*/
func TestNormalizeHeresies_Idempotent(t *testing.T) {
	original := []string{"Arianism", "Nestorianism"}

	once := patriarch.NormalizeHeresies(original)
	twice := patriarch.NormalizeHeresies(once)

	assert.Equal(t, original, once)
	assert.Equal(t, once, twice)
}

/*
TestNormalizeHeresies_LegacyEncodings pins the decoding of the exact forms
found in historic catalogue exports.
*/
func TestNormalizeHeresies_LegacyEncodings(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"comma_joined_legacy", "Arianism,Nestorianism", []string{"Arianism", "Nestorianism"}},
		{"brace_literal", `{"Chalcedonianism"}`, []string{"Chalcedonianism"}},
		{"brace_literal_unquoted", `{Arianism,Nestorianism}`, []string{"Arianism", "Nestorianism"}},
		{"json_array", `["Nestorianism"]`, []string{"Nestorianism"}},
		{"comma_with_spaces", "Arianism, Nestorianism", []string{"Arianism", "Nestorianism"}},
		{"trailing_comma", "Arianism,", []string{"Arianism"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, patriarch.NormalizeHeresies(tt.input))
		})
	}
}

/*
TestEncodeHeresies verifies the canonical write encoding.
*/
func TestEncodeHeresies(t *testing.T) {
	assert.Equal(t, `{"Arianism","Nestorianism"}`, patriarch.EncodeHeresies([]string{"Arianism", "Nestorianism"}))
	assert.Equal(t, "{}", patriarch.EncodeHeresies(nil))
	assert.Equal(t, "{}", patriarch.EncodeHeresies([]string{}))
}

func ExampleNormalizeHeresies() {
	fmt.Println(patriarch.NormalizeHeresies(`{"Arianism","Nestorianism"}`))
	// Output: [Arianism Nestorianism]
}
