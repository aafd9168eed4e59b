// Copyright (c) 2026 Patriarchia. All rights reserved.

/*
Package patriarch defines the core domain of the Patriarchia catalogue: the
118 patriarchs of the Coptic Orthodox Church and the matching engine that
searches and filters them.

Core Responsibility:

  - Records: Defines the patriarch entity, its lifecycle (soft delete) and
    its administrative CRUD operations.
  - Normalization: Canonicalizes the multi-valued "heresies fought"
    attribute, which historical rows persisted under several incompatible
    textual encodings.
  - Matching: Applies compound search/era/heresy filter predicates to the
    in-memory record collection.

This package acts as the source of truth for all catalogue data models.
*/
package patriarch

import "time"

// # Core Entity

// Patriarch is the central aggregate of the Patriarchia domain.
// It represents a single occupant of the See of St. Mark.
type Patriarch struct {
	ID         int    `json:"id"`
	Slug       string `json:"slug"` // URL-safe identifier
	Name       string `json:"name"`
	CopticName string `json:"coptic_name,omitempty"`

	// SequenceNumber is the nominal position in the historical succession.
	// It is densely assigned but NOT enforced unique: administrators may
	// introduce duplicates or gaps, and the matching engine tolerates both.
	SequenceNumber int `json:"sequence_number"`

	StartYear int  `json:"start_year"`
	EndYear   *int `json:"end_year,omitempty"` // nil = incumbent (service ongoing)

	// Era is an open, admin-extensible vocabulary — new era labels may be
	// introduced at record-creation time, so this is deliberately not an enum.
	Era string `json:"era"`

	Contributions string `json:"contributions"`
	Biography     string `json:"biography,omitempty"`

	// HeresiesFought is the canonical, already-normalized form of the
	// multi-valued attribute. Every ingestion path (database scan, admin
	// payload) funnels through [NormalizeHeresies] before this field is set.
	// Order is preserved for display; matching treats it as a set.
	HeresiesFought []string `json:"heresies_fought"`

	// Active is the soft-delete flag. Records are never physically purged;
	// "deletion" sets Active to false and hides the record from every
	// query surface except the administrative listing.
	Active bool `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Incumbent reports whether the patriarch's service is ongoing.
func (p *Patriarch) Incumbent() bool {
	return p.EndYear == nil
}

// # Field Identifiers

// Global field names for validation and identity mapping in the catalogue domain.
const (
	FieldName           = "name"
	FieldCopticName     = "coptic_name"
	FieldSequenceNumber = "sequence_number"
	FieldStartYear      = "start_year"
	FieldEndYear        = "end_year"
	FieldEra            = "era"
	FieldContributions  = "contributions"
	FieldBiography      = "biography"
	FieldHeresiesFought = "heresies_fought"
)
