// Copyright (c) 2026 Patriarchia. All rights reserved.

package patriarch

import "context"

// # Catalogue Data Access

// Repository defines the data access contract for patriarch records.
//
// Implementations return raw records; the matching engine (filter/scorer)
// runs in memory so that every legacy heresy encoding behaves identically
// regardless of the storage backend.
type Repository interface {

	// ListActive returns every active record ordered by sequence number.
	ListActive(context context.Context) ([]*Patriarch, error)

	// ListAll returns every record including soft-deleted ones, for the
	// administrative listing only.
	ListAll(context context.Context) ([]*Patriarch, error)

	// FindByID returns the record with the given ID regardless of its
	// active flag. Callers on the public surface must check Active.
	FindByID(context context.Context, id int) (*Patriarch, error)

	// FindBySlug returns the record with the given slug regardless of its
	// active flag.
	FindBySlug(context context.Context, slug string) (*Patriarch, error)

	// Create persists a new record and fills in ID and timestamps.
	Create(context context.Context, record *Patriarch) error

	// Update persists all mutable fields of the record.
	Update(context context.Context, record *Patriarch) error

	// SetActive flips the soft-delete flag. Records are never hard-deleted.
	SetActive(context context.Context, id int, active bool) error
}
