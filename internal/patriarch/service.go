// Copyright (c) 2026 Patriarchia. All rights reserved.

package patriarch

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"github.com/copticarchive/patriarchia/internal/platform/apperr"
	"github.com/copticarchive/patriarchia/internal/platform/validate"
	"github.com/copticarchive/patriarchia/pkg/pagination"
	"github.com/copticarchive/patriarchia/pkg/slug"
)

// # Service Layer

// Service orchestrates the business logic for the patriarch catalogue.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Catalogue Lookups

/*
List retrieves a filtered, paginated page of active patriarch records.

Description: The repository returns every active record; the compound
filter engine then evaluates the search/era/heresy predicates in memory so
that all legacy heresy encodings are matched identically. The full
catalogue is 118 records, so the in-memory pass is cheaper than shipping
the predicate semantics into SQL.

Parameters:
  - context: context.Context
  - criteria: Filter (search text, era, heresies)
  - page: pagination.Params

Returns:
  - []*Patriarch: The records on the requested page
  - int: Total count of records matching the filter (for pagination metadata)
  - error: Repository-level errors
*/
func (service *Service) List(context context.Context, criteria Filter, page pagination.Params) ([]*Patriarch, int, error) {
	records, err := service.repo.ListActive(context)
	if err != nil {
		return nil, 0, err
	}

	matched := ApplyFilter(records, criteria)
	total := len(matched)

	// Page slicing after filtering: the filter owns the result semantics.
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

/*
Get fetches a single active record by numeric ID or URL slug.

Description: The service determines the lookup strategy from the
identifier's shape. Soft-deleted records are invisible on this surface and
reported as not found.
*/
func (service *Service) Get(context context.Context, identifier string) (*Patriarch, error) {
	var record *Patriarch
	var err error

	if id, convErr := strconv.Atoi(identifier); convErr == nil {
		record, err = service.repo.FindByID(context, id)
	} else {
		record, err = service.repo.FindBySlug(context, identifier)
	}
	if err != nil {
		return nil, err
	}

	if !record.Active {
		return nil, apperr.NotFound("Patriarch")
	}

	return record, nil
}

// Eras returns the distinct era labels present on active records, sorted
// alphabetically. The vocabulary is open, so this is derived from data
// rather than from an enum.
func (service *Service) Eras(context context.Context) ([]string, error) {
	records, err := service.repo.ListActive(context)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	eras := make([]string, 0)
	for _, record := range records {
		if record.Era == "" {
			continue
		}
		if _, ok := seen[record.Era]; ok {
			continue
		}
		seen[record.Era] = struct{}{}
		eras = append(eras, record.Era)
	}

	sort.Strings(eras)
	return eras, nil
}

// Heresies returns the distinct normalized heresy names present on active
// records, sorted alphabetically. Used by the frontend to build the filter UI.
func (service *Service) Heresies(context context.Context) ([]string, error) {
	records, err := service.repo.ListActive(context)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	heresies := make([]string, 0)
	for _, record := range records {
		for _, heresy := range NormalizeHeresies(record.HeresiesFought) {
			if _, ok := seen[heresy]; ok {
				continue
			}
			seen[heresy] = struct{}{}
			heresies = append(heresies, heresy)
		}
	}

	sort.Strings(heresies)
	return heresies, nil
}

// # Administration

// AdminList returns every record, soft-deleted ones included. This is the
// only query surface where inactive records are visible.
func (service *Service) AdminList(context context.Context) ([]*Patriarch, error) {
	return service.repo.ListAll(context)
}

// CreateInput holds the data required to enroll a new catalogue record.
//
// HeresiesFought is deliberately untyped: administrative payloads arrive as
// a JSON array, a legacy encoded string, or a single bare name, and all of
// them funnel through [NormalizeHeresies].
type CreateInput struct {
	Name           string
	CopticName     string
	SequenceNumber int
	StartYear      int
	EndYear        *int
	Era            string
	Contributions  string
	Biography      string
	HeresiesFought any
}

/*
Create validates and persists a brand new patriarch record.

Description: Performs business validation, derives an SEO slug from the
name, canonicalizes the heresy list, and persists via the repository.
sequence_number duplicates and end_year < start_year are tolerated as
data-quality concerns — administrators own succession numbering.
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Patriarch, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	validator.Required(FieldEra, input.Era).MaxLen(FieldEra, input.Era, 100)
	validator.Required(FieldContributions, input.Contributions)
	validator.Positive(FieldSequenceNumber, input.SequenceNumber)
	validator.Custom(FieldStartYear, input.StartYear == 0, "This field is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	record := &Patriarch{
		Slug:           slug.From(input.Name),
		Name:           input.Name,
		CopticName:     input.CopticName,
		SequenceNumber: input.SequenceNumber,
		StartYear:      input.StartYear,
		EndYear:        input.EndYear,
		Era:            input.Era,
		Contributions:  input.Contributions,
		Biography:      input.Biography,
		HeresiesFought: NormalizeHeresies(input.HeresiesFought),
		Active:         true,
	}

	if err := service.repo.Create(context, record); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "patriarch_created",
		slog.Int("id", record.ID),
		slog.String("slug", record.Slug),
	)

	return record, nil
}

// UpdateInput describes a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Name           *string
	CopticName     *string
	SequenceNumber *int
	StartYear      *int
	EndYear        *int
	ClearEndYear   bool // distinguish "set incumbent" from "leave unchanged"
	Era            *string
	Contributions  *string
	Biography      *string
	HeresiesFought any
}

/*
Update applies a partial mutation to an existing record.

Description: Fetches the current row, overlays the supplied fields,
re-validates the merged entity, and persists it. The ID, slug, and
timestamps are never client-mutable; UpdatedAt is refreshed by the store.
*/
func (service *Service) Update(context context.Context, id int, input UpdateInput) (*Patriarch, error) {
	record, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		record.Name = *input.Name
	}
	if input.CopticName != nil {
		record.CopticName = *input.CopticName
	}
	if input.SequenceNumber != nil {
		record.SequenceNumber = *input.SequenceNumber
	}
	if input.StartYear != nil {
		record.StartYear = *input.StartYear
	}
	if input.ClearEndYear {
		record.EndYear = nil
	} else if input.EndYear != nil {
		record.EndYear = input.EndYear
	}
	if input.Era != nil {
		record.Era = *input.Era
	}
	if input.Contributions != nil {
		record.Contributions = *input.Contributions
	}
	if input.Biography != nil {
		record.Biography = *input.Biography
	}
	if input.HeresiesFought != nil {
		record.HeresiesFought = NormalizeHeresies(input.HeresiesFought)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, record.Name).MaxLen(FieldName, record.Name, 200)
	validator.Required(FieldEra, record.Era).MaxLen(FieldEra, record.Era, 100)
	validator.Required(FieldContributions, record.Contributions)
	validator.Positive(FieldSequenceNumber, record.SequenceNumber)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, record); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "patriarch_updated", slog.Int("id", record.ID))
	return record, nil
}

// SoftDelete hides a record from every non-administrative surface.
// The row itself is preserved.
func (service *Service) SoftDelete(context context.Context, id int) error {
	if err := service.repo.SetActive(context, id, false); err != nil {
		return err
	}
	service.logger.InfoContext(context, "patriarch_soft_deleted", slog.Int("id", id))
	return nil
}

// Restore reverses a soft delete.
func (service *Service) Restore(context context.Context, id int) error {
	if err := service.repo.SetActive(context, id, true); err != nil {
		return err
	}
	service.logger.InfoContext(context, "patriarch_restored", slog.Int("id", id))
	return nil
}
