// Copyright (c) 2026 Patriarchia. All rights reserved.

package patriarch_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copticarchive/patriarchia/internal/patriarch"
	"github.com/copticarchive/patriarchia/internal/platform/apperr"
	"github.com/copticarchive/patriarchia/pkg/pagination"
)

// memoryRepository is an in-memory [patriarch.Repository] for service tests.
type memoryRepository struct {
	records []*patriarch.Patriarch
	nextID  int
}

func newMemoryRepository(records ...*patriarch.Patriarch) *memoryRepository {
	repo := &memoryRepository{nextID: 1}
	for _, record := range records {
		record.ID = repo.nextID
		repo.nextID++
		repo.records = append(repo.records, record)
	}
	return repo
}

func (m *memoryRepository) ListActive(ctx context.Context) ([]*patriarch.Patriarch, error) {
	active := make([]*patriarch.Patriarch, 0, len(m.records))
	for _, record := range m.records {
		if record.Active {
			active = append(active, record)
		}
	}
	return active, nil
}

func (m *memoryRepository) ListAll(ctx context.Context) ([]*patriarch.Patriarch, error) {
	return m.records, nil
}

func (m *memoryRepository) FindByID(ctx context.Context, id int) (*patriarch.Patriarch, error) {
	for _, record := range m.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, apperr.NotFound("Patriarch")
}

func (m *memoryRepository) FindBySlug(ctx context.Context, slug string) (*patriarch.Patriarch, error) {
	for _, record := range m.records {
		if record.Slug == slug {
			return record, nil
		}
	}
	return nil, apperr.NotFound("Patriarch")
}

func (m *memoryRepository) Create(ctx context.Context, record *patriarch.Patriarch) error {
	record.ID = m.nextID
	m.nextID++
	m.records = append(m.records, record)
	return nil
}

func (m *memoryRepository) Update(ctx context.Context, record *patriarch.Patriarch) error {
	for i, existing := range m.records {
		if existing.ID == record.ID {
			m.records[i] = record
			return nil
		}
	}
	return apperr.NotFound("Patriarch")
}

func (m *memoryRepository) SetActive(ctx context.Context, id int, active bool) error {
	for _, record := range m.records {
		if record.ID == id {
			record.Active = active
			return nil
		}
	}
	return apperr.NotFound("Patriarch")
}

func serviceUnderTest(records ...*patriarch.Patriarch) (*patriarch.Service, *memoryRepository) {
	repo := newMemoryRepository(records...)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return patriarch.NewService(repo, logger), repo
}

func record(name, slugValue, era string, sequence int, active bool) *patriarch.Patriarch {
	return &patriarch.Patriarch{
		Name: name, Slug: slugValue, Era: era,
		SequenceNumber: sequence, StartYear: 100 * sequence,
		Contributions: "Contributions of " + name,
		Active:        active,
	}
}

/*
TestService_Get resolves records by numeric ID and by slug, and hides
soft-deleted rows from the public surface.
*/
func TestService_Get(t *testing.T) {
	service, _ := serviceUnderTest(
		record("Mark the Evangelist", "mark-the-evangelist", "Apostolic", 1, true),
		record("Athanasius I", "athanasius-i", "Golden Age", 20, false),
	)
	ctx := context.Background()

	byID, err := service.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Mark the Evangelist", byID.Name)

	bySlug, err := service.Get(ctx, "mark-the-evangelist")
	require.NoError(t, err)
	assert.Equal(t, byID, bySlug)

	// Soft-deleted records read as not found.
	_, err = service.Get(ctx, "2")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.Get(ctx, "no-such-slug")
	assert.Error(t, err)
}

/*
TestService_List verifies filtering and page slicing over active records.
*/
func TestService_List(t *testing.T) {
	service, _ := serviceUnderTest(
		record("Mark the Evangelist", "mark", "Apostolic", 1, true),
		record("Athanasius I", "athanasius", "Golden Age", 20, true),
		record("Cyril I", "cyril", "Golden Age", 24, true),
		record("Hidden One", "hidden", "Golden Age", 30, false),
	)
	ctx := context.Background()

	records, total, err := service.List(ctx, patriarch.Filter{Era: "Golden Age"}, pagination.Params{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, records, 1)
	assert.Equal(t, "Athanasius I", records[0].Name)

	// Page past the end is empty, not an error.
	records, total, err = service.List(ctx, patriarch.Filter{}, pagination.Params{Page: 9, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, records)
}

/*
TestService_Vocabularies verifies the distinct era and heresy listings.
*/
func TestService_Vocabularies(t *testing.T) {
	a := record("Athanasius I", "athanasius", "Golden Age", 20, true)
	a.HeresiesFought = []string{"Arianism", "Nestorianism"}
	b := record("Cyril I", "cyril", "Golden Age", 24, true)
	b.HeresiesFought = []string{"Nestorianism"}
	hidden := record("Hidden One", "hidden", "Lost Era", 30, false)

	service, _ := serviceUnderTest(
		record("Mark the Evangelist", "mark", "Apostolic", 1, true), a, b, hidden)
	ctx := context.Background()

	eras, err := service.Eras(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apostolic", "Golden Age"}, eras)

	heresies, err := service.Heresies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Arianism", "Nestorianism"}, heresies)
}

/*
TestService_Create verifies validation, slug derivation, and heresy
canonicalization on enrollment.
*/
func TestService_Create(t *testing.T) {
	service, _ := serviceUnderTest()
	ctx := context.Background()

	created, err := service.Create(ctx, patriarch.CreateInput{
		Name:           "Athanasius I",
		SequenceNumber: 20,
		StartYear:      328,
		Era:            "Golden Age",
		Contributions:  "Defended Nicene theology",
		HeresiesFought: "Arianism,Sabellianism",
	})
	require.NoError(t, err)
	assert.Equal(t, "athanasius-i", created.Slug)
	assert.True(t, created.Active)
	assert.Equal(t, []string{"Arianism", "Sabellianism"}, created.HeresiesFought)

	// Required fields enforced.
	_, err = service.Create(ctx, patriarch.CreateInput{Name: "No Era"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_Update verifies the fetch-overlay-revalidate flow including
the incumbent flag clearing the end year.
*/
func TestService_Update(t *testing.T) {
	existing := record("Shenouda III", "shenouda-iii", "Modern", 117, true)
	endYear := 2012
	existing.EndYear = &endYear

	service, _ := serviceUnderTest(existing)
	ctx := context.Background()

	newBio := "Scholar, poet, and teacher."
	updated, err := service.Update(ctx, existing.ID, patriarch.UpdateInput{
		Biography:    &newBio,
		ClearEndYear: true,
	})
	require.NoError(t, err)
	assert.Equal(t, newBio, updated.Biography)
	assert.Nil(t, updated.EndYear)
	assert.True(t, updated.Incumbent())

	// Overlaying an empty name fails validation.
	empty := ""
	_, err = service.Update(ctx, existing.ID, patriarch.UpdateInput{Name: &empty})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Unknown ID.
	_, err = service.Update(ctx, 999, patriarch.UpdateInput{})
	assert.Error(t, err)
}

/*
TestService_SoftDeleteAndRestore verifies the soft-delete round trip.
*/
func TestService_SoftDeleteAndRestore(t *testing.T) {
	service, repo := serviceUnderTest(
		record("Mark the Evangelist", "mark", "Apostolic", 1, true))
	ctx := context.Background()

	require.NoError(t, service.SoftDelete(ctx, 1))
	assert.False(t, repo.records[0].Active)

	// Hidden from the public surface but present in the admin listing.
	_, err := service.Get(ctx, "1")
	assert.Error(t, err)

	all, err := service.AdminList(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, service.Restore(ctx, 1))
	assert.True(t, repo.records[0].Active)

	_, err = service.Get(ctx, "1")
	assert.NoError(t, err)
}
