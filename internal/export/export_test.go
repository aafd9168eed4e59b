// Copyright (c) 2026 Patriarchia. All rights reserved.

package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copticarchive/patriarchia/internal/export"
	"github.com/copticarchive/patriarchia/internal/patriarch"
	"github.com/copticarchive/patriarchia/internal/platform/apperr"
)

type fixedRepository struct {
	records []*patriarch.Patriarch
}

func (f *fixedRepository) ListActive(ctx context.Context) ([]*patriarch.Patriarch, error) {
	return f.records, nil
}

func (f *fixedRepository) ListAll(ctx context.Context) ([]*patriarch.Patriarch, error) {
	return f.records, nil
}

func (f *fixedRepository) FindByID(ctx context.Context, id int) (*patriarch.Patriarch, error) {
	return nil, apperr.NotFound("Patriarch")
}

func (f *fixedRepository) FindBySlug(ctx context.Context, slug string) (*patriarch.Patriarch, error) {
	return nil, apperr.NotFound("Patriarch")
}

func (f *fixedRepository) Create(ctx context.Context, record *patriarch.Patriarch) error { return nil }
func (f *fixedRepository) Update(ctx context.Context, record *patriarch.Patriarch) error { return nil }
func (f *fixedRepository) SetActive(ctx context.Context, id int, active bool) error      { return nil }

/*
TestService_WriteCSV verifies the snapshot shape: header row, one row per
record including soft-deleted ones, canonical heresy joining, and the
empty end year for the incumbent.
*/
func TestService_WriteCSV(t *testing.T) {
	endYear := 373
	repo := &fixedRepository{records: []*patriarch.Patriarch{
		{
			ID: 1, Name: "Athanasius I", CopticName: "Ⲁⲑⲁⲛⲁⲥⲓⲟⲥ",
			SequenceNumber: 20, StartYear: 328, EndYear: &endYear,
			Era:            "Golden Age",
			Contributions:  "Defended Nicene theology",
			Biography:      "Father of Orthodoxy",
			HeresiesFought: patriarch.NormalizeHeresies("Arianism,Sabellianism"),
			Active:         true,
		},
		{
			ID: 2, Name: "Tawadros II", SequenceNumber: 118, StartYear: 2012,
			Era: "Modern", Contributions: "Guides the contemporary church",
			Active: false,
		},
	}}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	service := export.NewService(repo, logger)

	var buf bytes.Buffer
	require.NoError(t, service.WriteCSV(context.Background(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"sequence_number", "name", "coptic_name", "start_year", "end_year",
		"era", "heresies_fought", "contributions", "biography", "active",
	}, rows[0])

	assert.Equal(t, []string{
		"20", "Athanasius I", "Ⲁⲑⲁⲛⲁⲥⲓⲟⲥ", "328", "373",
		"Golden Age", "Arianism; Sabellianism", "Defended Nicene theology",
		"Father of Orthodoxy", "true",
	}, rows[1])

	// Incumbent end year stays empty; soft-deleted rows are included.
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, "false", rows[2][9])
}
