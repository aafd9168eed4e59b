// Copyright (c) 2026 Patriarchia. All rights reserved.

package insight_test

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copticarchive/patriarchia/internal/insight"
	"github.com/copticarchive/patriarchia/internal/patriarch"
	"github.com/copticarchive/patriarchia/internal/platform/apperr"
)

// recordingGenerator captures prompts and replies with canned text.
type recordingGenerator struct {
	prompts []string
	answer  string
	err     error
}

func (r *recordingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if r.err != nil {
		return "", r.err
	}
	return r.answer, nil
}

type rosterRepository struct {
	records []*patriarch.Patriarch
}

func (r *rosterRepository) ListActive(ctx context.Context) ([]*patriarch.Patriarch, error) {
	active := make([]*patriarch.Patriarch, 0, len(r.records))
	for _, record := range r.records {
		if record.Active {
			active = append(active, record)
		}
	}
	return active, nil
}

func (r *rosterRepository) ListAll(ctx context.Context) ([]*patriarch.Patriarch, error) {
	return r.records, nil
}

func (r *rosterRepository) FindByID(ctx context.Context, id int) (*patriarch.Patriarch, error) {
	for _, record := range r.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, apperr.NotFound("Patriarch")
}

func (r *rosterRepository) FindBySlug(ctx context.Context, slug string) (*patriarch.Patriarch, error) {
	return nil, apperr.NotFound("Patriarch")
}

func (r *rosterRepository) Create(ctx context.Context, record *patriarch.Patriarch) error { return nil }
func (r *rosterRepository) Update(ctx context.Context, record *patriarch.Patriarch) error { return nil }
func (r *rosterRepository) SetActive(ctx context.Context, id int, active bool) error      { return nil }

func fixtureRepo() *rosterRepository {
	endYear := 373
	return &rosterRepository{records: []*patriarch.Patriarch{
		{
			ID: 1, Name: "Athanasius I", SequenceNumber: 20,
			StartYear: 328, EndYear: &endYear, Era: "Golden Age",
			Contributions:  "Defended Nicene theology",
			HeresiesFought: []string{"Arianism"},
			Active:         true,
		},
		{
			ID: 2, Name: "Tawadros II", SequenceNumber: 118,
			StartYear: 2012, Era: "Modern",
			Contributions: "Guides the contemporary church",
			Active:        true,
		},
		{ID: 3, Name: "Hidden One", SequenceNumber: 50, StartYear: 800, Era: "Medieval"},
	}}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

/*
TestService_AskQuestion verifies the question flow grounds the prompt in
the catalogue roster.
*/
func TestService_AskQuestion(t *testing.T) {
	generator := &recordingGenerator{answer: "Athanasius defended the Nicene creed."}
	service := insight.NewService(generator, fixtureRepo(), nil, quietLogger())

	answer, err := service.AskQuestion(context.Background(), "Who fought Arianism?")
	require.NoError(t, err)
	assert.Equal(t, "Athanasius defended the Nicene creed.", answer)

	require.Len(t, generator.prompts, 1)
	prompt := generator.prompts[0]
	assert.Contains(t, prompt, "Who fought Arianism?")
	assert.Contains(t, prompt, "Athanasius I")
	assert.Contains(t, prompt, "2012-present")
	assert.NotContains(t, prompt, "Hidden One") // inactive records stay out of the roster
}

/*
TestService_AskQuestion_Validation verifies empty and oversized questions
are rejected before any model call.
*/
func TestService_AskQuestion_Validation(t *testing.T) {
	generator := &recordingGenerator{answer: "unused"}
	service := insight.NewService(generator, fixtureRepo(), nil, quietLogger())
	ctx := context.Background()

	_, err := service.AskQuestion(ctx, "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.AskQuestion(ctx, strings.Repeat("x", 501))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	assert.Empty(t, generator.prompts)
}

/*
TestService_Summarize verifies the summary flow and its not-found paths.
*/
func TestService_Summarize(t *testing.T) {
	generator := &recordingGenerator{answer: "A short summary."}
	service := insight.NewService(generator, fixtureRepo(), nil, quietLogger())
	ctx := context.Background()

	answer, err := service.Summarize(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", answer)

	require.Len(t, generator.prompts, 1)
	assert.Contains(t, generator.prompts[0], "Defended Nicene theology")
	assert.Contains(t, generator.prompts[0], "Arianism")

	// Soft-deleted and unknown records are both not found.
	_, err = service.Summarize(ctx, 3)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.Summarize(ctx, 99)
	assert.Error(t, err)
}

/*
TestService_GeneratorFailure verifies upstream failures surface as typed
errors without panics.
*/
func TestService_GeneratorFailure(t *testing.T) {
	degraded := apperr.ServiceUnavailable("The insight service is temporarily unavailable")
	generator := &recordingGenerator{err: degraded}
	service := insight.NewService(generator, fixtureRepo(), nil, quietLogger())

	_, err := service.AskQuestion(context.Background(), "Who founded the church?")
	require.Error(t, err)
	assert.Equal(t, "SERVICE_UNAVAILABLE", apperr.As(err).Code)
}
