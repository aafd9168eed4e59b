// Copyright (c) 2026 Patriarchia. All rights reserved.

package recommend_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copticarchive/patriarchia/internal/patriarch"
	"github.com/copticarchive/patriarchia/internal/platform/apperr"
	"github.com/copticarchive/patriarchia/internal/recommend"
)

// stubRepository serves a fixed record set; only ListActive is exercised by
// the recommendation flow.
type stubRepository struct {
	records []*patriarch.Patriarch
	err     error
}

func (s *stubRepository) ListActive(ctx context.Context) ([]*patriarch.Patriarch, error) {
	return s.records, s.err
}

func (s *stubRepository) ListAll(ctx context.Context) ([]*patriarch.Patriarch, error) {
	return s.records, s.err
}

func (s *stubRepository) FindByID(ctx context.Context, id int) (*patriarch.Patriarch, error) {
	for _, record := range s.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, apperr.NotFound("Patriarch")
}

func (s *stubRepository) FindBySlug(ctx context.Context, slug string) (*patriarch.Patriarch, error) {
	for _, record := range s.records {
		if record.Slug == slug {
			return record, nil
		}
	}
	return nil, apperr.NotFound("Patriarch")
}

func (s *stubRepository) Create(ctx context.Context, record *patriarch.Patriarch) error { return nil }
func (s *stubRepository) Update(ctx context.Context, record *patriarch.Patriarch) error { return nil }
func (s *stubRepository) SetActive(ctx context.Context, id int, active bool) error      { return nil }

// stubAdvisor returns a canned note or an error.
type stubAdvisor struct {
	note string
	err  error
}

func (s *stubAdvisor) AdviceFor(ctx context.Context, record *patriarch.Patriarch, interest string) (string, error) {
	return s.note, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

/*
TestService_Recommend_Structured verifies the structured mode path.
*/
func TestService_Recommend_Structured(t *testing.T) {
	repo := &stubRepository{records: activeFixture()}
	service := recommend.NewService(repo, nil, testLogger())

	result, err := service.Recommend(context.Background(), recommend.Input{
		Preferences: recommend.Preferences{Eras: []string{"Golden Age"}},
	})

	require.NoError(t, err)
	assert.Equal(t, recommend.ModeStructured, result.Mode)
	assert.Len(t, result.Matches, 2)
}

/*
TestService_Recommend_FreeText verifies that a recognized description
routes through the knowledge base.
*/
func TestService_Recommend_FreeText(t *testing.T) {
	repo := &stubRepository{records: activeFixture()}
	service := recommend.NewService(repo, nil, testLogger())

	result, err := service.Recommend(context.Background(), recommend.Input{
		Description: "the struggle against Arianism",
	})

	require.NoError(t, err)
	assert.Equal(t, recommend.ModeFreeText, result.Mode)
	require.NotEmpty(t, result.Matches)
	assert.Equal(t, 95, result.Matches[0].Score)
}

/*
TestService_Recommend_Fallback verifies the rotating fallback replaces an
empty free-text result.
*/
func TestService_Recommend_Fallback(t *testing.T) {
	repo := &stubRepository{records: activeFixture()}
	service := recommend.NewService(repo, nil, testLogger())

	result, err := service.Recommend(context.Background(), recommend.Input{
		Description: "something entirely unrelated to church history",
	})

	require.NoError(t, err)
	assert.Equal(t, recommend.ModeFallback, result.Mode)
	assert.NotEmpty(t, result.Matches)
}

/*
TestService_Recommend_EmptyInput verifies fully empty input is rejected
with a validation error.
*/
func TestService_Recommend_EmptyInput(t *testing.T) {
	service := recommend.NewService(&stubRepository{}, nil, testLogger())

	_, err := service.Recommend(context.Background(), recommend.Input{})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestService_Recommend_AdviceEnrichment verifies the top match is annotated
and that advisor failures degrade to plain matches.
*/
func TestService_Recommend_AdviceEnrichment(t *testing.T) {
	repo := &stubRepository{records: activeFixture()}

	service := recommend.NewService(repo, &stubAdvisor{note: "a fine match"}, testLogger())
	result, err := service.Recommend(context.Background(), recommend.Input{
		Preferences: recommend.Preferences{Eras: []string{"Golden Age"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Matches)
	assert.Equal(t, "a fine match", result.Matches[0].Advice)

	// Advisor failure never fails the request.
	service = recommend.NewService(repo, &stubAdvisor{err: errors.New("model offline")}, testLogger())
	result, err = service.Recommend(context.Background(), recommend.Input{
		Preferences: recommend.Preferences{Eras: []string{"Golden Age"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Matches)
	assert.Empty(t, result.Matches[0].Advice)
}

/*
TestService_Recommend_RepositoryError verifies storage errors propagate.
*/
func TestService_Recommend_RepositoryError(t *testing.T) {
	repo := &stubRepository{err: errors.New("connection refused")}
	service := recommend.NewService(repo, nil, testLogger())

	_, err := service.Recommend(context.Background(), recommend.Input{
		Preferences: recommend.Preferences{Eras: []string{"Golden Age"}},
	})
	assert.Error(t, err)
}
