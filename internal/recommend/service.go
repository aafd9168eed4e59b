// Copyright (c) 2026 Patriarchia. All rights reserved.

package recommend

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/copticarchive/patriarchia/internal/patriarch"
	"github.com/copticarchive/patriarchia/internal/platform/apperr"
)

// Recommendation modes reported back to the client.
const (
	ModeStructured = "structured"
	ModeFreeText   = "description"
	ModeFallback   = "fallback"
)

// Advisor produces an optional one-line note for a single match. A nil
// Advisor disables enrichment entirely; a failing one degrades to plain
// matches.
type Advisor interface {
	AdviceFor(ctx context.Context, record *patriarch.Patriarch, interest string) (string, error)
}

// Result is the full outcome of one recommendation request.
type Result struct {
	Matches []Match
	Mode    string
}

// Service resolves preference input against the active catalogue.
type Service struct {
	repo    patriarch.Repository
	advisor Advisor
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires the recommendation engine. advisor may be nil.
func NewService(repo patriarch.Repository, advisor Advisor, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		advisor: advisor,
		logger:  logger,
		now:     time.Now,
	}
}

// Input carries one recommendation request. Description takes precedence
// over the structured fields when present.
type Input struct {
	Preferences
	Description string
}

// Recommend scores the active catalogue against the given input.
//
// A non-blank description routes through the knowledge base, falling back
// to the rotating landmark selection when no topic matches. Otherwise the
// structured preferences are weighed; fully empty input is rejected.
func (s *Service) Recommend(ctx context.Context, input Input) (*Result, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" && input.Preferences.IsZero() {
		return nil, apperr.ValidationError("Select at least one preference or describe your interest")
	}

	records, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	switch {
	case description != "":
		result.Mode = ModeFreeText
		result.Matches = ScoreFreeText(records, description)
		if len(result.Matches) == 0 {
			result.Mode = ModeFallback
			result.Matches = FallbackSelection(records, s.now())
		}
	default:
		result.Mode = ModeStructured
		result.Matches = ScoreStructured(records, input.Preferences)
	}

	s.annotate(ctx, result, description)

	s.logger.InfoContext(ctx, "recommendations_computed",
		slog.String("mode", result.Mode),
		slog.Int("matches", len(result.Matches)))
	return result, nil
}

// annotate asks the advisor for a note on the top match. Failures are
// logged and dropped so advice never blocks a response.
func (s *Service) annotate(ctx context.Context, result *Result, interest string) {
	if s.advisor == nil || len(result.Matches) == 0 || result.Mode == ModeFallback {
		return
	}

	top := &result.Matches[0]
	advice, err := s.advisor.AdviceFor(ctx, top.Patriarch, interest)
	if err != nil {
		s.logger.WarnContext(ctx, "recommendation_advice_failed", slog.Any("error", err))
		return
	}
	top.Advice = advice
}
