// Copyright (c) 2026 Patriarchia. All rights reserved.

package insight

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/copticarchive/patriarchia/internal/patriarch"
	"github.com/copticarchive/patriarchia/internal/platform/apperr"
	"github.com/copticarchive/patriarchia/internal/platform/constants"
)

// Service answers catalogue questions through a [Generator], with a Redis
// answer cache in front of the model.
type Service struct {
	generator Generator
	repo      patriarch.Repository
	cache     *redis.Client
	logger    *slog.Logger
}

// NewService wires the insight service. cache may be nil to disable caching.
func NewService(generator Generator, repo patriarch.Repository, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		generator: generator,
		repo:      repo,
		cache:     cache,
		logger:    logger,
	}
}

// # Operations

// AskQuestion answers a free-form history question grounded in the active
// catalogue roster.
func (s *Service) AskQuestion(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", apperr.ValidationError("Question must not be empty")
	}
	if len(question) > constants.InsightMaxQuestionLen {
		return "", apperr.ValidationError(fmt.Sprintf("Question must be at most %d characters", constants.InsightMaxQuestionLen))
	}

	records, err := s.repo.ListActive(ctx)
	if err != nil {
		return "", err
	}

	prompt := questionPrompt(records, question)
	return s.generate(ctx, prompt)
}

// Summarize produces a short visitor-facing summary for one record.
func (s *Service) Summarize(ctx context.Context, id int) (string, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !record.Active {
		return "", apperr.NotFound("Patriarch")
	}

	return s.generate(ctx, summaryPrompt(record))
}

// AdviceFor returns a one-line note connecting a record to the visitor's
// stated interest. It satisfies the recommendation engine's Advisor seam.
func (s *Service) AdviceFor(ctx context.Context, record *patriarch.Patriarch, interest string) (string, error) {
	return s.generate(ctx, advicePrompt(record, interest))
}

// # Generation Pipeline

// generate runs the cache-then-model pipeline under a hard deadline.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	key := cacheKey(prompt)

	if cached := s.cacheGet(ctx, key); cached != "" {
		s.logger.DebugContext(ctx, "insight_cache_hit", slog.String("key", key))
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.InsightTimeout)
	defer cancel()

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.WarnContext(ctx, "insight_generation_failed", slog.Any("error", err))
		return "", err
	}

	s.cacheSet(ctx, key, answer)
	return answer, nil
}

// cacheGet is best-effort; a cache failure only means a model round-trip.
func (s *Service) cacheGet(ctx context.Context, key string) string {
	if s.cache == nil {
		return ""
	}
	value, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return value
}

func (s *Service) cacheSet(ctx context.Context, key, answer string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, answer, constants.InsightAnswerTTL).Err(); err != nil {
		s.logger.WarnContext(ctx, "insight_cache_write_failed", slog.Any("error", err))
	}
}

// cacheKey digests the full prompt so any roster or wording change misses.
func cacheKey(prompt string) string {
	digest := sha256.Sum256([]byte(prompt))
	return constants.RedisPrefixInsight + hex.EncodeToString(digest[:])
}

// # Prompt Construction

func questionPrompt(records []*patriarch.Patriarch, question string) string {
	var b strings.Builder
	b.WriteString("You are a historian of the Coptic Orthodox Church answering visitor questions ")
	b.WriteString("about the patriarchs of Alexandria. Ground your answer in the roster below, ")
	b.WriteString("keep it under 150 words, and say so plainly when the roster cannot answer.\n\nRoster:\n")
	for _, record := range records {
		b.WriteString(rosterLine(record))
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

func summaryPrompt(record *patriarch.Patriarch) string {
	var b strings.Builder
	b.WriteString("Write a 2-3 sentence summary of this patriarch of Alexandria for a museum visitor. ")
	b.WriteString("Use only the facts given.\n\n")
	b.WriteString(recordBlock(record))
	return b.String()
}

func advicePrompt(record *patriarch.Patriarch, interest string) string {
	var b strings.Builder
	b.WriteString("In one sentence, tell a visitor why this patriarch matches their interest")
	if interest = strings.TrimSpace(interest); interest != "" {
		b.WriteString(" in \"")
		b.WriteString(interest)
		b.WriteString("\"")
	}
	b.WriteString(". Use only the facts given.\n\n")
	b.WriteString(recordBlock(record))
	return b.String()
}

func rosterLine(record *patriarch.Patriarch) string {
	end := "present"
	if record.EndYear != nil {
		end = fmt.Sprintf("%d", *record.EndYear)
	}
	return fmt.Sprintf("#%d %s (%d-%s), %s era\n",
		record.SequenceNumber, record.Name, record.StartYear, end, record.Era)
}

func recordBlock(record *patriarch.Patriarch) string {
	var b strings.Builder
	b.WriteString(rosterLine(record))
	if record.CopticName != "" {
		b.WriteString("Coptic name: " + record.CopticName + "\n")
	}
	if record.Contributions != "" {
		b.WriteString("Contributions: " + record.Contributions + "\n")
	}
	if heresies := patriarch.NormalizeHeresies(record.HeresiesFought); len(heresies) > 0 {
		b.WriteString("Heresies fought: " + strings.Join(heresies, ", ") + "\n")
	}
	if record.Biography != "" {
		b.WriteString("Biography: " + record.Biography + "\n")
	}
	return b.String()
}
