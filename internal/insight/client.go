// Copyright (c) 2026 Patriarchia. All rights reserved.

/*
Package insight provides generative question answering and summaries for
the catalogue.

It wraps the Google GenAI SDK behind a small [Generator] interface so the
rest of the system depends on a single text-in, text-out seam. Answers are
cached in Redis by prompt digest; every upstream call carries a hard
deadline and every failure degrades to a typed service error rather than
taking the catalogue down with it.
*/
package insight

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/copticarchive/patriarchia/internal/platform/apperr"
)

// Generator produces a single completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenAIClient is the production [Generator] backed by the Gemini API.
type GenAIClient struct {
	client *genai.Client
	model  string
}

// NewGenAIClient dials the Gemini API with the given key and model name.
func NewGenAIClient(ctx context.Context, apiKey, model string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("insight: API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("insight: create client: %w", err)
	}

	return &GenAIClient{client: client, model: model}, nil
}

// Generate sends the prompt and returns the flattened text of the response.
func (c *GenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.4),
		MaxOutputTokens: 512,
	})
	if err != nil {
		degraded := apperr.ServiceUnavailable("The insight service is temporarily unavailable")
		degraded.Cause = err
		return "", degraded
	}

	answer := strings.TrimSpace(result.Text())
	if answer == "" {
		return "", apperr.ServiceUnavailable("The insight service returned an empty answer")
	}
	return answer, nil
}
