// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/distill/ai"
)

// Summarizer implements ai.Summarizer using OpenAI-compatible chat
// APIs.
type Summarizer struct {
	client llms.Model
	config *ai.Config
	logger *slog.Logger
}

var _ ai.Summarizer = (*Summarizer)(nil)

// newSummarizer is an internal constructor that returns the concrete
// type.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		client: client,
		config: config,
		logger: slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize truncates the corpus to the kind's ceiling, sends it to
// the model, and parses the completion into a summary and topic list.
// Document summaries derive topics from the summary body itself, so
// any topics the parser found in the completion are replaced by the
// highlight heuristic.
func (s *Summarizer) Summarize(ctx context.Context, req ai.Request) (*ai.Summary, error) {
	maxChars := s.config.MaxChars(req.Kind)
	corpus := truncate(req.Corpus, maxChars, req.Kind)
	if len(req.Corpus) > maxChars {
		s.logger.Debug("corpus truncated",
			"kind", req.Kind,
			"original", len(req.Corpus),
			"max", maxChars)
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt(req.Kind, req.Stats)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildUserPrompt(req.Kind, corpus)),
			},
		},
	}

	response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.3))
	if err != nil {
		s.logger.Error("failed to generate content", "err", err)
		return nil, fmt.Errorf("%w: %v", ai.ErrModelUnavailable, err)
	}

	if len(response.Choices) < 1 {
		return nil, fmt.Errorf("%w: no choices in completion", ai.ErrModelUnavailable)
	}

	completion := strings.TrimSpace(response.Choices[0].Content)
	if completion == "" {
		return nil, fmt.Errorf("%w: empty completion", ai.ErrModelUnavailable)
	}

	summary := ai.ParseCompletion(completion)
	if req.Kind == ai.KindDocument {
		summary.Topics = ai.HighlightTopics(summary.Text)
	}

	s.logger.Debug("summarized corpus",
		"kind", req.Kind,
		"summary_len", len(summary.Text),
		"topics", len(summary.Topics))

	return summary, nil
}
