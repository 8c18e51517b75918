package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/poiesic/distill/ai"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default deterministic behavior.
	SummarizeFunc func(ctx context.Context, req ai.Request) (*ai.Summary, error)

	callCount atomic.Int64
}

// NewMockSummarizer creates a mock summarizer with default
// deterministic behavior.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize returns a deterministic summary derived from the corpus.
// The call count is safe to read while pipeline workers are running.
func (m *MockSummarizer) Summarize(ctx context.Context, req ai.Request) (*ai.Summary, error) {
	m.callCount.Add(1)

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, req)
	}

	// Default: first few words of the corpus as the summary
	words := strings.Fields(req.Corpus)
	if len(words) > 8 {
		words = words[:8]
	}
	return &ai.Summary{
		Text:   "Summary of: " + strings.Join(words, " "),
		Topics: []string{"mock topic"},
	}, nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and any injected behavior.
func (m *MockSummarizer) Reset() {
	m.callCount.Store(0)
	m.SummarizeFunc = nil
}
