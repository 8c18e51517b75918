// Package mock provides a test double implementation of the
// ai.Summarizer interface.
//
// The mock allows tests to run without an external language model and
// enables controlled, deterministic behavior:
//
//	// Basic usage with default behavior
//	summarizer := mock.NewMockSummarizer()
//
//	// Custom behavior injection
//	summarizer.SummarizeFunc = func(ctx context.Context, req ai.Request) (*ai.Summary, error) {
//	    return nil, ai.ErrModelUnavailable
//	}
//
//	// Check call counts
//	count := summarizer.CallCount()
package mock
