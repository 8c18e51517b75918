package ai

import (
	"context"

	"github.com/poiesic/distill/core"
)

// CorpusKind selects the summarization profile for a corpus. Graph
// corpora get a larger truncation ceiling and a graph-aware prompt.
type CorpusKind string

const (
	// KindDocument is a single extracted file.
	KindDocument CorpusKind = "document"
	// KindGraph is a flattened note-graph export.
	KindGraph CorpusKind = "graph"
)

// KindForSource maps a source type to its summarization profile.
func KindForSource(source core.SourceType) CorpusKind {
	if source == core.SourceLogseq {
		return KindGraph
	}
	return KindDocument
}

// Request carries one corpus to be summarized.
type Request struct {
	// Corpus is the full extracted plain text, before truncation.
	Corpus string

	// Stats are the extraction statistics. They feed the graph prompt
	// and logs only; correctness never depends on them.
	Stats core.CorpusStats

	// Kind selects truncation ceiling, prompt, and topic strategy.
	Kind CorpusKind
}

// Summary is the parsed result of one model completion.
type Summary struct {
	// Text is the summary body. Never empty on success.
	Text string

	// Topics are the extracted topic strings, order of first
	// appearance preserved, empty strings dropped. May be empty.
	Topics []string
}

// Summarizer produces a summary and topic list for a corpus.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize sends the corpus to a language model and parses the
	// completion. Returns ErrModelUnavailable when the model call
	// fails or returns no usable completion.
	Summarize(ctx context.Context, req Request) (*Summary, error)
}
