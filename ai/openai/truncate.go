package openai

import (
	"unicode/utf8"

	"github.com/poiesic/distill/ai"
)

const (
	documentTruncationMarker = "..."
	graphTruncationMarker    = "...\n[Content truncated due to length]"
)

// truncate caps a corpus at maxChars and appends the kind's
// truncation marker when it cuts. The cut never splits a UTF-8
// sequence.
func truncate(corpus string, maxChars int, kind ai.CorpusKind) string {
	if len(corpus) <= maxChars {
		return corpus
	}

	cut := maxChars
	for cut > 0 && !utf8.RuneStart(corpus[cut]) {
		cut--
	}

	marker := documentTruncationMarker
	if kind == ai.KindGraph {
		marker = graphTruncationMarker
	}
	return corpus[:cut] + marker
}
