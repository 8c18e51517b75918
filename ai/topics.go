package ai

import (
	"regexp"
	"strings"
)

const (
	maxHighlightTopics = 5
	minHighlightLen    = 10
	maxHighlightLen    = 100
)

// highlightPattern matches bullet-prefixed or capitalized sentence
// fragments in a summary body.
var highlightPattern = regexp.MustCompile(`(?:[•\-]\s*)?[A-Z][^.!?]*(?:[.!?]|$)`)

// HighlightTopics derives topics from a summary body by pattern
// matching instead of explicit topic headers. Used for document
// summaries, which have no structured topics section. Fragments must
// be longer than 10 and shorter than 100 characters; at most 5 are
// kept.
func HighlightTopics(text string) []string {
	matches := highlightPattern.FindAllString(text, -1)

	topics := make([]string, 0, maxHighlightTopics)
	for _, match := range matches {
		topic := stripBullet(match)
		if len(topic) <= minHighlightLen || len(topic) >= maxHighlightLen {
			continue
		}
		topics = append(topics, strings.TrimSpace(topic))
		if len(topics) == maxHighlightTopics {
			break
		}
	}
	if len(topics) == 0 {
		return nil
	}
	return topics
}
