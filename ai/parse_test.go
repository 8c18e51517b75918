package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompletion_MarkerLinesWithColons(t *testing.T) {
	raw := "Summary: Notes on gardening.\nTopics: [\"soil\", \"compost\"]"

	result := ParseCompletion(raw)

	assert.Equal(t, "Notes on gardening.", result.Text)
	assert.Equal(t, []string{"soil", "compost"}, result.Topics)
}

func TestParseCompletion_NoMarkers(t *testing.T) {
	raw := "This text has no structure at all.\nJust two plain lines."

	result := ParseCompletion(raw)

	assert.Equal(t, raw, result.Text)
	assert.Empty(t, result.Topics)
}

func TestParseCompletion_MultilineSummary(t *testing.T) {
	raw := "Summary:\nFirst part of the summary.\nSecond part.\n\nTopics:\n- gardening\n- composting"

	result := ParseCompletion(raw)

	assert.Equal(t, "First part of the summary. Second part.", result.Text)
	assert.Equal(t, []string{"gardening", "composting"}, result.Topics)
}

func TestParseCompletion_CommaSeparatedTopicsReplace(t *testing.T) {
	raw := "Topics:\n- stale\nsoil, compost, mulch"

	result := ParseCompletion(raw)

	assert.Equal(t, []string{"soil", "compost", "mulch"}, result.Topics)
}

func TestParseCompletion_BracketLineSwitchesMode(t *testing.T) {
	raw := "Summary: A note.\n[\"alpha\", \"beta\"]"

	result := ParseCompletion(raw)

	assert.Equal(t, "A note.", result.Text)
	assert.Equal(t, []string{"alpha", "beta"}, result.Topics)
}

func TestParseCompletion_LatestMarkerWins(t *testing.T) {
	raw := "Topics:\n- early\nSummary: late summary text here."

	result := ParseCompletion(raw)

	assert.Equal(t, "late summary text here.", result.Text)
	assert.Equal(t, []string{"early"}, result.Topics)
}

func TestParseCompletion_DropsEmptyTopics(t *testing.T) {
	raw := "Topics: soil, , compost"

	result := ParseCompletion(raw)

	assert.Equal(t, []string{"soil", "compost"}, result.Topics)
}

func TestParseCompletion_CaseInsensitiveMarkers(t *testing.T) {
	raw := "SUMMARY: upper case works.\ntopics: one, two"

	result := ParseCompletion(raw)

	assert.Equal(t, "upper case works.", result.Text)
	assert.Equal(t, []string{"one", "two"}, result.Topics)
}

func TestParseCompletion_MalformedArrayFallsBackToCommaSplit(t *testing.T) {
	raw := "Topics:\n[soil, compost]"

	result := ParseCompletion(raw)

	require.Len(t, result.Topics, 2)
	assert.Equal(t, "[soil", result.Topics[0])
	assert.Equal(t, "compost]", result.Topics[1])
}
