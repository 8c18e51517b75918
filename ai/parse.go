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

package ai

import (
	"encoding/json"
	"strings"
)

// parseMode tracks which section of the completion is being scanned.
type parseMode int

const (
	modeNone parseMode = iota
	modeSummary
	modeTopics
)

// ParseCompletion extracts a summary and topic list from a free-form
// model completion. The parser scans line by line: a line mentioning
// "summary" switches into summary accumulation, a line mentioning
// "topics" or starting with "[" switches into topics accumulation.
// The latest marker wins. Marker lines contribute any text after
// their colon to the active section.
//
// If no summary text was accumulated by the end, the entire raw
// completion becomes the summary.
func ParseCompletion(raw string) *Summary {
	var summaryParts []string
	var topics []string

	mode := modeNone
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		lowered := strings.ToLower(trimmed)

		if strings.Contains(lowered, "summary") {
			mode = modeSummary
			trimmed = markerRemainder(trimmed)
		} else if strings.Contains(lowered, "topics") {
			mode = modeTopics
			trimmed = markerRemainder(trimmed)
		} else if strings.HasPrefix(trimmed, "[") {
			mode = modeTopics
		}

		if trimmed == "" {
			continue
		}

		switch mode {
		case modeSummary:
			summaryParts = append(summaryParts, trimmed)
		case modeTopics:
			topics = accumulateTopics(topics, trimmed)
		}
	}

	text := strings.Join(summaryParts, " ")
	if text == "" {
		text = strings.TrimSpace(raw)
	}

	return &Summary{
		Text:   text,
		Topics: dropEmpty(topics),
	}
}

// markerRemainder returns the text after a marker line's colon, or
// empty when the marker stands alone.
func markerRemainder(line string) string {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}

// accumulateTopics folds one topics-mode line into the running list.
// A complete bracketed array literal replaces the list, as does a
// comma-separated line; a bulleted line appends a single topic.
func accumulateTopics(topics []string, line string) []string {
	if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
		var parsed []string
		if err := json.Unmarshal([]byte(line), &parsed); err == nil {
			return parsed
		}
	}

	if strings.Contains(line, ",") {
		parts := strings.Split(line, ",")
		replaced := make([]string, 0, len(parts))
		for _, part := range parts {
			replaced = append(replaced, stripBullet(part))
		}
		return replaced
	}

	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•") {
		return append(topics, stripBullet(line))
	}

	return topics
}

// stripBullet removes leading bullet markers and surrounding space.
func stripBullet(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "-*•")
	return strings.TrimSpace(s)
}

// dropEmpty filters empty strings, preserving first-appearance order.
func dropEmpty(topics []string) []string {
	kept := topics[:0]
	for _, topic := range topics {
		if topic != "" {
			kept = append(kept, topic)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
