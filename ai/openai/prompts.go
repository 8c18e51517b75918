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
	"fmt"

	"github.com/poiesic/distill/ai"
	"github.com/poiesic/distill/core"
)

const documentSystemPrompt = "You are a helpful assistant that summarizes documents and extracts key topics. Provide a concise summary and list the main topics covered."

const documentUserPrompt = "Please summarize this document and extract the main topics:\n\n%s"

const graphSystemPrompt = "You are analyzing a personal knowledge graph. This graph contains %d pages and %d blocks. Please provide a comprehensive summary and extract key topics."

const graphUserPrompt = `Please analyze this knowledge graph content and provide:
1. A comprehensive summary (2-3 paragraphs)
2. Key topics and themes (as a JSON array)

Content:
%s`

// buildSystemPrompt selects the instruction for a corpus kind. The
// graph instruction folds in the extraction statistics.
func buildSystemPrompt(kind ai.CorpusKind, stats core.CorpusStats) string {
	if kind == ai.KindGraph {
		return fmt.Sprintf(graphSystemPrompt, stats.Pages, stats.Blocks)
	}
	return documentSystemPrompt
}

// buildUserPrompt wraps the truncated corpus in the request template.
func buildUserPrompt(kind ai.CorpusKind, corpus string) string {
	if kind == ai.KindGraph {
		return fmt.Sprintf(graphUserPrompt, corpus)
	}
	return fmt.Sprintf(documentUserPrompt, corpus)
}
