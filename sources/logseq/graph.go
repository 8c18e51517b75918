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

package logseq

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/sources"
)

// Block is one outline node in a Logseq export. Children nest
// arbitrarily deep.
type Block struct {
	Id         string         `json:"id,omitempty"`
	Content    string         `json:"content,omitempty"`
	Children   []Block        `json:"children,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Page groups the top-level blocks of one named page.
type Page struct {
	Name       string         `json:"name"`
	Blocks     []Block        `json:"blocks,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Graph is the root of a Logseq JSON export. A valid export carries
// pages, standalone blocks, or both.
type Graph struct {
	Pages   []Page  `json:"pages,omitempty"`
	Blocks  []Block `json:"blocks,omitempty"`
	Version string  `json:"version,omitempty"`
}

// ParseGraph decodes a JSON export. A payload with neither pages nor
// standalone blocks is rejected before any hashing or persistence
// happens downstream.
func ParseGraph(data []byte) (*Graph, error) {
	var graph Graph
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGraphStructure, err)
	}
	if len(graph.Pages) == 0 && len(graph.Blocks) == 0 {
		return nil, fmt.Errorf("%w: missing pages or blocks", ErrInvalidGraphStructure)
	}
	return &graph, nil
}

// Flatten renders the graph as a single plain-text corpus. Each page
// opens with a boundary marker, followed by its blocks flattened
// depth-first, one top-level block per line. Standalone blocks follow
// the pages. Block counts include nested children.
func Flatten(graph *Graph) *sources.Extraction {
	var corpus strings.Builder
	stats := core.CorpusStats{}

	for _, page := range graph.Pages {
		stats.Pages++
		corpus.WriteString("\n\n=== Page: ")
		corpus.WriteString(page.Name)
		corpus.WriteString(" ===\n")

		for i := range page.Blocks {
			corpus.WriteString(flattenBlock(&page.Blocks[i]))
			corpus.WriteString("\n")
			stats.Blocks += countBlocks(&page.Blocks[i])
		}
	}

	for i := range graph.Blocks {
		corpus.WriteString(flattenBlock(&graph.Blocks[i]))
		corpus.WriteString("\n")
		stats.Blocks += countBlocks(&graph.Blocks[i])
	}

	return &sources.Extraction{
		Corpus: corpus.String(),
		Stats:  stats,
	}
}

// flattenBlock joins a block's own content with its children's,
// depth-first. A block's own text always precedes its children's.
func flattenBlock(block *Block) string {
	content := block.Content
	for i := range block.Children {
		content += " " + flattenBlock(&block.Children[i])
	}
	return content
}

// countBlocks counts a block and all of its descendants.
func countBlocks(block *Block) int {
	count := 1
	for i := range block.Children {
		count += countBlocks(&block.Children[i])
	}
	return count
}
