package logseq

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGraph_Valid(t *testing.T) {
	data := []byte(`{"pages":[{"name":"Home","blocks":[{"content":"hello"}]}]}`)

	graph, err := ParseGraph(data)
	require.NoError(t, err)
	require.Len(t, graph.Pages, 1)
	assert.Equal(t, "Home", graph.Pages[0].Name)
}

func TestParseGraph_StandaloneBlocksOnly(t *testing.T) {
	data := []byte(`{"blocks":[{"content":"orphan"}]}`)

	graph, err := ParseGraph(data)
	require.NoError(t, err)
	assert.Empty(t, graph.Pages)
	require.Len(t, graph.Blocks, 1)
}

func TestParseGraph_MissingPagesAndBlocks(t *testing.T) {
	_, err := ParseGraph([]byte(`{"version":"2"}`))
	assert.ErrorIs(t, err, ErrInvalidGraphStructure)
}

func TestParseGraph_MalformedJSON(t *testing.T) {
	_, err := ParseGraph([]byte(`{"pages":`))
	assert.ErrorIs(t, err, ErrInvalidGraphStructure)
}

func TestFlatten_NestedBlocks(t *testing.T) {
	graph := &Graph{
		Pages: []Page{{
			Name: "Garden",
			Blocks: []Block{{
				Content:  "A",
				Children: []Block{{Content: "B"}},
			}},
		}},
	}

	ext := Flatten(graph)

	assert.Equal(t, 1, ext.Stats.Pages)
	assert.Equal(t, 2, ext.Stats.Blocks)

	posA := strings.Index(ext.Corpus, "A")
	posB := strings.Index(ext.Corpus, "B")
	require.GreaterOrEqual(t, posA, 0)
	require.GreaterOrEqual(t, posB, 0)
	assert.Less(t, posA, posB, "parent content must precede child content")
	assert.Contains(t, ext.Corpus, "=== Page: Garden ===")
}

func TestFlatten_DeepNestingOrder(t *testing.T) {
	graph := &Graph{
		Blocks: []Block{{
			Content: "root",
			Children: []Block{
				{Content: "first", Children: []Block{{Content: "leaf"}}},
				{Content: "second"},
			},
		}},
	}

	ext := Flatten(graph)

	assert.Equal(t, 0, ext.Stats.Pages)
	assert.Equal(t, 4, ext.Stats.Blocks)
	assert.Equal(t, "root first leaf second\n", ext.Corpus)
}

func TestFlatten_PagesThenStandaloneBlocks(t *testing.T) {
	graph := &Graph{
		Pages: []Page{
			{Name: "One", Blocks: []Block{{Content: "alpha"}}},
			{Name: "Two", Blocks: []Block{{Content: "beta"}}},
		},
		Blocks: []Block{{Content: "stray"}},
	}

	ext := Flatten(graph)

	assert.Equal(t, 2, ext.Stats.Pages)
	assert.Equal(t, 3, ext.Stats.Blocks)

	posTwo := strings.Index(ext.Corpus, "=== Page: Two ===")
	posStray := strings.Index(ext.Corpus, "stray")
	assert.Less(t, posTwo, posStray, "standalone blocks follow all pages")
}

func TestConnector_SingleItemCatalog(t *testing.T) {
	data := []byte(`{"pages":[{"name":"Home","blocks":[{"content":"hi"}]}]}`)

	conn, err := New("graph-export.json", data)
	require.NoError(t, err)

	items, err := conn.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "graph-export.json", items[0].Name)
	assert.Equal(t, int64(len(data)), items[0].Size)

	ext, err := conn.Extract(context.Background(), items[0].Id)
	require.NoError(t, err)
	assert.Contains(t, ext.Corpus, "hi")
}

func TestConnector_RejectsEmptyGraph(t *testing.T) {
	_, err := New("bad.json", []byte(`{}`))
	assert.ErrorIs(t, err, ErrInvalidGraphStructure)
}
