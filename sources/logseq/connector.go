package logseq

import (
	"context"
	"time"

	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/sources"
)

// Connector implements sources.Connector for a Logseq graph export.
// Unlike the Drive connector there is no remote catalog to enumerate:
// the whole corpus arrives as one already-fetched payload, so the
// catalog holds exactly one item.
type Connector struct {
	uploadName string
	graph      *Graph
	size       int64
	uploadedAt time.Time
}

var _ sources.Connector = (*Connector)(nil)

// New builds a connector around an uploaded export. The payload is
// parsed and validated eagerly so a malformed graph is rejected before
// anything is hashed or persisted.
func New(uploadName string, data []byte) (*Connector, error) {
	graph, err := ParseGraph(data)
	if err != nil {
		return nil, err
	}
	return &Connector{
		uploadName: uploadName,
		graph:      graph,
		size:       int64(len(data)),
		uploadedAt: time.Now().UTC(),
	}, nil
}

// Type identifies the source this connector serves.
func (c *Connector) Type() core.SourceType {
	return core.SourceLogseq
}

// List returns the single uploaded graph as the catalog.
func (c *Connector) List(ctx context.Context) ([]core.SourceItem, error) {
	return []core.SourceItem{{
		Id:           c.uploadName,
		Name:         c.uploadName,
		MimeType:     "application/json",
		ModifiedTime: c.uploadedAt,
		Size:         c.size,
	}}, nil
}

// Extract flattens the parsed graph. The item reference is ignored
// since the connector holds exactly one item.
func (c *Connector) Extract(ctx context.Context, itemRef string) (*sources.Extraction, error) {
	return Flatten(c.graph), nil
}
