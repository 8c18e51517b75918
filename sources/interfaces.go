package sources

import (
	"context"

	"github.com/poiesic/distill/core"
)

// Extraction is the flattened plain-text representation of one source
// item's full content, ready for fingerprinting and summarization.
type Extraction struct {
	Corpus string
	Stats  core.CorpusStats
}

// Connector is the capability abstraction for one external knowledge
// source. A connector is selected once at pipeline entry; the pipeline
// never re-dispatches on source type per field access.
//
// Implementations must be safe for concurrent use.
type Connector interface {
	// Type identifies the source this connector serves.
	Type() core.SourceType

	// List fetches the catalog of candidate items. Items the extractor
	// cannot handle are filtered out before being returned.
	// Fails with ErrAuthExpired when the stored credential is absent or
	// expired, and ErrUpstream on external API failure.
	List(ctx context.Context) ([]core.SourceItem, error)

	// Extract fetches one item and converts it to a flat text corpus.
	// Fails with ErrUnsupportedFormat for item types it cannot read and
	// ErrExtractionFailed when an item yields no content.
	Extract(ctx context.Context, itemRef string) (*Extraction, error)
}
