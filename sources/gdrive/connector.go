package gdrive

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/sources"
)

// MIME types the connector surfaces as candidates.
const (
	MimeTypeGoogleDoc = "application/vnd.google-apps.document"
	MimeTypePDF       = "application/pdf"
	MimeTypePlainText = "text/plain"
	MimeTypeWordXML   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ExportMimeText is the export format for Google Docs.
const ExportMimeText = "text/plain"

// MaxFetchSize is the maximum size for downloaded or exported content (5MB).
const MaxFetchSize = 5 * 1024 * 1024

const defaultPageSize = 100

// supportedMimeTypes is the catalog allow-list. Items outside it are
// never surfaced to callers as candidates.
var supportedMimeTypes = []string{
	MimeTypeGoogleDoc,
	MimeTypePDF,
	MimeTypePlainText,
	MimeTypeWordXML,
}

// Connector implements sources.Connector for Google Drive.
type Connector struct {
	svc      *drive.Service
	pageSize int64
}

var _ sources.Connector = (*Connector)(nil)

// New creates a Google Drive connector from an access token. The token
// comes from an external connection manager; an empty token means the
// owner has no live Drive connection.
func New(ctx context.Context, accessToken string) (*Connector, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: no access token", sources.ErrAuthExpired)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sources.ErrUpstream, err)
	}

	return &Connector{
		svc:      svc,
		pageSize: defaultPageSize,
	}, nil
}

// Type identifies the source this connector serves.
func (c *Connector) Type() core.SourceType {
	return core.SourceGoogleDrive
}

// List fetches the catalog of non-trashed files, newest first, filtered
// to the supported MIME types.
func (c *Connector) List(ctx context.Context) ([]core.SourceItem, error) {
	list, err := c.svc.Files.List().
		Q("trashed=false").
		OrderBy("modifiedTime desc").
		PageSize(c.pageSize).
		Fields("files(id,name,mimeType,modifiedTime,size)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(err)
	}

	return filterFiles(list.Files), nil
}

// Extract fetches one file and converts it to a flat text corpus.
// Google Docs are exported to plain text; plain-text files are
// downloaded directly. Other allow-listed types (PDF, word-processor
// XML) are catalogued but not yet extractable.
func (c *Connector) Extract(ctx context.Context, fileID string) (*sources.Extraction, error) {
	file, err := c.svc.Files.Get(fileID).Fields("id,name,mimeType,size").Context(ctx).Do()
	if err != nil {
		return nil, classify(err)
	}

	var content string
	switch file.MimeType {
	case MimeTypeGoogleDoc:
		content, err = c.export(ctx, fileID)
	case MimeTypePlainText:
		content, err = c.download(ctx, fileID)
	default:
		return nil, fmt.Errorf("%w: %s", sources.ErrUnsupportedFormat, file.MimeType)
	}
	if err != nil {
		return nil, err
	}

	if content == "" {
		return nil, fmt.Errorf("%w: %s", sources.ErrExtractionFailed, file.Name)
	}

	return &sources.Extraction{Corpus: content}, nil
}

// export converts a Google Doc to plain text via the Drive export API.
func (c *Connector) export(ctx context.Context, fileID string) (string, error) {
	resp, err := c.svc.Files.Export(fileID, ExportMimeText).Context(ctx).Download()
	if err != nil {
		return "", classify(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFetchSize))
	if err != nil {
		return "", fmt.Errorf("%w: read export: %v", sources.ErrUpstream, err)
	}
	return string(data), nil
}

// download retrieves a file's raw content.
func (c *Connector) download(ctx context.Context, fileID string) (string, error) {
	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return "", classify(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFetchSize))
	if err != nil {
		return "", fmt.Errorf("%w: read download: %v", sources.ErrUpstream, err)
	}
	return string(data), nil
}

// filterFiles applies the MIME allow-list and converts Drive files to
// source items.
func filterFiles(files []*drive.File) []core.SourceItem {
	items := make([]core.SourceItem, 0, len(files))
	for _, file := range files {
		if !supported(file.MimeType) {
			continue
		}

		modified, _ := time.Parse(time.RFC3339, file.ModifiedTime)

		items = append(items, core.SourceItem{
			Id:           file.Id,
			Name:         file.Name,
			MimeType:     file.MimeType,
			ModifiedTime: modified,
			Size:         file.Size,
		})
	}
	return items
}

// supported reports whether a MIME type is on the allow-list.
func supported(mimeType string) bool {
	for _, m := range supportedMimeTypes {
		if mimeType == m {
			return true
		}
	}
	return false
}
