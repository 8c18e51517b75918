package gdrive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/poiesic/distill/sources"
)

func TestFilterFiles(t *testing.T) {
	files := []*drive.File{
		{Id: "doc1", Name: "Notes", MimeType: MimeTypeGoogleDoc, ModifiedTime: "2026-03-01T10:00:00Z", Size: 1024},
		{Id: "img1", Name: "Photo", MimeType: "image/png"},
		{Id: "txt1", Name: "readme.txt", MimeType: MimeTypePlainText},
		{Id: "pdf1", Name: "paper.pdf", MimeType: MimeTypePDF},
		{Id: "vid1", Name: "Clip", MimeType: "video/mp4"},
		{Id: "docx1", Name: "report.docx", MimeType: MimeTypeWordXML},
	}

	items := filterFiles(files)
	require.Len(t, items, 4)

	assert.Equal(t, "doc1", items[0].Id)
	assert.Equal(t, "Notes", items[0].Name)
	assert.Equal(t, int64(1024), items[0].Size)
	assert.Equal(t, 2026, items[0].ModifiedTime.Year())

	assert.Equal(t, "txt1", items[1].Id)
	assert.Equal(t, "pdf1", items[2].Id)
	assert.Equal(t, "docx1", items[3].Id)
}

func TestFilterFiles_Empty(t *testing.T) {
	assert.Empty(t, filterFiles(nil))
	assert.Empty(t, filterFiles([]*drive.File{{Id: "a", MimeType: "image/jpeg"}}))
}

func TestSupported(t *testing.T) {
	assert.True(t, supported(MimeTypeGoogleDoc))
	assert.True(t, supported(MimeTypePlainText))
	assert.True(t, supported(MimeTypePDF))
	assert.True(t, supported(MimeTypeWordXML))
	assert.False(t, supported("application/vnd.google-apps.spreadsheet"))
	assert.False(t, supported(""))
}

func TestClassify(t *testing.T) {
	unauthorized := &googleapi.Error{Code: 401, Message: "invalid credentials"}
	assert.ErrorIs(t, classify(unauthorized), sources.ErrAuthExpired)

	rateLimited := &googleapi.Error{Code: 429, Message: "rate limit exceeded"}
	assert.ErrorIs(t, classify(rateLimited), sources.ErrUpstream)

	serverErr := &googleapi.Error{Code: 500, Message: "backend error"}
	assert.ErrorIs(t, classify(serverErr), sources.ErrUpstream)

	plain := errors.New("connection reset")
	assert.ErrorIs(t, classify(plain), sources.ErrUpstream)
}
