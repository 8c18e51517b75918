package distill

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/distill/ai/mock"
	"github.com/poiesic/distill/core"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir, WithSummarizer(mock.NewMockSummarizer()))
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.LedgerRepository())
		assert.NotNil(t, db.Summarizer())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file where the database directory should be
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile, WithSummarizer(mock.NewMockSummarizer()))
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_PipelineRoundTrip(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "test_db")
	db, err := NewDatabase(tmpDir, WithSummarizer(mock.NewMockSummarizer()))
	require.NoError(t, err)
	defer db.Close()

	pipeline, err := db.NewPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	ledger := db.LedgerRepository()

	record, created, err := ledger.LookupOrCreate(context.Background(),
		"alice", core.SourceGoogleDrive, "doc1", core.Fingerprint("some corpus"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, core.StatusProcessing, record.Status)

	found, err := ledger.FindRecord(context.Background(),
		"alice", core.SourceGoogleDrive, record.ContentHash)
	require.NoError(t, err)
	assert.Equal(t, record.Id, found.Id)
}

func TestDatabase_Close(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "test_db")
	db, err := NewDatabase(tmpDir, WithSummarizer(mock.NewMockSummarizer()))
	require.NoError(t, err)

	require.NoError(t, db.Close())
}
