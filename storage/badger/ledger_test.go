package badger

import (
	"context"
	"testing"

	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLedger(t *testing.T) storage.LedgerRepository {
	t.Helper()

	ledger, backend, err := NewMemoryLedger()
	require.NoError(t, err)

	t.Cleanup(func() {
		ledger.Close()
		backend.Close()
	})

	return ledger
}

func newTestRecord(owner, itemPath, corpus string) *core.ProcessingRecord {
	return &core.ProcessingRecord{
		OwnerId:     owner,
		Source:      core.SourceLogseq,
		ItemPath:    itemPath,
		ContentHash: core.Fingerprint(corpus),
		Status:      core.StatusProcessing,
	}
}

func TestInsertAndFindRecord(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	record := newTestRecord("user-1", "notes.json", "some corpus")
	inserted, err := ledger.InsertRecord(ctx, record)
	require.NoError(t, err)
	assert.NotZero(t, inserted.Id)
	assert.False(t, inserted.CreatedAt.IsZero())
	assert.Equal(t, inserted.CreatedAt, inserted.UpdatedAt)

	found, err := ledger.FindRecord(ctx, "user-1", core.SourceLogseq, record.ContentHash)
	require.NoError(t, err)
	assert.Equal(t, inserted.Id, found.Id)
	assert.Equal(t, core.StatusProcessing, found.Status)
	assert.Equal(t, "notes.json", found.ItemPath)
}

func TestFindRecord_NotFound(t *testing.T) {
	ledger := setupLedger(t)

	_, err := ledger.FindRecord(context.Background(), "user-1", core.SourceLogseq, core.Fingerprint("missing"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestInsertRecord_DuplicateKey(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	_, err := ledger.InsertRecord(ctx, newTestRecord("user-1", "notes.json", "same corpus"))
	require.NoError(t, err)

	// Same content under a different item path is still the same key.
	_, err = ledger.InsertRecord(ctx, newTestRecord("user-1", "renamed.json", "same corpus"))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestInsertRecord_ScopedToOwner(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	_, err := ledger.InsertRecord(ctx, newTestRecord("user-1", "notes.json", "shared corpus"))
	require.NoError(t, err)

	// A different owner may process identical content.
	_, err = ledger.InsertRecord(ctx, newTestRecord("user-2", "notes.json", "shared corpus"))
	assert.NoError(t, err)
}

func TestLookupOrCreate(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()
	hash := core.Fingerprint("corpus")

	record, created, err := ledger.LookupOrCreate(ctx, "user-1", core.SourceLogseq, "notes.json", hash)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, core.StatusProcessing, record.Status)

	again, created, err := ledger.LookupOrCreate(ctx, "user-1", core.SourceLogseq, "renamed.json", hash)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, record.Id, again.Id)
	// The original item path is kept; the new name is the same content.
	assert.Equal(t, "notes.json", again.ItemPath)
}

func TestUpdateRecord_CompletedAtomically(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	record, err := ledger.InsertRecord(ctx, newTestRecord("user-1", "notes.json", "corpus"))
	require.NoError(t, err)

	record.Status = core.StatusCompleted
	record.Summary = "Notes on gardening."
	record.Topics = []string{"soil", "compost"}

	updated, err := ledger.UpdateRecord(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCompleted, updated.Status)

	found, err := ledger.FindRecord(ctx, "user-1", core.SourceLogseq, record.ContentHash)
	require.NoError(t, err)
	assert.Equal(t, "Notes on gardening.", found.Summary)
	assert.Equal(t, []string{"soil", "compost"}, found.Topics)
}

func TestUpdateRecord_RejectsCompletedWithoutSummary(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	record, err := ledger.InsertRecord(ctx, newTestRecord("user-1", "notes.json", "corpus"))
	require.NoError(t, err)

	record.Status = core.StatusCompleted
	record.Topics = []string{"soil"}

	_, err = ledger.UpdateRecord(ctx, record)
	assert.ErrorIs(t, err, core.ErrInvalidRecord)

	// The stored record is untouched.
	found, err := ledger.FindRecord(ctx, "user-1", core.SourceLogseq, record.ContentHash)
	require.NoError(t, err)
	assert.Equal(t, core.StatusProcessing, found.Status)
	assert.Empty(t, found.Summary)
}

func TestUpdateRecord_RejectsBackwardTransition(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	record, err := ledger.InsertRecord(ctx, newTestRecord("user-1", "notes.json", "corpus"))
	require.NoError(t, err)

	record.Status = core.StatusCompleted
	record.Summary = "done"
	_, err = ledger.UpdateRecord(ctx, record)
	require.NoError(t, err)

	record.Status = core.StatusProcessing
	record.Summary = ""
	record.Topics = nil
	_, err = ledger.UpdateRecord(ctx, record)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestUpdateRecord_FailedRetriable(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	record, err := ledger.InsertRecord(ctx, newTestRecord("user-1", "notes.json", "corpus"))
	require.NoError(t, err)

	record.Status = core.StatusFailed
	_, err = ledger.UpdateRecord(ctx, record)
	require.NoError(t, err)

	record.Status = core.StatusProcessing
	_, err = ledger.UpdateRecord(ctx, record)
	assert.NoError(t, err)
}

func TestUpdateRecord_NotFound(t *testing.T) {
	ledger := setupLedger(t)

	record := newTestRecord("user-1", "notes.json", "corpus")
	record.Id = 12345

	_, err := ledger.UpdateRecord(context.Background(), record)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListRecords(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()

	first, err := ledger.InsertRecord(ctx, newTestRecord("user-1", "a.json", "corpus a"))
	require.NoError(t, err)
	second, err := ledger.InsertRecord(ctx, newTestRecord("user-1", "b.json", "corpus b"))
	require.NoError(t, err)
	_, err = ledger.InsertRecord(ctx, newTestRecord("user-2", "c.json", "corpus c"))
	require.NoError(t, err)

	records, err := ledger.ListRecords(ctx, "user-1", core.SourceLogseq)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first.Id, records[0].Id)
	assert.Equal(t, second.Id, records[1].Id)

	none, err := ledger.ListRecords(ctx, "user-1", core.SourceGoogleDrive)
	require.NoError(t, err)
	assert.Empty(t, none)
}
