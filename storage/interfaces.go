package storage

import (
	"context"

	"github.com/poiesic/distill/core"
)

// LedgerRepository is the single source of truth for processing records.
// Implementations must be thread-safe and support concurrent access; the
// uniqueness of (owner, source, content hash) is enforced here, not by
// callers.
type LedgerRepository interface {
	// FindRecord retrieves the record for (owner, source, hash).
	// Returns ErrNotFound if no record exists.
	FindRecord(ctx context.Context, owner string, source core.SourceType, hash string) (*core.ProcessingRecord, error)

	// InsertRecord adds a new record, assigning an ID from the sequence and
	// stamping CreatedAt/UpdatedAt. Returns ErrDuplicateKey if a record
	// already exists for the same (owner, source, hash).
	InsertRecord(ctx context.Context, record *core.ProcessingRecord) (*core.ProcessingRecord, error)

	// UpdateRecord overwrites an existing record and stamps UpdatedAt.
	// The status change must be allowed by the state machine; summary and
	// topics are written in the same update as the status.
	// Returns ErrNotFound if the record doesn't exist.
	UpdateRecord(ctx context.Context, record *core.ProcessingRecord) (*core.ProcessingRecord, error)

	// LookupOrCreate returns the existing record for (owner, source, hash),
	// or inserts a new one with status processing. The created return is
	// true only when this call inserted the record. Concurrent creation
	// attempts for the same key are safe: the loser of the race reads and
	// returns the winner's record.
	LookupOrCreate(ctx context.Context, owner string, source core.SourceType, itemPath, hash string) (record *core.ProcessingRecord, created bool, err error)

	// ListRecords retrieves all records for an owner and source,
	// in insertion order.
	ListRecords(ctx context.Context, owner string, source core.SourceType) ([]*core.ProcessingRecord, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}
