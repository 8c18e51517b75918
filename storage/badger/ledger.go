package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/storage"
)

// LedgerRepository implements storage.LedgerRepository for BadgerDB.
//
// Records are stored under a primary key by ID; a second key per
// (owner, source, content hash) maps to the ID and doubles as the
// uniqueness constraint for deduplication.
type LedgerRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.LedgerRepository = (*LedgerRepository)(nil)

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(backend *Backend) (*LedgerRepository, error) {
	idSeq, err := backend.GetSequence(recordIDSeq)
	if err != nil {
		return nil, err
	}

	return &LedgerRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *LedgerRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *LedgerRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// FindRecord retrieves the record for (owner, source, hash).
func (r *LedgerRepository) FindRecord(ctx context.Context, owner string, source core.SourceType, hash string) (*core.ProcessingRecord, error) {
	var result *core.ProcessingRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readByIndex(tx, makeRecordIndexKey(owner, source, hash))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// InsertRecord adds a new record, enforcing the (owner, source, hash)
// uniqueness constraint. A concurrent insert of the same key loses with
// ErrDuplicateKey, via either the index-key check or the transaction
// conflict on commit.
func (r *LedgerRepository) InsertRecord(ctx context.Context, record *core.ProcessingRecord) (*core.ProcessingRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		indexKey := makeRecordIndexKey(record.OwnerId, record.Source, record.ContentHash)

		_, err := tx.Get(indexKey)
		if err == nil {
			return storage.ErrDuplicateKey
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}
		record.Id = core.ID(nextID)

		record.CreatedAt = time.Now().UTC()
		record.UpdatedAt = record.CreatedAt

		if err := core.ValidateRecord(record); err != nil {
			return err
		}

		if err := tx.Set(makeRecordKey(record.Id), storage.MarshalRecord(record)); err != nil {
			return err
		}
		if err := tx.Set(indexKey, storage.MarshalID(record.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if errors.Is(err, badger.ErrConflict) {
		return nil, storage.ErrDuplicateKey
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateRecord overwrites an existing record. The write is atomic:
// status, summary, and topics land together or not at all.
func (r *LedgerRepository) UpdateRecord(ctx context.Context, record *core.ProcessingRecord) (*core.ProcessingRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecordKey(record.Id)

		old, err := r.readRecord(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		// The dedup key is immutable once inserted.
		if old.OwnerId != record.OwnerId || old.Source != record.Source || old.ContentHash != record.ContentHash {
			return fmt.Errorf("%w: record key fields are immutable", core.ErrInvalidRecord)
		}

		if old.Status != record.Status && !old.Status.CanTransition(record.Status) {
			return fmt.Errorf("%w: %s to %s", core.ErrInvalidTransition, old.Status, record.Status)
		}

		record.CreatedAt = old.CreatedAt
		record.UpdatedAt = time.Now().UTC()

		if err := core.ValidateRecord(record); err != nil {
			return err
		}

		if err := tx.Set(key, storage.MarshalRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return record, nil
}

// LookupOrCreate returns the existing record for (owner, source, hash),
// or inserts a new processing record. The insert-failure path is a
// success path: a duplicate-key conflict means another invocation won
// the race, so the existing record is read back and returned.
func (r *LedgerRepository) LookupOrCreate(ctx context.Context, owner string, source core.SourceType, itemPath, hash string) (*core.ProcessingRecord, bool, error) {
	record, err := r.FindRecord(ctx, owner, source, hash)
	if err == nil {
		return record, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, err
	}

	fresh := &core.ProcessingRecord{
		OwnerId:     owner,
		Source:      source,
		ItemPath:    itemPath,
		ContentHash: hash,
		Status:      core.StatusProcessing,
	}

	inserted, err := r.InsertRecord(ctx, fresh)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			existing, findErr := r.FindRecord(ctx, owner, source, hash)
			if findErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	return inserted, true, nil
}

// ListRecords retrieves all records for an owner and source, in
// insertion order.
func (r *LedgerRepository) ListRecords(ctx context.Context, owner string, source core.SourceType) ([]*core.ProcessingRecord, error) {
	var results []*core.ProcessingRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := makeOwnerSourcePrefix(owner, source)
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			record, err := r.readRecord(tx, makeRecordKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Index keys sort by hash; callers expect insertion order.
	slices.SortFunc(results, func(a, b *core.ProcessingRecord) int {
		switch {
		case a.Id < b.Id:
			return -1
		case a.Id > b.Id:
			return 1
		default:
			return 0
		}
	})

	return results, nil
}

// readByIndex resolves an index key to its record.
// Returns nil without error when the index key is absent.
func (r *LedgerRepository) readByIndex(tx *badger.Txn, indexKey []byte) (*core.ProcessingRecord, error) {
	item, err := tx.Get(indexKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var id core.ID
	err = item.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	})
	if err != nil {
		return nil, err
	}

	return r.readRecord(tx, makeRecordKey(id))
}

// readRecord reads a record by primary key.
// Returns nil without error when the key is absent.
func (r *LedgerRepository) readRecord(tx *badger.Txn, key []byte) (*core.ProcessingRecord, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record *core.ProcessingRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalRecord(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
