package badger

import (
	"context"
	"errors"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/foodsearch/core"
	"github.com/poiesic/foodsearch/storage"
)

// EntryRepository implements storage.EntryCache for BadgerDB.
type EntryRepository struct {
	backend *Backend
}

var _ storage.EntryCache = (*EntryRepository)(nil)

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(backend *Backend) *EntryRepository {
	return &EntryRepository{
		backend: backend,
	}
}

// GetEntry returns the record cached for a catalog code.
func (r *EntryRepository) GetEntry(ctx context.Context, code string) (*core.FoodRecord, error) {
	if strings.TrimSpace(code) == "" {
		return nil, storage.ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record *core.FoodRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEntryKey(code))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			record, unmarshalErr = storage.UnmarshalFoodRecord(val)
			return unmarshalErr
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// PutEntry stores or replaces the record for a catalog code.
func (r *EntryRepository) PutEntry(ctx context.Context, code string, record *core.FoodRecord) error {
	if strings.TrimSpace(code) == "" {
		return storage.ErrInvalidKey
	}
	if err := core.ValidateFoodRecord(record); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeEntryKey(code), storage.MarshalFoodRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// CountEntries returns the number of cached records.
func (r *EntryRepository) CountEntries(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return r.backend.CountPrefix(entryKeyPrefix())
}

// PurgeEntries removes every cached record.
func (r *EntryRepository) PurgeEntries(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.backend.DropPrefix(entryKeyPrefix())
}
