package storage

import (
	"context"

	"github.com/poiesic/foodsearch/core"
)

// EntryCache keeps fetched catalog records so an interrupted consolidation
// can resume without refetching them.
// Implementations must be thread-safe and support concurrent access.
type EntryCache interface {
	// GetEntry returns the record cached for a catalog code.
	// Returns ErrNotFound if nothing is cached.
	GetEntry(ctx context.Context, code string) (*core.FoodRecord, error)

	// PutEntry stores or replaces the record for a catalog code.
	PutEntry(ctx context.Context, code string, record *core.FoodRecord) error

	// CountEntries returns the number of cached records.
	CountEntries(ctx context.Context) (int, error)

	// PurgeEntries removes every cached record.
	PurgeEntries(ctx context.Context) error
}

// CheckpointRepository records the outcome of completed builds.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint under its name, setting UpdatedAt.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint saved under name.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, name string) (*core.Checkpoint, error)
}
