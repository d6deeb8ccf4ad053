package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/foodsearch/core"
	"github.com/poiesic/foodsearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pastaRecord() *core.FoodRecord {
	return &core.FoodRecord{
		ID:      "bda:1109",
		Name:    "Pasta di semola",
		Aliases: []string{"spaghetti"},
		Per100:  core.Per100{Kcal: core.Value(353), Fiber: core.Value(0)},
		Source:  "BDA (bda.ieo.it)",
	}
}

func TestEntryRepository_PutGet(t *testing.T) {
	entries, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	_, err = entries.GetEntry(ctx, "1109")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, entries.PutEntry(ctx, "1109", pastaRecord()))

	got, err := entries.GetEntry(ctx, "1109")
	require.NoError(t, err)
	assert.Equal(t, pastaRecord(), got)
	assert.Nil(t, got.Per100.Protein, "unknown stays unknown")

	updated := pastaRecord()
	updated.Name = "Pasta"
	require.NoError(t, entries.PutEntry(ctx, "1109", updated))
	got, err = entries.GetEntry(ctx, "1109")
	require.NoError(t, err)
	assert.Equal(t, "Pasta", got.Name)
}

func TestEntryRepository_InvalidInput(t *testing.T) {
	entries, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	_, err = entries.GetEntry(ctx, " ")
	assert.ErrorIs(t, err, storage.ErrInvalidKey)

	assert.ErrorIs(t, entries.PutEntry(ctx, "", pastaRecord()), storage.ErrInvalidKey)
	assert.ErrorIs(t, entries.PutEntry(ctx, "1", &core.FoodRecord{}), core.ErrEmptyName)
	assert.ErrorIs(t, entries.PutEntry(ctx, "1", nil), core.ErrInvalidFoodRecord)
}

func TestEntryRepository_CountAndPurge(t *testing.T) {
	entries, checkpoints, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	for _, code := range []string{"1", "2", "3"} {
		require.NoError(t, entries.PutEntry(ctx, code, pastaRecord()))
	}
	require.NoError(t, checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{Name: "consolidate", Items: 3}))

	n, err := entries.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, entries.PurgeEntries(ctx))

	n, err = entries.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	cp, err := checkpoints.LoadCheckpoint(ctx, "consolidate")
	require.NoError(t, err)
	require.NotNil(t, cp, "purging entries keeps checkpoints")
}

func TestEntryRepository_CanceledContext(t *testing.T) {
	entries, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = entries.GetEntry(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, entries.PutEntry(ctx, "1", pastaRecord()), context.Canceled)
}

func TestCheckpointRepository(t *testing.T) {
	_, checkpoints, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	cp, err := checkpoints.LoadCheckpoint(ctx, "consolidate")
	require.NoError(t, err)
	assert.Nil(t, cp)

	before := time.Now().UTC().Add(-time.Second)
	saved := &core.Checkpoint{Name: "consolidate", Items: 1109, Digest: "abc"}
	require.NoError(t, checkpoints.SaveCheckpoint(ctx, saved))
	assert.True(t, saved.UpdatedAt.After(before))

	cp, err = checkpoints.LoadCheckpoint(ctx, "consolidate")
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Equal(t, "consolidate", cp.Name)
	assert.Equal(t, 1109, cp.Items)
	assert.Equal(t, "abc", cp.Digest)
	assert.True(t, saved.UpdatedAt.Truncate(time.Microsecond).Equal(cp.UpdatedAt))

	assert.ErrorIs(t, checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{}), storage.ErrInvalidKey)
	assert.ErrorIs(t, checkpoints.SaveCheckpoint(ctx, nil), storage.ErrInvalidKey)
}
