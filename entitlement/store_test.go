package entitlement

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStores returns every local Store implementation against the same
// contract. Redis is exercised in integration environments only.
func newTestStores(t *testing.T) map[string]Store {
	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "ledger.json"))
	require.NoError(t, err)

	return map[string]Store{
		"file":   fileStore,
		"memory": NewMemoryStore(),
	}
}

func TestStore_GetAbsentUser(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			rec, err := store.Get(context.Background(), "nobody")
			require.NoError(t, err)
			assert.Nil(t, rec)
		})
	}
}

func TestStore_SetThenGet(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Set(ctx, "7001", Record{Consumed: 2, Limit: 5}))

			rec, err := store.Get(ctx, "7001")
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, 2, rec.Consumed)
			assert.Equal(t, 5, rec.Limit)
		})
	}
}

func TestStore_SetReplacesWholeRecord(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Set(ctx, "7002", Record{Consumed: 9, Limit: 9}))
			require.NoError(t, store.Set(ctx, "7002", Record{Consumed: 0, Limit: 5}))

			rec, err := store.Get(ctx, "7002")
			require.NoError(t, err)
			assert.Equal(t, Record{Consumed: 0, Limit: 5}, *rec)
		})
	}
}

func TestStore_IncrementConsumed(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Set(ctx, "7003", Record{Consumed: 0, Limit: 3}))

			require.NoError(t, store.IncrementConsumed(ctx, "7003"))
			require.NoError(t, store.IncrementConsumed(ctx, "7003"))

			rec, err := store.Get(ctx, "7003")
			require.NoError(t, err)
			assert.Equal(t, 2, rec.Consumed)
			assert.Equal(t, 3, rec.Limit)
		})
	}
}

func TestStore_IncrementAbsentUserFails(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.IncrementConsumed(context.Background(), "ghost")
			assert.ErrorIs(t, err, ErrNotRegistered)
		})
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "7004", Record{Consumed: 1, Limit: 5}))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	rec, err := reopened.Get(ctx, "7004")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, Record{Consumed: 1, Limit: 5}, *rec)
}

func TestFileStore_LeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "ledger.json"))
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "7005", Record{Limit: 1}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ledger.json", entries[0].Name())
}

func TestRecord_Remaining(t *testing.T) {
	assert.Equal(t, 3, Record{Consumed: 2, Limit: 5}.Remaining())
	assert.Equal(t, 0, Record{Consumed: 5, Limit: 5}.Remaining())
	assert.Equal(t, 0, Record{Consumed: 7, Limit: 5}.Remaining())
}
