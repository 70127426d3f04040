package datastore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSnapshotBeforeLoad(t *testing.T) {
	store := NewStore(t.TempDir())

	snapshot, err := store.Snapshot()

	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestStoreReload(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, nil)
	store := NewStore(dir)

	err := store.Reload(context.Background())
	require.NoError(t, err)

	snapshot, err := store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 3, len(snapshot.PnL))
	assert.False(t, snapshot.LoadedAt.IsZero())
}

func TestStoreReloadKeepsPreviousSnapshotOnError(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, nil)
	store := NewStore(dir)
	require.NoError(t, store.Reload(context.Background()))

	before, err := store.Snapshot()
	require.NoError(t, err)

	// Corrompe o dataset em disco e tenta recarregar
	writeDataset(t, dir, map[string]string{
		"monthly_pnl.csv": "unit_id\n1\n",
	})
	err = store.Reload(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "erro ao carregar o dataset")

	after, err := store.Snapshot()
	require.NoError(t, err)
	assert.Same(t, before, after)
}

func TestStoreStatus(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	status := store.Status()
	assert.False(t, status.Loaded)
	assert.Equal(t, dir, status.Dir)
	assert.Nil(t, status.LoadedAt)
	assert.Nil(t, status.RowCounts)
	assert.Nil(t, status.LatestPeriod)

	writeDataset(t, dir, nil)
	require.NoError(t, store.Reload(context.Background()))

	status = store.Status()
	assert.True(t, status.Loaded)
	require.NotNil(t, status.LoadedAt)
	require.NotNil(t, status.LatestPeriod)
	assert.Equal(t, "2024-09", status.LatestPeriod.String())
	assert.Equal(t, 3, status.RowCounts[TableMonthlyPnL])
	assert.Equal(t, 2, status.RowCounts[TableBusinessUnits])
}
