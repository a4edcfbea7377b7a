package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/speechwatch/core"
	"github.com/poiesic/speechwatch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) storage.CheckpointRepository {
	repo, err := NewMemoryCheckpointRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCheckpoint_SaveAndLoad(t *testing.T) {
	repo := newTestLedger(t)
	ctx := context.Background()

	cp := &core.Checkpoint{
		Source:   "cspan",
		RunID:    "run-1",
		LastRun:  time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		Fetched:  12,
		Admitted: 3,
	}
	require.NoError(t, repo.SaveCheckpoint(ctx, cp))

	got, err := repo.LoadCheckpoint(ctx, "cspan")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *cp, *got)
}

func TestCheckpoint_LoadMissing(t *testing.T) {
	repo := newTestLedger(t)

	got, err := repo.LoadCheckpoint(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCheckpoint_Overwrite(t *testing.T) {
	repo := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{Source: "whitehouse", RunID: "a", Fetched: 1}))
	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{Source: "whitehouse", RunID: "b", Fetched: 2}))

	got, err := repo.LoadCheckpoint(ctx, "whitehouse")
	require.NoError(t, err)
	assert.Equal(t, "b", got.RunID)
	assert.Equal(t, 2, got.Fetched)

	all, err := repo.ListCheckpoints(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCheckpoint_StampsLastRun(t *testing.T) {
	repo := newTestLedger(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	cp := &core.Checkpoint{Source: "youtube"}
	require.NoError(t, repo.SaveCheckpoint(ctx, cp))
	assert.True(t, cp.LastRun.After(before))

	got, err := repo.LoadCheckpoint(ctx, "youtube")
	require.NoError(t, err)
	assert.True(t, got.LastRun.Equal(cp.LastRun.Truncate(time.Microsecond)))
}

func TestCheckpoint_List(t *testing.T) {
	repo := newTestLedger(t)
	ctx := context.Background()

	for _, src := range []string{"youtube", "cspan", "whitehouse-briefings", "whitehouse"} {
		require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{Source: src}))
	}

	all, err := repo.ListCheckpoints(ctx)
	require.NoError(t, err)

	var names []string
	for _, cp := range all {
		names = append(names, cp.Source)
	}
	assert.Equal(t, []string{"cspan", "whitehouse", "whitehouse-briefings", "youtube"}, names)
}

func TestCheckpoint_ListEmpty(t *testing.T) {
	all, err := newTestLedger(t).ListCheckpoints(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCheckpoint_RequiresSource(t *testing.T) {
	repo := newTestLedger(t)
	err := repo.SaveCheckpoint(context.Background(), &core.Checkpoint{})
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestCheckpoint_Closed(t *testing.T) {
	repo, err := NewMemoryCheckpointRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	_, err = repo.ListCheckpoints(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestCheckpoint_SharedBackend(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	repo := NewCheckpointRepository(backend)
	require.NoError(t, repo.SaveCheckpoint(context.Background(), &core.Checkpoint{Source: "a"}))
	require.NoError(t, repo.Close())
	assert.False(t, backend.IsClosed())
}

func TestOpenCheckpointRepository_Persists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := OpenCheckpointRepository(dir)
	require.NoError(t, err)
	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{Source: "cspan", Admitted: 5}))
	require.NoError(t, repo.Close())

	repo, err = OpenCheckpointRepository(dir)
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.LoadCheckpoint(ctx, "cspan")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.Admitted)
}
