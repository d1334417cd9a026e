package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/repository"
	"github.com/alexanderramin/worklog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitSignal(t *testing.T, ch <-chan struct{}) bool {
	t.Helper()
	select {
	case _, ok := <-ch:
		return ok
	case <-time.After(2 * time.Second):
		return false
	}
}

func TestWatchDatabase_SignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worklog.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed, err := watchDatabase(ctx, path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path+"-wal", []byte("wal"), 0o644))
	assert.True(t, waitSignal(t, changed))
}

func TestWatchDatabase_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worklog.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed, err := watchDatabase(ctx, path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	select {
	case <-changed:
		t.Fatal("unexpected signal for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchDatabase_ClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worklog.db")

	ctx, cancel := context.WithCancel(context.Background())
	changed, err := watchDatabase(ctx, path, nil)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-changed:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatchDatabase_MissingDirectory(t *testing.T) {
	_, err := watchDatabase(context.Background(), filepath.Join(t.TempDir(), "missing", "worklog.db"), nil)
	assert.Error(t, err)
}

func TestWatchDatabase_SignalsOnSQLiteWrite(t *testing.T) {
	database, path := testutil.NewTestDBFile(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed, err := watchDatabase(ctx, path, nil)
	require.NoError(t, err)

	repo := repository.NewSQLiteEventRepo(database)
	require.NoError(t, repo.CreateEvent(ctx, testutil.NewTestEvent("Written elsewhere")))
	assert.True(t, waitSignal(t, changed))
}
