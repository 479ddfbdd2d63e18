package revisions

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileRepository_AppendPersistsInOrder(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.yml")

	repo, err := NewFileRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, "test.txt", "v1"))
	require.NoError(t, repo.Append(ctx, "test.txt", "v2"))
	require.NoError(t, repo.Append(ctx, "other.md", "# other"))

	// a fresh repository sees the same history (survives restart)
	reloaded, err := NewFileRepository(path)
	require.NoError(t, err)
	got, err := reloaded.List(ctx, "test.txt")
	require.NoError(t, err)
	require.Equal(t, []string{"v1", "v2"}, got)

	none, err := reloaded.List(ctx, "never-edited.txt")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestFileRepository_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.yml")
	repo, err := NewFileRepository(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Append(ctx, "race.txt", "snapshot")
		}()
	}
	wg.Wait()

	reloaded, err := NewFileRepository(path)
	require.NoError(t, err)
	got, err := reloaded.List(ctx, "race.txt")
	require.NoError(t, err)
	require.Len(t, got, 20)
}

func TestFileRepository_RollsBackOnWriteFailure(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks are bypassed for root")
	}
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := NewFileRepository(filepath.Join(dir, "history.yml"))
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, "a.txt", "v1"))

	require.NoError(t, os.Chmod(dir, 0o500))
	defer os.Chmod(dir, 0o755)

	require.Error(t, repo.Append(ctx, "a.txt", "v2"))
	require.Error(t, repo.Append(ctx, "b.txt", "v1"))

	got, err := repo.List(ctx, "a.txt")
	require.NoError(t, err)
	require.Equal(t, []string{"v1"}, got)
	got, err = repo.List(ctx, "b.txt")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFileRepository_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a mapping\n"), 0o644))
	_, err := NewFileRepository(path)
	require.Error(t, err)
}
