package yamlfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.yml")
	in := map[string][]string{"test.txt": {"v1", "v2"}}
	require.NoError(t, Save(path, in))

	out := map[string][]string{}
	require.NoError(t, Load(path, &out))
	require.Equal(t, in, out)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestLoadMissingOrEmpty(t *testing.T) {
	dir := t.TempDir()
	out := map[string]string{}
	require.NoError(t, Load(filepath.Join(dir, "missing.yml"), &out))
	require.Empty(t, out)

	empty := filepath.Join(dir, "empty.yml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	require.NoError(t, Load(empty, &out))
	require.Empty(t, out)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("a: [unterminated"), 0o644))
	out := map[string]string{}
	require.Error(t, Load(path, &out))
}
