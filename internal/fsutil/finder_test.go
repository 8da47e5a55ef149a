package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# test"), 0o644))
}

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "b", "a.hcl")
	b := filepath.Join(root, "a.hcl")
	other := filepath.Join(root, "notes.txt")
	single := filepath.Join(t.TempDir(), "model.txt")
	for _, p := range []string{a, b, other, single} {
		writeFile(t, p)
	}

	got, err := CollectFiles(".hcl", root, b, single)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b, single}, got)
	assert.IsIncreasing(t, got)

	_, err = CollectFiles(".hcl", filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindFilesByExtensionPanicsOnEmptyExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir(), "") })
}
