package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "nested")
	require.NoError(t, os.Mkdir(nested, 0o755))
	for _, name := range []string{"a.hcl", "b.yaml", "c.txt", "nested/d.HCL"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), nil, 0o644))
	}

	files, err := FindFiles([]string{root, filepath.Join(root, "a.hcl"), filepath.Join(root, "missing")}, ".hcl")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(root, "a.hcl"), filepath.Join(nested, "d.HCL")}, files)

	files, err = FindFiles([]string{filepath.Join(root, "c.txt")}, ".yaml", ".yml")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFiles_PanicsWithoutExtensions(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { _, _ = FindFiles([]string{"."}) })
}
