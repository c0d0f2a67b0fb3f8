package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/propset/internal/fsutil"
)

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	for _, name := range []string{"b.hcl", "a.hcl", "notes.txt", "nested/c.hcl"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	t.Run("walks directories recursively and sorts", func(t *testing.T) {
		files, err := fsutil.FindFilesByExtension(dir, ".hcl")
		require.NoError(t, err)
		require.Len(t, files, 3)
		assert.Equal(t, filepath.Join(dir, "a.hcl"), files[0])
		assert.Equal(t, filepath.Join(dir, "b.hcl"), files[1])
		assert.Equal(t, filepath.Join(dir, "nested", "c.hcl"), files[2])
	})

	t.Run("accepts a single matching file", func(t *testing.T) {
		files, err := fsutil.FindFilesByExtension(filepath.Join(dir, "a.hcl"), ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.hcl")}, files)
	})

	t.Run("non-matching file yields nothing", func(t *testing.T) {
		files, err := fsutil.FindFilesByExtension(filepath.Join(dir, "notes.txt"), ".hcl")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing path errors", func(t *testing.T) {
		_, err := fsutil.FindFilesByExtension(filepath.Join(dir, "missing"), ".hcl")
		require.Error(t, err)
	})
}
