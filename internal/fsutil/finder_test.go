package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	// Arrange
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	for _, name := range []string{"b.sub", "a.sub", "notes.txt", filepath.Join("nested", "c.sub")} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), nil, 0o600))
	}

	// Act
	files, err := FindFilesByExtension(root, ".sub")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.sub"),
		filepath.Join(root, "b.sub"),
		filepath.Join(root, "nested", "c.sub"),
	}, files)
}

func TestFindFilesByExtension_SingleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "station.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	files, err := FindFilesByExtension(path, ".sub")

	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestFindFilesByExtension_Errors(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".sub")
	assert.Error(t, err)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(".", "") })
}
