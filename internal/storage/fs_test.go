package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_WriteOpenDelete(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	err = store.Write(1, "a.pdf", strings.NewReader("file contents"))
	require.NoError(t, err)

	f, err := store.Open(1, "a.pdf")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	assert.NoError(t, err)
	assert.Equal(t, "file contents", string(data))

	err = store.Delete(1)
	assert.NoError(t, err)

	_, err = store.Open(1, "a.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFSStore_WriteFailsIfExists(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Write(1, "a.pdf", strings.NewReader("first")))

	err = store.Write(1, "b.pdf", strings.NewReader("second"))
	assert.ErrorIs(t, err, ErrExists)
}

func TestFSStore_OpenMissing(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(42, "nope.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFSStore_DeleteMissing(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	err = store.Delete(42)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFSStore_FilenameCannotEscapeDirectory(t *testing.T) {
	root := t.TempDir()
	store, err := NewFSStore(root)
	require.NoError(t, err)

	err = store.Write(1, "../../evil.txt", strings.NewReader("x"))
	require.NoError(t, err)

	// The file lands inside the id directory under its base name
	_, err = os.Stat(filepath.Join(root, "1", "evil.txt"))
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "..", "..", "evil.txt"))
	assert.True(t, os.IsNotExist(err))
}
