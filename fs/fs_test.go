package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/readdoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic File Writes
// Output files appear whole or not at all

func TestWriteFile_CreatesParentDirectories(t *testing.T) {
	t.Parallel()

	// Given a path in a directory that does not exist
	p := filepath.Join(t.TempDir(), "a", "b", "out.docx")

	// When I write to it
	err := fs.WriteFile(p, []byte("content"), 0644)

	// Then the file holds the content
	require.NoError(t, err)
	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "content", string(got))
}

func TestWriteFile_ReplacesExistingFile(t *testing.T) {
	t.Parallel()

	// Given an existing file
	p := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, os.WriteFile(p, []byte("old content that is longer"), 0644))

	// When I write new content
	require.NoError(t, fs.WriteFile(p, []byte("new"), 0644))

	// Then only the new content remains
	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestWriteFile_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	// Given an empty directory
	dir := t.TempDir()

	// When I write a file
	require.NoError(t, fs.WriteFile(filepath.Join(dir, "out.docx"), []byte("x"), 0600))

	// Then the directory holds only that file
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.docx", entries[0].Name())
	info, err := entries[0].Info()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
