package writer

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileWriter_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	w := &FileWriter{Path: path}
	require.NoError(t, w.WriteFile([]byte{1, 2, 3}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, got)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, DefaultPerm, info.Mode().Perm())
	}
}

func TestFileWriter_ReplacesAndKeepsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, os.WriteFile(path, []byte("old contents"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	w := &FileWriter{Path: path}
	require.NoError(t, w.WriteFile([]byte("new")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileWriter_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	w := &FileWriter{Path: filepath.Join(dir, "out.bin")}
	require.NoError(t, w.WriteFile([]byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "out.bin", entries[0].Name())
}

func TestFileWriter_MissingDir(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "nope", "out.bin")}
	err := w.WriteFile([]byte("x"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "create temp file")
}
