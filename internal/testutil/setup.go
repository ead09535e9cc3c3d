package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTempFile writes data to a file in a fresh temp directory and returns
// its path. The directory is removed when the test ends.
//
// Example:
//
//	path := testutil.WriteTempFile(t, "header.bin", testutil.SampleBytes())
func WriteTempFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return data
}
