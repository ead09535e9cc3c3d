// Package writer persists patched buffers to disk.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPerm is the mode given to files FileWriter creates.
const DefaultPerm os.FileMode = 0o644

// FileWriter writes a whole buffer to a filesystem path atomically.
type FileWriter struct {
	Path string
	// Perm is applied to the written file. Zero keeps the mode of an
	// existing file at Path, or DefaultPerm for a new one.
	Perm os.FileMode
}

// WriteFile writes buf to the configured path atomically via temp file +
// rename. Readers see either the old contents or the new, never a mix.
func (w *FileWriter) WriteFile(buf []byte) error {
	perm := w.Perm
	if perm == 0 {
		perm = DefaultPerm
		if info, err := os.Stat(w.Path); err == nil {
			perm = info.Mode().Perm()
		}
	}

	// Create temp file in same directory to ensure atomic rename
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".fieldkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}

	if chmodErr := tmpFile.Chmod(perm); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}

	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil // Don't clean up in defer

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}

	return nil
}
