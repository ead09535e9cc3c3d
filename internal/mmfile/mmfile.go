// Package mmfile provides platform-specific helpers for memory-mapping files
// read-write.
package mmfile

import "errors"

// ErrNotMapped is returned by Map on platforms where files are not
// memory-mapped. Callers fall back to reading the file into memory.
var ErrNotMapped = errors.New("mmfile: memory mapping not supported on this platform")

// Supported reports whether Map can map files on this platform.
func Supported() bool { return supported }
