// Package view overlays typed, mutable fields onto raw bytes.
//
// Two families of views exist, matching the two kinds of byte source:
//
// Buffer-backed views (Scalar, Array) bind a sub-slice of a caller-owned
// []byte and hold no cached value. Every Get decodes and every Set encodes
// directly against the bound bytes, so writes are visible to anything else
// that aliases the buffer (an mmap'd file, another record). Construction
// splits the buffer and hands back the unconsumed remainder:
//
//	magic, rest := view.NewScalar(codec.U32, buf)
//	name, rest := view.NewArray(rest, 16)
//	magic.Add(1)
//
// A buffer that is too short is a caller bug and panics.
//
// Stream-backed views (StreamScalar, StreamArray) read their value once
// from an io.ReadSeeker, remember the offset it came from, and on Set seek
// back to exactly that offset to write. The offset never changes, so views
// at different offsets can be written in any order and each write lands
// where it belongs. The cached value is the source of truth until Reload;
// writes made to the stream by anything else are not observed. I/O failures
// are returned as *types.Error values carrying the operation, the offset and
// the underlying cause.
//
// Views are not safe for concurrent use. The Array borrow check guards
// against aliasing bugs inside a single goroutine, not against data races.
package view

// Tracker receives the absolute range of every write made through a
// buffer-backed view. mapfile uses it to msync only the pages a record
// touched.
type Tracker interface {
	Add(off, length int)
}
