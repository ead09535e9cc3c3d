//go:build windows

package dirty

import (
	"context"
	"unsafe"

	"golang.org/x/sys/windows"
)

// flushRanges flushes each coalesced range with FlushViewOfFile.
//
// mapfile never maps files on Windows (mmfile.Map returns ErrNotMapped and
// File.Flush writes the heap copy back), so this path is only reached by a
// Tracker built with NewTracker over a caller-owned view whose Source.FD is the
// file handle.
func (t *Tracker) flushRanges(ctx context.Context, data []byte) error {
	for _, r := range t.coalesce() {
		if err := ctx.Err(); err != nil {
			return err
		}
		start, end, ok := clip(r, len(data))
		if !ok {
			continue
		}
		chunk := data[start:end]
		addr := uintptr(unsafe.Pointer(&chunk[0]))
		if err := windows.FlushViewOfFile(addr, uintptr(len(chunk))); err != nil {
			return err
		}
	}
	return nil
}

// fdatasync flushes file buffers with FlushFileBuffers. fullfsync is
// ignored on Windows.
func fdatasync(fd int, _ bool) error {
	return windows.FlushFileBuffers(windows.Handle(fd))
}
