//go:build darwin

package dirty

import (
	"context"

	"golang.org/x/sys/unix"
)

// flushRanges syncs the whole mapping.
//
// On macOS msync requires the address to match the original mmap address,
// so sub-slices cannot be passed. The kernel only writes dirty pages.
func (t *Tracker) flushRanges(_ context.Context, data []byte) error {
	return unix.Msync(data, unix.MS_SYNC)
}

// fdatasync performs a file descriptor sync.
//
// With fullfsync it uses F_FULLFSYNC, which also flushes the drive cache.
// macOS has no fdatasync, so otherwise it falls back to fsync.
func fdatasync(fd int, fullfsync bool) error {
	if fullfsync {
		_, err := unix.FcntlInt(uintptr(fd), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(fd)
}
