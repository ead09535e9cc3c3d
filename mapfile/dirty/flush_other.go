//go:build !linux && !freebsd && !darwin && !windows

package dirty

import "context"

// flushRanges is a no-op on platforms where fieldkit does not map files.
func (t *Tracker) flushRanges(_ context.Context, _ []byte) error { return nil }

func fdatasync(_ int, _ bool) error { return nil }
