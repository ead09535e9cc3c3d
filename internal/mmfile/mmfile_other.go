//go:build !linux && !freebsd && !darwin

package mmfile

import "os"

const supported = false

// Map always fails with ErrNotMapped on this platform.
func Map(_ *os.File) ([]byte, func() error, error) {
	return nil, nil, ErrNotMapped
}
