package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}

// Split splits b into its first n bytes and the remainder, the way every
// buffer-backed view binds its range. The head is capped so appends through
// it can never spill into the remainder. Panics when b is shorter than n:
// binding past the end of a buffer is a caller bug, not a runtime condition.
func Split(b []byte, n int) (head, rest []byte) {
	if n < 0 {
		panic(fmt.Sprintf("buf: negative width %d", n))
	}
	if len(b) < n {
		panic(fmt.Sprintf("buf: need %d bytes, have %d", n, len(b)))
	}
	return b[:n:n], b[n:]
}
