// Package types defines the error categories shared by fieldkit packages.
//
// Buffer-backed views never return errors: a short buffer or a conflicting
// borrow is a caller bug and panics. Everything that touches a stream
// returns a *Error instead, so callers can branch on Kind rather than on
// message text:
//
//	if errors.Is(err, types.ErrShortRead) {
//	    // the stream ended inside a field
//	}
//
// This package has no dependencies beyond the standard library.
package types
