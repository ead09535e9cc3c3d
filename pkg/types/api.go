package types

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindIO          ErrKind = iota // seek/read/write failure on the underlying stream
	ErrKindShortRead                  // stream ended before a field's width was read
	ErrKindUnsupported                // operation has no meaning for the field kind
	ErrKindLayout                     // invalid field or layout definition
	ErrKindNotFound                   // unknown field name
)

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindIO:
		return "io"
	case ErrKindShortRead:
		return "short read"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindLayout:
		return "layout"
	case ErrKindNotFound:
		return "not found"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
//
// Op and Offset describe the stream operation that failed. Value is set
// when a write failed and holds the value that could not be persisted.
type Error struct {
	Kind   ErrKind
	Msg    string
	Op     string // "seek", "read", "write", "add", ...
	Offset int64
	Value  any
	Err    error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(e.Msg)
	if e.Op != "" {
		fmt.Fprintf(&b, ": %s at offset %d (0x%x)", e.Op, e.Offset, e.Offset)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " value %#x", e.Value)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinel errors by Kind, so errors.Is(err, ErrShortRead) holds
// for every short read regardless of offset or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Err != nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrIO indicates the underlying stream failed a seek, read, or write.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "stream i/o failed"}
	// ErrShortRead indicates the stream ended inside a field.
	ErrShortRead = &Error{Kind: ErrKindShortRead, Msg: "short read"}
	// ErrUnsupported indicates an operation with no defined meaning for the field kind.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported operation"}
	// ErrLayout indicates an invalid field or layout definition.
	ErrLayout = &Error{Kind: ErrKindLayout, Msg: "invalid layout"}
	// ErrNotFound indicates a field name that is not part of the layout.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "field not found"}
)

// StreamError builds the error returned for a failed stream operation.
// Reads that stop early (io.EOF, io.ErrUnexpectedEOF) are classified as
// ErrKindShortRead; everything else is ErrKindIO.
func StreamError(op string, off int64, value any, err error) *Error {
	kind := ErrKindIO
	msg := "stream i/o failed"
	if op == "read" && (errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)) {
		kind = ErrKindShortRead
		msg = "short read"
	}
	return &Error{Kind: kind, Msg: msg, Op: op, Offset: off, Value: value, Err: err}
}
