package view

import (
	"fmt"
	"io"

	"github.com/joshuapare/fieldkit/codec"
	"github.com/joshuapare/fieldkit/pkg/types"
)

// readField records the stream's current position and reads exactly n
// bytes from it. On failure the returned error carries the position the
// read was attempted at.
func readField(rs io.ReadSeeker, n int) ([]byte, int64, error) {
	off, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, -1, types.StreamError("seek", -1, nil, err)
	}
	raw := make([]byte, n)
	if _, err := io.ReadFull(rs, raw); err != nil {
		return nil, off, types.StreamError("read", off, nil, err)
	}
	return raw, off, nil
}

// rereadField reads n bytes from the absolute offset off.
func rereadField(rs io.ReadSeeker, off int64, n int) ([]byte, error) {
	if _, err := rs.Seek(off, io.SeekStart); err != nil {
		return nil, types.StreamError("seek", off, nil, err)
	}
	raw := make([]byte, n)
	if _, err := io.ReadFull(rs, raw); err != nil {
		return nil, types.StreamError("read", off, nil, err)
	}
	return raw, nil
}

// writeField seeks to off and writes raw. value is what the caller tried
// to persist and is only used to describe a failure.
func writeField(ws io.WriteSeeker, off int64, raw []byte, value any) error {
	if _, err := ws.Seek(off, io.SeekStart); err != nil {
		return types.StreamError("seek", off, value, err)
	}
	n, err := ws.Write(raw)
	if err == nil && n != len(raw) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return types.StreamError("write", off, value, err)
	}
	return nil
}

// StreamScalar is a fixed-width unsigned integer read once from a stream.
//
// The decoded value and the offset it was read from are cached at
// construction. Set updates the cache first and then writes it back to
// that offset, so a failed Set leaves the cache and the stream disagreeing;
// nothing is rolled back.
type StreamScalar struct {
	c      codec.Codec
	offset int64
	val    uint64
}

// NewStreamScalar reads a field of the given kind at the stream's current
// position, leaving the stream positioned just past it. It panics when kind
// is not a scalar kind.
func NewStreamScalar(kind codec.Kind, rs io.ReadSeeker) (*StreamScalar, error) {
	c, ok := codec.Lookup(kind)
	if !ok {
		panic(fmt.Sprintf("view: %s is not a scalar kind", kind))
	}
	raw, off, err := readField(rs, c.Width)
	if err != nil {
		return nil, err
	}
	return &StreamScalar{c: c, offset: off, val: c.Decode(raw)}, nil
}

// Kind returns the field kind.
func (s *StreamScalar) Kind() codec.Kind { return s.c.Kind }

// Width returns the field width in bytes.
func (s *StreamScalar) Width() int { return s.c.Width }

// Offset returns the absolute stream offset the field is bound to.
func (s *StreamScalar) Offset() int64 { return s.offset }

// Get returns the cached value. It performs no I/O.
func (s *StreamScalar) Get() uint64 { return s.val }

// Set caches v (truncated to the field width) and writes it at Offset(),
// regardless of where the stream is currently positioned. The stream is
// left positioned just past the field.
func (s *StreamScalar) Set(ws io.WriteSeeker, v uint64) error {
	s.val = s.c.Kind.Truncate(v)
	raw := make([]byte, s.c.Width)
	s.c.Encode(raw, s.val)
	return writeField(ws, s.offset, raw, s.val)
}

// Apply is Set(ws, Get() <op> x) in the field's width.
func (s *StreamScalar) Apply(ws io.WriteSeeker, op codec.Op, x uint64) error {
	return s.Set(ws, codec.Apply(s.c.Kind, op, s.val, x))
}

// Add adds x, wrapping at the field width, and writes the result back.
func (s *StreamScalar) Add(ws io.WriteSeeker, x uint64) error { return s.Apply(ws, codec.Add, x) }

// Sub subtracts x, wrapping at the field width, and writes the result back.
func (s *StreamScalar) Sub(ws io.WriteSeeker, x uint64) error { return s.Apply(ws, codec.Sub, x) }

// Mul multiplies by x, wrapping at the field width, and writes the result back.
func (s *StreamScalar) Mul(ws io.WriteSeeker, x uint64) error { return s.Apply(ws, codec.Mul, x) }

// Div divides by x and writes the result back. Panics when x is zero.
func (s *StreamScalar) Div(ws io.WriteSeeker, x uint64) error { return s.Apply(ws, codec.Div, x) }

// Reload re-reads the field from Offset(), replacing the cached value.
// Use it after something other than this view has written to the stream.
// The cache is untouched when the read fails.
func (s *StreamScalar) Reload(rs io.ReadSeeker) error {
	raw, err := rereadField(rs, s.offset, s.c.Width)
	if err != nil {
		return err
	}
	s.val = s.c.Decode(raw)
	return nil
}

// StreamArray is a fixed-length byte array read once from a stream.
// It has the same caching and write-back contract as StreamScalar.
type StreamArray struct {
	offset int64
	val    []byte
}

// NewStreamArray reads n bytes at the stream's current position into a
// freshly zeroed buffer. A stream that ends early is an error, never a
// partial result.
func NewStreamArray(rs io.ReadSeeker, n int) (*StreamArray, error) {
	if n < 0 {
		panic(fmt.Sprintf("view: negative array length %d", n))
	}
	raw, off, err := readField(rs, n)
	if err != nil {
		return nil, err
	}
	return &StreamArray{offset: off, val: codec.DecodeBytes(raw, n)}, nil
}

// Len returns the declared length.
func (a *StreamArray) Len() int { return len(a.val) }

// Offset returns the absolute stream offset the field is bound to.
func (a *StreamArray) Offset() int64 { return a.offset }

// Get returns a copy of the cached bytes.
func (a *StreamArray) Get() []byte {
	return codec.DecodeBytes(a.val, len(a.val))
}

// Text renders the cached bytes in the given encoding.
func (a *StreamArray) Text(enc codec.TextEncoding) (string, error) {
	return codec.DecodeText(a.val, enc)
}

// Set caches src and writes it at Offset(). src must be exactly Len()
// bytes; anything else panics.
func (a *StreamArray) Set(ws io.WriteSeeker, src []byte) error {
	codec.EncodeBytes(a.val, src)
	return writeField(ws, a.offset, a.val, a.Get())
}

// Add always fails: adding to a byte array has no defined meaning. The
// error is of kind types.ErrKindUnsupported and nothing is written.
func (a *StreamArray) Add(_ io.WriteSeeker, _ uint64) error {
	return &types.Error{
		Kind:   types.ErrKindUnsupported,
		Msg:    "add is not defined for byte arrays",
		Op:     "add",
		Offset: a.offset,
	}
}

// Reload re-reads the array from Offset(), replacing the cached bytes.
func (a *StreamArray) Reload(rs io.ReadSeeker) error {
	raw, err := rereadField(rs, a.offset, len(a.val))
	if err != nil {
		return err
	}
	copy(a.val, raw)
	return nil
}
