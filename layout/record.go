package layout

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/fieldkit/codec"
	"github.com/joshuapare/fieldkit/pkg/types"
	"github.com/joshuapare/fieldkit/view"
)

// Value is a decoded snapshot of one field, used for display and export.
type Value struct {
	Field  Field
	Offset int64  // absolute offset of the field in its source
	Uint   uint64 // scalar kinds
	Bytes  []byte // byte arrays (a copy)
}

// String renders scalars as fixed-width hex and byte arrays as text when
// the field declares an encoding, otherwise as spaced hex.
func (v Value) String() string {
	if v.Field.Kind.IsScalar() {
		return fmt.Sprintf("0x%0*x", 2*v.Field.Kind.Width(), v.Uint)
	}
	if v.Field.Text != codec.TextNone {
		if s, err := codec.DecodeText(v.Bytes, v.Field.Text); err == nil {
			return fmt.Sprintf("%q", s)
		}
	}
	return fmt.Sprintf("% x", v.Bytes)
}

// Record is a layout bound to a buffer. Its fields are *view.Scalar and
// *view.Array values over disjoint ranges of that buffer.
type Record struct {
	layout *Layout
	base   int
	views  []any
}

// Layout returns the layout the record was bound with.
func (r *Record) Layout() *Layout { return r.layout }

func (r *Record) lookup(name string) (int, error) {
	i, ok := r.layout.index[name]
	if !ok {
		return 0, notFound(name)
	}
	return i, nil
}

// Scalar returns the view for a scalar field.
func (r *Record) Scalar(name string) (*view.Scalar, error) {
	i, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	s, ok := r.views[i].(*view.Scalar)
	if !ok {
		return nil, kindMismatch(r.layout.fields[i], "a scalar")
	}
	return s, nil
}

// Array returns the view for a byte array field.
func (r *Record) Array(name string) (*view.Array, error) {
	i, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	a, ok := r.views[i].(*view.Array)
	if !ok {
		return nil, kindMismatch(r.layout.fields[i], "a byte array")
	}
	return a, nil
}

// Uint decodes a scalar field.
func (r *Record) Uint(name string) (uint64, error) {
	s, err := r.Scalar(name)
	if err != nil {
		return 0, err
	}
	return s.Get(), nil
}

// SetUint encodes v into a scalar field.
func (r *Record) SetUint(name string, v uint64) error {
	s, err := r.Scalar(name)
	if err != nil {
		return err
	}
	s.Set(v)
	return nil
}

// Apply performs a compound update on a scalar field. Byte arrays do not
// support arithmetic and yield an ErrKindUnsupported error.
func (r *Record) Apply(name string, op codec.Op, x uint64) error {
	s, err := r.Scalar(name)
	if err != nil {
		return err
	}
	s.Apply(op, x)
	return nil
}

// Bytes returns a copy of a byte array field.
func (r *Record) Bytes(name string) ([]byte, error) {
	a, err := r.Array(name)
	if err != nil {
		return nil, err
	}
	return a.Snapshot(), nil
}

// SetBytes copies b into a byte array field. b must match the field length.
func (r *Record) SetBytes(name string, b []byte) error {
	a, err := r.Array(name)
	if err != nil {
		return err
	}
	if len(b) != a.Len() {
		return lengthMismatch(name, a.Len(), len(b))
	}
	a.Set(b)
	return nil
}

// SetText encodes s with the field's text encoding, NUL-padded to the
// field length.
func (r *Record) SetText(name, s string) error {
	i, err := r.lookup(name)
	if err != nil {
		return err
	}
	f := r.layout.fields[i]
	b, err := codec.EncodeText(s, f.Text, f.Len)
	if err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	return r.SetBytes(name, b)
}

// Values snapshots every field in declaration order.
func (r *Record) Values() []Value {
	out := make([]Value, len(r.views))
	for i, v := range r.views {
		val := Value{Field: r.layout.fields[i], Offset: int64(r.base + r.layout.offsets[i])}
		switch v := v.(type) {
		case *view.Scalar:
			val.Uint = v.Get()
		case *view.Array:
			val.Bytes = v.Snapshot()
		}
		out[i] = val
	}
	return out
}

// StreamRecord is a layout loaded from a stream. Its fields are
// *view.StreamScalar and *view.StreamArray values whose offsets were fixed
// when the record was loaded.
type StreamRecord struct {
	layout *Layout
	views  []any
}

// Layout returns the layout the record was loaded with.
func (r *StreamRecord) Layout() *Layout { return r.layout }

func (r *StreamRecord) lookup(name string) (int, error) {
	i, ok := r.layout.index[name]
	if !ok {
		return 0, notFound(name)
	}
	return i, nil
}

// Offset returns the absolute stream offset the record starts at.
func (r *StreamRecord) Offset() int64 {
	switch v := r.views[0].(type) {
	case *view.StreamScalar:
		return v.Offset()
	case *view.StreamArray:
		return v.Offset()
	}
	return 0
}

// Scalar returns the view for a scalar field.
func (r *StreamRecord) Scalar(name string) (*view.StreamScalar, error) {
	i, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	s, ok := r.views[i].(*view.StreamScalar)
	if !ok {
		return nil, kindMismatch(r.layout.fields[i], "a scalar")
	}
	return s, nil
}

// Array returns the view for a byte array field.
func (r *StreamRecord) Array(name string) (*view.StreamArray, error) {
	i, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	a, ok := r.views[i].(*view.StreamArray)
	if !ok {
		return nil, kindMismatch(r.layout.fields[i], "a byte array")
	}
	return a, nil
}

// Uint returns the cached value of a scalar field.
func (r *StreamRecord) Uint(name string) (uint64, error) {
	s, err := r.Scalar(name)
	if err != nil {
		return 0, err
	}
	return s.Get(), nil
}

// Bytes returns a copy of the cached value of a byte array field.
func (r *StreamRecord) Bytes(name string) ([]byte, error) {
	a, err := r.Array(name)
	if err != nil {
		return nil, err
	}
	return a.Get(), nil
}

// SetUint writes v to a scalar field at its fixed offset.
func (r *StreamRecord) SetUint(ws io.WriteSeeker, name string, v uint64) error {
	s, err := r.Scalar(name)
	if err != nil {
		return err
	}
	if err := s.Set(ws, v); err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	return nil
}

// SetBytes writes b to a byte array field at its fixed offset.
func (r *StreamRecord) SetBytes(ws io.WriteSeeker, name string, b []byte) error {
	a, err := r.Array(name)
	if err != nil {
		return err
	}
	if len(b) != a.Len() {
		return lengthMismatch(name, a.Len(), len(b))
	}
	if err := a.Set(ws, b); err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	return nil
}

// SetText encodes s with the field's text encoding and writes it.
func (r *StreamRecord) SetText(ws io.WriteSeeker, name, s string) error {
	i, err := r.lookup(name)
	if err != nil {
		return err
	}
	f := r.layout.fields[i]
	b, err := codec.EncodeText(s, f.Text, f.Len)
	if err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	return r.SetBytes(ws, name, b)
}

// Apply performs a compound update on a scalar field and writes it back.
func (r *StreamRecord) Apply(ws io.WriteSeeker, name string, op codec.Op, x uint64) error {
	i, err := r.lookup(name)
	if err != nil {
		return err
	}
	switch v := r.views[i].(type) {
	case *view.StreamScalar:
		err = v.Apply(ws, op, x)
	case *view.StreamArray:
		if op != codec.Add {
			return kindMismatch(r.layout.fields[i], "a scalar")
		}
		err = v.Add(ws, x)
	}
	if err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	return nil
}

// Add is Apply with codec.Add. On a byte array it fails with an
// ErrKindUnsupported error.
func (r *StreamRecord) Add(ws io.WriteSeeker, name string, x uint64) error {
	return r.Apply(ws, name, codec.Add, x)
}

// Reload re-reads every field from its fixed offset. The first failure
// aborts; fields before it have already been refreshed.
func (r *StreamRecord) Reload(rs io.ReadSeeker) error {
	for i, v := range r.views {
		var err error
		switch v := v.(type) {
		case *view.StreamScalar:
			err = v.Reload(rs)
		case *view.StreamArray:
			err = v.Reload(rs)
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", r.layout.fields[i].Name, err)
		}
	}
	return nil
}

// Values snapshots every cached field in declaration order.
func (r *StreamRecord) Values() []Value {
	out := make([]Value, len(r.views))
	for i, v := range r.views {
		val := Value{Field: r.layout.fields[i]}
		switch v := v.(type) {
		case *view.StreamScalar:
			val.Offset = v.Offset()
			val.Uint = v.Get()
		case *view.StreamArray:
			val.Offset = v.Offset()
			val.Bytes = v.Get()
		}
		out[i] = val
	}
	return out
}

func lengthMismatch(name string, want, got int) error {
	return &types.Error{
		Kind: types.ErrKindLayout,
		Msg:  fmt.Sprintf("field %q holds %d bytes, value has %d", name, want, got),
	}
}

// ParseValue parses a command-line style value for f. Scalars accept Go
// integer literals (0x.., 0b.., 0o.., decimal). Byte arrays accept hex
// ("10111213", "10 11 12 13") or, when the field has a text encoding,
// plain text.
func ParseValue(f Field, s string) (uint64, []byte, error) {
	if f.Kind.IsScalar() {
		v, err := parseUint(s, f.Kind)
		return v, nil, err
	}
	if f.Text != codec.TextNone {
		b, err := codec.EncodeText(s, f.Text, f.Len)
		return 0, b, err
	}
	b, err := parseHex(s)
	if err != nil {
		return 0, nil, err
	}
	if len(b) != f.Len {
		return 0, nil, lengthMismatch(f.Name, f.Len, len(b))
	}
	return 0, b, nil
}

func parseUint(s string, k codec.Kind) (uint64, error) {
	v, err := strconv.ParseUint(strings.ReplaceAll(strings.TrimSpace(s), "_", ""), 0, 8*k.Width())
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", k, s, err)
	}
	return v, nil
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.NewReplacer(" ", "", ":", "", "-", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	return b, nil
}
