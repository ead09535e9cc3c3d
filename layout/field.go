package layout

import (
	"fmt"

	"github.com/joshuapare/fieldkit/codec"
	"github.com/joshuapare/fieldkit/pkg/types"
)

// Field declares one named field of a layout.
type Field struct {
	Name string
	Kind codec.Kind
	// Len is the length of a byte array. For scalar kinds it must be zero
	// or equal to the kind's width.
	Len int
	// Text optionally renders a byte array as a string.
	Text codec.TextEncoding
}

// U8 declares a 1-byte unsigned field.
func U8(name string) Field { return Field{Name: name, Kind: codec.U8} }

// U16 declares a 2-byte little-endian unsigned field.
func U16(name string) Field { return Field{Name: name, Kind: codec.U16} }

// U32 declares a 4-byte little-endian unsigned field.
func U32(name string) Field { return Field{Name: name, Kind: codec.U32} }

// U64 declares an 8-byte little-endian unsigned field.
func U64(name string) Field { return Field{Name: name, Kind: codec.U64} }

// Array declares a fixed-length byte array field.
func Array(name string, n int) Field { return Field{Name: name, Kind: codec.Bytes, Len: n} }

// WithText returns a copy of f rendered as text in the given encoding.
func (f Field) WithText(enc codec.TextEncoding) Field {
	f.Text = enc
	return f
}

// Width returns the number of bytes the field consumes.
func (f Field) Width() int {
	if f.Kind.IsScalar() {
		return f.Kind.Width()
	}
	return f.Len
}

// String renders the field in the compact spec form accepted by ParseSpec.
func (f Field) String() string {
	switch {
	case f.Kind.IsScalar():
		return fmt.Sprintf("%s:%s", f.Name, f.Kind)
	case f.Text != codec.TextNone:
		return fmt.Sprintf("%s:%s:%d:%s", f.Name, f.Kind, f.Len, f.Text)
	default:
		return fmt.Sprintf("%s:%s:%d", f.Name, f.Kind, f.Len)
	}
}

func (f Field) validate() (Field, error) {
	if f.Name == "" {
		return f, layoutErr("field with empty name")
	}
	if len(f.Name) > types.MaxFieldNameLen {
		return f, layoutErr("field name %.16q... exceeds %d bytes", f.Name, types.MaxFieldNameLen)
	}
	switch {
	case f.Kind.IsScalar():
		if f.Len != 0 && f.Len != f.Kind.Width() {
			return f, layoutErr("field %q: %s is %d bytes, declared len %d", f.Name, f.Kind, f.Kind.Width(), f.Len)
		}
		if f.Text != codec.TextNone {
			return f, layoutErr("field %q: text encoding only applies to byte arrays", f.Name)
		}
		f.Len = f.Kind.Width()
	case f.Kind == codec.Bytes:
		if f.Len <= 0 || f.Len > types.MaxFieldLen {
			return f, layoutErr("field %q: byte array len %d out of range [1, %d]", f.Name, f.Len, types.MaxFieldLen)
		}
	default:
		return f, layoutErr("field %q: invalid kind %s", f.Name, f.Kind)
	}
	return f, nil
}

func layoutErr(format string, args ...any) error {
	return &types.Error{Kind: types.ErrKindLayout, Msg: "invalid layout: " + fmt.Sprintf(format, args...)}
}

func notFound(name string) error {
	return &types.Error{Kind: types.ErrKindNotFound, Msg: fmt.Sprintf("field %q not found", name)}
}

func kindMismatch(f Field, want string) error {
	return &types.Error{
		Kind: types.ErrKindUnsupported,
		Msg:  fmt.Sprintf("field %q is %s, not %s", f.Name, f.Kind, want),
	}
}
