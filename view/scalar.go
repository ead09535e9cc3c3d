package view

import (
	"fmt"

	"github.com/joshuapare/fieldkit/codec"
	"github.com/joshuapare/fieldkit/internal/buf"
)

// Scalar is a fixed-width unsigned integer bound to a byte range of a
// buffer. It caches nothing: Get and Set go straight to the bytes.
type Scalar struct {
	c   codec.Codec
	b   []byte
	off int
	t   Tracker
}

// NewScalar binds the first Width() bytes of b to a view of the given kind
// and returns the rest of b for the next field. It panics when kind is not
// a scalar kind or b is too short.
func NewScalar(kind codec.Kind, b []byte) (*Scalar, []byte) {
	c, ok := codec.Lookup(kind)
	if !ok {
		panic(fmt.Sprintf("view: %s is not a scalar kind", kind))
	}
	if len(b) < c.Width {
		panic(fmt.Sprintf("view: %s field needs %d bytes, buffer has %d", kind, c.Width, len(b)))
	}
	head, rest := buf.Split(b, c.Width)
	return &Scalar{c: c, b: head}, rest
}

// Track reports every subsequent Set to t as a write of Width() bytes at
// absolute offset off. Passing a nil Tracker stops reporting.
func (s *Scalar) Track(t Tracker, off int) *Scalar {
	s.t, s.off = t, off
	return s
}

// Kind returns the field kind.
func (s *Scalar) Kind() codec.Kind { return s.c.Kind }

// Width returns the field width in bytes.
func (s *Scalar) Width() int { return s.c.Width }

// Bytes returns the bound range. Writing to it bypasses tracking.
func (s *Scalar) Bytes() []byte { return s.b }

// Get decodes the bound bytes.
func (s *Scalar) Get() uint64 {
	return s.c.Decode(s.b)
}

// Set encodes v into the bound bytes. Bits above the field width are
// discarded, as with a Go conversion to the fixed-width type.
func (s *Scalar) Set(v uint64) {
	s.c.Encode(s.b, v)
	if s.t != nil {
		s.t.Add(s.off, s.c.Width)
	}
}

// Apply is Set(Get() <op> x) in the field's width. Results wrap on
// overflow; division by zero panics. See codec.Apply.
func (s *Scalar) Apply(op codec.Op, x uint64) {
	s.Set(codec.Apply(s.c.Kind, op, s.Get(), x))
}

// Add adds x, wrapping at the field width.
func (s *Scalar) Add(x uint64) { s.Apply(codec.Add, x) }

// Sub subtracts x, wrapping at the field width.
func (s *Scalar) Sub(x uint64) { s.Apply(codec.Sub, x) }

// Mul multiplies by x, wrapping at the field width.
func (s *Scalar) Mul(x uint64) { s.Apply(codec.Mul, x) }

// Div divides by x. Panics when x is zero in the field width.
func (s *Scalar) Div(x uint64) { s.Apply(codec.Div, x) }
