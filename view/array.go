package view

import (
	"fmt"

	"github.com/joshuapare/fieldkit/codec"
	"github.com/joshuapare/fieldkit/internal/buf"
)

// arrayCell is the state every clone of an Array shares: the bound bytes
// and the outstanding borrows against them.
type arrayCell struct {
	b      []byte
	shared int  // outstanding Borrow calls
	excl   bool // a BorrowMut is outstanding
	off    int
	t      Tracker
}

// Array is a fixed-length byte range that several holders may share.
//
// Access goes through borrows: any number of shared borrows, or exactly
// one exclusive borrow, may be outstanding at a time. A conflicting borrow
// panics instead of letting two holders interleave writes.
type Array struct {
	cell *arrayCell
}

// NewArray binds the first n bytes of b and returns the rest. It panics
// when b is shorter than n.
func NewArray(b []byte, n int) (*Array, []byte) {
	if n < 0 {
		panic(fmt.Sprintf("view: negative array length %d", n))
	}
	if len(b) < n {
		panic(fmt.Sprintf("view: %d-byte array field needs %d bytes, buffer has %d", n, n, len(b)))
	}
	head, rest := buf.Split(b, n)
	return &Array{cell: &arrayCell{b: head}}, rest
}

// Track reports every exclusive write to t as a write of Len() bytes at
// absolute offset off. Tracking is shared by all clones.
func (a *Array) Track(t Tracker, off int) *Array {
	a.cell.t, a.cell.off = t, off
	return a
}

// Len returns the declared length.
func (a *Array) Len() int { return len(a.cell.b) }

// Clone returns a second handle to the same bytes. Writes through either
// handle are visible through both, and borrows are checked across both.
func (a *Array) Clone() *Array {
	return &Array{cell: a.cell}
}

// Borrow returns the bound bytes for reading, and a func that ends the
// borrow. The slice must not be written to or used after release.
func (a *Array) Borrow() ([]byte, func()) {
	c := a.cell
	if c.excl {
		panic("view: array already mutably borrowed")
	}
	c.shared++
	released := false
	return c.b, func() {
		if released {
			return
		}
		released = true
		c.shared--
	}
}

// BorrowMut returns the bound bytes for writing, and a func that ends the
// borrow. It panics if any other borrow is outstanding.
func (a *Array) BorrowMut() ([]byte, func()) {
	c := a.cell
	if c.excl {
		panic("view: array already mutably borrowed")
	}
	if c.shared > 0 {
		panic(fmt.Sprintf("view: array already borrowed (%d shared)", c.shared))
	}
	c.excl = true
	released := false
	return c.b, func() {
		if released {
			return
		}
		released = true
		c.excl = false
		if c.t != nil {
			c.t.Add(c.off, len(c.b))
		}
	}
}

// Set copies src into the bound bytes under an exclusive borrow. src must
// be exactly Len() bytes; a mismatch panics before the borrow is taken, so
// the array stays usable after a recovered panic and no write is reported.
func (a *Array) Set(src []byte) {
	if len(src) != len(a.cell.b) {
		panic(fmt.Sprintf("view: array field is %d bytes, value is %d", len(a.cell.b), len(src)))
	}
	dst, release := a.BorrowMut()
	defer release()
	codec.EncodeBytes(dst, src)
}

// Snapshot returns a copy of the bound bytes taken under a shared borrow.
func (a *Array) Snapshot() []byte {
	b, release := a.Borrow()
	defer release()
	return codec.DecodeBytes(b, len(b))
}

// Text renders the bound bytes as a string in the given encoding.
func (a *Array) Text(enc codec.TextEncoding) (string, error) {
	b, release := a.Borrow()
	defer release()
	return codec.DecodeText(b, enc)
}
