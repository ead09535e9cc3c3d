// Package testutil holds fixtures and fake streams shared by package tests.
package testutil

import (
	"errors"
	"fmt"
	"io"
)

// Cursor is an in-memory io.ReadWriteSeeker over a byte slice. Writes past
// the end grow the slice, like writing past the end of a file.
type Cursor struct {
	buf []byte
	pos int64
}

// NewCursor returns a Cursor positioned at 0 over a copy of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: append([]byte(nil), b...)}
}

// Bytes returns the current contents.
func (c *Cursor) Bytes() []byte { return c.buf }

// Pos returns the current position.
func (c *Cursor) Pos() int64 { return c.pos }

func (c *Cursor) Read(p []byte) (int, error) {
	if c.pos >= int64(len(c.buf)) {
		return 0, io.EOF
	}
	n := copy(p, c.buf[c.pos:])
	c.pos += int64(n)
	return n, nil
}

func (c *Cursor) Write(p []byte) (int, error) {
	end := c.pos + int64(len(p))
	if end > int64(len(c.buf)) {
		grown := make([]byte, end)
		copy(grown, c.buf)
		c.buf = grown
	}
	copy(c.buf[c.pos:end], p)
	c.pos = end
	return len(p), nil
}

func (c *Cursor) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = c.pos + offset
	case io.SeekEnd:
		abs = int64(len(c.buf)) + offset
	default:
		return 0, fmt.Errorf("cursor: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, errors.New("cursor: negative position")
	}
	c.pos = abs
	return abs, nil
}

// ErrInjected is the cause carried by every failure a FaultStream injects.
var ErrInjected = errors.New("injected fault")

// FaultStream wraps a Cursor and fails selected operations.
type FaultStream struct {
	*Cursor
	FailSeek   bool // every Seek fails
	FailWrite  bool // every Write fails
	ShortWrite bool // Write reports one byte fewer than requested, without error
	FailRead   bool // every Read fails
}

func (f *FaultStream) Read(p []byte) (int, error) {
	if f.FailRead {
		return 0, ErrInjected
	}
	return f.Cursor.Read(p)
}

func (f *FaultStream) Write(p []byte) (int, error) {
	if f.FailWrite {
		return 0, ErrInjected
	}
	if f.ShortWrite && len(p) > 0 {
		n, err := f.Cursor.Write(p[:len(p)-1])
		return n, err
	}
	return f.Cursor.Write(p)
}

func (f *FaultStream) Seek(offset int64, whence int) (int64, error) {
	if f.FailSeek {
		return 0, ErrInjected
	}
	return f.Cursor.Seek(offset, whence)
}
