package mapfile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/fieldkit/internal/buf"
	"github.com/joshuapare/fieldkit/internal/mmfile"
	"github.com/joshuapare/fieldkit/layout"
	"github.com/joshuapare/fieldkit/mapfile/dirty"
	"github.com/joshuapare/fieldkit/pkg/types"
)

// ErrClosed is returned by operations on a closed File.
var ErrClosed = errors.New("mapfile: file is closed")

// File is an open file exposed as a byte buffer.
//
// NOT thread-safe, like the records bound over it.
type File struct {
	path    string
	f       *os.File
	data    []byte
	unmap   func() error
	mapped  bool
	tracker *dirty.Tracker
}

// Open opens path read-write and maps it. Empty files are rejected: there
// is nothing to bind a layout to.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.Size() == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("mapfile: empty file: %s", path)
	}

	m := &File{path: path, f: f}
	data, unmap, err := mmfile.Map(f)
	switch {
	case err == nil:
		m.data, m.unmap, m.mapped = data, unmap, true
	case errors.Is(err, mmfile.ErrNotMapped):
		data, readErr := readAll(f, st.Size())
		if readErr != nil {
			_ = f.Close()
			return nil, readErr
		}
		m.data = data
	default:
		_ = f.Close()
		return nil, err
	}
	m.tracker = dirty.NewTracker(m)
	return m, nil
}

func readAll(f *os.File, size int64) ([]byte, error) {
	data := make([]byte, size)
	if _, err := f.ReadAt(data, 0); err != nil {
		return nil, fmt.Errorf("mapfile: read %s: %w", f.Name(), err)
	}
	return data, nil
}

// Bytes returns the whole file contents. Writes to the slice are not
// tracked; use records from Bind or report them to Tracker().Add.
func (m *File) Bytes() []byte { return m.data }

// Size returns the file size in bytes.
func (m *File) Size() int { return len(m.data) }

// FD returns the underlying descriptor, or -1 once closed.
func (m *File) FD() int {
	if m == nil || m.f == nil {
		return -1
	}
	return int(m.f.Fd())
}

// Name returns the path the file was opened with.
func (m *File) Name() string { return m.path }

// Mapped reports whether the buffer is a memory mapping rather than a heap
// copy.
func (m *File) Mapped() bool { return m.mapped }

// Tracker returns the dirty tracker every bound record reports to.
func (m *File) Tracker() *dirty.Tracker { return m.tracker }

// Bind binds l at the start of the file and returns the bytes after it.
// It panics when the file is shorter than the layout, like Layout.Bind.
func (m *File) Bind(l *layout.Layout) (*layout.Record, []byte) {
	return l.BindTracked(m.data, 0, m.tracker)
}

// BindAt binds l at byte offset off. Unlike Bind it reports a file that is
// too short as an ErrKindShortRead error instead of panicking.
func (m *File) BindAt(l *layout.Layout, off int) (*layout.Record, error) {
	if m.data == nil {
		return nil, ErrClosed
	}
	if off < 0 || !buf.Has(m.data, off, l.Size()) {
		return nil, &types.Error{
			Kind:   types.ErrKindShortRead,
			Msg:    fmt.Sprintf("record of %d bytes does not fit in %d byte file", l.Size(), len(m.data)),
			Op:     "bind",
			Offset: int64(off),
		}
	}
	rec, _ := l.BindTracked(m.data[off:], off, m.tracker)
	return rec, nil
}

// Flush persists every tracked write. With a mapping it msyncs the dirty
// pages and syncs the descriptor as mode requires; with a heap copy it
// writes the dirty pages back and syncs unless mode is FlushDataOnly.
func (m *File) Flush(ctx context.Context, mode dirty.FlushMode) error {
	if m.data == nil {
		return ErrClosed
	}
	if m.mapped {
		return m.tracker.FlushAll(ctx, mode)
	}
	return m.writeBack(ctx, mode)
}

func (m *File) writeBack(ctx context.Context, mode dirty.FlushMode) error {
	if m.tracker.Len() == 0 {
		return nil
	}
	for _, r := range m.tracker.Coalesced() {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(r.End(), int64(len(m.data)))
		if r.Off >= end {
			continue
		}
		if _, err := m.f.WriteAt(m.data[r.Off:end], r.Off); err != nil {
			return fmt.Errorf("mapfile: write back %d bytes at 0x%x: %w", end-r.Off, r.Off, err)
		}
	}
	m.tracker.Reset()
	if mode == dirty.FlushDataOnly {
		return nil
	}
	return m.f.Sync()
}

// Close unmaps and closes the file. Writes are not flushed: a mapping
// leaves them to the kernel, a heap copy drops them.
func (m *File) Close() error {
	var err error
	if m.unmap != nil {
		err = m.unmap()
		m.unmap = nil
	}
	m.data = nil
	if m.f != nil {
		if closeErr := m.f.Close(); err == nil {
			err = closeErr
		}
		m.f = nil
	}
	return err
}
