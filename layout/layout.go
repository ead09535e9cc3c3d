package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/fieldkit/codec"
	"github.com/joshuapare/fieldkit/internal/buf"
	"github.com/joshuapare/fieldkit/pkg/types"
	"github.com/joshuapare/fieldkit/view"
)

// Layout is a validated, ordered list of fields with precomputed offsets.
// It is immutable and may be shared.
type Layout struct {
	name    string
	fields  []Field
	offsets []int
	index   map[string]int
	size    int
}

// New validates fields and builds a Layout. Names must be unique and
// non-empty; widths must be consistent with kinds.
func New(fields ...Field) (*Layout, error) {
	if len(fields) == 0 {
		return nil, layoutErr("no fields declared")
	}
	if len(fields) > types.MaxFields {
		return nil, layoutErr("%d fields declared, limit is %d", len(fields), types.MaxFields)
	}
	l := &Layout{
		fields:  make([]Field, len(fields)),
		offsets: make([]int, len(fields)),
		index:   make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		f, err := f.validate()
		if err != nil {
			return nil, err
		}
		if _, dup := l.index[f.Name]; dup {
			return nil, layoutErr("duplicate field name %q", f.Name)
		}
		end, ok := buf.AddOverflowSafe(l.size, f.Width())
		if !ok {
			return nil, layoutErr("field %q: layout size overflows", f.Name)
		}
		l.fields[i] = f
		l.offsets[i] = l.size
		l.index[f.Name] = i
		l.size = end
	}
	return l, nil
}

// MustNew is New for layouts declared in code. It panics on an invalid
// declaration.
func MustNew(fields ...Field) *Layout {
	l, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the layout's name, if it was declared with one.
func (l *Layout) Name() string { return l.name }

// Size returns the total number of bytes the layout consumes.
func (l *Layout) Size() int { return l.size }

// Len returns the number of fields.
func (l *Layout) Len() int { return len(l.fields) }

// Fields returns a copy of the declared fields in order.
func (l *Layout) Fields() []Field {
	return append([]Field(nil), l.fields...)
}

// Field returns the named field.
func (l *Layout) Field(name string) (Field, bool) {
	i, ok := l.index[name]
	if !ok {
		return Field{}, false
	}
	return l.fields[i], true
}

// Offset returns the byte offset of the named field relative to the start
// of the record.
func (l *Layout) Offset(name string) (int, bool) {
	i, ok := l.index[name]
	if !ok {
		return 0, false
	}
	return l.offsets[i], true
}

// String renders the layout in the compact form accepted by ParseSpec.
func (l *Layout) String() string {
	parts := make([]string, len(l.fields))
	for i, f := range l.fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}

// Bind builds a buffer-backed record over the first Size() bytes of b and
// returns the remaining bytes. Each field takes the next Width() bytes in
// declaration order. It panics when b is shorter than Size().
func (l *Layout) Bind(b []byte) (*Record, []byte) {
	return l.bind(b, 0, nil)
}

// BindTracked is Bind, with every field reporting its writes to t at
// absolute offset base + field offset. base is where b starts in the
// tracked source.
func (l *Layout) BindTracked(b []byte, base int, t view.Tracker) (*Record, []byte) {
	return l.bind(b, base, t)
}

func (l *Layout) bind(b []byte, base int, t view.Tracker) (*Record, []byte) {
	if len(b) < l.size {
		panic(fmt.Sprintf("layout: record needs %d bytes, buffer has %d", l.size, len(b)))
	}
	r := &Record{layout: l, base: base, views: make([]any, len(l.fields))}
	rest := b
	for i, f := range l.fields {
		switch f.Kind {
		case codec.Bytes:
			var a *view.Array
			a, rest = view.NewArray(rest, f.Len)
			if t != nil {
				a.Track(t, base+l.offsets[i])
			}
			r.views[i] = a
		default:
			var s *view.Scalar
			s, rest = view.NewScalar(f.Kind, rest)
			if t != nil {
				s.Track(t, base+l.offsets[i])
			}
			r.views[i] = s
		}
	}
	return r, rest
}

// Load builds a stream-backed record starting at the stream's current
// position, reading each field in declaration order. On success the stream
// is positioned just past the record. The first failing field aborts the
// load; no partial record is returned.
func (l *Layout) Load(rs io.ReadSeeker) (*StreamRecord, error) {
	r := &StreamRecord{layout: l, views: make([]any, len(l.fields))}
	for i, f := range l.fields {
		var (
			v   any
			err error
		)
		switch f.Kind {
		case codec.Bytes:
			v, err = view.NewStreamArray(rs, f.Len)
		default:
			v, err = view.NewStreamScalar(f.Kind, rs)
		}
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		r.views[i] = v
	}
	return r, nil
}

// LoadAt seeks to off and calls Load.
func (l *Layout) LoadAt(rs io.ReadSeeker, off int64) (*StreamRecord, error) {
	if _, err := rs.Seek(off, io.SeekStart); err != nil {
		return nil, types.StreamError("seek", off, nil, err)
	}
	return l.Load(rs)
}
