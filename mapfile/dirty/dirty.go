package dirty

import (
	"context"
	"os"
	"sort"
)

// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
const defaultRangeCapacity = 64

// FlushMode controls durability guarantees for a flush.
type FlushMode int

const (
	// FlushAuto msyncs dirty pages, then fdatasyncs the file.
	FlushAuto FlushMode = iota

	// FlushDataOnly only msyncs dirty pages.
	// The caller is responsible for syncing the descriptor later.
	FlushDataOnly

	// FlushFull msyncs dirty pages and fdatasyncs the file. On macOS it
	// uses F_FULLFSYNC. Use this for power-loss sensitive workflows.
	FlushFull
)

// String implements fmt.Stringer.
func (m FlushMode) String() string {
	switch m {
	case FlushAuto:
		return "auto"
	case FlushDataOnly:
		return "data"
	case FlushFull:
		return "full"
	default:
		return "unknown"
	}
}

// Range is a dirty byte range at an absolute offset in the source.
type Range struct {
	Off int64
	Len int64
}

// End returns the offset just past the range.
func (r Range) End() int64 { return r.Off + r.Len }

// Tracker accumulates dirty ranges and flushes them.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	src      Source
	ranges   []Range // raw ranges, coalesced at flush time
	pageSize int64
}

// NewTracker creates a dirty tracker for src using the OS page size.
func NewTracker(src Source) *Tracker {
	return &Tracker{
		src:      src,
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: int64(os.Getpagesize()),
	}
}

// Add records a dirty range. It only appends; alignment and merging happen
// at flush time. Empty and negative ranges are ignored.
func (t *Tracker) Add(off, length int) {
	if length <= 0 || off < 0 {
		return
	}
	t.ranges = append(t.ranges, Range{
		Off: int64(off),
		Len: int64(length),
	})
}

// Len returns the number of raw ranges recorded since the last flush.
func (t *Tracker) Len() int { return len(t.ranges) }

// Ranges returns a copy of the raw, uncoalesced ranges.
func (t *Tracker) Ranges() []Range {
	result := make([]Range, len(t.ranges))
	copy(result, t.ranges)
	return result
}

// Coalesced returns the page-aligned, sorted, merged ranges the next flush
// would write.
func (t *Tracker) Coalesced() []Range {
	return t.coalesce()
}

// Reset forgets all tracked ranges without flushing them.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// FlushDataOnly msyncs every dirty page and clears the tracked ranges.
//
// The context is checked before starting and between ranges. If it is
// cancelled part way, some ranges may have been flushed and the tracker
// keeps all of them so a later flush retries.
func (t *Tracker) FlushDataOnly(ctx context.Context) error {
	if len(t.ranges) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data := t.src.Bytes()
	if len(data) == 0 {
		t.Reset()
		return nil
	}

	if err := t.flushRanges(ctx, data); err != nil {
		return err
	}

	t.Reset()
	return nil
}

// FlushAll flushes dirty pages and then syncs the descriptor as mode
// requires.
func (t *Tracker) FlushAll(ctx context.Context, mode FlushMode) error {
	if err := t.FlushDataOnly(ctx); err != nil {
		return err
	}
	if mode == FlushDataOnly {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fdatasync(t.src.FD(), mode == FlushFull)
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping or
// adjacent ranges. Ranges are clipped to the source length.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize

		end := r.End()
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}

		aligned[i] = Range{
			Off: start,
			Len: end - start,
		}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]

	for i := 1; i < len(aligned); i++ {
		next := aligned[i]

		if next.Off <= current.End() {
			current.Len = max(current.End(), next.End()) - current.Off
		} else {
			merged = append(merged, current)
			current = next
		}
	}

	merged = append(merged, current)

	return merged
}

// clip bounds r to a source of n bytes. ok is false when nothing is left.
func clip(r Range, n int) (start, end int, ok bool) {
	start, end = int(r.Off), int(r.End())
	if end > n {
		end = n
	}
	return start, end, start < end
}
