package dirty

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fieldkit/internal/mmfile"
)

type heapSource struct {
	data []byte
	fd   int
}

func (s *heapSource) Bytes() []byte { return s.data }
func (s *heapSource) FD() int       { return s.fd }

// newTestTracker returns a tracker over a heap buffer with 4KB pages, so
// alignment expectations do not depend on the host page size.
func newTestTracker(size int) *Tracker {
	t := NewTracker(&heapSource{data: make([]byte, size), fd: -1})
	t.pageSize = 4096
	return t
}

// setupMappedSource maps a temp file of size bytes read-write.
func setupMappedSource(t testing.TB, size int) *heapSource {
	t.Helper()
	if !mmfile.Supported() {
		t.Skip("memory mapping not supported on this platform")
	}

	path := filepath.Join(t.TempDir(), "test.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	data, unmap, err := mmfile.Map(f)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = unmap()
		_ = f.Close()
	})
	return &heapSource{data: data, fd: int(f.Fd())}
}

func Test_DirtyTracker_PageAlignment(t *testing.T) {
	tracker := newTestTracker(8192)

	// 100+200=300 rounds out to [0, 4096)
	tracker.Add(100, 200)

	coalesced := tracker.Coalesced()
	require.Equal(t, []Range{{Off: 0, Len: 4096}}, coalesced)
}

func Test_DirtyTracker_Coalesce(t *testing.T) {
	tests := []struct {
		name string
		adds []Range
		want []Range
	}{
		{
			name: "adjacent",
			adds: []Range{{4096, 4096}, {8192, 4096}},
			want: []Range{{4096, 8192}},
		},
		{
			name: "overlapping",
			adds: []Range{{0, 8192}, {4096, 8192}},
			want: []Range{{0, 12288}},
		},
		{
			name: "separate",
			adds: []Range{{20480, 4096}, {0, 4096}},
			want: []Range{{0, 4096}, {20480, 4096}},
		},
		{
			name: "same page",
			adds: []Range{{0x41, 2}, {0x47, 8}, {0x10, 1}},
			want: []Range{{0, 4096}},
		},
		{
			name: "straddles page boundary",
			adds: []Range{{4094, 4}},
			want: []Range{{0, 8192}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := newTestTracker(32768)
			for _, r := range tt.adds {
				tracker.Add(int(r.Off), int(r.Len))
			}
			require.Equal(t, tt.want, tracker.Coalesced())
			require.Len(t, tracker.Ranges(), len(tt.adds), "raw ranges are kept until flush")
		})
	}
}

func Test_DirtyTracker_IgnoresEmptyRanges(t *testing.T) {
	tracker := newTestTracker(4096)
	tracker.Add(10, 0)
	tracker.Add(-1, 4)
	require.Zero(t, tracker.Len())
	require.Nil(t, tracker.Coalesced())
}

func Test_DirtyTracker_Coalesce_ManyRanges(t *testing.T) {
	tracker := newTestTracker(100 * 8192)

	// every other page
	for i := range 100 {
		tracker.Add(i*8192, 4096)
	}

	coalesced := tracker.Coalesced()
	require.Len(t, coalesced, 100)
	for i := 1; i < len(coalesced); i++ {
		require.Greater(t, coalesced[i].Off, coalesced[i-1].End())
	}
}

func Test_DirtyTracker_Reset(t *testing.T) {
	tracker := newTestTracker(16384)
	tracker.Add(0, 100)
	tracker.Add(4096, 200)
	tracker.Add(8192, 300)
	require.Equal(t, 3, tracker.Len())

	tracker.Reset()
	require.Zero(t, tracker.Len())
}

func Test_DirtyTracker_RangesIsCopy(t *testing.T) {
	tracker := newTestTracker(4096)
	tracker.Add(1, 2)
	r := tracker.Ranges()
	r[0].Off = 99
	require.Equal(t, int64(1), tracker.Ranges()[0].Off)
}

func Test_Clip(t *testing.T) {
	start, end, ok := clip(Range{Off: 0, Len: 4096}, 19)
	require.True(t, ok)
	require.Equal(t, 0, start)
	require.Equal(t, 19, end)

	_, _, ok = clip(Range{Off: 4096, Len: 4096}, 19)
	require.False(t, ok)
}

func Test_DirtyTracker_FlushDataOnly_Empty(t *testing.T) {
	tracker := newTestTracker(4096)
	require.NoError(t, tracker.FlushDataOnly(context.Background()))
}

func Test_DirtyTracker_FlushDataOnly_ClearsRanges(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	src := setupMappedSource(t, 3*4096+19)
	tracker := NewTracker(src)

	src.data[0x41] = 0xAA
	tracker.Add(0x41, 1)
	src.data[len(src.data)-1] = 0xBB
	tracker.Add(len(src.data)-1, 1)

	require.NoError(t, tracker.FlushDataOnly(context.Background()))
	require.Zero(t, tracker.Len())
}

func Test_DirtyTracker_FlushModes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	for _, mode := range []FlushMode{FlushAuto, FlushDataOnly, FlushFull} {
		t.Run(mode.String(), func(t *testing.T) {
			src := setupMappedSource(t, 8192)
			tracker := NewTracker(src)
			src.data[4096] = 1
			tracker.Add(4096, 1)
			require.NoError(t, tracker.FlushAll(context.Background(), mode))
			require.Zero(t, tracker.Len())
		})
	}
}

func Test_FlushMode_String(t *testing.T) {
	require.Equal(t, "auto", FlushAuto.String())
	require.Equal(t, "data", FlushDataOnly.String())
	require.Equal(t, "full", FlushFull.String())
	require.Equal(t, "unknown", FlushMode(9).String())
}

func Benchmark_DirtyTracker_Add(b *testing.B) {
	tracker := newTestTracker(4096)

	b.ReportAllocs()
	for i := range b.N {
		tracker.Add(4096*i, 4096)
	}
}

func Benchmark_DirtyTracker_Coalesce_100Ranges(b *testing.B) {
	tracker := newTestTracker(100 * 4096)
	for i := range 100 {
		tracker.Add(i*4096, 4096)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for range b.N {
		_ = tracker.Coalesced()
	}
}
