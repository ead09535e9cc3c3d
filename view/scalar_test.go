package view

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fieldkit/codec"
)

type recordingTracker struct {
	writes [][2]int
}

func (r *recordingTracker) Add(off, length int) {
	r.writes = append(r.writes, [2]int{off, length})
}

func TestScalar_RoundTripAllWidths(t *testing.T) {
	values := []uint64{0, 1, 0x80, 0xFF, 0xABCD, 0xFFFF, 0x12345678, 0xFFFFFFFF, 0x0102030405060708, ^uint64(0)}

	for _, k := range []codec.Kind{codec.U8, codec.U16, codec.U32, codec.U64} {
		t.Run(k.String(), func(t *testing.T) {
			b := make([]byte, k.Width()+3)
			s, rest := NewScalar(k, b)
			require.Len(t, rest, 3)

			for _, v := range values {
				v = k.Truncate(v)
				s.Set(v)
				require.Equal(t, v, s.Get())
				for i := 0; i < k.Width(); i++ {
					require.Equalf(t, byte(v>>(8*i)), b[i], "byte %d of %#x", i, v)
				}
			}
			require.Equal(t, []byte{0, 0, 0}, rest, "writes must stay inside the bound range")
		})
	}
}

func TestScalar_SetTruncatesToWidth(t *testing.T) {
	b := []byte{0, 0xEE}
	s, _ := NewScalar(codec.U8, b)
	s.Set(0x1234)
	require.Equal(t, uint64(0x34), s.Get())
	require.Equal(t, byte(0xEE), b[1])
}

func TestScalar_AddDoesNotCarryIntoNeighbour(t *testing.T) {
	b := []byte{0x11, 0x02, 0x03}
	s, rest := NewScalar(codec.U8, b)
	s.Add(0x10)
	require.Equal(t, uint64(0x21), s.Get())
	require.Equal(t, []byte{0x02, 0x03}, rest)

	s.Set(0xFF)
	s.Add(1)
	require.Equal(t, uint64(0), s.Get(), "u8 add wraps")
	require.Equal(t, []byte{0x00, 0x02, 0x03}, b)
}

func TestScalar_CompoundOpsMatchNativeArithmetic(t *testing.T) {
	b := make([]byte, 2)
	s, _ := NewScalar(codec.U16, b)

	cases := []struct {
		start, x uint16
	}{
		{0x0302, 0x10},
		{0xFFFF, 2},
		{0, 1},
		{0x8000, 3},
		{1000, 7},
	}
	for _, c := range cases {
		s.Set(uint64(c.start))
		s.Add(uint64(c.x))
		require.Equal(t, uint64(c.start+c.x), s.Get())

		s.Set(uint64(c.start))
		s.Sub(uint64(c.x))
		require.Equal(t, uint64(c.start-c.x), s.Get())

		s.Set(uint64(c.start))
		s.Mul(uint64(c.x))
		require.Equal(t, uint64(c.start*c.x), s.Get())

		s.Set(uint64(c.start))
		s.Div(uint64(c.x))
		require.Equal(t, uint64(c.start/c.x), s.Get())
	}
}

func TestScalar_DivByZeroPanics(t *testing.T) {
	s, _ := NewScalar(codec.U32, make([]byte, 4))
	s.Set(10)
	require.Panics(t, func() { s.Div(0) })
	require.Equal(t, uint64(10), s.Get())
}

func TestScalar_ShortBufferPanics(t *testing.T) {
	require.PanicsWithValue(t, "view: u32 field needs 4 bytes, buffer has 3", func() {
		NewScalar(codec.U32, make([]byte, 3))
	})
	require.Panics(t, func() { NewScalar(codec.Bytes, make([]byte, 8)) })
}

func TestScalar_TrackReportsWrites(t *testing.T) {
	rec := &recordingTracker{}
	s, _ := NewScalar(codec.U64, make([]byte, 8))
	s.Track(rec, 0x1007)

	s.Set(5)
	s.Add(1)
	require.Equal(t, [][2]int{{0x1007, 8}, {0x1007, 8}}, rec.writes)

	s.Track(nil, 0)
	s.Set(9)
	require.Len(t, rec.writes, 2)
}
