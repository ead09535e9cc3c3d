package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindWidthAndString(t *testing.T) {
	tests := []struct {
		kind  Kind
		width int
		name  string
	}{
		{U8, 1, "u8"},
		{U16, 2, "u16"},
		{U32, 4, "u32"},
		{U64, 8, "u64"},
		{Bytes, 0, "bytes"},
		{Invalid, 0, "Kind(0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.width, tt.kind.Width())
			require.Equal(t, tt.name, tt.kind.String())
			require.Equal(t, tt.width > 0, tt.kind.IsScalar())
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{U8, U16, U32, U64, Bytes} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}

	got, err := ParseKind(" UINT32 ")
	require.NoError(t, err)
	require.Equal(t, U32, got)

	_, err = ParseKind("i32")
	require.Error(t, err)
}

func TestCodecRoundTripAllWidths(t *testing.T) {
	values := []uint64{0, 1, 0x7F, 0x80, 0xFF, 0x1234, 0xFFFF, 0xDEADBEEF, 0xFFFF_FFFF, 0x0102030405060708, ^uint64(0)}

	for _, k := range []Kind{U8, U16, U32, U64} {
		c := MustLookup(k)
		require.Equal(t, k.Width(), c.Width)
		for _, v := range values {
			v = k.Truncate(v)
			b := make([]byte, c.Width)
			c.Encode(b, v)
			require.Equalf(t, v, c.Decode(b), "%s round trip of %#x", k, v)

			// little-endian law: byte i holds bits [8i, 8i+8)
			for i := 0; i < c.Width; i++ {
				require.Equalf(t, byte(v>>(8*i)), b[i], "%s byte %d of %#x", k, i, v)
			}
		}
	}
}

func TestLookupRejectsNonScalar(t *testing.T) {
	_, ok := Lookup(Bytes)
	require.False(t, ok)
	_, ok = Lookup(Invalid)
	require.False(t, ok)
	require.Panics(t, func() { MustLookup(Bytes) })
}

func TestDecodeEncodeBytes(t *testing.T) {
	src := []byte{0x10, 0x11, 0x12, 0x13}
	out := DecodeBytes(src, 4)
	require.Equal(t, src, out)

	out[0] = 0xAA
	require.Equal(t, byte(0x10), src[0], "DecodeBytes must copy")

	dst := make([]byte, 4)
	EncodeBytes(dst, []byte{4, 3, 2, 1})
	require.Equal(t, []byte{4, 3, 2, 1}, dst)

	require.Panics(t, func() { EncodeBytes(dst, []byte{1, 2}) })
}

func TestApplyMatchesNativeArithmetic(t *testing.T) {
	require.Equal(t, uint64(0x21), Apply(U8, Add, 0x11, 0x10))
	require.Equal(t, uint64(0x00), Apply(U8, Add, 0xFF, 0x01), "u8 add wraps")
	require.Equal(t, uint64(0xFFFF), Apply(U16, Sub, 0, 1), "u16 sub wraps")
	require.Equal(t, uint64(0), Apply(U32, Mul, 0x80000000, 4), "u32 mul wraps")
	require.Equal(t, uint64(0x0F0E0D0C0B0A0918), Apply(U64, Add, 0x0F0E0D0C0B0A0908, 0x10))
	require.Equal(t, uint64(7), Apply(U32, Div, 15, 2))

	// operand is converted to the field width first
	require.Equal(t, uint64(0x21), Apply(U8, Add, 0x11, 0x110))
	require.Equal(t, uint64(0x40/0x02), Apply(U8, Div, 0x40, 0x102))
}

func TestApplyDivideByZeroPanics(t *testing.T) {
	require.Panics(t, func() { Apply(U16, Div, 10, 0) })
	require.Panics(t, func() { Apply(U8, Div, 10, 0x100) }, "operand truncates to zero")
}

func TestOpString(t *testing.T) {
	require.Equal(t, "add", Add.String())
	require.Equal(t, "div", Div.String())
	require.Equal(t, "Op(9)", Op(9).String())
}

func TestParseOp(t *testing.T) {
	for s, want := range map[string]Op{"add": Add, "+": Add, "SUB": Sub, "mul": Mul, " / ": Div} {
		got, err := ParseOp(s)
		require.NoError(t, err, s)
		require.Equal(t, want, got, s)
	}
	_, err := ParseOp("mod")
	require.Error(t, err)
}
