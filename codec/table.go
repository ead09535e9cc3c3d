package codec

import (
	"fmt"

	"github.com/joshuapare/fieldkit/internal/buf"
)

// Codec is the decode/encode pair for one scalar kind. Decode and Encode
// expect a slice of exactly Width bytes; callers bind that range once.
type Codec struct {
	Kind   Kind
	Width  int
	Decode func(b []byte) uint64
	Encode func(b []byte, v uint64)
}

var scalars = [...]Codec{
	U8: {
		Kind:   U8,
		Width:  1,
		Decode: func(b []byte) uint64 { return uint64(b[0]) },
		Encode: func(b []byte, v uint64) { b[0] = byte(v) },
	},
	U16: {
		Kind:   U16,
		Width:  2,
		Decode: func(b []byte) uint64 { return uint64(buf.U16LE(b)) },
		Encode: func(b []byte, v uint64) { buf.PutU16LE(b, uint16(v)) },
	},
	U32: {
		Kind:   U32,
		Width:  4,
		Decode: func(b []byte) uint64 { return uint64(buf.U32LE(b)) },
		Encode: func(b []byte, v uint64) { buf.PutU32LE(b, uint32(v)) },
	},
	U64: {
		Kind:   U64,
		Width:  8,
		Decode: buf.U64LE,
		Encode: buf.PutU64LE,
	},
}

// Lookup returns the codec for a scalar kind. ok is false for Bytes and
// Invalid, which have no fixed-width integer codec.
func Lookup(k Kind) (Codec, bool) {
	if !k.IsScalar() {
		return Codec{}, false
	}
	return scalars[k], true
}

// MustLookup is Lookup for callers that have already validated the kind.
// It panics on a non-scalar kind.
func MustLookup(k Kind) Codec {
	c, ok := Lookup(k)
	if !ok {
		panic(fmt.Sprintf("codec: %s is not a scalar kind", k))
	}
	return c
}

// DecodeBytes copies b into a freshly zeroed slice of length n. Only the
// first min(n, len(b)) bytes are copied.
func DecodeBytes(b []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, b)
	return out
}

// EncodeBytes copies src into dst element-wise. It panics unless both have
// the same length: a byte array field is exactly as long as declared.
func EncodeBytes(dst, src []byte) {
	if len(src) != len(dst) {
		panic(fmt.Sprintf("codec: byte array length mismatch: field is %d bytes, value is %d", len(dst), len(src)))
	}
	copy(dst, src)
}
