package codec

import (
	"fmt"
	"strings"
)

// Kind identifies how a field's bytes are interpreted.
type Kind uint8

const (
	Invalid Kind = iota
	U8           // 1-byte unsigned integer
	U16          // 2-byte little-endian unsigned integer
	U32          // 4-byte little-endian unsigned integer
	U64          // 8-byte little-endian unsigned integer
	Bytes        // fixed-length byte array; length is declared per field
)

// Width returns the byte width of a scalar kind, or 0 for Bytes and Invalid.
// The width of a byte array comes from its field declaration.
func (k Kind) Width() int {
	switch k {
	case U8:
		return 1
	case U16:
		return 2
	case U32:
		return 4
	case U64:
		return 8
	default:
		return 0
	}
}

// IsScalar reports whether k is one of the unsigned integer kinds.
func (k Kind) IsScalar() bool {
	return k.Width() > 0
}

// String implements the Stringer interface for Kind.
func (k Kind) String() string {
	switch k {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case Bytes:
		return "bytes"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind maps a kind name (as produced by String) back to a Kind.
// Matching is case-insensitive; "byte" and "uint8".."uint64" are accepted
// as aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "u8", "uint8":
		return U8, nil
	case "u16", "uint16":
		return U16, nil
	case "u32", "uint32":
		return U32, nil
	case "u64", "uint64":
		return U64, nil
	case "bytes", "byte":
		return Bytes, nil
	default:
		return Invalid, fmt.Errorf("codec: unknown kind %q", s)
	}
}

// Mask returns the largest value representable in the scalar kind.
func (k Kind) Mask() uint64 {
	switch k {
	case U8:
		return 0xFF
	case U16:
		return 0xFFFF
	case U32:
		return 0xFFFF_FFFF
	case U64:
		return ^uint64(0)
	default:
		return 0
	}
}

// Truncate reduces v to the low Width() bytes, the same result as a Go
// conversion to the corresponding fixed-width unsigned type.
func (k Kind) Truncate(v uint64) uint64 {
	return v & k.Mask()
}
