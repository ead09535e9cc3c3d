package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// TextEncoding selects how a byte array is rendered as a string.
type TextEncoding uint8

const (
	TextNone TextEncoding = iota // raw bytes, no text rendering
	TextUTF8
	TextLatin1
	TextWindows1252
	TextUTF16LE
)

// String implements the Stringer interface for TextEncoding.
func (e TextEncoding) String() string {
	switch e {
	case TextNone:
		return ""
	case TextUTF8:
		return "utf8"
	case TextLatin1:
		return "latin1"
	case TextWindows1252:
		return "cp1252"
	case TextUTF16LE:
		return "utf16le"
	default:
		return fmt.Sprintf("TextEncoding(%d)", uint8(e))
	}
}

// ParseTextEncoding maps an encoding name to a TextEncoding. The empty
// string maps to TextNone.
func ParseTextEncoding(s string) (TextEncoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TextNone, nil
	case "utf8", "utf-8", "ascii":
		return TextUTF8, nil
	case "latin1", "iso-8859-1":
		return TextLatin1, nil
	case "cp1252", "windows-1252":
		return TextWindows1252, nil
	case "utf16le", "utf-16le":
		return TextUTF16LE, nil
	default:
		return TextNone, fmt.Errorf("codec: unknown text encoding %q", s)
	}
}

func (e TextEncoding) encoding() encoding.Encoding {
	switch e {
	case TextLatin1:
		return charmap.ISO8859_1
	case TextWindows1252:
		return charmap.Windows1252
	case TextUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	default:
		return nil
	}
}

// DecodeText renders a fixed-length byte array as a UTF-8 string. Trailing
// NUL padding is dropped.
func DecodeText(b []byte, enc TextEncoding) (string, error) {
	switch enc {
	case TextNone:
		return "", fmt.Errorf("codec: field has no text encoding")
	case TextUTF8:
		s := strings.TrimRight(string(b), "\x00")
		if !utf8.ValidString(s) {
			return "", fmt.Errorf("codec: invalid utf-8 in text field")
		}
		return s, nil
	}
	if enc == TextUTF16LE && len(b)%2 != 0 {
		return "", fmt.Errorf("codec: utf-16le text field has odd length %d", len(b))
	}
	x := enc.encoding()
	if x == nil {
		return "", fmt.Errorf("codec: unknown text encoding %d", uint8(enc))
	}
	decoded, err := x.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s text: %w", enc, err)
	}
	return strings.TrimRight(string(decoded), "\x00"), nil
}

// EncodeText encodes s for a byte array of exactly n bytes, padding with
// NULs. It fails when the encoded form does not fit.
func EncodeText(s string, enc TextEncoding, n int) ([]byte, error) {
	var raw []byte
	switch enc {
	case TextNone:
		return nil, fmt.Errorf("codec: field has no text encoding")
	case TextUTF8:
		raw = []byte(s)
	default:
		x := enc.encoding()
		if x == nil {
			return nil, fmt.Errorf("codec: unknown text encoding %d", uint8(enc))
		}
		encoded, err := x.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s text: %w", enc, err)
		}
		raw = encoded
	}
	if len(raw) > n {
		return nil, fmt.Errorf("codec: %s text needs %d bytes, field holds %d", enc, len(raw), n)
	}
	out := make([]byte, n)
	copy(out, raw)
	return out, nil
}
