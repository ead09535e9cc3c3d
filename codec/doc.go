// Package codec is the closed set of field encodings fieldkit understands.
//
// A field is one of five kinds: an unsigned integer of 1, 2, 4 or 8 bytes,
// or a fixed-length byte array. Scalar kinds dispatch through a lookup
// table of decode/encode pairs rather than per-width generic code:
//
//	c := codec.MustLookup(codec.U32)
//	v := c.Decode(b[:4])   // little-endian
//	c.Encode(b[:4], v+1)
//
// All multi-byte kinds are little-endian. Arithmetic helpers (Apply) wrap
// modulo the field width, exactly like Go's fixed-width unsigned types.
//
// Byte arrays may optionally be rendered as text (DecodeText/EncodeText)
// using the encodings commonly found in binary headers: Windows-1252,
// ISO-8859-1, UTF-16LE and raw UTF-8.
package codec
