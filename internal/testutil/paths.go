package testutil

// Sample is the 19-byte fixture every layout test starts from. Read as
// {u8, u16, u32, u64, [4]byte} it yields 0x01, 0x0302, 0x07060504,
// 0x0F0E0D0C0B0A0908 and {0x10, 0x11, 0x12, 0x13}.
var Sample = [19]byte{
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A,
	0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10, 0x11, 0x12, 0x13,
}

// SampleRewritten is Sample after setting every field of the layout above
// to its byte-reversed counterpart (0x13, 0x1112, 0x0D0E0F10,
// 0x05060708090A0B0C, {4, 3, 2, 1}).
var SampleRewritten = [19]byte{
	0x13, 0x12, 0x11, 0x10, 0x0F, 0x0E, 0x0D, 0x0C, 0x0B, 0x0A,
	0x09, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
}

// SampleBytes returns a fresh mutable copy of Sample.
func SampleBytes() []byte {
	b := Sample
	return b[:]
}
