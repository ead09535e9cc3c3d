package dirty

// Source is the mapped storage a Tracker flushes.
//
// Bytes must return the whole mapping, starting at the address mmap
// returned. Offsets passed to Add are relative to its start.
type Source interface {
	Bytes() []byte
	// FD is the descriptor fdatasync is issued against.
	FD() int
}
