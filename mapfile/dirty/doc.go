// Package dirty tracks which byte ranges of a memory-mapped file have been
// written and flushes them to disk.
//
// # Overview
//
// Field views report every write as an (offset, length) pair through
// Add. Nothing else happens until a flush: the tracker then rounds each
// range out to page boundaries, sorts and merges them, and msyncs each
// merged range of the mapping.
//
//	tr := dirty.NewTracker(src)
//	tr.Add(0x41, 2)   // a u16 written at 0x41
//	tr.Add(0x1f00, 8) // a u64 written at 0x1f00
//	tr.Coalesced()    // [{Off: 0, Len: 0x2000}] with 4KB pages
//
// # Flush modes
//
// FlushDataOnly msyncs the dirty pages and stops there. FlushAuto follows
// with fdatasync on the file descriptor. FlushFull additionally asks the
// drive to flush its cache where the platform supports it (F_FULLFSYNC on
// macOS).
//
// # Platforms
//
// Linux and FreeBSD msync individual ranges. macOS requires msync to start
// at the mapping's base address, so the whole mapping is synced; the
// kernel only writes pages that are actually dirty. Windows uses
// FlushViewOfFile and FlushFileBuffers.
//
// # Thread Safety
//
// A Tracker is not safe for concurrent use.
package dirty
