// Package mapfile opens a file as a mutable byte buffer so layouts can be
// bound over it in buffer mode.
//
// On Linux, FreeBSD and macOS the file is memory-mapped read-write and
// shared: writes through bound field views land in the page cache
// immediately and Flush makes them durable. Elsewhere the file is read into
// memory and Flush writes the dirty ranges back with WriteAt.
//
// Either way, every write made through a record returned by Bind or BindAt
// is reported to the file's dirty.Tracker, and Flush only touches the pages
// those writes fell in.
//
//	f, err := mapfile.Open("disk.img")
//	if err != nil { ... }
//	defer f.Close()
//
//	rec, err := f.BindAt(mbr, 446)
//	if err != nil { ... }
//	_ = rec.SetUint("type", 0x83)
//	err = f.Flush(ctx, dirty.FlushAuto)
package mapfile
