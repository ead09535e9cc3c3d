// Package layout composes field views into records.
//
// A Layout is an ordered list of named fields. Binding it to a byte source
// walks the fields in declaration order and gives each one the next
// Width() bytes, so field i always covers [sum of earlier widths, + its own
// width) and no two fields overlap:
//
//	hdr := layout.MustNew(
//	    layout.U32("magic"),
//	    layout.U16("version"),
//	    layout.Array("name", 16).WithText(codec.TextUTF16LE),
//	)
//
//	rec, rest := hdr.Bind(buf)           // buffer mode, panics if buf is short
//	rec.Scalar("version")                // *view.Scalar over buf[4:6]
//
//	srec, err := hdr.Load(file)          // stream mode, reads at file's position
//	err = srec.Add(file, "version", 1)   // writes back to the field's offset
//
// Layouts can also be declared in YAML (ParseYAML, LoadFile) or in the
// compact "name:kind[:len[:text]]" form used on the command line
// (ParseSpec).
package layout
