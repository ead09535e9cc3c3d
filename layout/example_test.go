package layout_test

import (
	"fmt"

	"github.com/joshuapare/fieldkit/codec"
	"github.com/joshuapare/fieldkit/layout"
)

func ExampleLayout_Bind() {
	hdr := layout.MustNew(
		layout.U8("version"),
		layout.U16("count"),
		layout.Array("tag", 4).WithText(codec.TextUTF8),
	)

	buf := []byte{1, 0x02, 0x01, 'a', 'b', 0, 0, 0xFF}
	rec, rest := hdr.Bind(buf)

	_ = rec.Apply("count", codec.Add, 1)
	_ = rec.SetText("tag", "xyz")

	for _, v := range rec.Values() {
		fmt.Printf("%s @%d = %s\n", v.Field.Name, v.Offset, v)
	}
	fmt.Printf("leftover: % x\n", rest)
	fmt.Printf("buffer:   % x\n", buf)
	// Output:
	// version @0 = 0x01
	// count @1 = 0x0103
	// tag @3 = "xyz"
	// leftover: ff
	// buffer:   01 03 01 78 79 7a 00 ff
}
