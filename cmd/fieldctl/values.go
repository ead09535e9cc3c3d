package main

import (
	"encoding/hex"
	"fmt"

	"github.com/joshuapare/fieldkit/codec"
	"github.com/joshuapare/fieldkit/layout"
	"github.com/joshuapare/fieldkit/pkg/types"
)

// fieldValue is the JSON form of one field.
type fieldValue struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Offset int64  `json:"offset"`
	Width  int    `json:"width"`
	// Value is a number for scalars and a hex string for byte arrays.
	Value any    `json:"value"`
	Text  string `json:"text,omitempty"`
}

func newFieldValue(v layout.Value) fieldValue {
	fv := fieldValue{
		Name:   v.Field.Name,
		Type:   v.Field.Kind.String(),
		Offset: v.Offset,
		Width:  v.Field.Width(),
	}
	if v.Field.Kind.IsScalar() {
		fv.Value = v.Uint
		return fv
	}
	fv.Value = hex.EncodeToString(v.Bytes)
	if v.Field.Text != codec.TextNone {
		if s, err := codec.DecodeText(v.Bytes, v.Field.Text); err == nil {
			fv.Text = s
		}
	}
	return fv
}

func findValue(vals []layout.Value, name string) (layout.Value, error) {
	for _, v := range vals {
		if v.Field.Name == name {
			return v, nil
		}
	}
	return layout.Value{}, fmt.Errorf("%w: %q", types.ErrNotFound, name)
}

func lookupField(l *layout.Layout, name string) (layout.Field, error) {
	f, ok := l.Field(name)
	if !ok {
		return layout.Field{}, fmt.Errorf("%w: %q", types.ErrNotFound, name)
	}
	return f, nil
}

// printValueLine prints one field as an aligned text row.
func printValueLine(v layout.Value, nameWidth int) {
	printInfo("  %-*s  0x%08x  %-5s  %s\n", nameWidth, v.Field.Name, v.Offset, v.Field.Kind, v)
}
