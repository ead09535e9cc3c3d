package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fieldkit/layout"
)

var (
	setMmap bool
	setOut  string
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().BoolVar(&setMmap, "mmap", false, "Patch through a memory mapping and flush dirty pages")
	cmd.Flags().StringVarP(&setOut, "out", "o", "", "Write the patched file to this path instead of in place")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> <field> <value>",
		Short: "Set one field of the record",
		Long: `The set command writes a new value into one field, in place.

Scalars take Go integer literals (42, 0x2a, 0b101010). Byte arrays take hex
("10111213" or "10 11 12 13") or, when the field declares a text encoding,
plain text that is NUL-padded to the field length.

Example:
  fieldctl set --layout header.yaml disk.img version 2
  fieldctl set --fields "magic:u32,label:bytes:8:utf8" disk.img label BOOT --mmap
  fieldctl set --layout header.yaml disk.img magic 0xfeedface --out patched.img`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd.Context(), args)
		},
	}
	return cmd
}

func runSet(ctx context.Context, args []string) error {
	path, name, raw := args[0], args[1], args[2]
	if ctx == nil {
		ctx = context.Background()
	}

	l, off, err := resolveLayout()
	if err != nil {
		return err
	}
	f, err := lookupField(l, name)
	if err != nil {
		return err
	}
	v, b, err := layout.ParseValue(f, raw)
	if err != nil {
		return fmt.Errorf("failed to parse value: %w", err)
	}

	res, err := runPatch(ctx, path, l, off, edit{field: f, value: v, raw: b}, patchOptions{mmap: setMmap, out: setOut})
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}
	return printPatch(res)
}
