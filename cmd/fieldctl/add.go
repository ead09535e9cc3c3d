package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fieldkit/codec"
	"github.com/joshuapare/fieldkit/layout"
)

var (
	addOp   string
	addMmap bool
	addOut  string
)

func init() {
	cmd := newAddCmd()
	cmd.Flags().StringVar(&addOp, "op", "add", "Operation: add, sub, mul, div")
	cmd.Flags().BoolVar(&addMmap, "mmap", false, "Patch through a memory mapping and flush dirty pages")
	cmd.Flags().StringVarP(&addOut, "out", "o", "", "Write the patched file to this path instead of in place")
	rootCmd.AddCommand(cmd)
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <file> <field> <delta>",
		Short: "Apply arithmetic to one scalar field",
		Long: `The add command reads a scalar field, applies an operation and writes the
result back. Results wrap at the field width: adding 1 to a u8 holding 0xff
gives 0x00. Byte arrays do not support arithmetic.

Example:
  fieldctl add --layout header.yaml disk.img sequence 1
  fieldctl add --layout header.yaml disk.img flags 0x10 --mmap
  fieldctl add --layout header.yaml disk.img blocks 2 --op mul`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd.Context(), args)
		},
	}
	return cmd
}

func runAdd(ctx context.Context, args []string) error {
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
	op, err := codec.ParseOp(addOp)
	if err != nil {
		return err
	}

	// The operand is parsed at the field's width; byte arrays take any
	// 64-bit operand and are rejected by the record itself.
	operand := f
	if !f.Kind.IsScalar() {
		operand = layout.U64(name)
	}
	x, _, err := layout.ParseValue(operand, raw)
	if err != nil {
		return fmt.Errorf("failed to parse delta: %w", err)
	}
	if op == codec.Div && f.Kind.IsScalar() && f.Kind.Truncate(x) == 0 {
		return fmt.Errorf("failed to %s %s: division by zero", op, name)
	}

	e := edit{field: f, value: x, op: op, arith: true}
	res, err := runPatch(ctx, path, l, off, e, patchOptions{mmap: addMmap, out: addOut})
	if err != nil {
		return fmt.Errorf("failed to %s %s: %w", op, name, err)
	}
	return printPatch(res)
}
