package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fieldkit/cmd/fieldctl/logger"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print every field of the record",
		Long: `The dump command reads the record from the file and prints every field.
Scalars are shown as hex, byte arrays as hex or, when the field declares a
text encoding, as text.

Example:
  fieldctl dump --layout header.yaml disk.img
  fieldctl dump --fields "a:u8,b:u16,c:u32,d:u64,e:bytes:4" sample.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

type dumpResult struct {
	File   string       `json:"file"`
	Layout string       `json:"layout,omitempty"`
	Offset int64        `json:"offset"`
	Size   int          `json:"size"`
	Fields []fieldValue `json:"fields"`
}

func runDump(args []string) error {
	path := args[0]

	l, off, err := resolveLayout()
	if err != nil {
		return err
	}

	printVerbose("Opening file: %s\n", path)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	rec, err := l.LoadAt(f, off)
	if err != nil {
		return fmt.Errorf("failed to read record: %w", err)
	}
	vals := rec.Values()
	logger.Debug("loaded record", "file", path, "offset", off, "fields", len(vals))

	if jsonOut {
		res := dumpResult{File: path, Layout: l.Name(), Offset: off, Size: l.Size()}
		for _, v := range vals {
			res.Fields = append(res.Fields, newFieldValue(v))
		}
		return printJSON(res)
	}

	width := 0
	for _, v := range vals {
		width = max(width, len(v.Field.Name))
	}
	printInfo("%s: %d fields, %d bytes at offset %d\n", path, len(vals), l.Size(), off)
	for _, v := range vals {
		printValueLine(v, width)
	}
	return nil
}
