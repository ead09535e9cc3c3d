package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> <field>",
		Short: "Print one field of the record",
		Long: `The get command reads the record from the file and prints a single field.

Example:
  fieldctl get --layout header.yaml disk.img version
  fieldctl get --fields "magic:u32,label:bytes:8:utf8" disk.img label --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	path, name := args[0], args[1]

	l, off, err := resolveLayout()
	if err != nil {
		return err
	}
	if _, err := lookupField(l, name); err != nil {
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
	v, err := findValue(rec.Values(), name)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(newFieldValue(v))
	}
	printInfo("%s\n", v)
	return nil
}
