package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/fieldkit/cmd/fieldctl/logger"
	"github.com/joshuapare/fieldkit/layout"
)

func init() {
	rootCmd.AddCommand(newLayoutCmd())
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <out.yaml>",
		Short: "Write the selected layout as a YAML definition",
		Long: `The layout command writes the layout given by --fields or --layout,
together with the record offset, as a YAML file that --layout accepts.

Example:
  fieldctl layout --fields "status:u8,label:bytes:8:cp1252" --offset 446 mbr.yaml
  fieldctl dump --layout mbr.yaml disk.img`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(args)
		},
	}
	return cmd
}

func runLayout(args []string) error {
	out := args[0]

	l, off, err := resolveLayout()
	if err != nil {
		return err
	}
	if err := layout.DefinitionOf(l, off).Save(out); err != nil {
		return err
	}
	logger.Info("wrote layout", "file", out, "fields", l.Len(), "offset", off)

	if jsonOut {
		return printJSON(map[string]any{"file": out, "fields": l.Len(), "size": l.Size(), "offset": off})
	}
	printInfo("Wrote %d fields (%d bytes at offset %d) to %s\n", l.Len(), l.Size(), off, out)
	return nil
}
