package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fieldkit/cmd/fieldctl/logger"
	"github.com/joshuapare/fieldkit/layout"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	logJSON    bool
	layoutPath string
	fieldSpec  string
	offset     int64

	// logOutput is where debug logging goes; nil means stderr.
	logOutput io.Writer
)

var rootCmd = &cobra.Command{
	Use:   "fieldctl",
	Short: "Read and patch fixed binary layouts in files",
	Long: `fieldctl overlays a fixed binary layout onto a file and reads or patches
its fields in place. The layout comes from a YAML definition (--layout) or a
compact field list (--fields):

  fieldctl dump --fields "magic:u32,version:u16,label:bytes:8:cp1252" disk.img
  fieldctl set --layout mbr.yaml disk.img type 0x83`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
}

// initLogging enables debug logging when --verbose is set.
func initLogging() error {
	return logger.Init(logger.Options{
		Enabled: verbose,
		Output:  logOutput,
		Level:   slog.LevelDebug,
		JSON:    logJSON,
	})
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit --verbose logs as JSON records")
	rootCmd.PersistentFlags().StringVarP(&layoutPath, "layout", "l", "", "YAML layout definition file")
	rootCmd.PersistentFlags().
		StringVarP(&fieldSpec, "fields", "f", "", "Compact layout: name:kind[:len[:text]],...")
	rootCmd.PersistentFlags().
		Int64Var(&offset, "offset", -1, "Record start in bytes (default: the layout's offset, else 0)")
}

func execute() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the root command and logs a failure before it is reported.
func run() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("command failed", "err", err)
	}
	return err
}

// resolveLayout builds the layout named by --layout or --fields and the
// offset the record starts at.
func resolveLayout() (*layout.Layout, int64, error) {
	var (
		l   *layout.Layout
		def int64
	)
	switch {
	case layoutPath != "" && fieldSpec != "":
		return nil, 0, errors.New("--layout and --fields are mutually exclusive")
	case layoutPath != "":
		d, err := layout.LoadDefinition(layoutPath)
		if err != nil {
			return nil, 0, err
		}
		if l, err = d.Build(); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", layoutPath, err)
		}
		def = d.Offset
	case fieldSpec != "":
		var err error
		if l, err = layout.ParseSpec(fieldSpec); err != nil {
			return nil, 0, err
		}
	default:
		return nil, 0, errors.New("no layout given: pass --layout <file.yaml> or --fields <spec>")
	}

	off := def
	if offset >= 0 {
		if def != 0 && offset != def {
			logger.Warn("--offset overrides the layout's offset", "layout", def, "offset", offset)
		}
		off = offset
	}
	logger.Debug("resolved layout", "name", l.Name(), "fields", l.Len(), "size", l.Size(), "offset", off)
	return l, off, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
