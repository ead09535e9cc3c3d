package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/fieldkit/cmd/fieldctl/logger"
	"github.com/joshuapare/fieldkit/codec"
	"github.com/joshuapare/fieldkit/internal/buf"
	"github.com/joshuapare/fieldkit/internal/writer"
	"github.com/joshuapare/fieldkit/layout"
	"github.com/joshuapare/fieldkit/mapfile"
	"github.com/joshuapare/fieldkit/mapfile/dirty"
	"github.com/joshuapare/fieldkit/pkg/types"
)

// patchMode selects how a patch reaches the file.
type patchMode int

const (
	// patchStream seeks and writes through the file descriptor.
	patchStream patchMode = iota
	// patchMapped binds the layout over a mapping and flushes dirty pages.
	patchMapped
	// patchCopy patches a heap copy and writes it to another path atomically.
	patchCopy
)

func (m patchMode) String() string {
	switch m {
	case patchStream:
		return "stream"
	case patchMapped:
		return "mmap"
	case patchCopy:
		return "copy"
	default:
		return "unknown"
	}
}

type patchOptions struct {
	mmap bool
	out  string
}

func (o patchOptions) mode() (patchMode, error) {
	switch {
	case o.mmap && o.out != "":
		return 0, errors.New("--mmap and --out are mutually exclusive")
	case o.mmap:
		return patchMapped, nil
	case o.out != "":
		return patchCopy, nil
	default:
		return patchStream, nil
	}
}

// edit is one change to one field: a plain set, or arithmetic when arith
// is true.
type edit struct {
	field layout.Field
	value uint64 // scalar value or arithmetic operand
	raw   []byte // byte array value
	op    codec.Op
	arith bool
}

func (e edit) applyBuffer(rec *layout.Record) error {
	switch {
	case e.arith:
		return rec.Apply(e.field.Name, e.op, e.value)
	case e.field.Kind.IsScalar():
		return rec.SetUint(e.field.Name, e.value)
	default:
		return rec.SetBytes(e.field.Name, e.raw)
	}
}

func (e edit) applyStream(rec *layout.StreamRecord, ws io.WriteSeeker) error {
	switch {
	case e.arith:
		return rec.Apply(ws, e.field.Name, e.op, e.value)
	case e.field.Kind.IsScalar():
		return rec.SetUint(ws, e.field.Name, e.value)
	default:
		return rec.SetBytes(ws, e.field.Name, e.raw)
	}
}

type patchResult struct {
	File   string     `json:"file"`
	Out    string     `json:"out,omitempty"`
	Mode   string     `json:"mode"`
	Before fieldValue `json:"before"`
	After  fieldValue `json:"after"`
}

// runPatch applies e to the record at off in path and returns the field
// before and after.
func runPatch(ctx context.Context, path string, l *layout.Layout, off int64, e edit, opts patchOptions) (*patchResult, error) {
	mode, err := opts.mode()
	if err != nil {
		return nil, err
	}
	logger.Debug("patching", "file", path, "field", e.field.Name, "mode", mode.String(), "offset", off)

	var before, after layout.Value
	switch mode {
	case patchMapped:
		before, after, err = patchMappedFile(ctx, path, l, off, e)
	case patchCopy:
		before, after, err = patchCopyFile(path, opts.out, l, off, e)
	default:
		before, after, err = patchStreamFile(path, l, off, e)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("patched", "file", path, "field", e.field.Name, "mode", mode.String(), "offset", after.Offset)
	return &patchResult{
		File:   path,
		Out:    opts.out,
		Mode:   mode.String(),
		Before: newFieldValue(before),
		After:  newFieldValue(after),
	}, nil
}

func patchStreamFile(path string, l *layout.Layout, off int64, e edit) (before, after layout.Value, err error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return before, after, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	rec, err := l.LoadAt(f, off)
	if err != nil {
		return before, after, fmt.Errorf("failed to read record: %w", err)
	}
	if before, err = findValue(rec.Values(), e.field.Name); err != nil {
		return before, after, err
	}
	if err = e.applyStream(rec, f); err != nil {
		return before, after, err
	}
	if err = f.Sync(); err != nil {
		return before, after, fmt.Errorf("failed to sync file: %w", err)
	}
	after, err = findValue(rec.Values(), e.field.Name)
	return before, after, err
}

func patchMappedFile(ctx context.Context, path string, l *layout.Layout, off int64, e edit) (before, after layout.Value, err error) {
	mf, err := mapfile.Open(path)
	if err != nil {
		return before, after, fmt.Errorf("failed to open file: %w", err)
	}
	defer mf.Close()

	rec, err := mf.BindAt(l, int(off))
	if err != nil {
		return before, after, err
	}
	if before, err = findValue(rec.Values(), e.field.Name); err != nil {
		return before, after, err
	}
	if err = e.applyBuffer(rec); err != nil {
		return before, after, err
	}
	if !mf.Mapped() {
		logger.Warn("file is not memory-mapped, flushing by write-back", "file", path)
	}
	logger.Debug("flushing", "mapped", mf.Mapped(), "ranges", len(mf.Tracker().Coalesced()))
	if err = mf.Flush(ctx, dirty.FlushAuto); err != nil {
		return before, after, fmt.Errorf("failed to flush: %w", err)
	}
	after, err = findValue(rec.Values(), e.field.Name)
	return before, after, err
}

func patchCopyFile(path, out string, l *layout.Layout, off int64, e edit) (before, after layout.Value, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return before, after, fmt.Errorf("failed to read file: %w", err)
	}
	if off < 0 || !buf.Has(data, int(off), l.Size()) {
		return before, after, &types.Error{
			Kind:   types.ErrKindShortRead,
			Msg:    fmt.Sprintf("record of %d bytes does not fit in %d byte file", l.Size(), len(data)),
			Op:     "bind",
			Offset: off,
		}
	}

	rec, _ := l.BindTracked(data[off:], int(off), nil)
	if before, err = findValue(rec.Values(), e.field.Name); err != nil {
		return before, after, err
	}
	if err = e.applyBuffer(rec); err != nil {
		return before, after, err
	}
	w := &writer.FileWriter{Path: out}
	if err = w.WriteFile(data); err != nil {
		return before, after, fmt.Errorf("failed to write %s: %w", out, err)
	}
	after, err = findValue(rec.Values(), e.field.Name)
	return before, after, err
}

func printPatch(res *patchResult) error {
	if jsonOut {
		return printJSON(res)
	}
	target := res.File
	if res.Out != "" {
		target = res.Out
	}
	printVerbose("Patched %s (%s)\n", target, res.Mode)
	printInfo("%s: %s -> %s\n", res.After.Name, displayValue(res.Before), displayValue(res.After))
	return nil
}

func displayValue(fv fieldValue) string {
	switch v := fv.Value.(type) {
	case uint64:
		return fmt.Sprintf("0x%0*x", 2*fv.Width, v)
	default:
		if fv.Text != "" {
			return fmt.Sprintf("%q", fv.Text)
		}
		return fmt.Sprint(v)
	}
}
