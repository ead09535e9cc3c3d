package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fieldkit/layout"
)

func TestLayoutCommand_WritesDefinition(t *testing.T) {
	resetFlags(t)
	offset = 3
	out := filepath.Join(t.TempDir(), "sample.yaml")

	output, err := captureOutput(t, func() error { return runLayout([]string{out}) })
	require.NoError(t, err)
	assertContains(t, output, []string{"Wrote 5 fields (19 bytes at offset 3)"})

	d, err := layout.LoadDefinition(out)
	require.NoError(t, err)
	require.Equal(t, int64(3), d.Offset)
	require.Len(t, d.Fields, 5)
	require.Equal(t, layout.FieldDefinition{Name: "unsigned_arr", Type: "bytes", Len: 4}, d.Fields[4])

	// The written file drives the other commands, offset included.
	fieldSpec, layoutPath, offset = "", out, -1
	_, off, err := resolveLayout()
	require.NoError(t, err)
	require.Equal(t, int64(3), off)
}

func TestLayoutCommand_Errors(t *testing.T) {
	resetFlags(t)
	fieldSpec = "bad"
	err := runLayout([]string{filepath.Join(t.TempDir(), "x.yaml")})
	require.Error(t, err)

	resetFlags(t)
	err = runLayout([]string{filepath.Join(t.TempDir(), "no", "such", "dir.yaml")})
	require.Error(t, err)
}
