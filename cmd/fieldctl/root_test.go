package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fieldkit/cmd/fieldctl/logger"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"dump", "get", "set", "add", "layout", "version"} {
		require.True(t, names[want], "missing command %q", want)
	}
}

func TestRootCommand_ExecuteDump(t *testing.T) {
	resetFlags(t)
	fieldSpec = ""
	path := writeSample(t)

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"dump", "--fields", sampleFields, "--offset", "0", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	output, err := captureOutput(t, func() error { return rootCmd.Execute() })
	require.NoError(t, err)
	assertContains(t, output, []string{"unsigned_64", "0x0f0e0d0c0b0a0908"})
}

func TestResolveLayout_OffsetOverride(t *testing.T) {
	resetFlags(t)
	l, off, err := resolveLayout()
	require.NoError(t, err)
	require.Equal(t, 19, l.Size())
	require.Equal(t, int64(0), off)

	offset = 7
	_, off, err = resolveLayout()
	require.NoError(t, err)
	require.Equal(t, int64(7), off)

	fieldSpec = "bad"
	_, _, err = resolveLayout()
	require.Error(t, err)
}

// captureLogs routes verbose logging into a buffer for the rest of the test.
func captureLogs(t *testing.T, asJSON bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	verbose, logJSON, logOutput = true, asJSON, &buf
	require.NoError(t, initLogging())
	t.Cleanup(func() { _ = logger.Init(logger.Options{}) })
	return &buf
}

func TestVerboseLogging_JSONRecords(t *testing.T) {
	resetFlags(t)
	logs := captureLogs(t, true)
	path := writeSample(t)

	_, err := captureOutput(t, func() error {
		return runSet(context.Background(), []string{path, "unsigned_8", "0x13"})
	})
	require.NoError(t, err)
	assertContains(t, logs.String(), []string{
		`"level":"DEBUG","msg":"patching"`,
		`"level":"INFO","msg":"patched"`,
		`"field":"unsigned_8"`,
		`"mode":"stream"`,
	})
}

func TestResolveLayout_WarnsOnOffsetOverride(t *testing.T) {
	resetFlags(t)
	logs := captureLogs(t, false)
	fieldSpec = ""
	layoutPath = filepath.Join(t.TempDir(), "hdr.yaml")
	require.NoError(t, os.WriteFile(layoutPath, []byte("offset: 4\nfields:\n  - {name: size, type: u32}\n"), 0o644))

	_, off, err := resolveLayout()
	require.NoError(t, err)
	require.Equal(t, int64(4), off)
	require.NotContains(t, logs.String(), "level=WARN")

	offset = 0
	_, off, err = resolveLayout()
	require.NoError(t, err)
	require.Equal(t, int64(0), off)
	assertContains(t, logs.String(), []string{"level=WARN", "overrides the layout's offset", "layout=4", "offset=0"})
}

func TestRun_LogsCommandFailure(t *testing.T) {
	resetFlags(t)
	fieldSpec = ""
	var logs bytes.Buffer
	logOutput = &logs
	t.Cleanup(func() { _ = logger.Init(logger.Options{}) })

	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"get", "-v", "--fields", sampleFields, filepath.Join(t.TempDir(), "missing.bin"), "unsigned_8"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := run()
	require.Error(t, err)
	assertContains(t, logs.String(), []string{"level=ERROR", `msg="command failed"`, "missing.bin"})
}
