package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/joshuapare/fieldkit/internal/testutil"
)

const sampleFields = "unsigned_8:u8,unsigned_16:u16,unsigned_32:u32,unsigned_64:u64,unsigned_arr:bytes:4"

// resetFlags restores every global and command flag to its default and
// selects the sample layout.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose, quiet, jsonOut, logJSON, logOutput = false, false, false, false, nil
	layoutPath, fieldSpec, offset = "", sampleFields, -1
	setMmap, setOut = false, ""
	addOp, addMmap, addOut = "add", false, ""
}

// writeSample writes the 19-byte sample record to a temp file.
func writeSample(t *testing.T) string {
	t.Helper()
	return testutil.WriteTempFile(t, "sample.bin", testutil.SampleBytes())
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// decodeJSON unmarshals output into v, failing the test on invalid JSON.
func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
