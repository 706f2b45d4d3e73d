package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/drawcheck/internal/cli"
)

const validDoc = `<?xml version="1.0" encoding="UTF-8"?>
<mxfile><diagram name="P"><mxGraphModel><root><mxCell id="0"/><mxCell id="1" parent="0"/></root></mxGraphModel></diagram></mxfile>`

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return cli.ExitOK
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	t.Fatalf("unexpected error type %T: %v", err, err)
	return -1
}

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
	assert.Equal(t, cli.ExitUsage, exitCode(t, err))
}

func TestRun_ExitCodes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.drawio", validDoc)
	invalid := writeFile(t, dir, "invalid.drawio", "<mxfile><diagram>")

	testCases := []struct {
		name string
		args []string
		code int
	}{
		{"all valid", []string{"-no-color", valid}, cli.ExitOK},
		{"one invalid", []string{"-no-color", valid, invalid}, cli.ExitInvalid},
		{"nothing found", []string{filepath.Join(dir, "absent")}, cli.ExitInvalid},
		{"no paths", nil, cli.ExitUsage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			err := run(context.Background(), out, &bytes.Buffer{}, tc.args)
			assert.Equal(t, tc.code, exitCode(t, err), out.String())
		})
	}
}

func TestRun_PrintsReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "broken.drawio", `<?xml version="1.0" encoding="UTF-8"?>
<mxfile><diagram name="P"><mxGraphModel><root><mxCell id="1" parent="0"/></root></mxGraphModel></diagram></mxfile>`)

	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-no-color", path})

	assert.Equal(t, cli.ExitInvalid, exitCode(t, err))
	assert.Contains(t, out.String(), "✗ INVALID "+path)
	assert.Contains(t, out.String(), "(missing-root-cell)")
	assert.Contains(t, out.String(), "Results: 0/1 files valid")
}
