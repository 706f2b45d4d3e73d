package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/drawcheck/internal/app"
	"github.com/specialistvlad/drawcheck/internal/report"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drawcheck.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func requireExitError(t *testing.T, err error, code int) *ExitError {
	t.Helper()
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, code, exitErr.Code)
	return exitErr
}

func TestParse_Defaults(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"a.drawio", "docs"}, &out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, []string{"a.drawio", "docs"}, cfg.Paths)
	assert.Equal(t, app.DefaultExtensions, cfg.Extensions)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.NoColor)
	assert.Empty(t, cfg.Disabled)
	assert.Empty(t, out.String())
}

func TestParse_Flags(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{
		"-format", "JSON", "-workers", "9", "-log-level", "debug", "-log-format", "json", "-no-color", "x.drawio",
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 9, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.NoColor)
}

func TestParse_Help(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-workers")
}

func TestParse_UsageErrors(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		contains string
	}{
		{"unknown flag", []string{"--bogus", "a.drawio"}, "flag provided but not defined: -bogus"},
		{"no paths", nil, "no input paths given"},
		{"bad format", []string{"-format", "xml", "a.drawio"}, `unknown format "xml"`},
		{"bad level", []string{"-log-level", "loud", "a.drawio"}, "LogLevel"},
		{"zero workers", []string{"-workers", "0", "a.drawio"}, "Workers"},
		{"missing config", []string{"-config", "/definitely/not/here.hcl", "a.drawio"}, "failed to read config file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := Parse(tc.args, &out)
			exitErr := requireExitError(t, err, ExitUsage)
			assert.Contains(t, exitErr.Message, tc.contains)
		})
	}
}

func TestParse_NoPathsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse(nil, &out)

	requireExitError(t, err, ExitUsage)
	assert.Contains(t, out.String(), "drawcheck [options] PATH")
}

func TestParse_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
workers    = 3
extensions = [".xml"]
disable    = ["fixed-page-layout"]
enable     = ["missing-xml-declaration"]
`)
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-config", path, "docs"}, &out)

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []string{".xml"}, cfg.Extensions)
	assert.Equal(t, []report.Code{report.CodeFixedPageLayout}, cfg.Disabled)
	assert.Equal(t, []report.Code{report.CodeMissingXMLDeclaration}, cfg.Enabled)
}

func TestParse_FlagsOverrideConfigFile(t *testing.T) {
	path := writeConfig(t, "workers = 3\n")
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-config", path, "-workers", "7", "docs"}, &out)

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Workers)
}

func TestParse_InvalidConfigFile(t *testing.T) {
	path := writeConfig(t, "disable = [\"dangling-parent\"]\n")
	var out bytes.Buffer
	_, _, err := Parse([]string{"-config", path, "docs"}, &out)

	exitErr := requireExitError(t, err, ExitUsage)
	assert.Contains(t, exitErr.Message, "cannot be disabled")
}
