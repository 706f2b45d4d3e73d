package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/drawcheck/internal/report"
)

const validDoc = `<?xml version="1.0" encoding="UTF-8"?>
<mxfile><diagram name="P"><mxGraphModel page="0"><root><mxCell id="0"/><mxCell id="1" parent="0"/></root></mxGraphModel></diagram></mxfile>`

const pagedDoc = `<?xml version="1.0" encoding="UTF-8"?>
<mxfile><diagram name="P"><mxGraphModel page="1"><root><mxCell id="0"/><mxCell id="1" parent="0"/></root></mxGraphModel></diagram></mxfile>`

const danglingDoc = `<?xml version="1.0" encoding="UTF-8"?>
<mxfile><diagram name="P"><mxGraphModel><root><mxCell id="0"/><mxCell id="1" parent="0"/>
<mxCell id="e" edge="1" source="1" target="nope" parent="1"/></root></mxGraphModel></diagram></mxfile>`

func baseConfig(paths ...string) Config {
	return Config{
		Paths:      paths,
		Extensions: DefaultExtensions,
		Format:     "text",
		LogFormat:  "text",
		LogLevel:   "warn",
		Workers:    2,
		NoColor:    true,
	}
}

func writeDoc(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(baseConfig("a.drawio"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.drawio"}, cfg.Paths)
}

func TestNewConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*Config)
		contains string
	}{
		{"no paths", func(c *Config) { c.Paths = nil }, "Paths"},
		{"empty path", func(c *Config) { c.Paths = []string{""} }, "Paths"},
		{"format", func(c *Config) { c.Format = "xml" }, `Format must be one of [text json yaml], got "xml"`},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "LogFormat"},
		{"workers", func(c *Config) { c.Workers = 0 }, "Workers fails min=1"},
		{"no extensions", func(c *Config) { c.Extensions = nil }, "Extensions"},
		{"enable default check", func(c *Config) { c.Enabled = []report.Code{report.CodeFixedPageLayout} }, `"fixed-page-layout" cannot be enabled`},
		{"blocking code", func(c *Config) { c.Disabled = []report.Code{report.CodeDuplicateID} }, `"duplicate-id" cannot be disabled`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig("a.drawio")
			tc.mutate(&cfg)
			_, err := NewConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestRun_AllValid(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.drawio", validDoc)
	writeDoc(t, dir, "nested/b.drawio", validDoc)
	writeDoc(t, dir, "notes.txt", "not a diagram")

	cfg := baseConfig(dir)
	a, out, logs := SetupAppTest(t, &cfg)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "Results: 2/2 files valid")
	assert.NotContains(t, out.String(), "notes.txt")
	assert.Contains(t, logs.String(), "Files discovered.")
}

func TestRun_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	good := writeDoc(t, dir, "good.drawio", validDoc)
	bad := writeDoc(t, dir, "bad.drawio", danglingDoc)

	cfg := baseConfig(good, bad)
	a, out, _ := SetupAppTest(t, &cfg)

	err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, out.String(), "✗ INVALID "+bad)
	assert.Contains(t, out.String(), "✓ VALID   "+good)
	assert.Contains(t, out.String(), "(dangling-edge-target)")
	assert.Contains(t, out.String(), "Results: 1/2 files valid")
}

func TestRun_WarningsDoNotFail(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "paged.drawio", pagedDoc)

	cfg := baseConfig(path)
	a, out, _ := SetupAppTest(t, &cfg)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "(fixed-page-layout)")
}

func TestRun_DisabledWarning(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "paged.drawio", pagedDoc)

	cfg := baseConfig(path)
	cfg.Disabled = []report.Code{report.CodeFixedPageLayout}
	a, out, _ := SetupAppTest(t, &cfg)

	require.NoError(t, a.Run(context.Background()))
	assert.NotContains(t, out.String(), "fixed-page-layout")
}

func TestRun_EnabledDeclarationCheck(t *testing.T) {
	dir := t.TempDir()
	bare := writeDoc(t, dir, "bare.drawio",
		`<mxfile><diagram name="P"><mxGraphModel><root><mxCell id="0"/><mxCell id="1" parent="0"/></root></mxGraphModel></diagram></mxfile>`)

	cfg := baseConfig(bare)
	a, out, _ := SetupAppTest(t, &cfg)
	require.NoError(t, a.Run(context.Background()))
	assert.NotContains(t, out.String(), "missing-xml-declaration")

	cfg = baseConfig(bare)
	cfg.Enabled = []report.Code{report.CodeMissingXMLDeclaration}
	a, out, _ = SetupAppTest(t, &cfg)
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "(missing-xml-declaration)")
}

func TestRun_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "bad.drawio", danglingDoc)

	cfg := baseConfig(path)
	cfg.Format = "json"
	a, out, _ := SetupAppTest(t, &cfg)

	require.ErrorIs(t, a.Run(context.Background()), ErrInvalid)

	var got struct {
		Files []struct {
			File   string `json:"file"`
			Passed bool   `json:"passed"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.String()), &got))
	require.Len(t, got.Files, 1)
	assert.Equal(t, path, got.Files[0].File)
	assert.False(t, got.Files[0].Passed)
}

func TestRun_NoFiles(t *testing.T) {
	cfg := baseConfig(filepath.Join(t.TempDir(), "missing"))
	a, out, logs := SetupAppTest(t, &cfg)

	require.ErrorIs(t, a.Run(context.Background()), ErrNoFiles)
	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "Path does not exist")
}
