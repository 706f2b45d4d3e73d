package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/drawcheck/internal/executor"
	"github.com/specialistvlad/drawcheck/internal/report"
)

func sampleResults() []executor.Result {
	return []executor.Result{
		{
			Path:   "a.drawio",
			Report: &report.Report{Issues: []report.Issue{}, Diagrams: 1, Cells: 2},
		},
		{
			Path: "b.drawio",
			Report: &report.Report{
				Issues: []report.Issue{
					{Severity: report.SeverityWarning, Code: report.CodeFixedPageLayout, Message: "page is fixed", Diagram: "P"},
					{Severity: report.SeverityError, Code: report.CodeDanglingParent, Message: "parent 'y' does not exist", CellID: "x", Diagram: "P", Line: 3},
				},
				Diagrams: 1,
				Cells:    1234,
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "JSON", "yaml"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestSummarize(t *testing.T) {
	got := Summarize(sampleResults())

	expected := Summary{Files: 2, Passed: 1, Cells: 1236, Errors: 1, Warnings: 1}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResults(), Options{Format: FormatText}))

	expected := "✓ VALID   a.drawio\n" +
		"✗ INVALID b.drawio\n" +
		"    error   [P] line 3: cell 'x': parent 'y' does not exist (dangling-parent)\n" +
		"    warning [P] page is fixed (fixed-page-layout)\n" +
		"\n" +
		"Results: 1/2 files valid (1,236 cells checked, 1 error, 1 warning)\n"
	assert.Equal(t, expected, buf.String())
}

func TestWrite_TextNoFiles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, Options{}))

	assert.Equal(t, "Results: 0/0 files valid (0 cells checked, 0 errors, 0 warnings)\n", buf.String())
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResults(), Options{Format: FormatJSON}))

	var got struct {
		Files []struct {
			File   string `json:"file"`
			Passed bool   `json:"passed"`
			Cells  int    `json:"cells"`
			Issues []struct {
				Severity string `json:"severity"`
				Code     string `json:"code"`
				Cell     string `json:"cell"`
				Line     int    `json:"line"`
			} `json:"issues"`
		} `json:"files"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	require.Len(t, got.Files, 2)
	assert.Equal(t, "a.drawio", got.Files[0].File)
	assert.True(t, got.Files[0].Passed)
	assert.NotNil(t, got.Files[0].Issues)
	assert.Empty(t, got.Files[0].Issues)
	assert.False(t, got.Files[1].Passed)
	require.Len(t, got.Files[1].Issues, 2)
	assert.Equal(t, "warning", got.Files[1].Issues[0].Severity)
	assert.Equal(t, "error", got.Files[1].Issues[1].Severity)
	assert.Equal(t, "dangling-parent", got.Files[1].Issues[1].Code)
	assert.Equal(t, "x", got.Files[1].Issues[1].Cell)
	assert.Equal(t, 3, got.Files[1].Issues[1].Line)
	assert.Equal(t, 1236, got.Summary.Cells)
	assert.Contains(t, buf.String(), `"issues": []`)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResults(), Options{Format: FormatYAML}))

	var got struct {
		Files []struct {
			File   string `yaml:"file"`
			Passed bool   `yaml:"passed"`
			Issues []struct {
				Severity string `yaml:"severity"`
				Code     string `yaml:"code"`
			} `yaml:"issues"`
		} `yaml:"files"`
		Summary Summary `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	require.Len(t, got.Files, 2)
	assert.Equal(t, "b.drawio", got.Files[1].File)
	require.Len(t, got.Files[1].Issues, 2)
	assert.Equal(t, "error", got.Files[1].Issues[1].Severity)
	assert.Equal(t, 1, got.Summary.Passed)
	assert.Contains(t, buf.String(), "severity: warning")
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, ColorEnabled(&buf, false))
	assert.False(t, ColorEnabled(&buf, true))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(&buf, false))
}
