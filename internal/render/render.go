package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/specialistvlad/drawcheck/internal/executor"
	"github.com/specialistvlad/drawcheck/internal/report"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted values of the -format flag.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates a -format value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q: must be 'text', 'json' or 'yaml'", s)
}

// Options controls presentation.
type Options struct {
	Format Format
	Color  bool
}

// Write renders results to w.
func Write(w io.Writer, results []executor.Result, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatYAML:
		return writeYAML(w, results)
	case FormatText, "":
		return writeText(w, results, opts.Color)
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

// ColorEnabled reports whether styled output suits w: it must be a terminal,
// color must not be disabled, and NO_COLOR must be unset.
func ColorEnabled(w io.Writer, disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Summary totals a run.
type Summary struct {
	Files    int `json:"files" yaml:"files"`
	Passed   int `json:"passed" yaml:"passed"`
	Cells    int `json:"cells" yaml:"cells"`
	Errors   int `json:"errors" yaml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings"`
}

// Summarize counts files, cells and issues across results.
func Summarize(results []executor.Result) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Passed() {
			s.Passed++
		}
		s.Cells += r.Report.Cells
		s.Errors += r.Report.Count(report.SeverityError)
		s.Warnings += r.Report.Count(report.SeverityWarning)
	}
	return s
}
