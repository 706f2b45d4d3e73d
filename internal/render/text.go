package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/specialistvlad/drawcheck/internal/executor"
	"github.com/specialistvlad/drawcheck/internal/report"
)

type paint func(string) string

func plain(s string) string { return s }

type styles struct {
	valid, invalid, errLabel, warnLabel, path, summary paint
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		return styles{plain, plain, plain, plain, plain, plain}
	}
	r := lipgloss.NewRenderer(w)
	with := func(s lipgloss.Style) paint {
		return func(text string) string { return s.Render(text) }
	}
	return styles{
		valid:     with(r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)),
		invalid:   with(r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)),
		errLabel:  with(r.NewStyle().Foreground(lipgloss.Color("1"))),
		warnLabel: with(r.NewStyle().Foreground(lipgloss.Color("3"))),
		path:      with(r.NewStyle().Bold(true)),
		summary:   with(r.NewStyle().Bold(true)),
	}
}

func writeText(w io.Writer, results []executor.Result, color bool) error {
	st := newStyles(w, color)
	bw := bufio.NewWriter(w)

	for _, r := range results {
		rep := r.Report
		if rep.Passed() {
			fmt.Fprintf(bw, "%s %s\n", st.valid("✓ VALID  "), st.path(r.Path))
		} else {
			fmt.Fprintf(bw, "%s %s\n", st.invalid("✗ INVALID"), st.path(r.Path))
		}
		for _, i := range rep.Filter(report.SeverityError) {
			fmt.Fprintf(bw, "    %s %s\n", st.errLabel("error  "), i)
		}
		for _, i := range rep.Filter(report.SeverityWarning) {
			fmt.Fprintf(bw, "    %s %s\n", st.warnLabel("warning"), i)
		}
	}

	s := Summarize(results)
	if s.Files > 0 {
		fmt.Fprintln(bw)
	}
	line := fmt.Sprintf("Results: %d/%d files valid", s.Passed, s.Files)
	fmt.Fprintf(bw, "%s (%s checked, %s, %s)\n",
		st.summary(line),
		countOf(s.Cells, "cell"),
		countOf(s.Errors, "error"),
		countOf(s.Warnings, "warning"),
	)
	return bw.Flush()
}

// countOf renders n with thousands separators and a matching noun.
func countOf(n int, noun string) string {
	return humanize.Comma(int64(n)) + " " + english.PluralWord(n, noun, "")
}
