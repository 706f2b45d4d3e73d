package render

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/drawcheck/internal/executor"
	"github.com/specialistvlad/drawcheck/internal/report"
)

type fileOutput struct {
	File     string         `json:"file" yaml:"file"`
	Passed   bool           `json:"passed" yaml:"passed"`
	Diagrams int            `json:"diagrams" yaml:"diagrams"`
	Cells    int            `json:"cells" yaml:"cells"`
	Issues   []report.Issue `json:"issues" yaml:"issues"`
}

type runOutput struct {
	Files   []fileOutput `json:"files" yaml:"files"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

func toOutput(results []executor.Result) runOutput {
	out := runOutput{
		Files:   make([]fileOutput, 0, len(results)),
		Summary: Summarize(results),
	}
	for _, r := range results {
		issues := r.Report.Issues
		if issues == nil {
			issues = []report.Issue{}
		}
		out.Files = append(out.Files, fileOutput{
			File:     r.Path,
			Passed:   r.Passed(),
			Diagrams: r.Report.Diagrams,
			Cells:    r.Report.Cells,
			Issues:   issues,
		})
	}
	return out
}

func writeJSON(w io.Writer, results []executor.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toOutput(results))
}

func writeYAML(w io.Writer, results []executor.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toOutput(results)); err != nil {
		return err
	}
	return enc.Close()
}
