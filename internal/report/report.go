package report

import "fmt"

// Collector accumulates issues for one validation pass. The zero value is
// ready to use. A Collector is not safe for concurrent use; each pass owns
// its own.
type Collector struct {
	issues []Issue
}

// Add appends an issue.
func (c *Collector) Add(i Issue) {
	c.issues = append(c.issues, i)
}

// Errorf appends an error-severity issue.
func (c *Collector) Errorf(code Code, diagram, cellID string, line int, format string, args ...any) {
	c.Add(Issue{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		CellID:   cellID,
		Diagram:  diagram,
		Line:     line,
	})
}

// Warnf appends a warning-severity issue.
func (c *Collector) Warnf(code Code, diagram, cellID string, line int, format string, args ...any) {
	c.Add(Issue{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		CellID:   cellID,
		Diagram:  diagram,
		Line:     line,
	})
}

// Len returns the number of collected issues.
func (c *Collector) Len() int {
	return len(c.issues)
}

// Report is the ordered outcome of validating one document.
type Report struct {
	Issues []Issue `json:"issues" yaml:"issues"`

	// Size of the checked document. Both are zero when loading failed.
	Diagrams int `json:"diagrams" yaml:"diagrams"`
	Cells    int `json:"cells" yaml:"cells"`
}

// Merge builds a Report from collectors, concatenated in the given order.
func Merge(collectors ...*Collector) *Report {
	n := 0
	for _, c := range collectors {
		n += c.Len()
	}
	r := &Report{Issues: make([]Issue, 0, n)}
	for _, c := range collectors {
		r.Issues = append(r.Issues, c.issues...)
	}
	return r
}

// Passed reports whether the report holds no error-severity issue.
func (r *Report) Passed() bool {
	return r.Count(SeverityError) == 0
}

// Count returns how many issues have the given severity.
func (r *Report) Count(s Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// Filter returns the issues with the given severity, preserving order.
func (r *Report) Filter(s Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// Has reports whether an issue with code exists, optionally restricted to
// a cell identifier when cellID is not empty.
func (r *Report) Has(code Code, cellID string) bool {
	for _, i := range r.Issues {
		if i.Code == code && (cellID == "" || i.CellID == cellID) {
			return true
		}
	}
	return false
}
