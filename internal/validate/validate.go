package validate

import (
	"errors"

	"github.com/specialistvlad/drawcheck/internal/mxfile"
	"github.com/specialistvlad/drawcheck/internal/registry"
	"github.com/specialistvlad/drawcheck/internal/report"
)

// Validator runs all passes with a fixed set of options.
type Validator struct {
	disabled map[report.Code]bool
	enabled  map[report.Code]bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithDisabled turns off the given hygiene warnings. Codes of blocking
// checks are ignored: they cannot be disabled.
func WithDisabled(codes ...report.Code) Option {
	return func(v *Validator) {
		for _, code := range codes {
			if report.IsWarningCode(code) {
				v.disabled[code] = true
			}
		}
	}
}

// WithEnabled turns on opt-in hygiene warnings such as
// missing-xml-declaration. Other codes are ignored. Disabling wins over
// enabling.
func WithEnabled(codes ...report.Code) Option {
	return func(v *Validator) {
		for _, code := range codes {
			if report.IsOptInCode(code) {
				v.enabled[code] = true
			}
		}
	}
}

// New returns a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		disabled: make(map[report.Code]bool),
		enabled:  make(map[report.Code]bool),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// silenced reports whether hygiene warnings with code are suppressed.
func (v *Validator) silenced(code report.Code) bool {
	if v.disabled[code] {
		return true
	}
	return report.IsOptInCode(code) && !v.enabled[code]
}

var defaultValidator = New()

// Validate checks text with default options.
func Validate(text string) *report.Report {
	return defaultValidator.Validate(text)
}

// Validate loads and checks text.
func (v *Validator) Validate(text string) *report.Report {
	doc, err := mxfile.Load(text)
	if err != nil {
		return FromError(err)
	}
	return v.Check(doc)
}

// Check runs the three passes over a loaded document.
func (v *Validator) Check(doc *mxfile.Document) *report.Report {
	var structural, integrity, hygiene report.Collector

	registries := make([]*registry.Registry, len(doc.Diagrams))
	for i := range doc.Diagrams {
		registries[i] = registry.New(&doc.Diagrams[i])
		checkStructure(registries[i], &structural)
	}
	for _, r := range registries {
		checkIntegrity(r, &integrity)
	}
	h := hygieneChecker{c: &hygiene, silenced: v.silenced}
	h.check(doc)

	rep := report.Merge(&structural, &integrity, &hygiene)
	rep.Diagrams = len(doc.Diagrams)
	rep.Cells = doc.CellCount()
	return rep
}

// FromError converts a load failure into a one-issue report.
func FromError(err error) *report.Report {
	var issue report.Issue
	var pre *mxfile.PrescanError
	var pe *mxfile.ParseError
	switch {
	case errors.As(err, &pre):
		issue = pre.Issue()
	case errors.As(err, &pe):
		issue = pe.Issue()
	default:
		issue = report.Issue{Severity: report.SeverityError, Code: report.CodeMalformedXML, Message: err.Error()}
	}
	var c report.Collector
	c.Add(issue)
	return report.Merge(&c)
}
