package mxfile

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/drawcheck/internal/report"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrParse is matched by every loading failure.
	ErrParse = errors.New("parse error")

	// ErrPrescan is matched only by failures found before decoding.
	ErrPrescan = errors.New("suspect markup")
)

// ParseError is a failure reported by the XML decoder or by the envelope
// checks that follow it.
type ParseError struct {
	Code   report.Code
	Msg    string
	Line   int // 0 when unknown
	Column int
	Err    error // underlying decoder error, if any
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return formatLocated(ErrParse.Error(), e.Line, e.Column, e.Msg)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}
	return []error{ErrParse}
}

// Issue converts the error into a report entry.
func (e *ParseError) Issue() report.Issue {
	msg := e.Msg
	if e.Column > 0 {
		msg = fmt.Sprintf("column %d: %s", e.Column, msg)
	}
	return report.Issue{Severity: report.SeverityError, Code: e.Code, Message: msg, Line: e.Line}
}

// PrescanError is a likely hand-editing mistake found before decoding. It
// matches both ErrPrescan and ErrParse.
type PrescanError struct {
	Code   report.Code
	Msg    string
	Hint   string
	Line   int
	Column int
}

func (e *PrescanError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Msg
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return formatLocated(ErrPrescan.Error(), e.Line, e.Column, msg)
}

func (e *PrescanError) Unwrap() []error { return []error{ErrPrescan, ErrParse} }

// Issue converts the error into a report entry.
func (e *PrescanError) Issue() report.Issue {
	msg := fmt.Sprintf("column %d: %s", e.Column, e.Msg)
	if e.Hint != "" {
		msg += "; " + e.Hint
	}
	return report.Issue{Severity: report.SeverityError, Code: e.Code, Message: msg, Line: e.Line}
}

func formatLocated(prefix string, line, col int, msg string) string {
	switch {
	case line > 0 && col > 0:
		return fmt.Sprintf("%s: line %d, column %d: %s", prefix, line, col, msg)
	case line > 0:
		return fmt.Sprintf("%s: line %d: %s", prefix, line, msg)
	default:
		return fmt.Sprintf("%s: %s", prefix, msg)
	}
}
