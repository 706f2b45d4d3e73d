package report

import (
	"fmt"
	"strings"
)

// Severity classifies an Issue. Only SeverityError affects the verdict.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns the lowercase severity name used in all output formats.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return fmt.Errorf("unknown severity %q", string(b))
	}
	return nil
}

// Issue is a single finding about a document.
type Issue struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Code     Code     `json:"code" yaml:"code"`
	Message  string   `json:"message" yaml:"message"`
	CellID   string   `json:"cell,omitempty" yaml:"cell,omitempty"`
	Diagram  string   `json:"diagram,omitempty" yaml:"diagram,omitempty"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
}

// String renders the issue on one line, e.g. "line 12: cell 'e1': ...".
func (i Issue) String() string {
	var sb strings.Builder
	if i.Diagram != "" {
		fmt.Fprintf(&sb, "[%s] ", i.Diagram)
	}
	if i.Line > 0 {
		fmt.Fprintf(&sb, "line %d: ", i.Line)
	}
	if i.CellID != "" {
		fmt.Fprintf(&sb, "cell '%s': ", i.CellID)
	}
	sb.WriteString(i.Message)
	fmt.Fprintf(&sb, " (%s)", i.Code)
	return sb.String()
}
