package validate

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/specialistvlad/drawcheck/internal/mxfile"
	"github.com/specialistvlad/drawcheck/internal/report"
)

type hygieneChecker struct {
	c        *report.Collector
	silenced func(report.Code) bool
}

func (h *hygieneChecker) warn(code report.Code, diagram, cellID string, line int, format string, args ...any) {
	if h.silenced(code) {
		return
	}
	h.c.Warnf(code, diagram, cellID, line, format, args...)
}

func (h *hygieneChecker) check(doc *mxfile.Document) {
	if !doc.HasDeclaration {
		h.warn(report.CodeMissingXMLDeclaration, "", "", 1,
			`document does not start with <?xml version="1.0" encoding="UTF-8"?>`)
	}
	for i := range doc.Diagrams {
		d := &doc.Diagrams[i]
		if d.Layout.Mode() == mxfile.PageModePaged {
			h.warn(report.CodeFixedPageLayout, d.Label(), "", 0,
				`page="1" fixes the canvas to a printable page; page="0" gives an unbounded canvas`)
		}
		for j := range d.Cells {
			if d.Cells[j].HasValue {
				h.value(d.Label(), &d.Cells[j])
			}
		}
	}
}

func (h *hygieneChecker) value(label string, cell *mxfile.Cell) {
	line := cell.Pos.Line
	attr := "value"
	if cell.Wrapper != "" {
		attr = "label"
	}

	raw := cell.RawValue
	if raw == "" {
		raw = cell.Value
	}
	if strings.Contains(raw, `\n`) {
		h.warn(report.CodeLiteralNewlineInValue, label, cell.ID, line,
			`%s contains a literal \n; write &#xa; for a line break, or <br> with html=1`, attr)
	}
	if strings.ContainsAny(cell.RawValue, "\r\n") {
		h.warn(report.CodeMultilineValueAttribute, label, cell.ID, line,
			"%s spans several lines in the file; keep it on one line and encode breaks as &#xa;", attr)
	}

	htmlLabel := cell.HTMLLabel()
	br, others := scanTags(cell.Value)
	if br > 0 && !htmlLabel {
		h.warn(report.CodeUnsafeBrWithoutHTMLFlag, label, cell.ID, line,
			"%s contains <br> but the style lacks html=1, so the tag is shown as text", attr)
	}
	if len(others) > 0 {
		tags := "<" + strings.Join(others, ">, <") + ">"
		if htmlLabel {
			h.warn(report.CodeUnsupportedMarkupInValue, label, cell.ID, line,
				"%s uses %s; only <br> is expected in labels", attr, tags)
		} else {
			h.warn(report.CodeMarkupWithoutHTMLFlag, label, cell.ID, line,
				"%s contains %s but the style lacks html=1", attr, tags)
		}
	}

	if hasBareAmpersand(cell.Value) {
		h.warn(report.CodeUnescapedAmpersandInValue, label, cell.ID, line,
			"%s contains a bare '&'; write 'and' or double-escape it as &amp;amp;", attr)
	}
	if !htmlLabel && br == 0 && len(others) == 0 && strings.Contains(cell.Value, ">") {
		h.warn(report.CodeAngleBracketInValue, label, cell.ID, line,
			"%s contains '>'; consider 'greater than' or an arrow character", attr)
	}
}

// scanTags counts <br> tags in s and returns the other tag names found,
// sorted and deduplicated.
func scanTags(s string) (br int, others []string) {
	if !strings.Contains(s, "<") {
		return 0, nil
	}
	seen := make(map[string]bool)
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a tokenizer error; either way the value is exhausted.
			sort.Strings(others)
			return br, others
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "br" {
				br++
				continue
			}
			if !seen[tag] {
				seen[tag] = true
				others = append(others, tag)
			}
		}
	}
}

func hasBareAmpersand(s string) bool {
	for i := strings.IndexByte(s, '&'); i >= 0; {
		if !mxfile.IsReference(s[i:]) {
			return true
		}
		next := strings.IndexByte(s[i+1:], '&')
		if next < 0 {
			return false
		}
		i += next + 1
	}
	return false
}
