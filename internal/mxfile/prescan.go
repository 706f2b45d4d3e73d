package mxfile

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/drawcheck/internal/report"
)

// Prescan looks for markup mistakes that reliably break XML parsing with a
// generic message, and reports the first one with its location:
//
//   - an unescaped double quote inside an attribute value, which closes the
//     value early (value="say "hi"")
//   - a raw '<' inside an attribute value
//   - an '&' that does not start a character or entity reference
//
// Comments, CDATA sections, processing instructions and declarations are
// skipped. A nil result does not mean the text is well-formed.
func Prescan(text string) error {
	s := &scanner{text: text}
	return s.run()
}

type scanner struct {
	text  string
	lines lineIndex
}

func (s *scanner) run() error {
	n := len(s.text)
	for i := 0; i < n; {
		switch s.text[i] {
		case '<':
			if skip, ok := s.skipSpecial(i); ok {
				if skip < 0 {
					return nil
				}
				i = skip
				continue
			}
			next, err := s.tag(i)
			if err != nil || next < 0 {
				return err
			}
			i = next
			continue
		case '&':
			if !IsReference(s.text[i:]) {
				return s.fail(report.CodeUnescapedAmpersand, i,
					"'&' does not start an entity or character reference",
					"write &amp; or reword the text")
			}
		}
		i++
	}
	return nil
}

var specialSections = []struct{ open, close string }{
	{"<!--", "-->"},
	{"<![CDATA[", "]]>"},
	{"<?", "?>"},
	{"<!", ">"},
}

// skipSpecial returns the offset after a comment, CDATA section, processing
// instruction or declaration starting at i. ok is false when none starts at
// i; the offset is -1 when the section is unterminated.
func (s *scanner) skipSpecial(i int) (int, bool) {
	for _, sec := range specialSections {
		if !strings.HasPrefix(s.text[i:], sec.open) {
			continue
		}
		end := strings.Index(s.text[i+len(sec.open):], sec.close)
		if end < 0 {
			return -1, true
		}
		return i + len(sec.open) + end + len(sec.close), true
	}
	return 0, false
}

// tag scans a start or end tag beginning at i and returns the offset after
// it, or -1 when the tag never closes.
func (s *scanner) tag(i int) (int, error) {
	n := len(s.text)
	for k := i + 1; k < n; k++ {
		switch c := s.text[k]; c {
		case '>':
			return k + 1, nil
		case '<':
			return k, nil
		case '"', '\'':
			name := attrNameBefore(s.text, k)
			k++
			for ; k < n && s.text[k] != c; k++ {
				switch s.text[k] {
				case '<':
					return 0, s.fail(report.CodeUnescapedLtInAttribute, k,
						fmt.Sprintf("raw '<' inside attribute %q", name),
						"write &lt; or, for a line break in a label, &lt;br&gt; with html=1 in the style")
				case '&':
					if !IsReference(s.text[k:]) {
						return 0, s.fail(report.CodeUnescapedAmpersand, k,
							fmt.Sprintf("'&' inside attribute %q does not start an entity or character reference", name),
							"write &amp; or reword the text")
					}
				}
			}
			if k >= n {
				return -1, nil
			}
			if k+1 < n && !endsAttribute(s.text[k+1]) {
				return 0, s.fail(report.CodeUnescapedQuoteInAttribute, k,
					fmt.Sprintf("quote closes attribute %q early; the value probably contains an unescaped quote", name),
					"write &quot; inside attribute values")
			}
		}
	}
	return -1, nil
}

func (s *scanner) fail(code report.Code, offset int, msg, hint string) error {
	if s.lines == nil {
		s.lines = newLineIndex(s.text)
	}
	pos := s.lines.position(offset)
	return &PrescanError{Code: code, Msg: msg, Hint: hint, Line: pos.Line, Column: pos.Column}
}

// attrNameBefore returns the attribute name preceding the quote at q, as in
// name="...".
func attrNameBefore(text string, q int) string {
	k := q - 1
	for k >= 0 && isSpace(text[k]) {
		k--
	}
	if k < 0 || text[k] != '=' {
		return ""
	}
	k--
	for k >= 0 && isSpace(text[k]) {
		k--
	}
	end := k + 1
	for k >= 0 && !isSpace(text[k]) && text[k] != '<' && text[k] != '"' && text[k] != '\'' {
		k--
	}
	return text[k+1 : end]
}

func endsAttribute(c byte) bool {
	return isSpace(c) || c == '/' || c == '>' || c == '?'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

const maxReferenceLen = 40

// IsReference reports whether s, which starts with '&', begins with a
// well-formed reference: &name;, &#digits; or &#xhex;. Only the first 40
// bytes of s are examined.
func IsReference(s string) bool {
	if len(s) > maxReferenceLen {
		s = s[:maxReferenceLen]
	}
	end := strings.IndexByte(s, ';')
	if end < 2 {
		return false
	}
	body := s[1:end]
	if body[0] == '#' {
		digits, isDigit := body[1:], isDecimal
		if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
			digits, isDigit = digits[1:], isHex
		}
		if digits == "" {
			return false
		}
		for i := 0; i < len(digits); i++ {
			if !isDigit(digits[i]) {
				return false
			}
		}
		return true
	}
	if !isNameStart(body[0]) {
		return false
	}
	for i := 1; i < len(body); i++ {
		if !isNameStart(body[i]) && !isDecimal(body[i]) && body[i] != '-' && body[i] != '.' {
			return false
		}
	}
	return true
}

func isDecimal(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == ':'
}
