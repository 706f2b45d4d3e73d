package mxfile

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/specialistvlad/drawcheck/internal/report"
)

// Load parses text into a Document. The returned error is a *PrescanError
// or a *ParseError; both match ErrParse.
func Load(text string) (*Document, error) {
	if err := Prescan(text); err != nil {
		return nil, err
	}

	src, err := toUTF8(text)
	if err != nil {
		return nil, &ParseError{Code: report.CodeMalformedXML, Msg: err.Error(), Err: err}
	}

	doc := &Document{HasDeclaration: hasDeclaration(src)}
	p := newParser(src)
	root, err := p.rootElement()
	if err != nil {
		return nil, err
	}

	switch root.Name.Local {
	case "mxfile":
		if err := p.mxfile(doc); err != nil {
			return nil, err
		}
	case "mxGraphModel":
		d := Diagram{}
		if err := p.graphModel(root, &d); err != nil {
			return nil, err
		}
		doc.Diagrams = append(doc.Diagrams, d)
	default:
		return nil, p.fail(report.CodeMissingEnvelope, nil,
			fmt.Sprintf("root element is <%s>, expected <mxfile> or <mxGraphModel>", root.Name.Local))
	}

	if err := p.trailer(); err != nil {
		return nil, err
	}
	return doc, nil
}

func hasDeclaration(text string) bool {
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), "<?xml")
}

var encodingDecl = regexp.MustCompile(`^\s*<\?xml[^>]*\bencoding\s*=\s*["']([A-Za-z0-9._-]+)["']`)

// toUTF8 transcodes text when its declaration names a non-UTF-8 encoding,
// so decoder offsets line up with the text the cells are sliced from.
func toUTF8(text string) (string, error) {
	m := encodingDecl.FindStringSubmatch(text)
	if m == nil {
		return text, nil
	}
	switch strings.ToLower(m[1]) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return text, nil
	}
	r, err := charset.NewReaderLabel(m[1], strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("unsupported encoding %q: %w", m[1], err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decoding %s text: %w", m[1], err)
	}
	return string(b), nil
}

type parser struct {
	src   string
	dec   *xml.Decoder
	lines lineIndex
}

func newParser(src string) *parser {
	dec := xml.NewDecoder(strings.NewReader(src))
	// The text is UTF-8 by now, whatever the declaration says.
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) { return in, nil }
	return &parser{src: src, dec: dec, lines: newLineIndex(src)}
}

// next returns the next token and the offset it starts at.
func (p *parser) next() (xml.Token, int, error) {
	start := int(p.dec.InputOffset())
	tok, err := p.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, start, p.fail(report.CodeMalformedXML, nil, "unexpected end of document")
		}
		return nil, start, p.syntax(err)
	}
	return tok, start, nil
}

func (p *parser) skip() error {
	if err := p.dec.Skip(); err != nil {
		return p.syntax(err)
	}
	return nil
}

func (p *parser) syntax(err error) error {
	line, col := p.dec.InputPos()
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		if se.Line > 0 && se.Line != line {
			line, col = se.Line, 0
		}
		return &ParseError{Code: report.CodeMalformedXML, Msg: se.Msg, Line: line, Column: col, Err: err}
	}
	return &ParseError{Code: report.CodeMalformedXML, Msg: err.Error(), Line: line, Column: col, Err: err}
}

func (p *parser) fail(code report.Code, at *Position, msg string) error {
	e := &ParseError{Code: code, Msg: msg}
	if at != nil {
		e.Line, e.Column = at.Line, at.Column
	} else {
		e.Line, e.Column = p.dec.InputPos()
	}
	return e
}

func (p *parser) rootElement() (xml.StartElement, error) {
	for {
		start := int(p.dec.InputOffset())
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			pos := p.lines.position(start)
			return xml.StartElement{}, p.fail(report.CodeMissingEnvelope, &pos, "document has no root element")
		}
		if err != nil {
			return xml.StartElement{}, p.syntax(err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

// trailer consumes everything after the root element, rejecting a second
// root.
func (p *parser) trailer() error {
	for {
		start := int(p.dec.InputOffset())
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return p.syntax(err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			pos := p.lines.position(start)
			return p.fail(report.CodeMalformedXML, &pos,
				fmt.Sprintf("unexpected <%s> after the root element", se.Name.Local))
		}
	}
}

func (p *parser) mxfile(doc *Document) error {
	for {
		tok, start, err := p.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "diagram" {
				if err := p.skip(); err != nil {
					return err
				}
				continue
			}
			d := Diagram{Index: len(doc.Diagrams)}
			d.Name, _ = attr(t, "name")
			d.ID, _ = attr(t, "id")
			if err := p.diagram(&d, p.lines.position(start)); err != nil {
				return err
			}
			doc.Diagrams = append(doc.Diagrams, d)
		case xml.EndElement:
			if len(doc.Diagrams) == 0 {
				return p.fail(report.CodeMissingDiagram, nil, "<mxfile> contains no <diagram> element")
			}
			return nil
		}
	}
}

func (p *parser) diagram(d *Diagram, at Position) error {
	var text strings.Builder
	found := false
	for {
		tok, _, err := p.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if !found {
				text.Write(t)
			}
		case xml.StartElement:
			if t.Name.Local != "mxGraphModel" || found {
				if err := p.skip(); err != nil {
					return err
				}
				continue
			}
			found = true
			if err := p.graphModel(t, d); err != nil {
				return err
			}
		case xml.EndElement:
			if found {
				return nil
			}
			return p.compressed(d, strings.TrimSpace(text.String()), at)
		}
	}
}

// compressed loads a page stored as compressed text inside <diagram>.
func (p *parser) compressed(d *Diagram, text string, at Position) error {
	if text == "" {
		return p.fail(report.CodeMissingGraphModel, &at,
			fmt.Sprintf("diagram %q has no <mxGraphModel>", d.Label()))
	}
	xmlText, err := inflateDiagram(text)
	if err != nil {
		return &ParseError{
			Code:   report.CodeUndecodableDiagram,
			Msg:    fmt.Sprintf("diagram %q: compressed content cannot be decoded: %v", d.Label(), err),
			Line:   at.Line,
			Column: at.Column,
			Err:    err,
		}
	}

	sub := newParser(xmlText)
	root, err := sub.rootElement()
	if err != nil {
		return nested(d, err)
	}
	if root.Name.Local != "mxGraphModel" {
		return &ParseError{
			Code: report.CodeMissingGraphModel,
			Msg:  fmt.Sprintf("diagram %q: compressed content is <%s>, expected <mxGraphModel>", d.Label(), root.Name.Local),
			Line: at.Line,
		}
	}
	d.Compressed = true
	if err := sub.graphModel(root, d); err != nil {
		return nested(d, err)
	}
	return nil
}

// nested prefixes errors from a compressed page so their line numbers are
// not mistaken for lines of the outer document.
func nested(d *Diagram, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		cp := *pe
		cp.Msg = fmt.Sprintf("diagram %q (decompressed, line %d): %s", d.Label(), pe.Line, pe.Msg)
		cp.Line, cp.Column = 0, 0
		return &cp
	}
	return err
}

func (p *parser) graphModel(se xml.StartElement, d *Diagram) error {
	d.Layout = Layout{}
	d.Layout.Page, _ = attr(se, "page")
	d.Layout.Grid, _ = attr(se, "grid")
	d.Layout.GridSize, _ = attr(se, "gridSize")
	d.Layout.PageWidth, _ = attr(se, "pageWidth")
	d.Layout.PageHeight, _ = attr(se, "pageHeight")

	found := false
	for {
		tok, _, err := p.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "root" || found {
				if err := p.skip(); err != nil {
					return err
				}
				continue
			}
			found = true
			if err := p.cells(d); err != nil {
				return err
			}
		case xml.EndElement:
			if !found {
				return p.fail(report.CodeMissingRootElement, nil,
					"<mxGraphModel> contains no <root> element")
			}
			return nil
		}
	}
}

func (p *parser) cells(d *Diagram) error {
	for {
		tok, start, err := p.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var c Cell
			switch t.Name.Local {
			case "mxCell":
				c, err = p.cell(t, start)
			case "UserObject", "object":
				c, err = p.userObject(t, start)
			default:
				err = p.skip()
				if err == nil {
					continue
				}
			}
			if err != nil {
				return err
			}
			c.Kind = classify(&c)
			d.Cells = append(d.Cells, c)
		case xml.EndElement:
			return nil
		}
	}
}

func (p *parser) rawTag(start int) string {
	end := int(p.dec.InputOffset())
	if start < 0 || end > len(p.src) || start > end {
		return ""
	}
	return p.src[start:end]
}

// cell reads an mxCell element. The start tag has just been consumed.
func (p *parser) cell(se xml.StartElement, start int) (Cell, error) {
	tag := p.rawTag(start)
	c := Cell{Pos: p.lines.position(start)}
	c.ID, c.HasID = attr(se, "id")
	c.Parent, c.HasParent = attr(se, "parent")
	c.Value, c.HasValue = attr(se, "value")
	if c.HasValue {
		c.RawValue, _ = rawAttr(tag, "value")
	}
	c.Style, _ = attr(se, "style")
	c.Source, _ = attr(se, "source")
	c.Target, _ = attr(se, "target")
	v, _ := attr(se, "vertex")
	e, _ := attr(se, "edge")
	c.VertexFlag, c.EdgeFlag = v == "1", e == "1"

	for {
		tok, _, err := p.next()
		if err != nil {
			return c, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "mxGeometry" && c.Geometry == nil {
				g := &Geometry{}
				g.Marker, g.HasMarker = attr(t, "as")
				c.Geometry = g
			}
			if err := p.skip(); err != nil {
				return c, err
			}
		case xml.EndElement:
			return c, nil
		}
	}
}

// userObject reads a UserObject or object wrapper. The wrapper owns the id
// and the label; the nested mxCell owns everything else.
func (p *parser) userObject(se xml.StartElement, start int) (Cell, error) {
	tag := p.rawTag(start)
	var c Cell
	seen := false

	for {
		tok, innerStart, err := p.next()
		if err != nil {
			return c, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "mxCell" || seen {
				if err := p.skip(); err != nil {
					return c, err
				}
				continue
			}
			seen = true
			if c, err = p.cell(t, innerStart); err != nil {
				return c, err
			}
		case xml.EndElement:
			c.Pos = p.lines.position(start)
			c.Wrapper = se.Name.Local
			c.ID, c.HasID = attr(se, "id")
			c.Value, c.HasValue = attr(se, "label")
			c.RawValue = ""
			if c.HasValue {
				c.RawValue, _ = rawAttr(tag, "label")
			}
			return c, nil
		}
	}
}
