package mxfile

import "strings"

// Kind is the role of a cell in the graph, decided once at load time.
type Kind int

const (
	// KindUntyped marks a non-foundation cell that declares neither or both
	// of the vertex and edge flags.
	KindUntyped Kind = iota
	KindFoundation
	KindVertex
	KindEdge
)

// Position is a 1-based line and byte column in the loaded text.
type Position struct {
	Line   int
	Column int
}

// Geometry is the mxGeometry attachment of a cell. Only the marker matters
// for validity; coordinates are not retained.
type Geometry struct {
	Marker    string
	HasMarker bool
}

// Marked reports whether the geometry carries as="geometry".
func (g *Geometry) Marked() bool {
	return g.HasMarker && g.Marker == "geometry"
}

// Cell is one mxCell, merged with its UserObject/object wrapper if any.
type Cell struct {
	ID        string
	HasID     bool
	Parent    string
	HasParent bool
	Kind      Kind

	// Raw flags as declared. A flag is set only by the value "1".
	VertexFlag bool
	EdgeFlag   bool

	Value    string // decoded value (or wrapper label)
	HasValue bool
	RawValue string // value text exactly as written between the quotes
	Style    string

	// Edge endpoints. Empty when the attribute is absent.
	Source string
	Target string

	Geometry *Geometry
	Pos      Position
	Wrapper  string // "UserObject", "object" or empty
}

// IsRoot reports whether c is the root foundation cell: id "0", no parent.
func (c *Cell) IsRoot() bool {
	return c.ID == "0" && !c.HasParent
}

// IsDefaultLayer reports whether c is the default layer: id "1", parent "0".
func (c *Cell) IsDefaultLayer() bool {
	return c.ID == "1" && c.HasParent && c.Parent == "0"
}

// StyleValue looks up key in the semicolon-separated key=value style.
// Bare entries such as "ellipse" are reported with an empty value.
func (c *Cell) StyleValue(key string) (string, bool) {
	for _, part := range strings.Split(c.Style, ";") {
		k, v, _ := strings.Cut(strings.TrimSpace(part), "=")
		if k == key {
			return v, true
		}
	}
	return "", false
}

// HTMLLabel reports whether the style declares html=1, which makes the
// renderer interpret the value as markup.
func (c *Cell) HTMLLabel() bool {
	v, ok := c.StyleValue("html")
	return ok && v == "1"
}

func classify(c *Cell) Kind {
	if c.IsRoot() || c.IsDefaultLayer() {
		return KindFoundation
	}
	switch {
	case c.VertexFlag && !c.EdgeFlag:
		return KindVertex
	case c.EdgeFlag && !c.VertexFlag:
		return KindEdge
	}
	return KindUntyped
}

// PageMode is the canvas mode declared by an mxGraphModel.
type PageMode int

const (
	PageModeUnbounded PageMode = iota
	PageModePaged
)

// Layout holds the mxGraphModel attributes relevant to rendering.
type Layout struct {
	Page       string
	Grid       string
	GridSize   string
	PageWidth  string
	PageHeight string
}

// Mode returns PageModePaged only for an explicit page="1".
func (l Layout) Mode() PageMode {
	if l.Page == "1" {
		return PageModePaged
	}
	return PageModeUnbounded
}

// Diagram is one page of a document.
type Diagram struct {
	Index      int
	Name       string
	ID         string
	Compressed bool
	Layout     Layout
	Cells      []Cell
}

// Label names the page in reports. It is empty for an anonymous page.
func (d *Diagram) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// Document is the parsed form of one input text.
type Document struct {
	HasDeclaration bool
	Diagrams       []Diagram
}

// CellCount returns the number of cells across all pages.
func (d *Document) CellCount() int {
	n := 0
	for i := range d.Diagrams {
		n += len(d.Diagrams[i].Cells)
	}
	return n
}
