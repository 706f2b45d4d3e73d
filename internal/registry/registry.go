package registry

import "github.com/specialistvlad/drawcheck/internal/mxfile"

// Registry is a read-only index over the cells of one diagram.
type Registry struct {
	diagram *mxfile.Diagram
	byID    map[string]int
	counts  map[string]int
	repeats map[int]bool
}

// New indexes d. It reports nothing itself; identifier problems are
// exposed per slot through MissingID and Duplicate so callers can report
// them in page order.
func New(d *mxfile.Diagram) *Registry {
	r := &Registry{
		diagram: d,
		byID:    make(map[string]int, len(d.Cells)),
		counts:  make(map[string]int, len(d.Cells)),
		repeats: make(map[int]bool),
	}

	for slot := range d.Cells {
		cell := &d.Cells[slot]
		if !cell.HasID || cell.ID == "" {
			continue
		}
		r.counts[cell.ID]++
		if r.counts[cell.ID] == 2 {
			r.repeats[slot] = true
		}
		if _, seen := r.byID[cell.ID]; !seen {
			r.byID[cell.ID] = slot
		}
	}

	return r
}

// MissingID reports whether the cell in slot has no usable id.
func (r *Registry) MissingID(slot int) bool {
	c := &r.diagram.Cells[slot]
	return !c.HasID || c.ID == ""
}

// Duplicate reports whether slot holds the second occurrence of a repeated
// id. Only that occurrence matches, so each id is reported once. It also
// returns the total count and the slot of the first occurrence.
func (r *Registry) Duplicate(slot int) (count, first int, ok bool) {
	if !r.repeats[slot] {
		return 0, 0, false
	}
	id := r.diagram.Cells[slot].ID
	return r.counts[id], r.byID[id], true
}

// Element names the element a cell was read from, for messages.
func Element(c *mxfile.Cell) string {
	if c.Wrapper != "" {
		return c.Wrapper
	}
	return "mxCell"
}
// Diagram returns the indexed page.
func (r *Registry) Diagram() *mxfile.Diagram {
	return r.diagram
}

// Len returns the number of cells, indexed or not.
func (r *Registry) Len() int {
	return len(r.diagram.Cells)
}

// Cell returns the cell in slot.
func (r *Registry) Cell(slot int) *mxfile.Cell {
	return &r.diagram.Cells[slot]
}

// Lookup resolves id to the slot of its first occurrence.
func (r *Registry) Lookup(id string) (int, bool) {
	slot, ok := r.byID[id]
	return slot, ok
}

// Has reports whether id resolves.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}
