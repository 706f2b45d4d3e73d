package validate

import (
	"strings"

	"github.com/specialistvlad/drawcheck/internal/mxfile"
	"github.com/specialistvlad/drawcheck/internal/registry"
	"github.com/specialistvlad/drawcheck/internal/report"
)

// checkStructure reports the page-level foundation checks first, then
// every per-cell problem in page order.
func checkStructure(r *registry.Registry, c *report.Collector) {
	d := r.Diagram()
	label := d.Label()

	var hasRoot, hasLayer bool
	for i := range d.Cells {
		hasRoot = hasRoot || d.Cells[i].IsRoot()
		hasLayer = hasLayer || d.Cells[i].IsDefaultLayer()
	}
	if !hasRoot {
		c.Errorf(report.CodeMissingRootCell, label, "", 0,
			`no root cell: expected <mxCell id="0"/> without a parent`)
	}
	if !hasLayer {
		c.Errorf(report.CodeMissingDefaultLayer, label, "", 0,
			`no default layer: expected <mxCell id="1" parent="0"/>`)
	}

	cycles := parentCycles(r)
	for slot := 0; slot < r.Len(); slot++ {
		cell := r.Cell(slot)
		line := cell.Pos.Line

		if r.MissingID(slot) {
			c.Errorf(report.CodeMissingCellID, label, "", line,
				"%s cell has no id attribute", registry.Element(cell))
		}
		if count, first, ok := r.Duplicate(slot); ok {
			c.Errorf(report.CodeDuplicateID, label, cell.ID, line,
				"id '%s' is used by %d cells (first on line %d)", cell.ID, count, r.Cell(first).Pos.Line)
		}

		if cell.Kind != mxfile.KindFoundation {
			switch {
			case !cell.HasParent:
				c.Errorf(report.CodeDanglingParent, label, cell.ID, line,
					"cell has no parent attribute")
			case !r.Has(cell.Parent):
				c.Errorf(report.CodeDanglingParent, label, cell.ID, line,
					"parent '%s' does not exist", cell.Parent)
			}
			if cell.Kind == mxfile.KindUntyped {
				if cell.VertexFlag && cell.EdgeFlag {
					c.Errorf(report.CodeMissingTypeFlag, label, cell.ID, line,
						`cell declares both vertex="1" and edge="1"`)
				} else {
					c.Errorf(report.CodeMissingTypeFlag, label, cell.ID, line,
						`cell declares neither vertex="1" nor edge="1"`)
				}
			}
		}

		if members, ok := cycles[slot]; ok {
			ids := make([]string, 0, len(members)+1)
			for _, m := range members {
				ids = append(ids, "'"+r.Cell(m).ID+"'")
			}
			ids = append(ids, ids[0])
			c.Errorf(report.CodeCyclicParentChain, label, cell.ID, line,
				"parent chain loops: %s", strings.Join(ids, " -> "))
		}
	}
}

// parentCycles finds every loop in the parent relation. Each loop is keyed
// by its lowest slot and lists its members starting there, in child to
// parent order.
func parentCycles(r *registry.Registry) map[int][]int {
	const (
		unvisited = iota
		onPath
		finished
	)
	state := make([]uint8, r.Len())
	cycles := make(map[int][]int)

	for start := 0; start < r.Len(); start++ {
		if state[start] != unvisited {
			continue
		}
		var path []int
		for slot := start; ; {
			if state[slot] == finished {
				break
			}
			if state[slot] == onPath {
				addCycle(cycles, path, slot)
				break
			}
			state[slot] = onPath
			path = append(path, slot)

			cell := r.Cell(slot)
			if !cell.HasParent {
				break
			}
			next, ok := r.Lookup(cell.Parent)
			if !ok {
				break
			}
			slot = next
		}
		for _, s := range path {
			state[s] = finished
		}
	}
	return cycles
}

func addCycle(cycles map[int][]int, path []int, entry int) {
	i := 0
	for path[i] != entry {
		i++
	}
	loop := path[i:]
	lowest := 0
	for j := range loop {
		if loop[j] < loop[lowest] {
			lowest = j
		}
	}
	members := make([]int, 0, len(loop))
	members = append(members, loop[lowest:]...)
	members = append(members, loop[:lowest]...)
	cycles[members[0]] = members
}
