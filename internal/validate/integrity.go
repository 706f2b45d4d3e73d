package validate

import (
	"github.com/specialistvlad/drawcheck/internal/mxfile"
	"github.com/specialistvlad/drawcheck/internal/registry"
	"github.com/specialistvlad/drawcheck/internal/report"
)

// checkIntegrity resolves edge endpoints and checks geometry markers.
// Endpoints are resolved by identifier only; whether an edge appears
// before or after the cells it connects does not matter.
func checkIntegrity(r *registry.Registry, c *report.Collector) {
	label := r.Diagram().Label()

	for slot := 0; slot < r.Len(); slot++ {
		cell := r.Cell(slot)

		if cell.EdgeFlag {
			checkEndpoint(r, c, label, cell, "source", cell.Source, report.CodeDanglingEdgeSource)
			checkEndpoint(r, c, label, cell, "target", cell.Target, report.CodeDanglingEdgeTarget)
		}

		if g := cell.Geometry; g != nil && !g.Marked() {
			if g.HasMarker {
				c.Errorf(report.CodeMissingGeometryMarker, label, cell.ID, cell.Pos.Line,
					`<mxGeometry> has as="%s", expected as="geometry"`, g.Marker)
			} else {
				c.Errorf(report.CodeMissingGeometryMarker, label, cell.ID, cell.Pos.Line,
					`<mxGeometry> is missing as="geometry"`)
			}
		}
	}
}

func checkEndpoint(r *registry.Registry, c *report.Collector, label string, cell *mxfile.Cell, role, id string, code report.Code) {
	switch {
	case id == "":
		c.Errorf(code, label, cell.ID, cell.Pos.Line, "edge has no %s", role)
	case !r.Has(id):
		c.Errorf(code, label, cell.ID, cell.Pos.Line, "edge %s '%s' does not exist", role, id)
	}
}
