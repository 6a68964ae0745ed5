package toolpath

import "github.com/piwi3910/slicecore/internal/geom"

// Junction is a vertex of a variable-width line: a position plus a local
// extrusion width. Width 0 marks a contour vertex (no extrusion); width > 0
// marks an extrusion vertex.
type Junction struct {
	Position geom.Point
	Width    float64 // microns
}

// ExtrusionLine is a non-empty, ordered sequence of junctions, tagged with
// the inset index (distance from the outer wall, in bead counts) it belongs
// to. Zero is the outer wall.
type ExtrusionLine struct {
	Inset     int
	Junctions []Junction
	// Closed marks lines that loop back to their own start (most wall
	// lines do; thin-wall fill segments may not).
	Closed bool
}

// Start returns the first junction's position.
func (l ExtrusionLine) Start() geom.Point {
	return l.Junctions[0].Position
}

// End returns the last junction's position.
func (l ExtrusionLine) End() geom.Point {
	return l.Junctions[len(l.Junctions)-1].Position
}

// IsExtrusion reports whether the line's first junction carries a non-zero
// width — the classification rule §4.1 step 5 specifies (lines with no
// junctions also classify as extrusion, the zero-value default).
func (l ExtrusionLine) IsExtrusion() bool {
	if len(l.Junctions) == 0 {
		return true
	}
	return l.Junctions[0].Width != 0
}

// Length returns the summed segment length of the line, open or closed.
func (l ExtrusionLine) Length() float64 {
	if len(l.Junctions) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(l.Junctions); i++ {
		total += l.Junctions[i-1].Position.DistanceTo(l.Junctions[i].Position)
	}
	if l.Closed {
		total += l.Junctions[len(l.Junctions)-1].Position.DistanceTo(l.Junctions[0].Position)
	}
	return total
}

// VariableWidthLines is the set of extrusion lines belonging to one inset
// level.
type VariableWidthLines []ExtrusionLine

// VariableWidthPaths groups VariableWidthLines per inset level, outer wall
// (inset 0) first.
type VariableWidthPaths []VariableWidthLines

// Empty reports whether every grouping is empty.
func (p VariableWidthPaths) Empty() bool {
	for _, lines := range p {
		if len(lines) > 0 {
			return false
		}
	}
	return true
}

// PruneEmpty removes VariableWidthLines entries with no lines (§4.1 step 7).
func (p VariableWidthPaths) PruneEmpty() VariableWidthPaths {
	out := make(VariableWidthPaths, 0, len(p))
	for _, lines := range p {
		if len(lines) > 0 {
			out = append(out, lines)
		}
	}
	return out
}

// Partition splits a flat list of raw lines into tool paths (extrusion,
// w != 0) and contour paths (w == 0), classifying purely on each line's
// first junction (§4.1 step 5).
func Partition(lines []ExtrusionLine) (toolLines, contourLines []ExtrusionLine) {
	for _, l := range lines {
		if l.IsExtrusion() {
			toolLines = append(toolLines, l)
		} else {
			contourLines = append(contourLines, l)
		}
	}
	return toolLines, contourLines
}
