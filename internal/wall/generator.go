// Package wall implements the variable-width wall generator (§4.1): it
// turns a layer outline and a requested inset count into a set of
// variable-width tool-path lines plus the residual inner contour handed off
// to infill.
package wall

import (
	"math"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/stitch"
	"github.com/piwi3910/slicecore/internal/toolpath"
)

// Derived constants from §4.1.
const (
	SmallestSegment = 50.0 // microns
	AllowedDistance = 50.0 // microns
	EpsilonOffset   = AllowedDistance/2 - 1
)

// Settings carries the configuration surface §4.1/§6 name for a single
// generate() call.
type Settings struct {
	BeadingStrategyType BeadingStrategyType
	FillOutlineGaps     bool // "print thin walls"
	MinFeatureSize      float64
	MinBeadWidth        float64
}

// Result is the output of Generate: the variable-width tool paths and the
// residual inner contour for infill (§4.1's public contract return values).
type Result struct {
	Toolpaths    toolpath.VariableWidthPaths
	InnerContour geom.Shape
}

// Generate implements the §4.1 public contract:
//
//	generate(outline, bead_width_0, bead_width_x, inset_count, settings)
//	  -> (toolpaths, inner_contour)
func Generate(outline geom.Shape, beadWidth0, beadWidthX float64, insetCount int, settings Settings) (Result, error) {
	prepared, err := prepareOutline(outline, beadWidth0)
	if err != nil {
		return Result{}, err
	}
	if prepared.Empty() || prepared.Area() <= 0 {
		return Result{}, nil
	}
	if insetCount == 0 {
		normalized, err := prepared.Union()
		if err != nil {
			return Result{}, err
		}
		return Result{InnerContour: normalized}, nil
	}

	cfg := BeadingStrategyConfig{
		Type:               settings.BeadingStrategyType,
		BeadWidth0:         beadWidth0,
		BeadWidthX:         beadWidthX,
		TransitionLength:   2 * beadWidth0,
		TransitioningAngle: 0.5,
		PrintThinWalls:     settings.FillOutlineGaps,
		MinBeadWidth:       settings.MinBeadWidth,
		MinFeatureSize:     settings.MinFeatureSize,
		MaxBeadCount:       2 * insetCount,
	}
	strategy, err := NewBeadingStrategy(cfg)
	if err != nil {
		// §7: strategy construction failure -> empty walls, but the
		// original outline still delimits the (now wall-less) interior.
		normalized, uerr := prepared.Union()
		if uerr != nil {
			return Result{}, uerr
		}
		return Result{InnerContour: normalized}, err
	}

	var toolLines []toolpath.ExtrusionLine
	cumulative := 0.0
	lastCenterOffset := 0.0

	for i := 0; i < insetCount; i++ {
		remaining, rerr := prepared.Offset(-cumulative)
		if rerr != nil || remaining.Empty() {
			break
		}
		thickness := estimateThickness(remaining)
		bead := strategy.ComputeBeading(thickness, insetCount-i)
		if bead.Count == 0 || len(bead.Widths) == 0 {
			break
		}
		width := bead.Widths[0]
		if width < settings.MinBeadWidth && settings.MinBeadWidth > 0 {
			break
		}
		centerOffset := cumulative + width/2
		centerline, cerr := prepared.Offset(-centerOffset)
		if cerr != nil || centerline.Empty() {
			break
		}
		for _, poly := range centerline {
			if len(poly) < 3 {
				continue
			}
			toolLines = append(toolLines, polygonToExtrusionLine(poly, i, width))
		}
		lastCenterOffset = centerOffset
		cumulative += width
	}

	contourShape, cerr := prepared.Offset(-lastCenterOffset)
	if cerr != nil {
		return Result{}, cerr
	}

	innerContour, err := stitchContour(contourShape, beadWidth0)
	if err != nil {
		return Result{}, err
	}

	// toolLines are built only from centerlines (width > 0), so every line
	// already classifies as a tool path (§4.1 step 5); Partition exists for
	// callers handed a raw, unclassified line stream rather than for this
	// call site.
	byInset := make(map[int]toolpath.VariableWidthLines)
	order := make([]int, 0, insetCount)
	for _, l := range toolLines {
		if _, ok := byInset[l.Inset]; !ok {
			order = append(order, l.Inset)
		}
		byInset[l.Inset] = append(byInset[l.Inset], l)
	}
	paths := make(toolpath.VariableWidthPaths, 0, len(order))
	for _, inset := range order {
		paths = append(paths, byInset[inset])
	}

	return Result{Toolpaths: paths.PruneEmpty(), InnerContour: innerContour}, nil
}

// prepareOutline implements §4.1 step 1: morphological open, short-segment
// simplification, self-intersection repair, degenerate/colinear removal,
// and small-area dropping.
func prepareOutline(outline geom.Shape, beadWidth0 float64) (geom.Shape, error) {
	smallAreaLength := beadWidth0 / 2
	opened, err := outline.MorphologicalOpen(EpsilonOffset)
	if err != nil {
		return nil, err
	}
	simplified := opened.SimplifyShort(SmallestSegment, AllowedDistance)
	repaired, err := simplified.RepairSelfIntersections(EpsilonOffset)
	if err != nil {
		return nil, err
	}
	cleaned := repaired.RemoveDegenerate(1)
	return cleaned.DropSmallAreas(smallAreaLength * smallAreaLength), nil
}

// estimateThickness approximates the local wall thickness available within
// shape, using the largest 2·area/perimeter value among its polygons (the
// inradius of a tangential polygon) as a proxy for the true medial-axis distance
// a full skeletal trapezoidation would compute per cell (see DESIGN.md).
func estimateThickness(shape geom.Shape) float64 {
	var best float64
	for _, poly := range shape {
		if len(poly) < 3 {
			continue
		}
		area := math.Abs(poly.Area())
		perimeter := poly.Length()
		if perimeter == 0 {
			continue
		}
		t := 2 * area / perimeter
		if t > best {
			best = t
		}
	}
	return best
}

func polygonToExtrusionLine(poly geom.Polygon, inset int, width float64) toolpath.ExtrusionLine {
	junctions := make([]toolpath.Junction, len(poly))
	for i, p := range poly {
		junctions[i] = toolpath.Junction{Position: p, Width: width}
	}
	return toolpath.ExtrusionLine{Inset: inset, Junctions: junctions, Closed: true}
}

// stitchContour runs the §4.2 contour stitcher over shape's polygons (split
// into open zero-width polylines, the form a real skeletal trapezoidation
// would emit them in) and even-odd-unions the result to normalize winding
// (§4.1 step 6).
func stitchContour(shape geom.Shape, beadWidth0 float64) (geom.Shape, error) {
	if shape.Empty() {
		return nil, nil
	}
	var open []toolpath.ExtrusionLine
	for _, poly := range shape {
		open = append(open, splitIntoArcs(poly, 2)...)
	}
	stitched := stitch.Stitch(open, beadWidth0/2)

	polys := make(geom.Shape, 0, len(stitched))
	for _, line := range stitched {
		poly := make(geom.Polygon, len(line.Junctions))
		for i, j := range line.Junctions {
			poly[i] = j.Position
		}
		if len(poly) >= 3 {
			polys = append(polys, poly)
		}
	}
	return polys.Union()
}

// splitIntoArcs breaks a closed polygon into n open, zero-width polylines
// covering its perimeter, the granularity skeletal trapezoidation would
// naturally produce at cell boundaries. Adjacent arcs share their boundary
// vertex so the stitcher can rejoin them into the original loop.
func splitIntoArcs(poly geom.Polygon, n int) []toolpath.ExtrusionLine {
	size := len(poly)
	if size < 3 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > size {
		n = size
	}
	out := make([]toolpath.ExtrusionLine, 0, n)
	for k := 0; k < n; k++ {
		startIdx := k * size / n
		endIdx := (k + 1) * size / n
		js := make([]toolpath.Junction, 0, endIdx-startIdx+1)
		for i := startIdx; i <= endIdx; i++ {
			js = append(js, toolpath.Junction{Position: poly[i%size]})
		}
		out = append(out, toolpath.ExtrusionLine{Junctions: js})
	}
	return out
}
