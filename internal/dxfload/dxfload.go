// Package dxfload reads a 2D outline from a DXF file for feeding
// test/dev geometry into the wall generator. Mesh slicing stays out of
// scope; this is a convenience input path for a single flat outline, not a
// slicer. Adapted from the teacher's DXF part importer: same
// entity-walking and segment-chaining logic, producing a geom.Shape in
// microns instead of a catalog of model.Part outlines in millimeters.
package dxfload

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/slicecore/internal/geom"
)

const micronsPerMM = 1000

// segment is a line segment between two points, used to chain disconnected
// LINE/ARC entities into closed polygons.
type segment struct {
	start, end geom.Point
}

// Result is the outcome of loading a DXF file.
type Result struct {
	Shape    geom.Shape
	Warnings []string
}

// Load reads the DXF file at path and recovers every closed polygon it can
// find: LWPOLYLINE and CIRCLE entities directly, LINE and ARC entities
// chained end-to-end by coincident endpoints.
func Load(path string) (Result, error) {
	var result Result

	drawing, err := dxf.Open(path)
	if err != nil {
		return result, fmt.Errorf("open DXF file: %w", err)
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		return result, fmt.Errorf("DXF file contains no entities")
	}

	var polys geom.Shape
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			poly := lwPolylineToPolygon(e)
			if len(poly) >= 3 {
				polys = append(polys, poly)
			} else {
				result.Warnings = append(result.Warnings, "skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			polys = append(polys, circleToPolygon(e, 64))

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: toMicrons(e.Start[0], e.Start[1]),
				end:   toMicrons(e.End[0], e.End[1]),
			})
		}
	}

	const chainToleranceMicrons = 10 // 0.01mm, same tolerance the teacher uses
	for _, chain := range chainSegments(segments, chainToleranceMicrons) {
		if len(chain) >= 3 {
			polys = append(polys, chain)
		}
	}

	if len(polys) == 0 {
		return result, fmt.Errorf("no closed shapes found in DXF file")
	}

	result.Shape = normalize(polys)
	return result, nil
}

func toMicrons(xmm, ymm float64) geom.Point {
	return geom.Point{X: int64(math.Round(xmm * micronsPerMM)), Y: int64(math.Round(ymm * micronsPerMM))}
}

func lwPolylineToPolygon(lw *entity.LwPolyline) geom.Polygon {
	var poly geom.Polygon

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := toMicrons(v[0], v[1])

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := toMicrons(lw.Vertices[nextIdx][0], lw.Vertices[nextIdx][1])
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			poly = append(poly, arcPts[:len(arcPts)-1]...)
		} else {
			poly = append(poly, current)
		}
	}

	return poly
}

// bulgeArcPoints interpolates the arc a DXF bulge factor implies between two
// polyline vertices (the bulge is the tangent of 1/4 the included angle).
func bulgeArcPoints(p1, p2 geom.Point, bulge float64, numSegments int) geom.Polygon {
	x1, y1 := float64(p1.X), float64(p1.Y)
	x2, y2 := float64(p2.X), float64(p2.Y)

	mx, my := (x1+x2)/2, (y1+y2)/2
	dx, dy := x2-x1, y2-y1
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return geom.Polygon{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chordLen, dx/chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(y1-cy, x1-cx)
	endAngle := math.Atan2(y2-cy, x2-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make(geom.Polygon, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts[i] = geom.Point{
			X: int64(math.Round(cx + radius*math.Cos(angle))),
			Y: int64(math.Round(cy + radius*math.Sin(angle))),
		}
	}
	return pts
}

func circleToPolygon(c *entity.Circle, numSegments int) geom.Polygon {
	poly := make(geom.Polygon, numSegments)
	center := toMicrons(c.Center[0], c.Center[1])
	r := c.Radius * micronsPerMM
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		poly[i] = geom.Point{
			X: center.X + int64(math.Round(r*math.Cos(angle))),
			Y: center.Y + int64(math.Round(r*math.Sin(angle))),
		}
	}
	return poly
}

func arcToPoints(a *entity.Arc, numSegments int) []geom.Point {
	center := toMicrons(a.Circle.Center[0], a.Circle.Center[1])
	r := a.Circle.Radius * micronsPerMM
	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]geom.Point, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = geom.Point{
			X: center.X + int64(math.Round(r*math.Cos(angle))),
			Y: center.Y + int64(math.Round(r*math.Sin(angle))),
		}
	}
	return pts
}

func pointsToSegments(pts []geom.Point) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects individual segments into closed polygons.
// toleranceMicrons is the maximum distance between endpoints to consider
// them connected.
func chainSegments(segs []segment, toleranceMicrons int64) []geom.Polygon {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var polys []geom.Polygon

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []geom.Point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, toleranceMicrons) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, toleranceMicrons) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		closed := len(chain) >= 3 && pointsClose(chain[0], chain[len(chain)-1], toleranceMicrons)
		if closed {
			chain = chain[:len(chain)-1]
		}

		if closed && len(chain) >= 3 {
			polys = append(polys, geom.Polygon(chain))
		}
	}

	sort.Slice(polys, func(i, j int) bool {
		return math.Abs(polys[i].Area()) > math.Abs(polys[j].Area())
	})

	return polys
}

func pointsClose(a, b geom.Point, toleranceMicrons int64) bool {
	return a.DistanceSqTo(b) <= toleranceMicrons*toleranceMicrons
}

// normalize translates every polygon so the shape's combined bounding box
// starts at the origin.
func normalize(s geom.Shape) geom.Shape {
	if len(s) == 0 {
		return s
	}
	min := s[0][0]
	for _, poly := range s {
		pmin, _ := poly.BoundingBox()
		if pmin.X < min.X {
			min.X = pmin.X
		}
		if pmin.Y < min.Y {
			min.Y = pmin.Y
		}
	}

	out := make(geom.Shape, len(s))
	for i, poly := range s {
		translated := make(geom.Polygon, len(poly))
		for j, p := range poly {
			translated[j] = p.Sub(min)
		}
		out[i] = translated
	}
	return out
}
