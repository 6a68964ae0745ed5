package geom

import (
	clipper "github.com/go-clipper/clipper2"
)

// toPaths64 converts a Shape into clipper2's integer path representation.
func toPaths64(s Shape) clipper.Paths64 {
	paths := make(clipper.Paths64, len(s))
	for i, poly := range s {
		path := make(clipper.Path64, len(poly))
		for j, p := range poly {
			path[j] = clipper.Point64{X: p.X, Y: p.Y}
		}
		paths[i] = path
	}
	return paths
}

func fromPaths64(paths clipper.Paths64) Shape {
	s := make(Shape, len(paths))
	for i, path := range paths {
		poly := make(Polygon, len(path))
		for j, p := range path {
			poly[j] = Point{X: p.X, Y: p.Y}
		}
		s[i] = poly
	}
	return s
}

// defaultOffsetOptions mirrors the miter/arc tolerances used throughout the
// corpus's offset examples; round joins suit the rounded corners a morphological
// open/close pass is meant to produce.
var defaultOffsetOptions = clipper.OffsetOptions{MiterLimit: 2.0, ArcTolerance: 0.25}

// Offset grows (delta > 0) or shrinks (delta < 0) every polygon in s by
// delta microns, using round joins on a closed-polygon end type.
func (s Shape) Offset(delta float64) (Shape, error) {
	if len(s) == 0 {
		return nil, nil
	}
	result, err := clipper.InflatePaths64(toPaths64(s), delta, clipper.JoinRound, clipper.EndPolygon, defaultOffsetOptions)
	if err != nil {
		return nil, err
	}
	return fromPaths64(result), nil
}

// MorphologicalOpen offsets inward then outward by the same distance,
// eliminating features narrower than 2*distance while otherwise preserving
// the outline (§4.1 step 1a).
func (s Shape) MorphologicalOpen(distance float64) (Shape, error) {
	inner, err := s.Offset(-distance)
	if err != nil {
		return nil, err
	}
	if len(inner) == 0 {
		return nil, nil
	}
	return inner.Offset(distance)
}

// Union returns the even-odd union of every polygon in s with the empty
// set, normalizing winding regardless of input orientation (§4.1 step 6).
func (s Shape) Union() (Shape, error) {
	if len(s) == 0 {
		return nil, nil
	}
	c := clipper.NewClipper64()
	c.AddSubject(toPaths64(s))
	result, err := c.Execute(clipper.Union, clipper.EvenOdd)
	if err != nil {
		return nil, err
	}
	return fromPaths64(result), nil
}

// RepairSelfIntersections runs a self-intersection repair pass at the given
// epsilon offset: an inward offset by epsilon followed by an outward offset
// by epsilon, which collapses self-crossings introduced by upstream
// simplification (§4.1 step 1c). It intentionally reuses the same
// offset-pair technique as MorphologicalOpen, at a smaller distance.
func (s Shape) RepairSelfIntersections(epsilon float64) (Shape, error) {
	unioned, err := s.Union()
	if err != nil {
		return nil, err
	}
	return unioned.MorphologicalOpen(epsilon)
}

// Area64 mirrors clipper2's own helper, exposed for tests that want the
// raw signed area of a single polygon without going through Polygon.Area.
func Area64(p Polygon) float64 {
	return p.Area()
}
