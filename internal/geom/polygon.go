package geom

import "math"

// Polygon is an ordered, implicitly-closed sequence of points.
type Polygon []Point

// Shape is a set of polygons interpreted by the even-odd rule: a point lies
// inside the Shape iff it is enclosed by an odd number of its polygons.
type Shape []Polygon

// Area returns the signed area of the polygon (shoelace formula). Positive
// for counter-clockwise winding, negative for clockwise.
func (p Polygon) Area() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var sum int64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return float64(sum) / 2
}

// Length returns the closed perimeter length of the polygon.
func (p Polygon) Length() float64 {
	n := len(p)
	if n < 2 {
		return 0
	}
	var total float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += p[i].DistanceTo(p[j])
	}
	return total
}

// BoundingBox returns the min and max corners of the polygon.
func (p Polygon) BoundingBox() (min, max Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min, max = p[0], p[0]
	for _, pt := range p[1:] {
		if pt.X < min.X {
			min.X = pt.X
		}
		if pt.Y < min.Y {
			min.Y = pt.Y
		}
		if pt.X > max.X {
			max.X = pt.X
		}
		if pt.Y > max.Y {
			max.Y = pt.Y
		}
	}
	return min, max
}

// Area returns the total unsigned area of the shape: the sum of the
// absolute areas of its polygons. Winding is ignored, so a hole adds its
// area rather than subtracting it.
func (s Shape) Area() float64 {
	var total float64
	for _, p := range s {
		total += math.Abs(p.Area())
	}
	return total
}

// Empty reports whether the shape has no polygons, or only polygons with
// fewer than 3 vertices.
func (s Shape) Empty() bool {
	for _, p := range s {
		if len(p) >= 3 {
			return false
		}
	}
	return true
}

// RemoveDegenerate drops polygons with fewer than 3 vertices and collapses
// consecutive duplicate/colinear vertices within a polygon, within the given
// tolerance (microns). This is the "remove degenerate and colinear vertices"
// step of outline preparation (§4.1 step 1d).
func (s Shape) RemoveDegenerate(tolerance int64) Shape {
	out := make(Shape, 0, len(s))
	for _, p := range s {
		cleaned := removeColinear(p, tolerance)
		if len(cleaned) >= 3 {
			out = append(out, cleaned)
		}
	}
	return out
}

func removeColinear(p Polygon, tolerance int64) Polygon {
	if len(p) < 3 {
		return p
	}
	// Collapse runs of duplicate vertices to one copy first, so a duplicate
	// never makes its twin look colinear.
	dedup := make(Polygon, 0, len(p))
	for i, cur := range p {
		if cur != p[(i+1)%len(p)] {
			dedup = append(dedup, cur)
		}
	}
	n := len(dedup)
	if n < 3 {
		return dedup
	}
	out := make(Polygon, 0, n)
	for i := 0; i < n; i++ {
		prev := dedup[(i-1+n)%n]
		cur := dedup[i]
		next := dedup[(i+1)%n]
		if isColinear(prev, cur, next, tolerance) {
			continue
		}
		out = append(out, cur)
	}
	if len(out) < 3 {
		return out
	}
	return out
}

// isColinear reports whether cur sits within tolerance microns of the
// segment prev-next (perpendicular distance), i.e. removing it doesn't
// perceptibly change the polygon's shape.
func isColinear(prev, cur, next Point, tolerance int64) bool {
	edge := next.Sub(prev)
	edgeLen := edge.Length()
	if edgeLen == 0 {
		return cur.DistanceSqTo(prev) == 0
	}
	cross := float64(edge.Cross(cur.Sub(prev)))
	dist := math.Abs(cross) / edgeLen
	return dist <= float64(tolerance)
}

// DropSmallAreas removes polygons whose absolute area is below minArea
// (square microns). Used by outline preparation step 1e.
func (s Shape) DropSmallAreas(minArea float64) Shape {
	out := make(Shape, 0, len(s))
	for _, p := range s {
		if math.Abs(p.Area()) >= minArea {
			out = append(out, p)
		}
	}
	return out
}

// SimplifyShort merges together segments shorter than smallest while never
// moving any retained vertex by more than allowedDistance from its original
// position. It operates per polygon by dropping a vertex whenever either of
// its adjacent edges is shorter than smallest and the resulting deviation
// stays within allowedDistance (§4.1 step 1b).
func (s Shape) SimplifyShort(smallest, allowedDistance int64) Shape {
	out := make(Shape, 0, len(s))
	for _, p := range s {
		out = append(out, simplifyPolygon(p, smallest, allowedDistance))
	}
	return out
}

func simplifyPolygon(p Polygon, smallest, allowedDistance int64) Polygon {
	if len(p) < 4 {
		return p
	}
	changed := true
	for changed {
		changed = false
		n := len(p)
		if n < 4 {
			break
		}
		for i := 0; i < n; i++ {
			prev := p[(i-1+n)%n]
			cur := p[i]
			next := p[(i+1)%n]
			if prev.DistanceTo(cur) >= float64(smallest) && cur.DistanceTo(next) >= float64(smallest) {
				continue
			}
			if isColinear(prev, cur, next, allowedDistance) {
				p = append(append(Polygon{}, p[:i]...), p[i+1:]...)
				changed = true
				break
			}
		}
	}
	return p
}
