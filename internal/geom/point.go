// Package geom provides the integer-micron 2D/3D geometry primitives the
// rest of the engine builds on: points, polygons, shapes, and the offset /
// union / repair operations the wall generator and contour stitcher need.
//
// All planar geometry is carried in micrometers (integers) to keep the
// toolpath math free of floating-point drift; millimeter-scale constants in
// callers are converted at the boundary.
package geom

import "math"

// Point is an integer-micron 2D coordinate.
type Point struct {
	X, Y int64
}

// Point3 is an integer-micron 3D coordinate.
type Point3 struct {
	X, Y, Z int64
}

// Pt2 builds a Point3 at z=0, convenient for callers working purely in 2D.
func Pt2(p Point) Point3 {
	return Point3{X: p.X, Y: p.Y}
}

// Add returns p+o.
func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

// Sub returns p-o.
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	return Point{X: int64(math.Round(float64(p.X) * f)), Y: int64(math.Round(float64(p.Y) * f))}
}

// Dot returns the dot product of p and o.
func (p Point) Dot(o Point) int64 { return p.X*o.X + p.Y*o.Y }

// Cross returns the 2D cross product (z-component) of p and o.
func (p Point) Cross(o Point) int64 { return p.X*o.Y - p.Y*o.X }

// Length returns the Euclidean length of p treated as a vector.
func (p Point) Length() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

// DistanceTo returns the Euclidean distance between p and o.
func (p Point) DistanceTo(o Point) float64 {
	return p.Sub(o).Length()
}

// DistanceSqTo returns the squared Euclidean distance between p and o, useful
// for nearest-candidate comparisons without the sqrt cost.
func (p Point) DistanceSqTo(o Point) int64 {
	d := p.Sub(o)
	return d.X*d.X + d.Y*d.Y
}

// Lerp returns the point a fraction t of the way from p to o.
func (p Point) Lerp(o Point, t float64) Point {
	return Point{
		X: p.X + int64(math.Round(float64(o.X-p.X)*t)),
		Y: p.Y + int64(math.Round(float64(o.Y-p.Y)*t)),
	}
}

// Angle returns the angle (radians) of p treated as a vector from the origin.
func (p Point) Angle() float64 {
	return math.Atan2(float64(p.Y), float64(p.X))
}
