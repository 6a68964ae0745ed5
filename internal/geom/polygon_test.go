package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(side int64) Polygon {
	return Polygon{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}}
}

func TestPolygonArea(t *testing.T) {
	p := square(10000)
	assert.InDelta(t, 10000.0*10000.0, p.Area(), 1)
}

func TestPolygonBoundingBox(t *testing.T) {
	p := square(10000)
	min, max := p.BoundingBox()
	assert.Equal(t, Point{X: 0, Y: 0}, min)
	assert.Equal(t, Point{X: 10000, Y: 10000}, max)
}

func TestShapeRemoveDegenerate(t *testing.T) {
	p := Polygon{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10000, Y: 0}, {X: 10000, Y: 10000}, {X: 0, Y: 10000}}
	s := Shape{p}
	cleaned := s.RemoveDegenerate(1)
	require.Len(t, cleaned, 1)
	assert.Len(t, cleaned[0], 4)
}

func TestShapeDropSmallAreas(t *testing.T) {
	s := Shape{square(10), square(10000)}
	dropped := s.DropSmallAreas(200 * 200)
	require.Len(t, dropped, 1)
	assert.InDelta(t, 10000.0*10000.0, dropped[0].Area(), 1)
}

func TestShapeEmpty(t *testing.T) {
	assert.True(t, Shape{}.Empty())
	assert.True(t, Shape{{{X: 0, Y: 0}, {X: 1, Y: 0}}}.Empty())
	assert.False(t, Shape{square(1000)}.Empty())
}

func TestPointDistance(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 3, Y: 4}
	assert.InDelta(t, 5.0, a.DistanceTo(b), 1e-9)
	assert.Equal(t, int64(25), a.DistanceSqTo(b))
}
