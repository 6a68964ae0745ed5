package dxfload

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/slicecore/internal/geom"
)

func TestChainSegmentsClosesASquare(t *testing.T) {
	segs := []segment{
		{start: geom.Point{X: 0, Y: 0}, end: geom.Point{X: 10000, Y: 0}},
		{start: geom.Point{X: 10000, Y: 10000}, end: geom.Point{X: 10000, Y: 0}},
		{start: geom.Point{X: 10000, Y: 10000}, end: geom.Point{X: 0, Y: 10000}},
		{start: geom.Point{X: 0, Y: 10000}, end: geom.Point{X: 0, Y: 0}},
	}

	polys := chainSegments(segs, 10)
	assert.Len(t, polys, 1)
	assert.Len(t, polys[0], 4)
}

func TestChainSegmentsDropsOpenChains(t *testing.T) {
	segs := []segment{
		{start: geom.Point{X: 0, Y: 0}, end: geom.Point{X: 10000, Y: 0}},
	}
	assert.Empty(t, chainSegments(segs, 10))
}

func TestPointsCloseRespectsTolerance(t *testing.T) {
	a := geom.Point{X: 0, Y: 0}
	b := geom.Point{X: 5, Y: 0}
	assert.True(t, pointsClose(a, b, 10))
	assert.False(t, pointsClose(a, b, 2))
}

func TestBulgeArcPointsReturnsEndpoints(t *testing.T) {
	p1 := geom.Point{X: 0, Y: 0}
	p2 := geom.Point{X: 10000, Y: 0}
	pts := bulgeArcPoints(p1, p2, 0.5, 16)
	assert.Len(t, pts, 17)
	assert.InDelta(t, float64(p1.X), float64(pts[0].X), 1)
	assert.InDelta(t, float64(p2.X), float64(pts[len(pts)-1].X), 1)
}

func TestNormalizeTranslatesToOrigin(t *testing.T) {
	shape := geom.Shape{geom.Polygon{
		{X: 5000, Y: 5000}, {X: 15000, Y: 5000}, {X: 15000, Y: 15000}, {X: 5000, Y: 15000},
	}}

	normalized := normalize(shape)
	min, _ := normalized[0].BoundingBox()
	assert.Equal(t, geom.Point{}, min)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/to/file.dxf")
	assert.Error(t, err)
}
