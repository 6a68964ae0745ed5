package wall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/slicecore/internal/geom"
)

func squareOutline(side int64) geom.Shape {
	return geom.Shape{{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	}}
}

func TestGenerateSquareSingleWall(t *testing.T) {
	outline := squareOutline(10000) // 10mm square, microns
	result, err := Generate(outline, 400, 400, 1, Settings{MinBeadWidth: 50})
	require.NoError(t, err)

	require.Len(t, result.Toolpaths, 1)
	lines := result.Toolpaths[0]
	require.Len(t, lines, 1)
	require.Len(t, lines[0].Junctions, 4)
	for _, j := range lines[0].Junctions {
		assert.InDelta(t, 400, j.Width, 1)
	}

	require.Len(t, result.InnerContour, 1)
	min, max := result.InnerContour[0].BoundingBox()
	side := max.X - min.X
	assert.InDelta(t, 9600, side, 5)
	assert.InDelta(t, 9600, max.Y-min.Y, 5)
}

func TestGenerateZeroInsetCount(t *testing.T) {
	outline := squareOutline(10000)
	result, err := Generate(outline, 400, 400, 0, Settings{})
	require.NoError(t, err)
	assert.True(t, result.Toolpaths.Empty())
	require.Len(t, result.InnerContour, 1)
	assert.InDelta(t, outline.Area(), result.InnerContour.Area(), outline.Area()*0.02)
}

func TestGenerateDegenerateOutlineIsEmpty(t *testing.T) {
	// A single line segment has zero area.
	outline := geom.Shape{{{X: 0, Y: 0}, {X: 10000, Y: 0}}}
	result, err := Generate(outline, 400, 400, 1, Settings{})
	require.NoError(t, err)
	assert.True(t, result.Toolpaths.Empty())
	assert.True(t, result.InnerContour.Empty())
}

func TestGenerateUnknownStrategyIsUnavailable(t *testing.T) {
	outline := squareOutline(10000)
	_, err := Generate(outline, 400, 400, 1, Settings{BeadingStrategyType: "nonexistent"})
	require.Error(t, err)
	var target *StrategyUnavailableError
	assert.ErrorAs(t, err, &target)
}

func TestGenerateToolpathJunctionsAreExtrusion(t *testing.T) {
	outline := squareOutline(10000)
	result, err := Generate(outline, 400, 400, 2, Settings{MinBeadWidth: 50})
	require.NoError(t, err)
	for _, lines := range result.Toolpaths {
		for _, l := range lines {
			for _, j := range l.Junctions {
				assert.Greater(t, j.Width, 0.0)
			}
		}
	}
}
