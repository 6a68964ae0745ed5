package stitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/toolpath"
)

func jp(x, y int64) toolpath.Junction {
	return toolpath.Junction{Position: geom.Point{X: x, Y: y}}
}

func TestStitchAcrossRoundingGap(t *testing.T) {
	// Two polylines with a 10um end-to-start gap, stitch_distance = 200um.
	a := toolpath.ExtrusionLine{Junctions: []toolpath.Junction{jp(0, 0), jp(1000, 0)}}
	b := toolpath.ExtrusionLine{Junctions: []toolpath.Junction{jp(1010, 0), jp(1010, 1000), jp(0, 1000), jp(0, 0)}}

	out := Stitch([]toolpath.ExtrusionLine{a, b}, 200)
	require.Len(t, out, 1)
	assert.True(t, out[0].Closed)
	// Every junction from both inputs appears, with the duplicate seam
	// vertex collapsed.
	assert.GreaterOrEqual(t, len(out[0].Junctions), 5)
}

func TestStitchEachJunctionOnce(t *testing.T) {
	lines := []toolpath.ExtrusionLine{
		{Junctions: []toolpath.Junction{jp(0, 0), jp(100, 0)}},
		{Junctions: []toolpath.Junction{jp(100, 0), jp(100, 100)}},
		{Junctions: []toolpath.Junction{jp(100, 100), jp(0, 100)}},
		{Junctions: []toolpath.Junction{jp(0, 100), jp(0, 0)}},
	}
	out := Stitch(lines, 10)
	require.Len(t, out, 1)
	// 4 lines of 2 junctions each, minus 3 shared seams collapsed = 5 unique
	// positions over a 4-sided loop (start repeats only at closure, which we
	// do not duplicate).
	assert.Equal(t, 4, len(out[0].Junctions))
}

func TestStitchIndependentLoopsStayDistinct(t *testing.T) {
	loopA := []toolpath.ExtrusionLine{
		{Junctions: []toolpath.Junction{jp(0, 0), jp(100, 0)}},
		{Junctions: []toolpath.Junction{jp(100, 0), jp(0, 0)}},
	}
	loopB := []toolpath.ExtrusionLine{
		{Junctions: []toolpath.Junction{jp(1000, 1000), jp(1100, 1000)}},
		{Junctions: []toolpath.Junction{jp(1100, 1000), jp(1000, 1000)}},
	}
	all := append(append([]toolpath.ExtrusionLine{}, loopA...), loopB...)
	out := Stitch(all, 10)
	assert.Len(t, out, 2)
}
