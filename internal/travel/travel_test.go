package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

func TestStraightLineGeneratorEndsAtTarget(t *testing.T) {
	g := StraightLineGenerator{MinRetractDistance: 1500}
	start := geom.Point3{X: 0, Y: 0, Z: 200}
	end := geom.Point3{X: 5000, Y: 0, Z: 200}

	route := g.GenerateRoute(start, end, 150)
	endPos, ok := plan.FindEndPosition(route)
	require.True(t, ok)
	assert.Equal(t, end, endPos)
}

func TestStraightLineGeneratorRetractsOnLongHop(t *testing.T) {
	g := StraightLineGenerator{MinRetractDistance: 1500}
	route := g.GenerateRoute(geom.Point3{}, geom.Point3{X: 5000}, 150)

	mv, ok := plan.FindByType[*plan.TravelMove](route, plan.FullDepth())
	require.True(t, ok)
	assert.Equal(t, plan.FeatureMoveRetraction, mv.Feature)
}

func TestStraightLineGeneratorSkipsRetractionOnShortHop(t *testing.T) {
	g := StraightLineGenerator{MinRetractDistance: 1500}
	route := g.GenerateRoute(geom.Point3{}, geom.Point3{X: 500}, 150)

	mv, ok := plan.FindByType[*plan.TravelMove](route, plan.FullDepth())
	require.True(t, ok)
	assert.Equal(t, plan.FeatureMoveTravel, mv.Feature)
}
