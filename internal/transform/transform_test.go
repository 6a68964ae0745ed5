package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
	"github.com/piwi3910/slicecore/internal/travel"
)

func wallWithMoves(t *testing.T, inset int, outer bool, pts ...geom.Point3) *plan.WallFeatureExtrusion {
	t.Helper()
	w := plan.NewWallFeatureExtrusion(inset, outer, plan.ExtrusionParams{LineWidth: 400})
	seq := plan.NewContinuousExtruderMoveSequence()
	for _, p := range pts {
		require.NoError(t, seq.AppendChild(plan.NewExtrusionMove(p, 60, 1)))
	}
	require.NoError(t, w.AppendChild(seq))
	return w
}

func TestInsertTravelMovesBridgesGap(t *testing.T) {
	ep := plan.NewExtruderPlan(0, 150, plan.RetractionConfig{})
	a := wallWithMoves(t, 0, true, geom.Point3{X: 0}, geom.Point3{X: 1000})
	b := wallWithMoves(t, 1, false, geom.Point3{X: 5000}, geom.Point3{X: 6000})
	require.NoError(t, ep.AppendChild(a))
	require.NoError(t, ep.AppendChild(b))

	require.NoError(t, InsertTravelMoves(ep, travel.StraightLineGenerator{MinRetractDistance: 1500}, 150))

	children := ep.Children()
	require.Len(t, children, 3)
	assert.Equal(t, plan.KindWallFeatureExtrusion, children[0].Kind())
	assert.Equal(t, plan.KindTravelRoute, children[1].Kind())
	assert.Equal(t, plan.KindWallFeatureExtrusion, children[2].Kind())
}

func TestInsertTravelMovesSkipsWhenAlreadyContiguous(t *testing.T) {
	ep := plan.NewExtruderPlan(0, 150, plan.RetractionConfig{})
	a := wallWithMoves(t, 0, true, geom.Point3{X: 0}, geom.Point3{X: 1000})
	b := wallWithMoves(t, 1, false, geom.Point3{X: 1000}, geom.Point3{X: 2000})
	require.NoError(t, ep.AppendChild(a))
	require.NoError(t, ep.AppendChild(b))

	require.NoError(t, InsertTravelMoves(ep, travel.StraightLineGenerator{}, 150))

	assert.Len(t, ep.Children(), 2)
}

func TestSmoothMoveSequenceDropsShallowPoints(t *testing.T) {
	seq := plan.NewContinuousExtruderMoveSequence()
	pts := []geom.Point3{{X: 0}, {X: 10}, {X: 20}, {X: 1000, Y: 1000}}
	for _, p := range pts {
		require.NoError(t, seq.AppendChild(plan.NewExtrusionMove(p, 60, 1)))
	}
	before := len(seq.Moves())

	SmoothMoveSequence(seq, 50, 0.2, false)

	after := len(seq.Moves())
	assert.LessOrEqual(t, after, before, "smoothing must never increase point count")
	assert.GreaterOrEqual(t, after, 2, "endpoints of an open path must survive")

	moves := seq.Moves()
	assert.Equal(t, pts[0], moves[0].Position(), "open path start must not move")
	assert.Equal(t, pts[len(pts)-1], moves[len(moves)-1].Position(), "open path end must not move")
}

func TestOrderFeaturesRespectsPrecedence(t *testing.T) {
	infill := plan.NewInfillFeatureExtrusion(0.2, plan.ExtrusionParams{})
	outer := plan.NewWallFeatureExtrusion(0, true, plan.ExtrusionParams{})
	inner := plan.NewWallFeatureExtrusion(1, false, plan.ExtrusionParams{})
	support := plan.NewSupportFeatureExtrusion(plan.ExtrusionParams{})

	features := []plan.FeatureExtrusion{infill, outer, inner, support}
	ordered, cycle := OrderFeatures(features, Before(DefaultPrecedence))

	require.False(t, cycle)
	require.Len(t, ordered, 4)
	assert.Same(t, support, ordered[0])
	assert.Same(t, inner, ordered[1])
	assert.Same(t, outer, ordered[2])
	assert.Same(t, infill, ordered[3])
}

func TestOrderFeaturesReportsCycleWithoutLosingNodes(t *testing.T) {
	a := plan.NewWallFeatureExtrusion(0, true, plan.ExtrusionParams{})
	b := plan.NewWallFeatureExtrusion(1, false, plan.ExtrusionParams{})
	features := []plan.FeatureExtrusion{a, b}

	// A contradictory relation: each claims the other must come first.
	contradictory := func(x, y plan.FeatureExtrusion) bool { return true }

	ordered, cycle := OrderFeatures(features, contradictory)
	assert.True(t, cycle)
	assert.Len(t, ordered, 2)
}
