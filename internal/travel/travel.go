// Package travel implements travel-move generation (§4.4): producing the
// non-extruding TravelRoute a layer plan needs between the end of one
// feature and the start of the next.
package travel

import (
	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

// Generator builds a TravelRoute from start to end at the given speed.
// Alternate implementations (arc travel around obstacles, combing through
// already-printed interior) can satisfy this without the travel-move
// insertion transformer changing at all.
type Generator interface {
	GenerateRoute(start, end geom.Point3, speed float64) *plan.TravelRoute
}

// StraightLineGenerator is the default Generator: a single direct move from
// start to end, tagged FeatureMoveRetraction when MinRetractDistance is
// positive and the XY hop is at least that long, FeatureMoveTravel
// otherwise. No separate retraction move is emitted.
type StraightLineGenerator struct {
	MinRetractDistance float64 // microns; below this, the move is tagged FeatureMoveTravel
}

// GenerateRoute implements Generator.
func (g StraightLineGenerator) GenerateRoute(start, end geom.Point3, speed float64) *plan.TravelRoute {
	route := plan.NewTravelRoute()
	seq := plan.NewContinuousExtruderMoveSequence()

	feature := plan.FeatureMoveTravel
	startXY := geom.Point{X: start.X, Y: start.Y}
	endXY := geom.Point{X: end.X, Y: end.Y}
	if g.MinRetractDistance > 0 && startXY.DistanceTo(endXY) >= g.MinRetractDistance {
		feature = plan.FeatureMoveRetraction
	}

	_ = seq.AppendChild(plan.NewTravelMove(end, speed, feature))
	_ = route.AppendChild(seq)
	return route
}
