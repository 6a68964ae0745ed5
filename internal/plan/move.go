package plan

import "github.com/piwi3910/slicecore/internal/geom"

// ExtruderMove is a single point the nozzle moves to: either extruding
// material (ExtrusionMove) or travelling without extruding (TravelMove).
// Both are leaves of the tree - they own no children.
type ExtruderMove interface {
	Node
	Position() geom.Point3
	Speed() float64
}

// ExtrusionMove extrudes material while moving to Pos.
type ExtrusionMove struct {
	base
	Pos            geom.Point3
	Spd            float64 // mm/s
	LineWidthRatio float64 // multiplier against the owning feature's LineWidth
}

func NewExtrusionMove(pos geom.Point3, speed, lineWidthRatio float64) *ExtrusionMove {
	return &ExtrusionMove{Pos: pos, Spd: speed, LineWidthRatio: lineWidthRatio}
}

func (m *ExtrusionMove) Kind() Kind            { return KindExtrusionMove }
func (m *ExtrusionMove) Position() geom.Point3 { return m.Pos }
func (m *ExtrusionMove) Speed() float64        { return m.Spd }

// TravelMove moves to Pos without extruding.
type TravelMove struct {
	base
	Pos     geom.Point3
	Spd     float64
	Feature FeatureType // typically FeatureMoveRetraction or FeatureMoveTravel
}

func NewTravelMove(pos geom.Point3, speed float64, feature FeatureType) *TravelMove {
	return &TravelMove{Pos: pos, Spd: speed, Feature: feature}
}

func (m *TravelMove) Kind() Kind            { return KindTravelMove }
func (m *TravelMove) Position() geom.Point3 { return m.Pos }
func (m *TravelMove) Speed() float64        { return m.Spd }
