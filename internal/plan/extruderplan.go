package plan

import "github.com/google/uuid"

// RetractionConfig carries the per-extruder retraction and back-pressure
// compensation parameters (§4.6).
type RetractionConfig struct {
	Distance               float64 // mm of filament
	Speed                  float64 // mm/s
	MinTravelDistance      float64 // microns; below this, skip retraction
	BackPressureCompensation float64 // r in the back-pressure formula
}

// ExtruderPlan is one extruder's ordered sequence of FeatureExtrusion
// children within a layer.
type ExtruderPlan struct {
	childList

	ID             uuid.UUID
	ExtruderNumber int
	TravelSpeed    float64 // mm/s
	FanSpeedPercent float64
	Retraction     RetractionConfig
}

// NewExtruderPlan constructs an empty extruder plan.
func NewExtruderPlan(extruderNumber int, travelSpeed float64, retraction RetractionConfig) *ExtruderPlan {
	return &ExtruderPlan{
		ID:             uuid.New(),
		ExtruderNumber: extruderNumber,
		TravelSpeed:    travelSpeed,
		Retraction:     retraction,
	}
}

func (e *ExtruderPlan) Kind() Kind { return KindExtruderPlan }

func (e *ExtruderPlan) AppendChild(child Node) error { return e.appendChild(e, child) }
func (e *ExtruderPlan) RemoveChild(child Node) error { return e.removeChild(child) }

// Features returns the plan's children narrowed to FeatureExtrusion, in
// traversal order.
func (e *ExtruderPlan) Features() []FeatureExtrusion {
	out := make([]FeatureExtrusion, 0, len(e.children))
	for _, c := range e.children {
		if f, ok := c.(FeatureExtrusion); ok {
			out = append(out, f)
		}
	}
	return out
}

// BackPressureFactor implements §4.6's back-pressure compensation formula:
// speed is scaled up for beads narrower than the nominal width (and down
// for wider ones), floored at epsilon so speed never reaches zero.
func (e *ExtruderPlan) BackPressureFactor(nominalWidth, actualWidth float64) float64 {
	const epsilon = 1e-3
	if actualWidth <= 0 {
		return epsilon
	}
	factor := 1 + (nominalWidth/actualWidth-1)*e.Retraction.BackPressureCompensation
	if factor < epsilon {
		return epsilon
	}
	return factor
}
