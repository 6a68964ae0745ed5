package plan

import "github.com/piwi3910/slicecore/internal/corelog"

// WriteLayer emits one layer's worth of calls to exp: WriteLayerStart,
// then every extrusion/travel move in traversal order, then WriteLayerEnd.
// A node whose expected ancestor context is missing (for instance a move
// sequence directly under an ExtruderPlan rather than inside a
// FeatureExtrusion, or a FeatureExtrusion child that is not a move
// sequence) is logged and skipped rather than treated as fatal - the rest
// of the layer is still worth printing. A move whose exporter call fails is
// likewise logged and skipped; only the WriteLayerStart and WriteLayerEnd
// errors are returned.
func WriteLayer(lp *LayerPlan, exp Exporter, log *corelog.Logger) error {
	start, ok := FindStartPosition(lp)
	if !ok {
		log.Warnf("layer %d: no moves, writing empty layer", lp.LayerIndex)
	}
	if err := exp.WriteLayerStart(lp.LayerIndex, lp.Z, start); err != nil {
		return err
	}
	for _, ep := range lp.ExtruderPlans() {
		writeExtruderPlan(ep, exp, log)
	}
	return exp.WriteLayerEnd(lp.LayerIndex, lp.Thickness)
}

func writeExtruderPlan(ep *ExtruderPlan, exp Exporter, log *corelog.Logger) {
	for _, child := range ep.Children() {
		f, ok := child.(FeatureExtrusion)
		if !ok {
			log.Warnf("%s: child %s is not a feature extrusion, skipping", ep.Kind(), child.Kind())
			continue
		}
		writeFeature(f, ep, exp, log)
	}
}

func writeFeature(f FeatureExtrusion, ep *ExtruderPlan, exp Exporter, log *corelog.Logger) {
	params := f.Params()
	for _, child := range f.Children() {
		seq, ok := child.(*ContinuousExtruderMoveSequence)
		if !ok {
			log.Warnf("%s: child %s is not a move sequence, skipping", f.Kind(), child.Kind())
			continue
		}
		for _, mv := range seq.Moves() {
			if err := writeMove(mv, f, params, ep, exp); err != nil {
				log.Warnf("%s: failed to write move, skipping: %v", f.Kind(), err)
			}
		}
	}
}

func writeMove(mv ExtruderMove, f FeatureExtrusion, params ExtrusionParams, ep *ExtruderPlan, exp Exporter) error {
	switch m := mv.(type) {
	case *ExtrusionMove:
		actualWidth := params.LineWidth * m.LineWidthRatio
		speed := m.Spd
		if ep != nil {
			speed *= ep.BackPressureFactor(params.LineWidth, actualWidth)
		}
		mm3PerMM := micronsToMM(actualWidth) * micronsToMM(params.LineThickness) * params.FlowRatio
		return exp.WriteExtrusion(m.Pos, speed, mm3PerMM, actualWidth, params.LineThickness, f.FeatureType())
	case *TravelMove:
		return exp.WriteTravel(m.Pos, m.Spd, m.Feature)
	default:
		return nil
	}
}

func micronsToMM(v float64) float64 { return v / 1000 }
