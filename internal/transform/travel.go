// Package transform implements the print-operation-tree transformers §4.4
// names: travel-move insertion, junction smoothing, and feature-extrusion
// ordering. Each operates on a plan.ExtruderPlan (or a move sequence within
// one) and rewires children in place via AppendChild/RemoveChild.
package transform

import (
	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
	"github.com/piwi3910/slicecore/internal/travel"
)

// InsertTravelMoves walks ep's features in order and splices a TravelRoute
// from gen between any two consecutive features whose end/start positions
// don't already coincide. A feature with no moves of its own doesn't anchor
// a travel move on either side - the generator is invoked against the
// nearest feature before/after it that does have one.
func InsertTravelMoves(ep *plan.ExtruderPlan, gen travel.Generator, speed float64) error {
	features := ep.Features()
	if len(features) == 0 {
		return nil
	}

	detached := make([]plan.Node, len(features))
	for i, f := range features {
		detached[i] = f
	}
	for _, n := range detached {
		if err := ep.RemoveChild(n); err != nil {
			return err
		}
	}

	var ordered []plan.Node
	var prevEnd geom.Point3
	havePrevEnd := false

	for _, f := range features {
		if havePrevEnd {
			if start, ok := plan.FindStartPosition(f); ok && start != prevEnd {
				ordered = append(ordered, gen.GenerateRoute(prevEnd, start, speed))
			}
		}
		ordered = append(ordered, f)
		if end, ok := plan.FindEndPosition(f); ok {
			prevEnd = end
			havePrevEnd = true
		}
	}

	for _, n := range ordered {
		if err := ep.AppendChild(n); err != nil {
			return err
		}
	}
	return nil
}
