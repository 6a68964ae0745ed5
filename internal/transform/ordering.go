package transform

import "github.com/piwi3910/slicecore/internal/plan"

// DefaultPrecedence is the print-order rank most FDM slicers converge on:
// support first (so the model has somewhere to land), then the walls
// (inner before outer, so outer-wall surface quality isn't disturbed by an
// adjacent inner-wall pass), then model surfaces, then the fills.
var DefaultPrecedence = map[plan.FeatureType]int{
	plan.FeatureSupport:    0,
	plan.FeatureWallInner:  1,
	plan.FeatureWallOuter:  2,
	plan.FeatureMesh:       3,
	plan.FeatureSkin:       4,
	plan.FeatureInfill:     5,
	plan.FeatureMoveTravel: 6,
}

// Before reports whether a must be extruded before b under rank.
func Before(rank map[plan.FeatureType]int) func(a, b plan.FeatureExtrusion) bool {
	return func(a, b plan.FeatureExtrusion) bool {
		return rank[a.FeatureType()] < rank[b.FeatureType()]
	}
}

// OrderFeatures topologically sorts features by the before relation. When
// a genuine cycle prevents further sorting (some remaining group all
// mutually "must come before" each other), the offending group is appended
// in its original relative order rather than the sort failing, and
// cycleFound reports that this happened so the caller can log it.
func OrderFeatures(features []plan.FeatureExtrusion, before func(a, b plan.FeatureExtrusion) bool) (ordered []plan.FeatureExtrusion, cycleFound bool) {
	remaining := make([]plan.FeatureExtrusion, len(features))
	copy(remaining, features)

	for len(remaining) > 0 {
		freeIdx := -1
		for i, f := range remaining {
			blocked := false
			for j, g := range remaining {
				if i == j {
					continue
				}
				if before(g, f) {
					blocked = true
					break
				}
			}
			if !blocked {
				freeIdx = i
				break
			}
		}
		if freeIdx == -1 {
			cycleFound = true
			ordered = append(ordered, remaining...)
			break
		}
		ordered = append(ordered, remaining[freeIdx])
		remaining = append(remaining[:freeIdx], remaining[freeIdx+1:]...)
	}
	return ordered, cycleFound
}

// ApplyOrdering reorders ep's feature children in place according to
// OrderFeatures, returning whether a cycle was found.
func ApplyOrdering(ep *plan.ExtruderPlan, before func(a, b plan.FeatureExtrusion) bool) (bool, error) {
	features := ep.Features()
	ordered, cycleFound := OrderFeatures(features, before)

	nodes := make([]plan.Node, len(features))
	for i, f := range features {
		nodes[i] = f
	}
	for _, n := range nodes {
		if err := ep.RemoveChild(n); err != nil {
			return cycleFound, err
		}
	}
	for _, f := range ordered {
		if err := ep.AppendChild(f); err != nil {
			return cycleFound, err
		}
	}
	return cycleFound, nil
}
