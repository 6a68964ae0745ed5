package transform

import (
	"math"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

// SmoothMoveSequence removes extrusion-move junctions that add no real path
// information: a junction is dropped when both its incoming segment is
// shorter than maxResolution and the turn it makes is shallower than
// fluidAngle (radians). Candidates are marked first and the surviving moves
// compacted afterward in one pass, so an earlier removal in the sliding
// window can't shift the indices a later comparison relies on.
//
// closed indicates whether the path wraps around (a closed wall loop) or is
// open (a single inner-to-outer travel-free pass): closed paths let the
// window wrap past either end, open paths always keep their first and last
// junction untouched so the path's endpoints never move.
func SmoothMoveSequence(seq *plan.ContinuousExtruderMoveSequence, maxResolution, fluidAngle float64, closed bool) {
	moves := seq.Moves()
	n := len(moves)
	if n < 3 {
		return
	}

	positions := make([]geom.Point, n)
	for i, m := range moves {
		p := m.Position()
		positions[i] = geom.Point{X: p.X, Y: p.Y}
	}

	removed := markRemovable(positions, maxResolution, fluidAngle, closed)

	kept := make([]plan.Node, 0, n)
	for i, m := range moves {
		if removed[i] {
			continue
		}
		kept = append(kept, m)
	}

	for _, m := range moves {
		_ = seq.RemoveChild(m)
	}
	for _, keptNode := range kept {
		_ = seq.AppendChild(keptNode)
	}
}

func markRemovable(points []geom.Point, maxResolution, fluidAngle float64, closed bool) []bool {
	n := len(points)
	removed := make([]bool, n)

	start, end := 1, n-1
	if closed {
		start, end = 0, n
	}

	for i := start; i < end; i++ {
		prevIdx := prevUnremoved(removed, i, closed)
		nextIdx := nextUnremoved(removed, i, closed)
		if prevIdx < 0 || nextIdx < 0 || prevIdx == i || nextIdx == i {
			continue
		}
		prev, cur, next := points[prevIdx], points[i], points[nextIdx]
		if prev.DistanceTo(cur) > maxResolution {
			continue
		}
		if turningAngle(prev, cur, next) <= fluidAngle {
			removed[i] = true
		}
	}
	return removed
}

func prevUnremoved(removed []bool, i int, closed bool) int {
	n := len(removed)
	for k := 1; k <= n; k++ {
		j := i - k
		if closed {
			j = ((j % n) + n) % n
		} else if j < 0 {
			return -1
		}
		if !removed[j] {
			return j
		}
	}
	return -1
}

func nextUnremoved(removed []bool, i int, closed bool) int {
	n := len(removed)
	for k := 1; k <= n; k++ {
		j := i + k
		if closed {
			j = j % n
		} else if j >= n {
			return -1
		}
		if !removed[j] {
			return j
		}
	}
	return -1
}

// turningAngle returns the absolute angle (radians) the path turns through
// at cur, going from prev to cur to next. Zero means dead straight.
func turningAngle(prev, cur, next geom.Point) float64 {
	in := cur.Sub(prev)
	out := next.Sub(cur)
	if in.Length() == 0 || out.Length() == 0 {
		return 0
	}
	cross := float64(in.Cross(out))
	dot := float64(in.Dot(out))
	return math.Abs(math.Atan2(cross, dot))
}
