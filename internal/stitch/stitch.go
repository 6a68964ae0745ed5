// Package stitch joins open zero-width polylines into closed polygons,
// tolerating the end-point rounding error left over by skeletal
// trapezoidation (§4.2 of the wall generator contract).
package stitch

import (
	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/toolpath"
)

// bucketKey is a grid cell identifier; buckets are sized to stitchDistance
// so that every candidate within range of a query point falls in the query
// cell or one of its eight neighbors.
type bucketKey struct{ x, y int64 }

// endpointIndex is a spatial index over a set of polyline endpoints,
// bucketed on a grid with side stitchDistance. It supports "nearest
// unvisited endpoint within stitchDistance" queries without a full
// distance scan over every remaining line.
type endpointIndex struct {
	bucketSide float64
	buckets    map[bucketKey][]int // line index, keyed by bucket of its endpoint
	points     []geom.Point        // the endpoint per line index (start or end, per index)
}

func newEndpointIndex(bucketSide float64, points []geom.Point) *endpointIndex {
	idx := &endpointIndex{
		bucketSide: bucketSide,
		buckets:    make(map[bucketKey][]int),
		points:     points,
	}
	for i, p := range points {
		k := idx.keyFor(p)
		idx.buckets[k] = append(idx.buckets[k], i)
	}
	return idx
}

func (idx *endpointIndex) keyFor(p geom.Point) bucketKey {
	side := idx.bucketSide
	if side <= 0 {
		side = 1
	}
	return bucketKey{x: int64(float64(p.X) / side), y: int64(float64(p.Y) / side)}
}

// candidates returns every line index whose endpoint lies in the query
// point's bucket or one of its 8 neighbors.
func (idx *endpointIndex) candidates(query geom.Point) []int {
	center := idx.keyFor(query)
	var out []int
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			out = append(out, idx.buckets[bucketKey{x: center.x + dx, y: center.y + dy}]...)
		}
	}
	return out
}

// candidate is a nearby endpoint match: which line, whether the match was
// against that line's end (requiring traversal in reverse), and the
// squared distance used for tie-breaking.
type candidate struct {
	lineIdx  int
	fromEnd  bool
	distSq   int64
	foundAny bool
}

// Stitch joins the given open polylines into closed polygons. stitchDistance
// is the maximum gap (microns) between a line's endpoint and the next
// line's start/end that still counts as the same seam (§4.2: "stitch_distance
// = bead_width_0 / 2").
func Stitch(lines []toolpath.ExtrusionLine, stitchDistance float64) []toolpath.ExtrusionLine {
	n := len(lines)
	if n == 0 {
		return nil
	}

	starts := make([]geom.Point, n)
	ends := make([]geom.Point, n)
	for i, l := range lines {
		starts[i] = l.Start()
		ends[i] = l.End()
	}
	startIndex := newEndpointIndex(stitchDistance, starts)
	endIndex := newEndpointIndex(stitchDistance, ends)

	processed := make([]bool, n)
	var output []toolpath.ExtrusionLine

	stitchDistSq := int64(stitchDistance * stitchDistance)

	for i := 0; i < n; i++ {
		if processed[i] {
			continue
		}
		out := toolpath.ExtrusionLine{Closed: true}
		out.Junctions = append(out.Junctions, lines[i].Junctions...)
		processed[i] = true
		current := lines[i].End()

		for {
			best := findNearest(current, startIndex, endIndex, processed, stitchDistSq)
			if !best.foundAny {
				break
			}
			if processed[best.lineIdx] {
				break
			}
			next := lines[best.lineIdx]
			junctions := next.Junctions
			if best.fromEnd {
				junctions = reversed(junctions)
			}
			// Skip the seam vertex only when it duplicates the previous
			// line's last junction exactly; a junction merely within
			// stitchDistance is kept.
			if len(junctions) > 0 && junctions[0].Position == current {
				junctions = junctions[1:]
			}
			out.Junctions = append(out.Junctions, junctions...)
			processed[best.lineIdx] = true
			current = out.Junctions[len(out.Junctions)-1].Position
		}

		// A closed line does not repeat its start point at the end.
		if last := len(out.Junctions) - 1; last > 0 && out.Junctions[last].Position == out.Junctions[0].Position {
			out.Junctions = out.Junctions[:last]
		}
		output = append(output, out)
	}

	return output
}

// findNearest searches both the start-point and end-point indices for the
// unvisited line whose matching endpoint is closest to query, within
// stitchDistSq. Ties favor whichever candidate was encountered first:
// start-index candidates before end-index candidates, and within one index
// the nine neighboring buckets in a fixed scan order, with input order
// kept inside each bucket (§4.2 "first encountered in iteration order
// wins").
func findNearest(query geom.Point, startIndex, endIndex *endpointIndex, processed []bool, maxDistSq int64) candidate {
	best := candidate{distSq: maxDistSq + 1}

	consider := func(lineIdx int, fromEnd bool, points []geom.Point) {
		if processed[lineIdx] {
			return
		}
		d := query.DistanceSqTo(points[lineIdx])
		if d > maxDistSq {
			return
		}
		if !best.foundAny || d < best.distSq {
			best = candidate{lineIdx: lineIdx, fromEnd: fromEnd, distSq: d, foundAny: true}
		}
	}

	for _, i := range startIndex.candidates(query) {
		consider(i, false, startIndex.points)
	}
	for _, i := range endIndex.candidates(query) {
		consider(i, true, endIndex.points)
	}
	return best
}

func reversed(js []toolpath.Junction) []toolpath.Junction {
	out := make([]toolpath.Junction, len(js))
	for i, j := range js {
		out[len(js)-1-i] = j
	}
	return out
}
