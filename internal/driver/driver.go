// Package driver implements the concurrency and resource model §5
// describes: a bounded worker pool builds LayerPlans in parallel, and a
// single emission goroutine hands them to the exporter strictly in
// ascending layer order. Grounded on the teacher pack's only other
// goroutine fan-out (goeland86-snapmaker_moonraker/sacp/discover.go's
// sync.WaitGroup-over-a-bounded-set pattern) since no teacher file builds
// an ordered worker pool directly.
package driver

import (
	"context"
	"fmt"
	"sync"

	"github.com/piwi3910/slicecore/internal/corelog"
	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
	"github.com/piwi3910/slicecore/internal/toolpath"
	"github.com/piwi3910/slicecore/internal/transform"
	"github.com/piwi3910/slicecore/internal/travel"
	"github.com/piwi3910/slicecore/internal/wall"
)

// LayerInput is the per-layer geometry and placement data the driver needs
// to build one LayerPlan (§6's "Inputs to the core").
type LayerInput struct {
	Index                  int
	Z                      int64
	Thickness              int64
	Outline                geom.Shape
	BeadWidth0, BeadWidthX float64
	InsetCount             int
}

// Options carries the driver-supplied feature configuration (§6's "Inputs
// to the core": nominal speeds, widths, flow ratios) shared across every
// layer of one run.
type Options struct {
	WallSettings    wall.Settings
	ExtrusionParams plan.ExtrusionParams
	FeatureSpeed    float64 // mm/s
	TravelSpeed     float64 // mm/s
	Retraction      plan.RetractionConfig
	TravelGenerator travel.Generator
	MaxResolution   float64
	FluidAngle      float64
	Workers         int
	Log             *corelog.Logger
}

// BuildLayerPlan runs the per-layer pipeline §4 describes: wall generation,
// feature population, junction smoothing, feature ordering, and travel-move
// insertion. It has no shared mutable state, so it's safe to call
// concurrently across layers (§5 "independent per layer").
func BuildLayerPlan(input LayerInput, opts Options) (*plan.LayerPlan, error) {
	result, err := wall.Generate(input.Outline, input.BeadWidth0, input.BeadWidthX, input.InsetCount, opts.WallSettings)
	if err != nil {
		return nil, fmt.Errorf("layer %d: wall generation: %w", input.Index, err)
	}

	lp := plan.NewLayerPlan(input.Index, input.Z, input.Thickness)
	ep := plan.NewExtruderPlan(0, opts.TravelSpeed, opts.Retraction)
	if err := lp.AppendChild(ep); err != nil {
		return nil, err
	}

	for _, lines := range result.Toolpaths {
		for _, line := range lines {
			if err := appendWallLine(ep, line, input.Z, opts); err != nil {
				return nil, err
			}
		}
	}

	for _, f := range ep.Features() {
		_, closed := f.(*plan.WallFeatureExtrusion)
		for _, seq := range moveSequencesOf(f) {
			transform.SmoothMoveSequence(seq, opts.MaxResolution, opts.FluidAngle, closed)
			if closed {
				if err := closeLoop(seq, opts.FeatureSpeed); err != nil {
					return nil, err
				}
			}
		}
	}

	if cycleFound, err := transform.ApplyOrdering(ep, transform.Before(transform.DefaultPrecedence)); err != nil {
		return nil, fmt.Errorf("layer %d: ordering: %w", input.Index, err)
	} else if cycleFound {
		opts.Log.Warnf("layer %d: feature precedence cycle, keeping encountered order", input.Index)
	}

	gen := opts.TravelGenerator
	if gen == nil {
		gen = travel.StraightLineGenerator{MinRetractDistance: opts.Retraction.MinTravelDistance}
	}
	if err := transform.InsertTravelMoves(ep, gen, opts.TravelSpeed); err != nil {
		return nil, fmt.Errorf("layer %d: travel insertion: %w", input.Index, err)
	}

	return lp, nil
}

func appendWallLine(ep *plan.ExtruderPlan, line toolpath.ExtrusionLine, z int64, opts Options) error {
	outer := line.Inset == 0
	wf := plan.NewWallFeatureExtrusion(line.Inset, outer, opts.ExtrusionParams)
	seq := plan.NewContinuousExtruderMoveSequence()
	for _, j := range line.Junctions {
		pos := geom.Point3{X: j.Position.X, Y: j.Position.Y, Z: z}
		ratio := 1.0
		if opts.ExtrusionParams.LineWidth > 0 {
			ratio = j.Width / opts.ExtrusionParams.LineWidth
		}
		if err := seq.AppendChild(plan.NewExtrusionMove(pos, opts.FeatureSpeed, ratio)); err != nil {
			return err
		}
	}
	if err := wf.AppendChild(seq); err != nil {
		return err
	}
	return ep.AppendChild(wf)
}

// closeLoop appends one final move back to seq's first position, so a
// closed wall loop actually prints closed: the smoothing pass (run before
// this) treats closed paths by wrapping the index window rather than
// expecting a literal duplicate end point, so the duplicate is only added
// once smoothing is done.
func closeLoop(seq *plan.ContinuousExtruderMoveSequence, speed float64) error {
	moves := seq.Moves()
	if len(moves) < 2 {
		return nil
	}
	first, last := moves[0], moves[len(moves)-1]
	if first.Position() == last.Position() {
		return nil
	}
	return seq.AppendChild(plan.NewExtrusionMove(first.Position(), speed, 1.0))
}

func moveSequencesOf(f plan.FeatureExtrusion) []*plan.ContinuousExtruderMoveSequence {
	var out []*plan.ContinuousExtruderMoveSequence
	for _, c := range f.Children() {
		if seq, ok := c.(*plan.ContinuousExtruderMoveSequence); ok {
			out = append(out, seq)
		}
	}
	return out
}

// Run implements §5's scheduling model: a bounded pool of workers builds
// LayerPlans concurrently; a single goroutine drains them in ascending
// layer order and hands each to exp. Run returns the first error
// encountered, from either a layer build or an exporter's WriteLayerStart
// or WriteLayerEnd call, after letting in-flight worker tasks finish their
// current layer (§5 "Cancellation"). Errors from per-move WriteExtrusion
// and WriteTravel calls are logged by plan.WriteLayer and not returned.
func Run(ctx context.Context, inputs []LayerInput, opts Options, exp plan.Exporter) error {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	results := make([]*plan.LayerPlan, len(inputs))
	errs := make([]error, len(inputs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				select {
				case <-ctx.Done():
					errs[idx] = ctx.Err()
					continue
				default:
				}
				lp, err := BuildLayerPlan(inputs[idx], opts)
				results[idx] = lp
				errs[idx] = err
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range inputs {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}

	for i, lp := range results {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if lp == nil {
			continue
		}
		if err := plan.WriteLayer(lp, exp, opts.Log); err != nil {
			return fmt.Errorf("layer %d: export: %w", i, err)
		}
	}
	return nil
}
