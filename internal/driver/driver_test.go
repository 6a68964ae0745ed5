package driver

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/slicecore/internal/corelog"
	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
	"github.com/piwi3910/slicecore/internal/wall"
)

func squareOutline(side int64) geom.Shape {
	return geom.Shape{{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	}}
}

func testOptions() Options {
	return Options{
		WallSettings:    wall.Settings{MinBeadWidth: 50},
		ExtrusionParams: plan.ExtrusionParams{LineWidth: 400, LineThickness: 200, FlowRatio: 1.0},
		FeatureSpeed:    60,
		TravelSpeed:     150,
		Retraction:      plan.RetractionConfig{MinTravelDistance: 2000},
		MaxResolution:   50,
		FluidAngle:      0.1,
		Workers:         2,
		Log:             corelog.New(corelog.LevelError),
	}
}

func TestBuildLayerPlanProducesClosedWallLoop(t *testing.T) {
	input := LayerInput{
		Index: 0, Z: 200, Thickness: 200,
		Outline: squareOutline(10000), BeadWidth0: 400, BeadWidthX: 400, InsetCount: 1,
	}
	lp, err := BuildLayerPlan(input, testOptions())
	require.NoError(t, err)
	require.Len(t, lp.ExtruderPlans(), 1)

	ep := lp.ExtruderPlans()[0]
	features := ep.Features()
	require.NotEmpty(t, features)

	wf, ok := features[0].(*plan.WallFeatureExtrusion)
	require.True(t, ok)
	seqs := moveSequencesOf(wf)
	require.NotEmpty(t, seqs)
	moves := seqs[0].Moves()
	require.GreaterOrEqual(t, len(moves), 2)
	assert.Equal(t, moves[0].Position(), moves[len(moves)-1].Position())
}

func TestBuildLayerPlanEmptyOutlineYieldsNoFeatures(t *testing.T) {
	input := LayerInput{
		Index: 0, Z: 200, Thickness: 200,
		Outline:    geom.Shape{{{X: 0, Y: 0}, {X: 10000, Y: 0}}},
		BeadWidth0: 400, BeadWidthX: 400, InsetCount: 1,
	}
	lp, err := BuildLayerPlan(input, testOptions())
	require.NoError(t, err)
	ep := lp.ExtruderPlans()[0]
	assert.Empty(t, ep.Features())
}

type recordingExporter struct {
	mu      sync.Mutex
	layers  []int
	started bool
}

func (r *recordingExporter) WriteLayerStart(layerIndex int, z int64, start geom.Point3) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layers = append(r.layers, layerIndex)
	return nil
}
func (r *recordingExporter) WriteExtrusion(point geom.Point3, speed, mm3PerMM, lineWidth, lineThickness float64, feature plan.FeatureType) error {
	return nil
}
func (r *recordingExporter) WriteTravel(point geom.Point3, speed float64, feature plan.FeatureType) error {
	return nil
}
func (r *recordingExporter) WriteLayerEnd(layerIndex int, layerThickness int64) error { return nil }

func TestRunEmitsLayersInAscendingOrder(t *testing.T) {
	var inputs []LayerInput
	for i := 0; i < 5; i++ {
		inputs = append(inputs, LayerInput{
			Index: i, Z: int64(200 * (i + 1)), Thickness: 200,
			Outline: squareOutline(10000), BeadWidth0: 400, BeadWidthX: 400, InsetCount: 1,
		})
	}

	exp := &recordingExporter{}
	err := Run(context.Background(), inputs, testOptions(), exp)
	require.NoError(t, err)

	require.Len(t, exp.layers, 5)
	for i, idx := range exp.layers {
		assert.Equal(t, i, idx)
	}
}

func TestRunRespectsCancellation(t *testing.T) {
	inputs := []LayerInput{{
		Index: 0, Z: 200, Thickness: 200,
		Outline: squareOutline(10000), BeadWidth0: 400, BeadWidthX: 400, InsetCount: 1,
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exp := &recordingExporter{}
	err := Run(ctx, inputs, testOptions(), exp)
	assert.Error(t, err)
}
