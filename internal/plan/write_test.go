package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/slicecore/internal/corelog"
	"github.com/piwi3910/slicecore/internal/geom"
)

type recordedCall struct {
	kind  string
	point geom.Point3
}

type fakeExporter struct {
	calls       []recordedCall
	layerStarts int
	layerEnds   int
}

func (f *fakeExporter) WriteLayerStart(layerIndex int, z int64, start geom.Point3) error {
	f.layerStarts++
	f.calls = append(f.calls, recordedCall{kind: "layer-start", point: start})
	return nil
}

func (f *fakeExporter) WriteExtrusion(p geom.Point3, speed, mm3PerMM, lineWidth, lineThickness float64, feature FeatureType) error {
	f.calls = append(f.calls, recordedCall{kind: "extrusion", point: p})
	return nil
}

func (f *fakeExporter) WriteTravel(p geom.Point3, speed float64, feature FeatureType) error {
	f.calls = append(f.calls, recordedCall{kind: "travel", point: p})
	return nil
}

func (f *fakeExporter) WriteLayerEnd(layerIndex int, layerThickness int64) error {
	f.layerEnds++
	f.calls = append(f.calls, recordedCall{kind: "layer-end"})
	return nil
}

func buildLayerWithOneWall(t *testing.T) *LayerPlan {
	t.Helper()
	layer := NewLayerPlan(0, 200, 200)
	ep := NewExtruderPlan(0, 150, RetractionConfig{BackPressureCompensation: 0})
	wall := NewWallFeatureExtrusion(0, true, ExtrusionParams{LineWidth: 400, LineThickness: 200, FlowRatio: 1})
	seq := NewContinuousExtruderMoveSequence()
	require.NoError(t, seq.AppendChild(NewExtrusionMove(pt(0, 0), 60, 1)))
	require.NoError(t, seq.AppendChild(NewExtrusionMove(pt(1000, 0), 60, 1)))
	require.NoError(t, wall.AppendChild(seq))
	require.NoError(t, ep.AppendChild(wall))
	require.NoError(t, layer.AppendChild(ep))
	return layer
}

func TestWriteLayerBracketsStartAndEnd(t *testing.T) {
	layer := buildLayerWithOneWall(t)
	exp := &fakeExporter{}

	require.NoError(t, WriteLayer(layer, exp, corelog.New(corelog.LevelError)))

	require.Equal(t, 1, exp.layerStarts)
	require.Equal(t, 1, exp.layerEnds)
	assert.Equal(t, "layer-start", exp.calls[0].kind)
	assert.Equal(t, "layer-end", exp.calls[len(exp.calls)-1].kind)
}

func TestWriteLayerEmitsExtrusionsInOrder(t *testing.T) {
	layer := buildLayerWithOneWall(t)
	exp := &fakeExporter{}

	require.NoError(t, WriteLayer(layer, exp, corelog.New(corelog.LevelError)))

	var extrusions []recordedCall
	for _, c := range exp.calls {
		if c.kind == "extrusion" {
			extrusions = append(extrusions, c)
		}
	}
	require.Len(t, extrusions, 2)
	assert.Equal(t, pt(0, 0), extrusions[0].point)
	assert.Equal(t, pt(1000, 0), extrusions[1].point)
}

func TestWriteLayerSkipsNonMoveSequenceChild(t *testing.T) {
	layer := NewLayerPlan(0, 0, 0)
	ep := NewExtruderPlan(0, 150, RetractionConfig{})
	wall := NewWallFeatureExtrusion(0, true, ExtrusionParams{LineWidth: 400})
	// Append another wall as a child of wall - not a move sequence - which
	// writeFeature must skip rather than fail on.
	require.NoError(t, wall.AppendChild(NewWallFeatureExtrusion(1, false, ExtrusionParams{})))
	require.NoError(t, ep.AppendChild(wall))
	require.NoError(t, layer.AppendChild(ep))

	exp := &fakeExporter{}
	err := WriteLayer(layer, exp, corelog.New(corelog.LevelError))
	require.NoError(t, err)
	assert.Equal(t, 1, exp.layerStarts)
	assert.Equal(t, 1, exp.layerEnds)
}
