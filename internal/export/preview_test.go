package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

func writeSampleLayer(t *testing.T, exp *PreviewExporter, index int, z int64) {
	t.Helper()
	require.NoError(t, exp.WriteLayerStart(index, z, geom.Point3{}))
	require.NoError(t, exp.WriteExtrusion(geom.Point3{X: 10000, Y: 0, Z: z}, 60, 0.1, 400, 200, plan.FeatureWallOuter))
	require.NoError(t, exp.WriteExtrusion(geom.Point3{X: 10000, Y: 10000, Z: z}, 60, 0.1, 400, 200, plan.FeatureWallOuter))
	require.NoError(t, exp.WriteTravel(geom.Point3{X: 20000, Y: 20000, Z: z}, 150, plan.FeatureMoveTravel))
	require.NoError(t, exp.WriteLayerEnd(index, 200))
}

func TestPreviewExporterFinishCreatesFile(t *testing.T) {
	exp := NewPreviewExporter(220000, 220000)
	writeSampleLayer(t, exp, 0, 200)
	writeSampleLayer(t, exp, 1, 400)

	dir := t.TempDir()
	path := filepath.Join(dir, "preview.pdf")
	require.NoError(t, exp.Finish(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPreviewExporterSkipsRenderWithoutBedSize(t *testing.T) {
	exp := NewPreviewExporter(0, 0)
	writeSampleLayer(t, exp, 0, 200)

	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")
	require.NoError(t, exp.Finish(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPreviewExporterResetsLayerBuffer(t *testing.T) {
	exp := NewPreviewExporter(220000, 220000)
	writeSampleLayer(t, exp, 0, 200)
	assert.Empty(t, exp.layer.segments, "layer buffer must be cleared once the page is rendered")
}
