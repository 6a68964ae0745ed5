package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

func TestReportExporterWritesOneRowPerLayer(t *testing.T) {
	exp := NewReportExporter()

	for i := 0; i < 2; i++ {
		z := int64(200 * (i + 1))
		require.NoError(t, exp.WriteLayerStart(i, z, geom.Point3{}))
		require.NoError(t, exp.WriteExtrusion(geom.Point3{X: 10000}, 60, 0.12, 400, 200, plan.FeatureWallOuter))
		require.NoError(t, exp.WriteTravel(geom.Point3{X: 10000, Y: 5000}, 150, plan.FeatureMoveTravel))
		require.NoError(t, exp.WriteLayerEnd(i, 200))
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")
	require.NoError(t, exp.Finish(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Layers")
	require.NoError(t, err)
	// header + 2 layer rows + totals row
	assert.Len(t, rows, 4)
	assert.Equal(t, "Layer", rows[0][0])
	assert.Equal(t, "Totals", rows[3][0])
}

func TestReportExporterHandlesNoLayers(t *testing.T) {
	exp := NewReportExporter()

	dir := t.TempDir()
	path := filepath.Join(dir, "empty.xlsx")
	require.NoError(t, exp.Finish(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Layers")
	require.NoError(t, err)
	assert.Equal(t, "Layer", rows[0][0])
}
