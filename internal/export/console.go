package export

import (
	"fmt"
	"io"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

// ConsoleExporter writes a human-readable trace of every write call to w,
// useful for debugging a transform pipeline without a printer attached.
type ConsoleExporter struct {
	w io.Writer
}

// NewConsoleExporter wraps w as a plan.Exporter.
func NewConsoleExporter(w io.Writer) *ConsoleExporter {
	return &ConsoleExporter{w: w}
}

func (c *ConsoleExporter) WriteLayerStart(layerIndex int, z int64, start geom.Point3) error {
	_, err := fmt.Fprintf(c.w, "layer %d start z=%.3fmm pos=(%.3f,%.3f,%.3f)\n",
		layerIndex, micronsToMM(float64(z)), micronsToMM(float64(start.X)), micronsToMM(float64(start.Y)), micronsToMM(float64(start.Z)))
	return err
}

func (c *ConsoleExporter) WriteExtrusion(point geom.Point3, speed, mm3PerMM, lineWidth, lineThickness float64, feature plan.FeatureType) error {
	_, err := fmt.Fprintf(c.w, "  extrude %-14s -> (%.3f,%.3f,%.3f) speed=%.1fmm/s flow=%.4fmm3/mm width=%.3f thickness=%.3f\n",
		feature, micronsToMM(float64(point.X)), micronsToMM(float64(point.Y)), micronsToMM(float64(point.Z)), speed, mm3PerMM, lineWidth, lineThickness)
	return err
}

func (c *ConsoleExporter) WriteTravel(point geom.Point3, speed float64, feature plan.FeatureType) error {
	_, err := fmt.Fprintf(c.w, "  travel  %-14s -> (%.3f,%.3f,%.3f) speed=%.1fmm/s\n",
		feature, micronsToMM(float64(point.X)), micronsToMM(float64(point.Y)), micronsToMM(float64(point.Z)), speed)
	return err
}

func (c *ConsoleExporter) WriteLayerEnd(layerIndex int, layerThickness int64) error {
	_, err := fmt.Fprintf(c.w, "layer %d end thickness=%.3fmm\n", layerIndex, micronsToMM(float64(layerThickness)))
	return err
}
