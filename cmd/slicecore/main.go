// Command slicecore drives the path-planning core end to end (§5): load
// configuration, load (or fabricate) a layer outline, build a LayerPlan per
// layer on a worker pool, and fan the result out to the requested
// exporters. Flag parsing follows the teacher pack's only other CLI
// (goeland86-snapmaker_moonraker/main.go): flag.String/Bool plus a
// straight-line func main, no CLI framework.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/piwi3910/slicecore/internal/config"
	"github.com/piwi3910/slicecore/internal/corelog"
	"github.com/piwi3910/slicecore/internal/driver"
	"github.com/piwi3910/slicecore/internal/dxfload"
	"github.com/piwi3910/slicecore/internal/export"
	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

func main() {
	configPath := flag.String("config", "", "path to engine config YAML (defaults built in if omitted)")
	dxfPath := flag.String("dxf", "", "DXF file to load the layer outline from")
	outDir := flag.String("out", "out", "output directory for exported artifacts")
	jobName := flag.String("name", "job", "job name, used for output filenames and the job label")
	layers := flag.Int("layers", 10, "number of layers to stack the loaded outline into")
	layerThickness := flag.Int64("layer-thickness", 200, "layer thickness in microns")
	insetCount := flag.Int("insets", 3, "wall inset count")
	beadWidth := flag.Float64("bead-width", 400, "nominal bead width in microns")
	firmware := flag.String("firmware", "Marlin", "gcode firmware profile: Marlin, RepRap, or Klipper")
	filamentDiameter := flag.Float64("filament-diameter", 1.75, "filament diameter in mm")
	workers := flag.Int("workers", 4, "worker pool size for per-layer plan construction")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := corelog.LevelInfo
	if *verbose {
		level = corelog.LevelDebug
	}
	logger := corelog.New(level)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	outline, err := loadOutline(*dxfPath)
	if err != nil {
		log.Fatalf("loading outline: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	opts := driver.Options{
		WallSettings:    cfg.WallSettings(),
		ExtrusionParams: plan.ExtrusionParams{LineWidth: *beadWidth, LineThickness: float64(*layerThickness), FlowRatio: 1.0},
		FeatureSpeed:    60,
		TravelSpeed:     150,
		Retraction:      cfg.PlanRetractionConfig(),
		MaxResolution:   cfg.Smoothing.MaxResolution,
		FluidAngle:      cfg.Smoothing.FluidAngle,
		Workers:         *workers,
		Log:             logger,
	}

	inputs := make([]driver.LayerInput, *layers)
	for i := range inputs {
		z := *layerThickness * int64(i+1)
		inputs[i] = driver.LayerInput{
			Index:      i,
			Z:          z,
			Thickness:  *layerThickness,
			Outline:    outline,
			BeadWidth0: *beadWidth,
			BeadWidthX: *beadWidth,
			InsetCount: *insetCount,
		}
	}

	gcodeExp := export.NewGCodeExporter(*firmware, *filamentDiameter)
	previewExp := export.NewPreviewExporter(boundsOf(outline))
	reportExp := export.NewReportExporter()
	labelExp := export.NewJobLabelExporter(*jobName)
	consoleExp := export.NewConsoleExporter(os.Stdout)

	multi := export.NewMultiExporter(consoleExp, gcodeExp, previewExp, reportExp, labelExp)

	if err := driver.Run(context.Background(), inputs, opts, multi); err != nil {
		log.Fatalf("running pipeline: %v", err)
	}

	if err := gcodeExp.Finish(filepath.Join(*outDir, *jobName+".gcode")); err != nil {
		log.Fatalf("writing gcode: %v", err)
	}
	if err := previewExp.Finish(filepath.Join(*outDir, *jobName+"_preview.pdf")); err != nil {
		log.Fatalf("writing preview: %v", err)
	}
	if err := reportExp.Finish(filepath.Join(*outDir, *jobName+"_report.xlsx")); err != nil {
		log.Fatalf("writing report: %v", err)
	}
	if err := labelExp.Finish(filepath.Join(*outDir, *jobName+"_label.pdf")); err != nil {
		log.Fatalf("writing label: %v", err)
	}

	manifest := config.NewRunManifest(*configPath, cfg, *outDir)
	if err := config.SaveManifest(filepath.Join(*outDir, *jobName+"_manifest.json"), manifest); err != nil {
		log.Fatalf("writing run manifest: %v", err)
	}

	logger.Infof("wrote %d layers to %s", *layers, *outDir)
}

// loadOutline reads a 2D outline from a DXF file, or falls back to a
// built-in 20mm square test outline when no file is given (useful for
// smoke-testing the pipeline without a model on hand).
func loadOutline(dxfPath string) (geom.Shape, error) {
	if dxfPath == "" {
		return geom.Shape{{
			{X: 0, Y: 0}, {X: 20000, Y: 0}, {X: 20000, Y: 20000}, {X: 0, Y: 20000},
		}}, nil
	}
	result, err := dxfload.Load(dxfPath)
	if err != nil {
		return nil, fmt.Errorf("loading dxf outline: %w", err)
	}
	return result.Shape, nil
}

func boundsOf(shape geom.Shape) (int64, int64) {
	var maxX, maxY int64
	for _, poly := range shape {
		min, max := poly.BoundingBox()
		_ = min
		if max.X > maxX {
			maxX = max.X
		}
		if max.Y > maxY {
			maxY = max.Y
		}
	}
	return maxX, maxY
}
