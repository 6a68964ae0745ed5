package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

// ReportExporter accumulates per-layer extrusion/travel totals and writes
// them as an .xlsx summary sheet once the job finishes, the write-side
// counterpart of the teacher's excelize-based importer.
type ReportExporter struct {
	rows    []reportRow
	current reportRow
	lastPos geom.Point3
	havePos bool
}

type reportRow struct {
	layerIndex     int
	z              float64
	extrusionMM    float64
	travelMM       float64
	estimatedSec   float64
}

// NewReportExporter constructs an empty report accumulator.
func NewReportExporter() *ReportExporter {
	return &ReportExporter{}
}

func (r *ReportExporter) WriteLayerStart(layerIndex int, z int64, start geom.Point3) error {
	r.current = reportRow{layerIndex: layerIndex, z: micronsToMM(float64(z))}
	r.lastPos = start
	r.havePos = true
	return nil
}

func (r *ReportExporter) WriteExtrusion(point geom.Point3, speed, mm3PerMM, lineWidth, lineThickness float64, feature plan.FeatureType) error {
	if r.havePos {
		length := micronsToMM(distance(r.lastPos, point))
		r.current.extrusionMM += length
		if speed > 0 {
			r.current.estimatedSec += length / speed
		}
	}
	r.lastPos = point
	r.havePos = true
	return nil
}

func (r *ReportExporter) WriteTravel(point geom.Point3, speed float64, feature plan.FeatureType) error {
	if r.havePos {
		length := micronsToMM(distance(r.lastPos, point))
		r.current.travelMM += length
		if speed > 0 {
			r.current.estimatedSec += length / speed
		}
	}
	r.lastPos = point
	r.havePos = true
	return nil
}

func (r *ReportExporter) WriteLayerEnd(layerIndex int, layerThickness int64) error {
	r.rows = append(r.rows, r.current)
	return nil
}

// Finish writes the accumulated per-layer totals to an .xlsx file at path.
func (r *ReportExporter) Finish(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Layers"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Layer", "Z (mm)", "Extruded (mm)", "Travel (mm)", "Estimated time (s)"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("report header: %w", err)
		}
	}

	var totalExtruded, totalTravel, totalSeconds float64
	for i, row := range r.rows {
		excelRow := i + 2
		values := []any{row.layerIndex, row.z, row.extrusionMM, row.travelMM, row.estimatedSec}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, excelRow)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("report row %d: %w", i, err)
			}
		}
		totalExtruded += row.extrusionMM
		totalTravel += row.travelMM
		totalSeconds += row.estimatedSec
	}

	summaryRow := len(r.rows) + 2
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Totals"); err != nil {
		return err
	}
	totals := []any{nil, nil, totalExtruded, totalTravel, totalSeconds}
	for col, v := range totals {
		if v == nil {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(col+1, summaryRow)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
