// Package export provides plan.Exporter implementations: console/debug
// output, websocket streaming to a connected printer, flat GCode, and the
// supplemental preview/label/report sinks a complete print pipeline also
// wants (§4.5 plus the ADDED supplemental features SPEC_FULL.md names).
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

// jobLabelInfo is the data encoded into a job label's QR code: enough for a
// phone scan at the printer to recover which job a plate belongs to.
type jobLabelInfo struct {
	JobID        string  `json:"job_id"`
	JobName      string  `json:"job_name"`
	Layers       int     `json:"layers"`
	ExtrudedMM3  float64 `json:"extruded_mm3"`
	EstimatedMin float64 `json:"estimated_min"`
}

// Label layout constants, one label per job (a single Avery-5160-compatible
// cell, centered on a US Letter sheet).
const (
	labelPageWidth  = 215.9 // US Letter width, mm
	labelPageHeight = 279.4 // US Letter height, mm
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelPadding    = 2.0
	qrSize          = 20.0

	// densityFactor converts extruded mm3 of nominal 1.24 g/cm3 PLA
	// filament to grams for the label's rough weight estimate.
	densityFactor = 0.00124
)

// JobLabelExporter accumulates per-layer timing and material totals as the
// plan is written, then renders a single QR-coded job label summarizing
// them once Finish is called (§4.5's exporter contract extended with a
// finish step, since a label can only be drawn once the whole job's totals
// are known).
type JobLabelExporter struct {
	JobID   uuid.UUID
	JobName string

	layers       int
	extrudedMM3  float64
	estimatedSec float64
	lastPos      *geom.Point3
}

// NewJobLabelExporter constructs an exporter that will track totals for the
// named job.
func NewJobLabelExporter(jobName string) *JobLabelExporter {
	return &JobLabelExporter{JobID: uuid.New(), JobName: jobName}
}

func (j *JobLabelExporter) WriteLayerStart(layerIndex int, z int64, start geom.Point3) error {
	j.layers++
	j.lastPos = &start
	return nil
}

func (j *JobLabelExporter) WriteExtrusion(p geom.Point3, speed, mm3PerMM, lineWidth, lineThickness float64, feature plan.FeatureType) error {
	if j.lastPos != nil {
		j.extrudedMM3 += mm3PerMM * micronsToMM(distance(*j.lastPos, p))
	}
	j.accumulateTime(p, speed)
	j.lastPos = &p
	return nil
}

func (j *JobLabelExporter) WriteTravel(p geom.Point3, speed float64, feature plan.FeatureType) error {
	j.accumulateTime(p, speed)
	j.lastPos = &p
	return nil
}

func (j *JobLabelExporter) WriteLayerEnd(layerIndex int, layerThickness int64) error { return nil }

func (j *JobLabelExporter) accumulateTime(p geom.Point3, speed float64) {
	if j.lastPos == nil || speed <= 0 {
		return
	}
	j.estimatedSec += micronsToMM(distance(*j.lastPos, p)) / speed
}

// Finish renders the accumulated job totals to a single QR-coded label PDF
// at path.
func (j *JobLabelExporter) Finish(path string) error {
	info := jobLabelInfo{
		JobID:        j.JobID.String(),
		JobName:      j.JobName,
		Layers:       j.layers,
		ExtrudedMM3:  j.extrudedMM3,
		EstimatedMin: j.estimatedSec / 60,
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	x, y := (labelPageWidth-labelWidth)/2, (labelPageHeight-labelHeight)/2

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal job label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate job label QR code: %w", err)
	}

	imgName := "qr_" + info.JobID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, info.JobName, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	weight := info.ExtrudedMM3 * densityFactor
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d layers, %.1f g", info.Layers, weight), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Est. %.0f min", info.EstimatedMin), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return pdf.OutputFileAndClose(path)
}

func distance(a, b geom.Point3) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func micronsToMM(v float64) float64 { return v / 1000 }
