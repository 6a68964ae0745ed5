package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

// featureColor mirrors the color convention most slicer preview UIs use for
// toolpath type: walls in one family of colors, fills in another.
type featureColor struct{ R, G, B int }

var featureColors = map[plan.FeatureType]featureColor{
	plan.FeatureWallOuter:       {R: 255, G: 152, B: 0},
	plan.FeatureWallInner:       {R: 255, G: 193, B: 110},
	plan.FeatureMesh:            {R: 76, G: 175, B: 80},
	plan.FeatureSkin:            {R: 33, G: 150, B: 243},
	plan.FeatureInfill:          {R: 156, G: 39, B: 176},
	plan.FeatureSupport:         {R: 0, G: 188, B: 212},
	plan.FeatureMoveRetraction:  {R: 200, G: 200, B: 200},
	plan.FeatureMoveTravel:      {R: 230, G: 230, B: 230},
}

// Page layout constants (A4 landscape in mm).
const (
	previewPageWidth    = 297.0
	previewPageHeight   = 210.0
	previewMarginLeft   = 15.0
	previewMarginRight  = 15.0
	previewMarginTop    = 15.0
	previewMarginBottom = 15.0
	previewHeaderHeight = 12.0
	previewDrawAreaTop  = previewMarginTop + previewHeaderHeight + 5.0
)

// PreviewExporter renders one PDF page per layer, drawing every extrusion
// and travel move to scale, colored by feature type. It is a sink only: it
// never feeds data onward to a printer. Moves are buffered from
// WriteLayerStart until WriteLayerEnd, which draws that layer's page into
// the in-memory PDF and clears the buffer; Finish writes the PDF to disk.
type PreviewExporter struct {
	pdf    *fpdf.Fpdf
	bounds geom.Point
	layer  previewLayer
}

type previewLayer struct {
	index    int
	z        int64
	segments []previewSegment
}

type previewSegment struct {
	from, to geom.Point
	feature  plan.FeatureType
	travel   bool
}

// NewPreviewExporter constructs an exporter that will lay out moves within a
// bed of the given width/height (microns), used to choose the page scale.
func NewPreviewExporter(bedWidth, bedHeight int64) *PreviewExporter {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, previewMarginBottom)
	return &PreviewExporter{pdf: pdf, bounds: geom.Point{X: bedWidth, Y: bedHeight}}
}

func (p *PreviewExporter) WriteLayerStart(layerIndex int, z int64, start geom.Point3) error {
	p.layer = previewLayer{index: layerIndex, z: z}
	return nil
}

func (p *PreviewExporter) WriteExtrusion(point geom.Point3, speed, mm3PerMM, lineWidth, lineThickness float64, feature plan.FeatureType) error {
	p.appendSegment(point, feature, false)
	return nil
}

func (p *PreviewExporter) WriteTravel(point geom.Point3, speed float64, feature plan.FeatureType) error {
	p.appendSegment(point, feature, true)
	return nil
}

func (p *PreviewExporter) appendSegment(point geom.Point3, feature plan.FeatureType, travel bool) {
	to := geom.Point{X: point.X, Y: point.Y}
	if len(p.layer.segments) == 0 {
		p.layer.segments = append(p.layer.segments, previewSegment{from: to, to: to, feature: feature, travel: travel})
		return
	}
	from := p.layer.segments[len(p.layer.segments)-1].to
	p.layer.segments = append(p.layer.segments, previewSegment{from: from, to: to, feature: feature, travel: travel})
}

func (p *PreviewExporter) WriteLayerEnd(layerIndex int, layerThickness int64) error {
	p.renderLayerPage(p.layer)
	p.layer = previewLayer{}
	return nil
}

// Finish writes the accumulated pages to path.
func (p *PreviewExporter) Finish(path string) error {
	return p.pdf.OutputFileAndClose(path)
}

func (p *PreviewExporter) renderLayerPage(layer previewLayer) {
	pdf := p.pdf
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(previewMarginLeft, previewMarginTop)
	title := fmt.Sprintf("Layer %d (z=%.2f mm, %d moves)", layer.index, micronsToMM(float64(layer.z)), len(layer.segments))
	pdf.CellFormat(previewPageWidth-previewMarginLeft-previewMarginRight, previewHeaderHeight, title, "", 0, "L", false, 0, "")

	drawWidth := previewPageWidth - previewMarginLeft - previewMarginRight
	drawHeight := previewPageHeight - previewDrawAreaTop - previewMarginBottom

	bedW := micronsToMM(float64(p.bounds.X))
	bedH := micronsToMM(float64(p.bounds.Y))
	if bedW <= 0 || bedH <= 0 {
		return
	}
	scale := math.Min(drawWidth/bedW, drawHeight/bedH)

	offsetX := previewMarginLeft + (drawWidth-bedW*scale)/2
	offsetY := previewDrawAreaTop

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	pdf.Rect(offsetX, offsetY, bedW*scale, bedH*scale, "D")

	for _, seg := range layer.segments {
		col := featureColors[seg.feature]
		if seg.travel {
			col = featureColors[plan.FeatureMoveTravel]
		}
		pdf.SetDrawColor(col.R, col.G, col.B)
		if seg.travel {
			pdf.SetLineWidth(0.1)
			pdf.SetDashPattern([]float64{0.6, 0.6}, 0)
		} else {
			pdf.SetLineWidth(0.25)
			pdf.SetDashPattern(nil, 0)
		}
		x1 := offsetX + micronsToMM(float64(seg.from.X))*scale
		y1 := offsetY + bedH*scale - micronsToMM(float64(seg.from.Y))*scale
		x2 := offsetX + micronsToMM(float64(seg.to.X))*scale
		y2 := offsetY + bedH*scale - micronsToMM(float64(seg.to.Y))*scale
		pdf.Line(x1, y1, x2, y2)
	}
	pdf.SetDashPattern(nil, 0)
}
