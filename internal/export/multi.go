package export

import (
	"errors"

	"github.com/piwi3910/slicecore/internal/geom"
	"github.com/piwi3910/slicecore/internal/plan"
)

// MultiExporter fans a single write out to several exporters, e.g. streaming
// GCode to a printer while also accumulating a preview PDF and a job label.
// Every exporter always receives the call regardless of an earlier sibling's
// error; all errors from a single call are joined and returned together.
type MultiExporter struct {
	exporters []plan.Exporter
}

// NewMultiExporter fans out to the given exporters in order.
func NewMultiExporter(exporters ...plan.Exporter) *MultiExporter {
	return &MultiExporter{exporters: exporters}
}

func (m *MultiExporter) WriteLayerStart(layerIndex int, z int64, start geom.Point3) error {
	var errs []error
	for _, e := range m.exporters {
		if err := e.WriteLayerStart(layerIndex, z, start); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiExporter) WriteExtrusion(point geom.Point3, speed, mm3PerMM, lineWidth, lineThickness float64, feature plan.FeatureType) error {
	var errs []error
	for _, e := range m.exporters {
		if err := e.WriteExtrusion(point, speed, mm3PerMM, lineWidth, lineThickness, feature); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiExporter) WriteTravel(point geom.Point3, speed float64, feature plan.FeatureType) error {
	var errs []error
	for _, e := range m.exporters {
		if err := e.WriteTravel(point, speed, feature); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiExporter) WriteLayerEnd(layerIndex int, layerThickness int64) error {
	var errs []error
	for _, e := range m.exporters {
		if err := e.WriteLayerEnd(layerIndex, layerThickness); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
