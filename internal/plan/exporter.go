package plan

import "github.com/piwi3910/slicecore/internal/geom"

// Exporter is the sink a print operation tree is written to (§4.5): a
// single layer's worth of calls always brackets between WriteLayerStart and
// WriteLayerEnd, and every extrusion/travel call carries enough context
// (position, speed, feature type) that an exporter needs no tree access of
// its own.
type Exporter interface {
	WriteLayerStart(layerIndex int, z int64, startPosition geom.Point3) error
	WriteExtrusion(point geom.Point3, speed, mm3PerMM, lineWidth, lineThickness float64, feature FeatureType) error
	WriteTravel(point geom.Point3, speed float64, feature FeatureType) error
	WriteLayerEnd(layerIndex int, layerThickness int64) error
}
