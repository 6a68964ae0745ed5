package plan

// FeatureType classifies an extrusion or travel move for the exporter and
// for back-pressure / speed lookups (§4.5, §4.6). It mirrors the
// FeatureExtrusion variant the move belongs to, plus the travel-only
// retraction marker.
type FeatureType int

const (
	FeatureNone FeatureType = iota
	FeatureWallOuter
	FeatureWallInner
	FeatureMesh
	FeatureSkin
	FeatureInfill
	FeatureSupport
	FeatureMoveRetraction
	FeatureMoveTravel
)

func (f FeatureType) String() string {
	switch f {
	case FeatureWallOuter:
		return "wall-outer"
	case FeatureWallInner:
		return "wall-inner"
	case FeatureMesh:
		return "mesh"
	case FeatureSkin:
		return "skin"
	case FeatureInfill:
		return "infill"
	case FeatureSupport:
		return "support"
	case FeatureMoveRetraction:
		return "retraction"
	case FeatureMoveTravel:
		return "travel"
	default:
		return "none"
	}
}
