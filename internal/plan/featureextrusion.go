package plan

import "github.com/google/uuid"

// FeatureExtrusion is any of the print-feature variants an ExtruderPlan can
// hold: WallFeatureExtrusion, MeshFeatureExtrusion, SkinFeatureExtrusion,
// InfillFeatureExtrusion, SupportFeatureExtrusion, or TravelRoute. Each owns
// a sequence of ContinuousExtruderMoveSequence children.
type FeatureExtrusion interface {
	Sequence
	FeatureType() FeatureType
	Params() ExtrusionParams
}

// ExtrusionParams carries the per-feature extrusion parameters §4.6 names:
// the nominal line width/thickness and a flow multiplier applied on top of
// them.
type ExtrusionParams struct {
	LineWidth     float64 // microns, nominal
	LineThickness float64 // microns
	FlowRatio     float64 // multiplier, 1.0 = nominal flow
}

// moveSequencesOf returns children narrowed to
// *ContinuousExtruderMoveSequence, in traversal order.
func moveSequencesOf(children []Node) []*ContinuousExtruderMoveSequence {
	out := make([]*ContinuousExtruderMoveSequence, 0, len(children))
	for _, c := range children {
		if s, ok := c.(*ContinuousExtruderMoveSequence); ok {
			out = append(out, s)
		}
	}
	return out
}

// WallFeatureExtrusion is a variable-width wall bead, either the outer wall
// or one of the inner insets (§4.1).
type WallFeatureExtrusion struct {
	childList
	ExtrusionParams
	Inset int
	Outer bool
}

func NewWallFeatureExtrusion(inset int, outer bool, params ExtrusionParams) *WallFeatureExtrusion {
	return &WallFeatureExtrusion{Inset: inset, Outer: outer, ExtrusionParams: params}
}

func (w *WallFeatureExtrusion) Kind() Kind { return KindWallFeatureExtrusion }
func (w *WallFeatureExtrusion) FeatureType() FeatureType {
	if w.Outer {
		return FeatureWallOuter
	}
	return FeatureWallInner
}
func (w *WallFeatureExtrusion) Params() ExtrusionParams      { return w.ExtrusionParams }
func (w *WallFeatureExtrusion) AppendChild(child Node) error { return w.appendChild(w, child) }
func (w *WallFeatureExtrusion) RemoveChild(child Node) error { return w.removeChild(child) }
func (w *WallFeatureExtrusion) MoveSequences() []*ContinuousExtruderMoveSequence {
	return moveSequencesOf(w.children)
}

// MeshFeatureExtrusion is a model-surface extrusion, tagged with the mesh
// it came from (an ADDED field: the original spec's wall/skin/infill
// variants don't distinguish source mesh, which a multi-mesh plate needs).
type MeshFeatureExtrusion struct {
	childList
	ExtrusionParams
	MeshID   uuid.UUID
	MeshName string
}

func NewMeshFeatureExtrusion(meshID uuid.UUID, meshName string, params ExtrusionParams) *MeshFeatureExtrusion {
	return &MeshFeatureExtrusion{MeshID: meshID, MeshName: meshName, ExtrusionParams: params}
}

func (m *MeshFeatureExtrusion) Kind() Kind               { return KindMeshFeatureExtrusion }
func (m *MeshFeatureExtrusion) FeatureType() FeatureType { return FeatureMesh }
func (m *MeshFeatureExtrusion) Params() ExtrusionParams      { return m.ExtrusionParams }
func (m *MeshFeatureExtrusion) AppendChild(child Node) error { return m.appendChild(m, child) }
func (m *MeshFeatureExtrusion) RemoveChild(child Node) error { return m.removeChild(child) }
func (m *MeshFeatureExtrusion) MoveSequences() []*ContinuousExtruderMoveSequence {
	return moveSequencesOf(m.children)
}

// SkinFeatureExtrusion is a solid top/bottom layer extrusion.
type SkinFeatureExtrusion struct {
	childList
	ExtrusionParams
}

func NewSkinFeatureExtrusion(params ExtrusionParams) *SkinFeatureExtrusion {
	return &SkinFeatureExtrusion{ExtrusionParams: params}
}

func (s *SkinFeatureExtrusion) Kind() Kind               { return KindSkinFeatureExtrusion }
func (s *SkinFeatureExtrusion) FeatureType() FeatureType { return FeatureSkin }
func (s *SkinFeatureExtrusion) Params() ExtrusionParams      { return s.ExtrusionParams }
func (s *SkinFeatureExtrusion) AppendChild(child Node) error { return s.appendChild(s, child) }
func (s *SkinFeatureExtrusion) RemoveChild(child Node) error { return s.removeChild(child) }
func (s *SkinFeatureExtrusion) MoveSequences() []*ContinuousExtruderMoveSequence {
	return moveSequencesOf(s.children)
}

// InfillFeatureExtrusion is sparse interior fill.
type InfillFeatureExtrusion struct {
	childList
	ExtrusionParams
	Density float64 // 0..1
}

func NewInfillFeatureExtrusion(density float64, params ExtrusionParams) *InfillFeatureExtrusion {
	return &InfillFeatureExtrusion{Density: density, ExtrusionParams: params}
}

func (i *InfillFeatureExtrusion) Kind() Kind               { return KindInfillFeatureExtrusion }
func (i *InfillFeatureExtrusion) FeatureType() FeatureType { return FeatureInfill }
func (i *InfillFeatureExtrusion) Params() ExtrusionParams      { return i.ExtrusionParams }
func (i *InfillFeatureExtrusion) AppendChild(child Node) error { return i.appendChild(i, child) }
func (i *InfillFeatureExtrusion) RemoveChild(child Node) error { return i.removeChild(child) }
func (i *InfillFeatureExtrusion) MoveSequences() []*ContinuousExtruderMoveSequence {
	return moveSequencesOf(i.children)
}

// SupportFeatureExtrusion is support-structure material.
type SupportFeatureExtrusion struct {
	childList
	ExtrusionParams
}

func NewSupportFeatureExtrusion(params ExtrusionParams) *SupportFeatureExtrusion {
	return &SupportFeatureExtrusion{ExtrusionParams: params}
}

func (s *SupportFeatureExtrusion) Kind() Kind               { return KindSupportFeatureExtrusion }
func (s *SupportFeatureExtrusion) FeatureType() FeatureType { return FeatureSupport }
func (s *SupportFeatureExtrusion) Params() ExtrusionParams      { return s.ExtrusionParams }
func (s *SupportFeatureExtrusion) AppendChild(child Node) error { return s.appendChild(s, child) }
func (s *SupportFeatureExtrusion) RemoveChild(child Node) error { return s.removeChild(child) }
func (s *SupportFeatureExtrusion) MoveSequences() []*ContinuousExtruderMoveSequence {
	return moveSequencesOf(s.children)
}

// TravelRoute carries non-extruding travel moves between features, inserted
// by the travel-move transformer (§4.4) rather than produced directly by a
// generator.
type TravelRoute struct {
	childList
}

func NewTravelRoute() *TravelRoute { return &TravelRoute{} }

func (t *TravelRoute) Kind() Kind               { return KindTravelRoute }
func (t *TravelRoute) FeatureType() FeatureType { return FeatureMoveTravel }
func (t *TravelRoute) Params() ExtrusionParams      { return ExtrusionParams{} }
func (t *TravelRoute) AppendChild(child Node) error { return t.appendChild(t, child) }
func (t *TravelRoute) RemoveChild(child Node) error { return t.removeChild(child) }
func (t *TravelRoute) MoveSequences() []*ContinuousExtruderMoveSequence {
	return moveSequencesOf(t.children)
}
