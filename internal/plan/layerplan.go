package plan

import "github.com/google/uuid"

// LayerPlan is the root of one layer's print operation tree: an ordered
// sequence of ExtruderPlan children, one per extruder used on this layer.
type LayerPlan struct {
	childList

	ID         uuid.UUID
	LayerIndex int
	Z          int64 // microns, layer top
	Thickness  int64 // microns
}

// NewLayerPlan constructs an empty layer plan at the given index/height.
func NewLayerPlan(layerIndex int, z, thickness int64) *LayerPlan {
	return &LayerPlan{ID: uuid.New(), LayerIndex: layerIndex, Z: z, Thickness: thickness}
}

func (l *LayerPlan) Kind() Kind { return KindLayerPlan }

func (l *LayerPlan) AppendChild(child Node) error { return l.appendChild(l, child) }
func (l *LayerPlan) RemoveChild(child Node) error { return l.removeChild(child) }

// ExtruderPlans returns the layer's children narrowed to their concrete
// type, in traversal order.
func (l *LayerPlan) ExtruderPlans() []*ExtruderPlan {
	out := make([]*ExtruderPlan, 0, len(l.children))
	for _, c := range l.children {
		if ep, ok := c.(*ExtruderPlan); ok {
			out = append(out, ep)
		}
	}
	return out
}
