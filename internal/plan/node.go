// Package plan implements the print operation tree (§4.3): a recursive
// composite of LayerPlan -> ExtruderPlan -> FeatureExtrusion ->
// ContinuousExtruderMoveSequence -> ExtruderMove nodes, with exclusive
// child ownership, a non-owning parent back-reference on every child, and
// uniform ordered traversal / type-filtered search / transformer
// application across the whole tree.
//
// The C++ original's dynamic-cast-over-a-shared-pointer-tree design (§9)
// becomes a tagged variant here: every node reports a Kind, and callers that
// need variant-specific behavior type-switch on the concrete Go type (the Go
// analogue of a match expression) rather than doing a runtime type check.
package plan

// Kind tags which print-operation variant a Node is, letting callers
// type-switch instead of performing ad hoc type assertions everywhere.
type Kind int

const (
	KindLayerPlan Kind = iota
	KindExtruderPlan
	KindWallFeatureExtrusion
	KindMeshFeatureExtrusion
	KindSkinFeatureExtrusion
	KindInfillFeatureExtrusion
	KindSupportFeatureExtrusion
	KindTravelRoute
	KindMoveSequence
	KindExtrusionMove
	KindTravelMove
)

func (k Kind) String() string {
	switch k {
	case KindLayerPlan:
		return "LayerPlan"
	case KindExtruderPlan:
		return "ExtruderPlan"
	case KindWallFeatureExtrusion:
		return "WallFeatureExtrusion"
	case KindMeshFeatureExtrusion:
		return "MeshFeatureExtrusion"
	case KindSkinFeatureExtrusion:
		return "SkinFeatureExtrusion"
	case KindInfillFeatureExtrusion:
		return "InfillFeatureExtrusion"
	case KindSupportFeatureExtrusion:
		return "SupportFeatureExtrusion"
	case KindTravelRoute:
		return "TravelRoute"
	case KindMoveSequence:
		return "ContinuousExtruderMoveSequence"
	case KindExtrusionMove:
		return "ExtrusionMove"
	case KindTravelMove:
		return "TravelMove"
	default:
		return "Unknown"
	}
}

// Node is any node in the print operation tree. Every node reports its Kind
// and its current parent (nil for a detached or root node).
type Node interface {
	Kind() Kind
	Parent() Node
	setParent(Node)
}

// Sequence is a Node that owns an ordered list of children. Leaves (the
// ExtruderMove variants) are Nodes but not Sequences.
type Sequence interface {
	Node
	Empty() bool
	Children() []Node
	// AppendChild takes exclusive ownership of child and sets its parent
	// back-reference to this sequence. Returns an error if child already
	// has a parent (§4.3 "Rejects if child already has a parent").
	AppendChild(child Node) error
	// RemoveChild detaches child, clearing its parent back-reference.
	// Returns an error if child is not a child of this sequence.
	RemoveChild(child Node) error
}

// base is embedded by every concrete node type to provide the parent
// back-reference plumbing uniformly.
type base struct {
	parent Node
}

func (b *base) Parent() Node      { return b.parent }
func (b *base) setParent(p Node)  { b.parent = p }

// ErrAlreadyHasParent is returned by AppendChild when the child is already
// owned elsewhere.
type ErrAlreadyHasParent struct{ Child Node }

func (e *ErrAlreadyHasParent) Error() string {
	return "plan: child " + e.Child.Kind().String() + " already has a parent"
}

// ErrNotAChild is returned by RemoveChild when the given node is not
// currently a child of the sequence.
type ErrNotAChild struct{ Child Node }

func (e *ErrNotAChild) Error() string {
	return "plan: node " + e.Child.Kind().String() + " is not a child of this sequence"
}

// ErrWouldCycle is returned by AppendChild when child is an ancestor of the
// sequence it is being appended to, which would introduce a cycle (§3 "No
// cycles: ... cycles must be rejected").
type ErrWouldCycle struct{ Child Node }

func (e *ErrWouldCycle) Error() string {
	return "plan: appending " + e.Child.Kind().String() + " would introduce a cycle"
}

// wouldCycle reports whether candidate is target or an ancestor of target,
// walking the parent chain.
func wouldCycle(target Node, candidate Node) bool {
	for n := target; n != nil; n = n.Parent() {
		if n == candidate {
			return true
		}
	}
	return false
}
