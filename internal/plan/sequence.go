package plan

// childList is embedded by every sequence node (LayerPlan, ExtruderPlan,
// the FeatureExtrusion variants, ContinuousExtruderMoveSequence) to share
// the ownership bookkeeping that §4.3 requires of all of them: exclusive
// child ownership, parent back-reference maintenance, and cycle rejection.
type childList struct {
	base
	children []Node
}

func (c *childList) Children() []Node {
	out := make([]Node, len(c.children))
	copy(out, c.children)
	return out
}

func (c *childList) Empty() bool { return len(c.children) == 0 }

// appendChild takes ownership of child on behalf of self (the concrete
// sequence embedding this childList). self is passed explicitly because a
// promoted method can't recover the identity of its outer struct.
func (c *childList) appendChild(self Node, child Node) error {
	if child.Parent() != nil {
		return &ErrAlreadyHasParent{Child: child}
	}
	if wouldCycle(self, child) {
		return &ErrWouldCycle{Child: child}
	}
	child.setParent(self)
	c.children = append(c.children, child)
	return nil
}

func (c *childList) removeChild(child Node) error {
	for i, ch := range c.children {
		if ch == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			child.setParent(nil)
			return nil
		}
	}
	return &ErrNotAChild{Child: child}
}
