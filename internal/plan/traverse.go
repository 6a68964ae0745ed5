package plan

import "github.com/piwi3910/slicecore/internal/geom"

// TraversalOrder controls the direction children are visited in (§4.3).
type TraversalOrder int

const (
	// Forward visits a sequence's children in append order.
	Forward TraversalOrder = iota
	// Backward visits a sequence's children in reverse append order.
	Backward
	// DepthFirst recursively visits the whole subtree, parent before
	// children, each level in append order.
	DepthFirst
)

// SearchDepth bounds how far Find/FindByType descend below the node they
// start from.
type SearchDepth struct {
	full  bool
	depth int // meaningful when !full; 0 means direct children only
}

// DirectChildren limits a search to the node's immediate children.
func DirectChildren() SearchDepth { return SearchDepth{depth: 0} }

// FullDepth allows a search to descend through the entire subtree.
func FullDepth() SearchDepth { return SearchDepth{full: true} }

// AtDepth limits a search to n levels below the starting node (n==0 behaves
// like DirectChildren).
func AtDepth(n int) SearchDepth { return SearchDepth{depth: n} }

func childrenOf(n Node) []Node {
	if s, ok := n.(Sequence); ok {
		return s.Children()
	}
	return nil
}

// Walk calls fn on nodes in the given order: Forward and Backward visit
// only n's direct children; DepthFirst visits n and its whole subtree. fn
// returning false stops the walk immediately (including for siblings and
// ancestors still pending).
func Walk(n Node, order TraversalOrder, fn func(Node) bool) bool {
	switch order {
	case Backward:
		return walkChildrenOnly(n, true, fn)
	case DepthFirst:
		return walkDepthFirst(n, fn)
	default:
		return walkChildrenOnly(n, false, fn)
	}
}

func walkChildrenOnly(n Node, reverse bool, fn func(Node) bool) bool {
	children := childrenOf(n)
	if reverse {
		for i := len(children) - 1; i >= 0; i-- {
			if !fn(children[i]) {
				return false
			}
		}
		return true
	}
	for _, c := range children {
		if !fn(c) {
			return false
		}
	}
	return true
}

func walkDepthFirst(n Node, fn func(Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range childrenOf(n) {
		if !walkDepthFirst(c, fn) {
			return false
		}
	}
	return true
}

// walkBounded visits descendants of n down to depth.depth levels (or the
// whole subtree when depth.full), depth-first, without visiting n itself.
func walkBounded(n Node, depth SearchDepth, level int, fn func(Node) bool) bool {
	for _, c := range childrenOf(n) {
		if !fn(c) {
			return false
		}
		if depth.full || level < depth.depth {
			if !walkBounded(c, depth, level+1, fn) {
				return false
			}
		}
	}
	return true
}

// Find returns the first descendant of n (searched depth-first, bounded by
// depth) for which predicate returns true.
func Find(n Node, depth SearchDepth, predicate func(Node) bool) (Node, bool) {
	var result Node
	found := false
	walkBounded(n, depth, 0, func(c Node) bool {
		if predicate(c) {
			result = c
			found = true
			return false
		}
		return true
	})
	return result, found
}

// FindByType returns the first descendant of n whose concrete type is T.
func FindByType[T Node](n Node, depth SearchDepth) (T, bool) {
	var zero T
	found, ok := Find(n, depth, func(c Node) bool {
		_, match := c.(T)
		return match
	})
	if !ok {
		return zero, false
	}
	return found.(T), true
}

// Transformer mutates a node in place; ApplyTransformer runs it over n and
// every descendant, depth-first, parent before children, stopping at the
// first error (§4.3's "apply_transformer<T>" contract, generalized from a
// single type T to an arbitrary node-mutating function since Go dispatches
// via type switch rather than template instantiation).
type Transformer func(Node) error

// ApplyTransformer runs t over n and its full subtree, depth-first.
func ApplyTransformer(n Node, t Transformer) error {
	var firstErr error
	Walk(n, DepthFirst, func(c Node) bool {
		if err := t(c); err != nil {
			firstErr = err
			return false
		}
		return true
	})
	return firstErr
}

// FindStartPosition returns the position of the first ExtruderMove in an
// in-order traversal of n's subtree, or false if n's subtree contains no
// move.
func FindStartPosition(n Node) (geom.Point3, bool) {
	var pos geom.Point3
	found := false
	walkDepthFirst(n, func(c Node) bool {
		if m, ok := c.(ExtruderMove); ok {
			pos, found = m.Position(), true
			return false
		}
		return true
	})
	return pos, found
}

// FindEndPosition returns the position of the last ExtruderMove in an
// in-order traversal of n's subtree, or false if n's subtree contains no
// move.
func FindEndPosition(n Node) (geom.Point3, bool) {
	var visit func(Node) (geom.Point3, bool)
	visit = func(cur Node) (geom.Point3, bool) {
		if m, ok := cur.(ExtruderMove); ok {
			return m.Position(), true
		}
		children := childrenOf(cur)
		for i := len(children) - 1; i >= 0; i-- {
			if p, ok := visit(children[i]); ok {
				return p, true
			}
		}
		return geom.Point3{}, false
	}
	return visit(n)
}
