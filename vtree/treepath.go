package vtree

import (
	"strconv"
	"strings"
)

// TreePath is a depth-first sequence of child indices locating a node
// relative to a tree's root. The root itself is the empty path.
type TreePath []int

// RootPath returns the empty path, denoting the tree root.
func RootPath() TreePath { return TreePath{} }

// NewTreePath builds a TreePath from an explicit index sequence, copying it
// so the caller's backing array cannot alias a stored patch path.
func NewTreePath(indices []int) TreePath {
	p := make(TreePath, len(indices))
	copy(p, indices)
	return p
}

// Push returns a new path with i appended, leaving the receiver untouched.
func (p TreePath) Push(i int) TreePath {
	next := make(TreePath, len(p)+1)
	copy(next, p)
	next[len(p)] = i
	return next
}

// Traverse is an alias for Push used at diff recursion sites, matching the
// "traverse(i) appends i" terminology of the addressing model.
func (p TreePath) Traverse(i int) TreePath { return p.Push(i) }

// Equal reports whether two paths have the same indices in the same order.
func (p TreePath) Equal(other TreePath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders a path as dot-separated indices (the root path is "").
func (p TreePath) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// FindNodeByPath descends root by indexing into children at each path step.
// It returns (nil, false) if any prefix of path does not resolve to a node
// with enough children.
func FindNodeByPath[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	root *Node[NS, Tag, AName, AValue, Leaf],
	path TreePath,
) (*Node[NS, Tag, AName, AValue, Leaf], bool) {
	current := root
	for _, idx := range path {
		if current == nil || idx < 0 || idx >= len(current.children) {
			return nil, false
		}
		current = current.children[idx]
	}
	return current, current != nil
}
