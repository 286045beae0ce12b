// Package vtree implements a generic virtual-tree diffing engine.
//
// Given two immutable trees representing a UI state, DiffWithKey and
// DiffWithFunctions compute a minimal, ordered sequence of Patch values
// that transform the old tree into the new one. The engine is agnostic to
// what the trees represent (HTML DOM, native widgets, or anything else
// hierarchical): namespaces, tags, attribute names, attribute values, and
// leaf payloads are all caller-chosen type parameters.
package vtree

// Kind discriminates the variant a Node holds.
type Kind int

const (
	// KindElement is a tagged node with attributes and children.
	KindElement Kind = iota
	// KindFragment is an opaque grouping of children; it costs one TreePath step.
	KindFragment
	// KindNodeList is a transparent grouping of children, flattened away at
	// construction time. It never survives as a child of an Element or Fragment.
	KindNodeList
	// KindLeaf is an opaque payload (text, comment, or embedder-defined) compared by value.
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindFragment:
		return "Fragment"
	case KindNodeList:
		return "NodeList"
	case KindLeaf:
		return "Leaf"
	default:
		return "Unknown"
	}
}

// Node is an immutable tagged-variant tree node. The zero value is not
// meaningful; build nodes with Element, ElementNS, LeafNode, Fragment, or NodeListOf.
type Node[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable] struct {
	kind        Kind
	namespace   *NS
	tag         Tag
	attrs       []Attribute[NS, AName, AValue]
	children    []*Node[NS, Tag, AName, AValue, Leaf]
	selfClosing bool
	leaf        Leaf
}

// Element builds an element node. Any NodeList among children is flattened
// one level (recursively) into the resulting children slice, per the
// NodeList-is-transparent invariant.
func Element[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	tag Tag,
	attrs []Attribute[NS, AName, AValue],
	children []*Node[NS, Tag, AName, AValue, Leaf],
	selfClosing bool,
) *Node[NS, Tag, AName, AValue, Leaf] {
	return &Node[NS, Tag, AName, AValue, Leaf]{
		kind:        KindElement,
		tag:         tag,
		attrs:       attrs,
		children:    flattenNodeLists(children),
		selfClosing: selfClosing,
	}
}

// ElementNS builds a namespaced element node.
func ElementNS[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	ns NS,
	tag Tag,
	attrs []Attribute[NS, AName, AValue],
	children []*Node[NS, Tag, AName, AValue, Leaf],
	selfClosing bool,
) *Node[NS, Tag, AName, AValue, Leaf] {
	n := Element(tag, attrs, children, selfClosing)
	n.namespace = &ns
	return n
}

// LeafNode builds a leaf node wrapping an opaque, value-comparable payload.
func LeafNode[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	payload Leaf,
) *Node[NS, Tag, AName, AValue, Leaf] {
	return &Node[NS, Tag, AName, AValue, Leaf]{kind: KindLeaf, leaf: payload}
}

// Fragment builds an opaque grouping node. Unlike NodeList, a Fragment
// contributes one TreePath step and is never flattened away.
func Fragment[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	children []*Node[NS, Tag, AName, AValue, Leaf],
) *Node[NS, Tag, AName, AValue, Leaf] {
	return &Node[NS, Tag, AName, AValue, Leaf]{
		kind:     KindFragment,
		children: flattenNodeLists(children),
	}
}

// NodeListOf builds a transparent grouping node. NodeList children are
// flattened into their parent's child list at construction time of whatever
// contains them; a NodeList should only appear as a synthetic diff root.
func NodeListOf[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	children []*Node[NS, Tag, AName, AValue, Leaf],
) *Node[NS, Tag, AName, AValue, Leaf] {
	return &Node[NS, Tag, AName, AValue, Leaf]{
		kind:     KindNodeList,
		children: flattenNodeLists(children),
	}
}

// flattenNodeLists expands any KindNodeList entries in children into their
// own (already-flattened) children, recursively, so that after construction
// no NodeList survives as a child of anything.
func flattenNodeLists[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	children []*Node[NS, Tag, AName, AValue, Leaf],
) []*Node[NS, Tag, AName, AValue, Leaf] {
	hasList := false
	for _, c := range children {
		if c != nil && c.kind == KindNodeList {
			hasList = true
			break
		}
	}
	if !hasList {
		return children
	}
	out := make([]*Node[NS, Tag, AName, AValue, Leaf], 0, len(children))
	for _, c := range children {
		if c != nil && c.kind == KindNodeList {
			out = append(out, c.children...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

// Kind reports the node's variant.
func (n *Node[NS, Tag, AName, AValue, Leaf]) Kind() Kind { return n.kind }

// Children returns the node's children (nil for Leaf nodes).
func (n *Node[NS, Tag, AName, AValue, Leaf]) Children() []*Node[NS, Tag, AName, AValue, Leaf] {
	return n.children
}

// Attrs returns the element's attributes (nil for non-elements).
func (n *Node[NS, Tag, AName, AValue, Leaf]) Attrs() []Attribute[NS, AName, AValue] {
	return n.attrs
}

// Namespace returns the node's namespace, if any.
func (n *Node[NS, Tag, AName, AValue, Leaf]) Namespace() (NS, bool) {
	if n.namespace == nil {
		var zero NS
		return zero, false
	}
	return *n.namespace, true
}

// SelfClosing reports the element's advisory self-closing flag. It never
// affects diffing.
func (n *Node[NS, Tag, AName, AValue, Leaf]) SelfClosing() bool { return n.selfClosing }

// LeafValue returns the leaf payload and true, or the zero value and false
// for non-leaf nodes.
func (n *Node[NS, Tag, AName, AValue, Leaf]) LeafValue() (Leaf, bool) {
	if n.kind != KindLeaf {
		var zero Leaf
		return zero, false
	}
	return n.leaf, true
}

// Tag returns the element's tag, or the zero value and false for non-elements.
func (n *Node[NS, Tag, AName, AValue, Leaf]) Tag() (Tag, bool) {
	if n.kind != KindElement {
		var zero Tag
		return zero, false
	}
	return n.tag, true
}

// AttributeValue returns the concatenation, in document order, of the value
// sequences of every attribute named name on this element. It returns
// (nil, false) for non-elements or when no attribute with that name exists.
func (n *Node[NS, Tag, AName, AValue, Leaf]) AttributeValue(name AName) ([]AValue, bool) {
	if n.kind != KindElement {
		return nil, false
	}
	var values []AValue
	found := false
	for _, a := range n.attrs {
		if a.Name == name {
			found = true
			values = append(values, a.Values...)
		}
	}
	return values, found
}

// AttributeValueNS returns the concatenation, in document order, of the
// value sequences of every attribute on n whose name is name and whose
// namespace is ns. It returns (nil, false) for non-elements or when no
// matching namespaced attribute exists; an unnamespaced attribute of the
// same name never matches.
func AttributeValueNS[NS comparable, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	n *Node[NS, Tag, AName, AValue, Leaf], ns NS, name AName,
) ([]AValue, bool) {
	if n == nil || n.kind != KindElement {
		return nil, false
	}
	var values []AValue
	found := false
	for _, a := range n.attrs {
		if a.Name != name || a.Namespace == nil || *a.Namespace != ns {
			continue
		}
		found = true
		values = append(values, a.Values...)
	}
	return values, found
}

// NodeCount returns 1 plus the node counts of its direct children, except that
// a NodeList (which costs zero TreePath steps) contributes only the sum of
// its children's node counts.
func NodeCount[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	n *Node[NS, Tag, AName, AValue, Leaf],
) int {
	if n == nil {
		return 0
	}
	if n.kind == KindNodeList {
		return DescendantCount(n)
	}
	return 1 + DescendantCount(n)
}

// DescendantCount sums NodeCount over a node's direct children.
func DescendantCount[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	n *Node[NS, Tag, AName, AValue, Leaf],
) int {
	if n == nil {
		return 0
	}
	total := 0
	for _, c := range n.children {
		total += NodeCount(c)
	}
	return total
}

// Equal reports whether two nodes are structurally equal: same kind, and
// for elements same namespace/tag/attrs/children/selfClosing, for
// fragments/node-lists same children, for leaves the same payload.
func Equal[NS comparable, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	a, b *Node[NS, Tag, AName, AValue, Leaf],
) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindLeaf:
		return a.leaf == b.leaf
	case KindElement:
		if a.tag != b.tag || a.selfClosing != b.selfClosing {
			return false
		}
		if !namespaceEqual(a.namespace, b.namespace) {
			return false
		}
		if !attrsEqual(a.attrs, b.attrs) {
			return false
		}
		return childrenEqual(a.children, b.children)
	case KindFragment, KindNodeList:
		return childrenEqual(a.children, b.children)
	}
	return false
}

func namespaceEqual[NS comparable](a, b *NS) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func attrsEqual[NS any, AName comparable, AValue comparable](a, b []Attribute[NS, AName, AValue]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].equalValues(b[i]) {
			return false
		}
	}
	return true
}

func childrenEqual[NS comparable, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	a, b []*Node[NS, Tag, AName, AValue, Leaf],
) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
