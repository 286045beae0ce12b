// Package mirror is a concrete, mutable tree that the vtree package's
// patches can be applied against: the illustrative reference applier.
//
// It instantiates vtree with plain strings for namespace, tag, attribute
// name and attribute value, and a small Leaf sum type for text/comment
// payloads, giving an HTML-flavored concrete tree without depending on a
// real DOM implementation.
package mirror

import "github.com/AYColumbia/vtree/vtree"

// LeafKind discriminates the payload carried by a mirror Leaf.
type LeafKind int

const (
	// TextLeaf is a plain text node.
	TextLeaf LeafKind = iota
	// CommentLeaf is an HTML comment node.
	CommentLeaf
)

// Leaf is the Leaf type parameter used to instantiate vtree for this
// package: a value type (so it satisfies Go's comparable constraint)
// carrying either a text or a comment payload.
type Leaf struct {
	Kind LeafKind
	Text string
}

// Text builds a text leaf.
func Text(s string) Leaf { return Leaf{Kind: TextLeaf, Text: s} }

// Comment builds a comment leaf.
func Comment(s string) Leaf { return Leaf{Kind: CommentLeaf, Text: s} }

// Attr is one namespace/name/value-sequence attribute, mirroring
// vtree.Attribute but as a concrete, mutable value.
type Attr struct {
	Namespace string
	HasNS     bool
	Name      string
	Values    []string
}

// Node is a concrete, mutable tree node that a vtree.Patch can be applied
// against. It is the applier's own tree representation, not a wrapper
// around vtree.Node: once built, vtree no longer owns it.
type Node struct {
	Kind        vtree.Kind
	Namespace   string
	HasNS       bool
	Tag         string
	Attrs       []Attr
	Children    []*Node
	SelfClosing bool
	Leaf        Leaf
}

// NewElement builds an element node.
func NewElement(tag string, attrs []Attr, children []*Node, selfClosing bool) *Node {
	return &Node{Kind: vtree.KindElement, Tag: tag, Attrs: attrs, Children: children, SelfClosing: selfClosing}
}

// NewFragment builds a fragment node.
func NewFragment(children []*Node) *Node {
	return &Node{Kind: vtree.KindFragment, Children: children}
}

// NewLeaf builds a leaf node.
func NewLeaf(payload Leaf) *Node {
	return &Node{Kind: vtree.KindLeaf, Leaf: payload}
}

// AttributeValue returns the concatenated value sequence for name, mirroring
// vtree.Node.AttributeValue.
func (n *Node) AttributeValue(name string) ([]string, bool) {
	if n.Kind != vtree.KindElement {
		return nil, false
	}
	var values []string
	found := false
	for _, a := range n.Attrs {
		if a.Name == name {
			found = true
			values = append(values, a.Values...)
		}
	}
	return values, found
}

// Clone deep-copies a node and its descendants.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := *n
	if n.Attrs != nil {
		clone.Attrs = append([]Attr(nil), n.Attrs...)
	}
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			clone.Children[i] = c.Clone()
		}
	}
	return &clone
}

// Equal reports whether two mirror trees are structurally identical.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case vtree.KindLeaf:
		return a.Leaf == b.Leaf
	case vtree.KindElement:
		if a.Tag != b.Tag || a.SelfClosing != b.SelfClosing {
			return false
		}
		if a.HasNS != b.HasNS || (a.HasNS && a.Namespace != b.Namespace) {
			return false
		}
		if !attrsEqual(a.Attrs, b.Attrs) {
			return false
		}
		return childrenEqual(a.Children, b.Children)
	default:
		return childrenEqual(a.Children, b.Children)
	}
}

func attrsEqual(a, b []Attr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].HasNS != b[i].HasNS {
			return false
		}
		if a[i].HasNS && a[i].Namespace != b[i].Namespace {
			return false
		}
		if len(a[i].Values) != len(b[i].Values) {
			return false
		}
		for j := range a[i].Values {
			if a[i].Values[j] != b[i].Values[j] {
				return false
			}
		}
	}
	return true
}

func childrenEqual(a, b []*Node) bool {
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
