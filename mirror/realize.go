package mirror

import "github.com/AYColumbia/vtree/vtree"

// FromVTree builds a fresh mirror tree mirroring a vtree.Node, for seeding
// an Applier's input or for building the "expected" side of a round-trip
// equivalence check.
func FromVTree(n *vtree.Node[string, string, string, string, Leaf]) *Node {
	return realize(n)
}

func realize(n *vtree.Node[string, string, string, string, Leaf]) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case vtree.KindLeaf:
		payload, _ := n.LeafValue()
		return NewLeaf(payload)
	case vtree.KindFragment:
		return NewFragment(realizeChildren(n.Children()))
	default: // KindElement; KindNodeList never survives construction.
		tag, _ := n.Tag()
		node := NewElement(tag, realizeAttrs(n.Attrs()), realizeChildren(n.Children()), n.SelfClosing())
		if ns, ok := n.Namespace(); ok {
			node.HasNS = true
			node.Namespace = ns
		}
		return node
	}
}

func realizeChildren(children []*vtree.Node[string, string, string, string, Leaf]) []*Node {
	if children == nil {
		return nil
	}
	out := make([]*Node, len(children))
	for i, c := range children {
		out[i] = realize(c)
	}
	return out
}

func realizeAttrs(attrs []vtree.Attribute[string, string, string]) []Attr {
	if attrs == nil {
		return nil
	}
	out := make([]Attr, len(attrs))
	for i, a := range attrs {
		out[i] = realizeAttr(a)
	}
	return out
}

func realizeAttr(a vtree.Attribute[string, string, string]) Attr {
	out := Attr{Name: a.Name, Values: append([]string(nil), a.Values...)}
	if a.Namespace != nil {
		out.HasNS = true
		out.Namespace = *a.Namespace
	}
	return out
}
