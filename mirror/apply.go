package mirror

import (
	"fmt"

	"github.com/AYColumbia/vtree/vtree"
)

// Options configures an Applier.
type Options struct {
	// Logger receives a warning whenever a patch's Path or MovePaths cannot
	// be resolved against the tree — either up front, before any patch in
	// the batch runs, or (should an anchor or move source vanish
	// unexpectedly mid-batch) during application itself. A nil Logger
	// discards these.
	Logger vtree.Logger
}

// Applier walks a Node tree and performs the mutation each vtree.Patch
// prescribes, in the order the patches are given. Every patch's node
// references are resolved to pointers once, against the tree's shape
// before any patch in the batch has run, and later lookups locate a
// resolved node's current position by scanning its parent's children for
// identity rather than replaying the original TreePath index. That keeps
// an earlier structural edit among siblings — a removal, a move — from
// invalidating a later patch's target within the same batch.
type Applier struct {
	opts Options
}

// NewApplier builds an Applier with opts (the zero Options value discards
// diagnostics, matching vtree's own default).
func NewApplier(opts Options) *Applier {
	return &Applier{opts: opts}
}

// Apply mutates root in place according to patches, built against a string/
// string/string/string/Leaf vtree instantiation.
func (a *Applier) Apply(
	root *Node,
	patches []vtree.Patch[string, string, string, string, Leaf],
) error {
	targets := make([]patchTarget, len(patches))
	for i, p := range patches {
		pt, err := resolveTarget(root, p)
		if err != nil {
			a.warnf("%v", err)
			return err
		}
		targets[i] = pt
	}
	for i, p := range patches {
		if err := a.applyOne(targets[i], p); err != nil {
			return err
		}
	}
	return nil
}

// ApplyCloned applies patches to a clone of root, leaving root untouched,
// and returns the clone.
func (a *Applier) ApplyCloned(
	root *Node,
	patches []vtree.Patch[string, string, string, string, Leaf],
) (*Node, error) {
	clone := root.Clone()
	if err := a.Apply(clone, patches); err != nil {
		return nil, err
	}
	return clone, nil
}

// patchTarget holds the node pointers one patch refers to, fixed against
// root's pre-patch shape. node/parent resolve p.Path; moves resolve
// p.MovePaths in order.
type patchTarget struct {
	node   *Node
	parent *Node // nil when node is root
	moves  []moveTarget
}

type moveTarget struct {
	node   *Node
	parent *Node
}

func resolveTarget(root *Node, p vtree.Patch[string, string, string, string, Leaf]) (patchTarget, error) {
	node, parent, ok := resolveNode(root, p.Path)
	if !ok {
		return patchTarget{}, fmt.Errorf("mirror: %s path %s does not resolve", p.Kind, p.Path)
	}
	pt := patchTarget{node: node, parent: parent}
	for _, mp := range p.MovePaths {
		mn, mparent, ok := resolveNode(root, mp)
		if !ok {
			return patchTarget{}, fmt.Errorf("mirror: %s move path %s does not resolve", p.Kind, mp)
		}
		pt.moves = append(pt.moves, moveTarget{node: mn, parent: mparent})
	}
	return pt, nil
}

func resolveNode(root *Node, path vtree.TreePath) (node, parent *Node, ok bool) {
	node, ok = nodeAtPath(root, path)
	if !ok {
		return nil, nil, false
	}
	if len(path) == 0 {
		return node, nil, true
	}
	parent, ok = nodeAtPath(root, path[:len(path)-1])
	return node, parent, ok
}

func nodeAtPath(root *Node, path vtree.TreePath) (*Node, bool) {
	current := root
	for _, idx := range path {
		if current == nil || idx < 0 || idx >= len(current.Children) {
			return nil, false
		}
		current = current.Children[idx]
	}
	return current, current != nil
}

// childIndex locates child's current position among parent's children by
// pointer identity, which survives earlier patches reordering that slice.
func childIndex(parent, child *Node) (int, bool) {
	for i, c := range parent.Children {
		if c == child {
			return i, true
		}
	}
	return -1, false
}

func (a *Applier) warnf(format string, args ...any) {
	if a.opts.Logger != nil {
		a.opts.Logger.Warn(fmt.Sprintf(format, args...))
	}
}

func (a *Applier) applyOne(pt patchTarget, p vtree.Patch[string, string, string, string, Leaf]) error {
	switch p.Kind {
	case vtree.InsertBeforeNode, vtree.InsertAfterNode:
		return a.applyInsert(pt, p)
	case vtree.AppendChildren:
		return a.applyAppend(pt, p)
	case vtree.RemoveNode:
		return a.applyRemove(pt, p)
	case vtree.ReplaceNode:
		return a.applyReplace(pt, p)
	case vtree.AddAttributes:
		return a.applyAddAttributes(pt, p)
	case vtree.RemoveAttributes:
		return a.applyRemoveAttributes(pt, p)
	case vtree.ChangeLeaf:
		return a.applyChangeLeaf(pt, p)
	case vtree.InsertNode:
		return fmt.Errorf("mirror: InsertNode is never emitted by vtree and has no applier support")
	default:
		return fmt.Errorf("mirror: unknown patch kind %v", p.Kind)
	}
}

func (a *Applier) applyAppend(pt patchTarget, p vtree.Patch[string, string, string, string, Leaf]) error {
	for _, n := range p.Nodes {
		pt.node.Children = append(pt.node.Children, realize(n))
	}
	return nil
}

func (a *Applier) applyRemove(pt patchTarget, p vtree.Patch[string, string, string, string, Leaf]) error {
	idx, ok := childIndex(pt.parent, pt.node)
	if !ok {
		a.warnf("RemoveNode: target no longer present under its parent")
		return fmt.Errorf("mirror: RemoveNode target no longer present under its parent")
	}
	pt.parent.Children = append(pt.parent.Children[:idx], pt.parent.Children[idx+1:]...)
	return nil
}

func (a *Applier) applyReplace(pt patchTarget, p vtree.Patch[string, string, string, string, Leaf]) error {
	if pt.parent == nil {
		if len(p.Nodes) != 1 {
			return fmt.Errorf("mirror: ReplaceNode at root must carry exactly one node, got %d", len(p.Nodes))
		}
		*pt.node = *realize(p.Nodes[0])
		return nil
	}
	idx, ok := childIndex(pt.parent, pt.node)
	if !ok {
		a.warnf("ReplaceNode: target no longer present under its parent")
		return fmt.Errorf("mirror: ReplaceNode target no longer present under its parent")
	}
	replacement := make([]*Node, len(p.Nodes))
	for i, n := range p.Nodes {
		replacement[i] = realize(n)
	}
	merged := make([]*Node, 0, len(pt.parent.Children)-1+len(replacement))
	merged = append(merged, pt.parent.Children[:idx]...)
	merged = append(merged, replacement...)
	merged = append(merged, pt.parent.Children[idx+1:]...)
	pt.parent.Children = merged
	return nil
}

func (a *Applier) applyInsert(pt patchTarget, p vtree.Patch[string, string, string, string, Leaf]) error {
	if pt.parent == nil {
		return fmt.Errorf("mirror: %s anchor cannot be the tree root", p.Kind)
	}

	if len(pt.moves) > 0 {
		moved := make([]*Node, len(pt.moves))
		for i, m := range pt.moves {
			idx, ok := childIndex(m.parent, m.node)
			if !ok {
				a.warnf("%s: move source no longer present under its parent", p.Kind)
				return fmt.Errorf("mirror: %s move source no longer present under its parent", p.Kind)
			}
			m.parent.Children = append(m.parent.Children[:idx], m.parent.Children[idx+1:]...)
			moved[i] = m.node
		}
		anchorIdx, ok := childIndex(pt.parent, pt.node)
		if !ok {
			a.warnf("%s: anchor no longer present under its parent", p.Kind)
			return fmt.Errorf("mirror: %s anchor no longer present under its parent", p.Kind)
		}
		insertAt := anchorIdx
		if p.Kind == vtree.InsertAfterNode {
			insertAt = anchorIdx + 1
		}
		pt.parent.Children = spliceIn(pt.parent.Children, insertAt, moved)
		return nil
	}

	anchorIdx, ok := childIndex(pt.parent, pt.node)
	if !ok {
		a.warnf("%s: anchor no longer present under its parent", p.Kind)
		return fmt.Errorf("mirror: %s anchor no longer present under its parent", p.Kind)
	}
	insertAt := anchorIdx
	if p.Kind == vtree.InsertAfterNode {
		insertAt = anchorIdx + 1
	}
	fresh := make([]*Node, len(p.Nodes))
	for i, n := range p.Nodes {
		fresh[i] = realize(n)
	}
	pt.parent.Children = spliceIn(pt.parent.Children, insertAt, fresh)
	return nil
}

func spliceIn(children []*Node, at int, nodes []*Node) []*Node {
	out := make([]*Node, 0, len(children)+len(nodes))
	out = append(out, children[:at]...)
	out = append(out, nodes...)
	out = append(out, children[at:]...)
	return out
}

func (a *Applier) applyAddAttributes(pt patchTarget, p vtree.Patch[string, string, string, string, Leaf]) error {
	target := pt.node
	byName := make(map[string]int, len(target.Attrs))
	for i, at := range target.Attrs {
		byName[at.Name] = i
	}
	grouped := vtree.GroupAttributesPerName[string, string, string](p.Attrs)
	for _, g := range grouped {
		merged := realizeAttr(vtree.MergeAttributesOfSameName(g.Attrs)[0])
		if i, ok := byName[g.Name]; ok {
			target.Attrs[i] = merged
		} else {
			target.Attrs = append(target.Attrs, merged)
		}
	}
	return nil
}

func (a *Applier) applyRemoveAttributes(pt patchTarget, p vtree.Patch[string, string, string, string, Leaf]) error {
	target := pt.node
	drop := make(map[string]bool, len(p.Attrs))
	for _, at := range p.Attrs {
		drop[at.Name] = true
	}
	kept := target.Attrs[:0:0]
	for _, at := range target.Attrs {
		if !drop[at.Name] {
			kept = append(kept, at)
		}
	}
	target.Attrs = kept
	return nil
}

func (a *Applier) applyChangeLeaf(pt patchTarget, p vtree.Patch[string, string, string, string, Leaf]) error {
	pt.node.Leaf = p.NewLeaf
	return nil
}
