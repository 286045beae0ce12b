package vtree

// SkipFunc decides whether a node pair's entire subtree should be treated
// as unchanged. It must be pure and total; the engine may call it any
// number of times.
type SkipFunc[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable] func(
	old, new *Node[NS, Tag, AName, AValue, Leaf],
) bool

// ReplaceFunc decides whether a node pair should be force-replaced instead
// of diffed. Like SkipFunc it must be pure and total.
type ReplaceFunc[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable] func(
	old, new *Node[NS, Tag, AName, AValue, Leaf],
) bool

func alwaysFalse[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	_, _ *Node[NS, Tag, AName, AValue, Leaf],
) bool {
	return false
}

// DiffWithKey computes the patch sequence transforming old into new, using
// keyAttrName to identify keyed children. skipFn and replaceFn both
// default to "never".
func DiffWithKey[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	old, new *Node[NS, Tag, AName, AValue, Leaf],
	keyAttrName AName,
) []Patch[NS, Tag, AName, AValue, Leaf] {
	return DiffWithFunctions(old, new, keyAttrName, nil,
		SkipFunc[NS, Tag, AName, AValue, Leaf](nil),
		ReplaceFunc[NS, Tag, AName, AValue, Leaf](nil))
}

// DiffWithFunctions computes the patch sequence transforming old into new,
// with caller-supplied skip/replace hooks and an optional Logger for
// soft usage-error diagnostics (see errors.go). A nil skipFn/replaceFn
// behaves as "always false"; a nil logger discards diagnostics.
func DiffWithFunctions[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	old, new *Node[NS, Tag, AName, AValue, Leaf],
	keyAttrName AName,
	logger Logger,
	skipFn SkipFunc[NS, Tag, AName, AValue, Leaf],
	replaceFn ReplaceFunc[NS, Tag, AName, AValue, Leaf],
) []Patch[NS, Tag, AName, AValue, Leaf] {
	if skipFn == nil {
		skipFn = alwaysFalse[NS, Tag, AName, AValue, Leaf]
	}
	if replaceFn == nil {
		replaceFn = alwaysFalse[NS, Tag, AName, AValue, Leaf]
	}
	d := &differ[NS, Tag, AName, AValue, Leaf]{
		key:  keyAttrName,
		log:  logOrDiscard(logger),
		skip: skipFn,
		repl: replaceFn,
	}
	patches := d.diffRecursive(old, new, RootPath())
	if patches == nil {
		return []Patch[NS, Tag, AName, AValue, Leaf]{}
	}
	return patches
}

type differ[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable] struct {
	key  AName
	log  Logger
	skip SkipFunc[NS, Tag, AName, AValue, Leaf]
	repl ReplaceFunc[NS, Tag, AName, AValue, Leaf]
}

// diffRecursive dispatches a single old/new node pair to the appropriate
// per-kind diff routine, honoring the skip and replace hooks first.
func (d *differ[NS, Tag, AName, AValue, Leaf]) diffRecursive(
	old, new *Node[NS, Tag, AName, AValue, Leaf], path TreePath,
) []Patch[NS, Tag, AName, AValue, Leaf] {
	if d.skip(old, new) {
		return nil
	}
	if d.repl(old, new) {
		return []Patch[NS, Tag, AName, AValue, Leaf]{
			replaceNodePatch[NS, Tag, AName, AValue, Leaf](path, tagOf(old), []*Node[NS, Tag, AName, AValue, Leaf]{new}),
		}
	}

	if old.kind != new.kind {
		return []Patch[NS, Tag, AName, AValue, Leaf]{
			replaceNodePatch[NS, Tag, AName, AValue, Leaf](path, tagOf(old), []*Node[NS, Tag, AName, AValue, Leaf]{new}),
		}
	}

	switch old.kind {
	case KindLeaf:
		if old.leaf != new.leaf {
			return []Patch[NS, Tag, AName, AValue, Leaf]{
				changeLeafPatch[NS, Tag, AName, AValue, Leaf](path, old.leaf, new.leaf),
			}
		}
		return nil

	case KindElement:
		if old.tag != new.tag || !d.keyValuesEqual(old, new) {
			return []Patch[NS, Tag, AName, AValue, Leaf]{
				replaceNodePatch[NS, Tag, AName, AValue, Leaf](path, tagOf(old), []*Node[NS, Tag, AName, AValue, Leaf]{new}),
			}
		}
		var patches []Patch[NS, Tag, AName, AValue, Leaf]
		patches = append(patches, diffAttributes(old, new, path)...)
		patches = append(patches, d.diffChildren(old, new, path)...)
		return patches

	case KindFragment:
		return d.diffChildren(old, new, path)

	default:
		return nil
	}
}

func tagOf[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	n *Node[NS, Tag, AName, AValue, Leaf],
) *Tag {
	tag, ok := n.Tag()
	return tagPtr(tag, ok)
}

func (d *differ[NS, Tag, AName, AValue, Leaf]) keyValuesEqual(
	old, new *Node[NS, Tag, AName, AValue, Leaf],
) bool {
	oldKey, oldOK := old.AttributeValue(d.key)
	newKey, newOK := new.AttributeValue(d.key)
	if !oldOK && !newOK {
		return true
	}
	if oldOK != newOK {
		return false
	}
	return valuesEqual(oldKey, newKey)
}

func (d *differ[NS, Tag, AName, AValue, Leaf]) diffChildren(
	old, new *Node[NS, Tag, AName, AValue, Leaf], path TreePath,
) []Patch[NS, Tag, AName, AValue, Leaf] {
	if d.anyKeyed(old.children) || d.anyKeyed(new.children) {
		return d.diffKeyedChildren(old, new, path)
	}
	return d.diffUnkeyedChildren(old, new, path)
}

func (d *differ[NS, Tag, AName, AValue, Leaf]) anyKeyed(children []*Node[NS, Tag, AName, AValue, Leaf]) bool {
	for _, c := range children {
		if _, ok := c.AttributeValue(d.key); ok {
			return true
		}
	}
	return false
}

// diffUnkeyedChildren zips children position-by-position and appends or
// removes whatever trails off the shorter side.
func (d *differ[NS, Tag, AName, AValue, Leaf]) diffUnkeyedChildren(
	parent, newParent *Node[NS, Tag, AName, AValue, Leaf], path TreePath,
) []Patch[NS, Tag, AName, AValue, Leaf] {
	old, new := parent.children, newParent.children
	m := len(old)
	if len(new) < m {
		m = len(new)
	}

	var patches []Patch[NS, Tag, AName, AValue, Leaf]
	for i := 0; i < m; i++ {
		patches = append(patches, d.diffRecursive(old[i], new[i], path.Traverse(i))...)
	}

	if len(new) > len(old) {
		patches = append(patches, appendChildrenPatch(path, tagOf(parent), new[m:]))
	} else if len(new) < len(old) {
		for i := m; i < len(old); i++ {
			patches = append(patches, removeNodePatch[NS, Tag, AName, AValue, Leaf](path.Traverse(i), tagOf(old[i])))
		}
	}
	return patches
}
