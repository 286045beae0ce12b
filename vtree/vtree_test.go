package vtree

// Test helpers instantiate the generic engine with plain strings for every
// type parameter (the mirror package uses strings too, except for its own
// Leaf type as the leaf payload).

type tnode = Node[string, string, string, string, string]
type tattr = Attribute[string, string, string]
type tpatch = Patch[string, string, string, string, string]

const testKey = "key"

func el(tag string, attrs []tattr, children ...*tnode) *tnode {
	return Element[string, string, string, string, string](tag, attrs, children, false)
}

func leaf(s string) *tnode {
	return LeafNode[string, string, string, string, string](s)
}

func frag(children ...*tnode) *tnode {
	return Fragment[string, string, string, string, string](children)
}

func attr(name, value string) tattr {
	return Attr[string](name, value)
}

func keyed(tag, key string, attrs []tattr, children ...*tnode) *tnode {
	return el(tag, append([]tattr{attr(testKey, key)}, attrs...), children...)
}

func diff(old, new *tnode) []tpatch {
	return DiffWithKey[string, string, string, string, string](old, new, testKey)
}

func patchesEqual(a, b []tpatch) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !PatchEqual[string, string, string, string, string](a[i], b[i]) {
			return false
		}
	}
	return true
}
