package vtree

// Attribute is a namespace/name/value-sequence triple. The value sequence
// is always non-empty for attributes built via Attr/AttrNS; callers that
// synthesize merged attributes (see MergeAttributesOfSameName) are
// responsible for preserving that invariant.
type Attribute[NS any, Name comparable, Value comparable] struct {
	Namespace *NS
	Name      Name
	Values    []Value
}

// Attr builds a single-valued, unnamespaced attribute.
func Attr[NS any, Name comparable, Value comparable](name Name, value Value) Attribute[NS, Name, Value] {
	return Attribute[NS, Name, Value]{Name: name, Values: []Value{value}}
}

// AttrNS builds a single-valued, namespaced attribute.
func AttrNS[NS any, Name comparable, Value comparable](ns NS, name Name, value Value) Attribute[NS, Name, Value] {
	return Attribute[NS, Name, Value]{Namespace: &ns, Name: name, Values: []Value{value}}
}

func (a Attribute[NS, Name, Value]) equalValues(b Attribute[NS, Name, Value]) bool {
	if a.Name != b.Name {
		return false
	}
	if !namespaceEqual(a.Namespace, b.Namespace) {
		return false
	}
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			return false
		}
	}
	return true
}

// valuesEqual compares two attribute value sequences element by element. A
// nil (absent) sequence and an empty one compare equal.
func valuesEqual[Value comparable](a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MergeAttributesOfSameName coalesces attributes sharing the same name into
// one attribute per name, whose value sequence is the concatenation, in
// input order, of every contributing attribute's values. Output order
// follows first occurrence of each name.
func MergeAttributesOfSameName[NS any, Name comparable, Value comparable](
	attrs []Attribute[NS, Name, Value],
) []Attribute[NS, Name, Value] {
	groups := GroupAttributesPerName(attrs)
	merged := make([]Attribute[NS, Name, Value], 0, len(groups))
	for _, g := range groups {
		m := Attribute[NS, Name, Value]{Name: g.Name}
		for _, a := range g.Attrs {
			if m.Namespace == nil {
				m.Namespace = a.Namespace
			}
			m.Values = append(m.Values, a.Values...)
		}
		merged = append(merged, m)
	}
	return merged
}

// AttributeGroup is one name's worth of attributes, in first-occurrence order.
type AttributeGroup[NS any, Name comparable, Value comparable] struct {
	Name  Name
	Attrs []Attribute[NS, Name, Value]
}

// GroupAttributesPerName groups attrs by Name, preserving first-occurrence
// order of distinct names and input order of attributes within a group.
func GroupAttributesPerName[NS any, Name comparable, Value comparable](
	attrs []Attribute[NS, Name, Value],
) []AttributeGroup[NS, Name, Value] {
	index := make(map[Name]int, len(attrs))
	var groups []AttributeGroup[NS, Name, Value]
	for _, a := range attrs {
		if i, ok := index[a.Name]; ok {
			groups[i].Attrs = append(groups[i].Attrs, a)
			continue
		}
		index[a.Name] = len(groups)
		groups = append(groups, AttributeGroup[NS, Name, Value]{Name: a.Name, Attrs: []Attribute[NS, Name, Value]{a}})
	}
	return groups
}
