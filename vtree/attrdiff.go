package vtree

// diffAttributes produces at most one AddAttributes and one RemoveAttributes
// patch against the element pair at path.
func diffAttributes[NS any, Tag comparable, AName comparable, AValue comparable, Leaf comparable](
	oldEl, newEl *Node[NS, Tag, AName, AValue, Leaf],
	path TreePath,
) []Patch[NS, Tag, AName, AValue, Leaf] {
	var patches []Patch[NS, Tag, AName, AValue, Leaf]

	newGroups := GroupAttributesPerName(newEl.attrs)
	var toAdd []Attribute[NS, AName, AValue]
	for _, g := range newGroups {
		oldValues, _ := oldEl.AttributeValue(g.Name)
		newValues, _ := newEl.AttributeValue(g.Name)
		if len(oldValues) == 0 || !valuesEqual(oldValues, newValues) {
			toAdd = append(toAdd, g.Attrs...)
		}
	}
	if len(toAdd) > 0 {
		patches = append(patches, addAttributesPatch(path, tagOf(newEl), toAdd))
	}

	oldGroups := GroupAttributesPerName(oldEl.attrs)
	var toRemove []Attribute[NS, AName, AValue]
	for _, g := range oldGroups {
		newValues, _ := newEl.AttributeValue(g.Name)
		if len(newValues) == 0 {
			toRemove = append(toRemove, g.Attrs[0])
		}
	}
	if len(toRemove) > 0 {
		patches = append(patches, removeAttributesPatch(path, tagOf(oldEl), toRemove))
	}

	return patches
}
