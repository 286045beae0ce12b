package vtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(key string) *tnode { return keyed("div", key, nil) }

// Insert in the middle with keys. The foothold rules classify this as the
// neither-end-empty case (L=1, R=1): anchor on old[L-1] with
// InsertAfterNode. An anchor of InsertBeforeNode at old[L] would describe
// the identical mount point; both mean "insert div#2 between div#1 and
// div#3", just anchored from opposite sides.
func TestScenarioInsertInMiddleKeyed(t *testing.T) {
	old := el("main", nil, row("1"), row("3"))
	new := el("main", nil, row("1"), row("2"), row("3"))

	patches := diff(old, new)
	require.Len(t, patches, 1)
	p := patches[0]
	assert.Equal(t, InsertAfterNode, p.Kind)
	assert.Equal(t, TreePath{0}, p.Path)
	require.Len(t, p.Nodes, 1)
	key, _ := p.Nodes[0].AttributeValue(testKey)
	assert.Equal(t, []string{"2"}, key)
}

// S4: remove at start with keys.
func TestScenarioRemoveAtStartKeyed(t *testing.T) {
	old := el("main", nil, row("1"), row("2"))
	new := el("main", nil, row("2"))

	patches := diff(old, new)
	require.Len(t, patches, 1)
	assert.Equal(t, RemoveNode, patches[0].Kind)
	assert.Equal(t, TreePath{0}, patches[0].Path)
}

// S6: append at end, keyed.
func TestScenarioAppendAtEndKeyed(t *testing.T) {
	old := el("main", nil, row("1"))
	new := el("main", nil, row("1"), row("2"))

	patches := diff(old, new)
	require.Len(t, patches, 1)
	assert.Equal(t, AppendChildren, patches[0].Kind)
	assert.Equal(t, RootPath(), patches[0].Path)
	require.Len(t, patches[0].Nodes, 1)
}

// Swap of non-adjacent keyed rows. More than one patch shape can move these
// rows into place; what matters is that no row is both removed and
// reinserted under the same key, and this test pins down the concrete
// shape this LIS-based reconciler produces. The mirror package separately
// exercises round-trip equivalence against the reference applier.
func TestScenarioSwapNonAdjacentKeyedRows(t *testing.T) {
	old := el("main", nil, row("1"), row("2"), row("3"), row("4"), row("5"))
	new := el("main", nil, row("1"), row("4"), row("3"), row("2"), row("5"))

	patches := diff(old, new)
	require.Len(t, patches, 1)
	p := patches[0]
	assert.Equal(t, InsertBeforeNode, p.Kind)
	assert.Equal(t, TreePath{1}, p.Path)
	assert.Empty(t, p.Nodes)
	require.Len(t, p.MovePaths, 2)
	assert.Equal(t, TreePath{3}, p.MovePaths[0])
	assert.Equal(t, TreePath{2}, p.MovePaths[1])

	assertNoOverlapBetweenRemovesAndInserts(t, patches)
}

func TestKeyedMiddleNoSharedKeysReplacesWholesale(t *testing.T) {
	old := el("main", nil, row("1"), row("a"), row("b"), row("9"))
	new := el("main", nil, row("1"), row("x"), row("y"), row("z"), row("9"))

	patches := diff(old, new)

	var kinds []PatchKind
	for _, p := range patches {
		kinds = append(kinds, p.Kind)
	}
	assert.Contains(t, kinds, ReplaceNode)
}

func TestKeyedChildrenDuplicateKeyWarnsAndKeepsFirstCanonical(t *testing.T) {
	var warnings []string
	logger := warnFunc(func(msg string, _ ...any) { warnings = append(warnings, msg) })

	old := el("main", nil, row("1"), row("1"), row("2"))
	new := el("main", nil, row("2"), row("1"))

	patches := DiffWithFunctions[string, string, string, string, string](old, new, testKey, logger, nil, nil)
	assert.NotEmpty(t, warnings)

	// The first "1" (old index 0) is reused; the duplicate at old index 1 is removed.
	var removed []TreePath
	for _, p := range patches {
		if p.Kind == RemoveNode {
			removed = append(removed, p.Path)
		}
	}
	assert.Equal(t, []TreePath{{1}}, removed)
}

func TestKeyedChildrenMissingKeyOnOneSiblingWarns(t *testing.T) {
	var warnings []string
	logger := warnFunc(func(msg string, _ ...any) { warnings = append(warnings, msg) })

	old := el("main", nil, row("1"), el("div", nil), row("2"), row("3"), row("4"))
	new := el("main", nil, row("4"), row("3"), row("2"), row("1"))

	_ = DiffWithFunctions[string, string, string, string, string](old, new, testKey, logger, nil, nil)
	assert.NotEmpty(t, warnings)
}

// Grounded on the original source's massive-keyed-list regression test: a
// large reversal should still produce a single LIS-anchored reorder, not an
// O(n) chain of individual moves.
func TestKeyedChildrenLargeReversalIsOneReorderGroup(t *testing.T) {
	const n = 64
	oldRows := make([]*tnode, n)
	newRows := make([]*tnode, n)
	for i := 0; i < n; i++ {
		key := string(rune('A' + i%26))
		if i >= 26 {
			key += string(rune('a' + i/26))
		}
		oldRows[i] = row(key)
		newRows[n-1-i] = row(key)
	}
	old := el("main", nil, oldRows...)
	new := el("main", nil, newRows...)

	patches := diff(old, new)
	assertNoOverlapBetweenRemovesAndInserts(t, patches)

	var moveOrInsert int
	for _, p := range patches {
		if p.Kind == InsertBeforeNode || p.Kind == InsertAfterNode {
			moveOrInsert++
		}
	}
	assert.Less(t, moveOrInsert, n, "reversal should not degrade into one patch per row")
}

// TestKeyedChildrenUnsharedRemovalWithReorderDoesNotOverlap exercises a
// middle that both drops a key absent from new and reorders the keys that
// survive, so the removal and the reorder's move paths are both resolved
// against the same parent in the same diff call.
func TestKeyedChildrenUnsharedRemovalWithReorderDoesNotOverlap(t *testing.T) {
	old := el("main", nil, row("k0"), row("a"), row("b"), row("c"), row("d"), row("k5"))
	new := el("main", nil, row("k0"), row("d"), row("c"), row("b"), row("x"), row("k5"))

	patches := diff(old, new)
	assertNoOverlapBetweenRemovesAndInserts(t, patches)
}

type warnFunc func(msg string, args ...any)

func (f warnFunc) Warn(msg string, args ...any) { f(msg, args...) }

func assertNoOverlapBetweenRemovesAndInserts(t *testing.T, patches []tpatch) {
	t.Helper()
	removed := map[string]bool{}
	for _, p := range patches {
		if p.Kind != RemoveNode {
			continue
		}
		removed[p.Path.String()] = true
	}
	for _, p := range patches {
		if p.Kind != InsertBeforeNode && p.Kind != InsertAfterNode {
			continue
		}
		for _, mp := range p.MovePaths {
			assert.False(t, removed[mp.String()], "path %v both removed and moved", mp)
		}
	}
}
