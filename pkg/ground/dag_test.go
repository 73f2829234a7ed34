package ground

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndAbsorption(t *testing.T) {
	gf := NewGroundFormula()
	a := gf.AddAtom("a", 0.5, nil)

	assert.Equal(t, FalseID, gf.AddAnd([]NodeID{a, FalseID}))
	assert.Equal(t, a, gf.AddAnd([]NodeID{a, TrueID}))
	assert.Equal(t, TrueID, gf.AddAnd(nil))
	assert.Equal(t, TrueID, gf.AddAnd([]NodeID{TrueID, TrueID}))
}

func TestAddAndStructuralSharing(t *testing.T) {
	gf := NewGroundFormula()
	a := gf.AddAtom("a", 0.5, nil)
	b := gf.AddAtom("b", 0.5, nil)

	n1 := gf.AddAnd([]NodeID{a, b})
	n2 := gf.AddAnd([]NodeID{b, a}) // same multiset, different order
	assert.Equal(t, n1, n2)
}

func TestAddOrAbsorptionAndSharing(t *testing.T) {
	gf := NewGroundFormula()
	a := gf.AddAtom("a", 0.5, nil)
	b := gf.AddAtom("b", 0.5, nil)

	assert.Equal(t, TrueID, gf.AddOr([]NodeID{a, TrueID}, true))
	assert.Equal(t, a, gf.AddOr([]NodeID{a, FalseID}, true))
	assert.Equal(t, FalseID, gf.AddOr(nil, true))

	r1 := gf.AddOr([]NodeID{a, b}, true)
	r2 := gf.AddOr([]NodeID{b, a}, true)
	assert.Equal(t, r1, r2)
}

func TestAddOrMutableNeverShared(t *testing.T) {
	gf := NewGroundFormula()
	a := gf.AddAtom("a", 0.5, nil)

	m1 := gf.AddOr([]NodeID{a}, false)
	m2 := gf.AddOr([]NodeID{a}, false)
	assert.NotEqual(t, m1, m2, "mutable or nodes must never be structurally shared")
}

func TestAddDisjunctAppendsInPlace(t *testing.T) {
	gf := NewGroundFormula()
	a := gf.AddAtom("a", 0.5, nil)
	b := gf.AddAtom("b", 0.5, nil)

	m := gf.AddOr([]NodeID{a}, false)
	gf.AddDisjunct(m, b)

	node := gf.Node(m)
	assert.Equal(t, []NodeID{a, b}, node.Children)
}

func TestAddDisjunctPanicsOnReadOnly(t *testing.T) {
	gf := NewGroundFormula()
	a := gf.AddAtom("a", 0.5, nil)
	b := gf.AddAtom("b", 0.5, nil)
	ro := gf.AddOr([]NodeID{a, b}, true)

	assert.Panics(t, func() { gf.AddDisjunct(ro, a) })
}

// TestNotSentinelIdentity pins invariant 4 (SPEC_FULL.md §8): not(TRUE) and
// not(FALSE) are always the sentinel ids themselves, never a freshly
// allocated node.
func TestNotSentinelIdentity(t *testing.T) {
	gf := NewGroundFormula()
	before := gf.Len()
	assert.Equal(t, FalseID, gf.AddNot(TrueID))
	assert.Equal(t, TrueID, gf.AddNot(FalseID))
	assert.Equal(t, before, gf.Len(), "sentinel negation must not allocate")
}

func TestNodeIDsAllocateInIncreasingOrder(t *testing.T) {
	gf := NewGroundFormula()
	var prev NodeID = -1
	for i := 0; i < 5; i++ {
		id := gf.AddAtom(i, 0.5, nil)
		assert.Greater(t, id, prev)
		prev = id
	}
}

// TestIsomorphicFormulasCompareEqual demonstrates the go-cmp structural
// comparison this module's test suite reaches for instead of raw node-id
// equality, since two independently constructed formulas can number their
// nodes differently while representing the same ground DAG.
func TestIsomorphicFormulasCompareEqual(t *testing.T) {
	build := func() *GroundFormula {
		gf := NewGroundFormula()
		a := gf.AddAtom("a", 0.5, nil)
		b := gf.AddAtom("b", 0.3, nil)
		gf.AddAnd([]NodeID{a, b})
		return gf
	}
	gf1, gf2 := build(), build()

	require.Equal(t, gf1.Len(), gf2.Len())
	diff := cmp.Diff(gf1.nodes, gf2.nodes, cmpopts.EquateEmpty())
	assert.Empty(t, diff)
}
