package symmetry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/inflation/canon"
	"github.com/katalvlaran/inflation/ops"
	"github.com/katalvlaran/inflation/scenario"
	"github.com/katalvlaran/inflation/symmetry"
)

// Bilocal ranks: 0,1 = A(1,0),A(2,0); 2..5 = B(1,1),B(1,2),B(2,1),B(2,2);
// 6,7 = C(0,1),C(0,2).
func fixture(t *testing.T) (*ops.Alphabet, *ops.Commutation, *symmetry.Group) {
	t.Helper()
	sc, err := scenario.New(scenario.Config{
		Outcomes:  []int{2, 2, 2},
		Settings:  []int{1, 1, 1},
		Inflation: []int{2, 2},
		Hypergraph: [][]int{
			{1, 1, 0},
			{0, 1, 1},
		},
		Network: true,
	})
	require.NoError(t, err)
	a, err := ops.NewAlphabet(sc)
	require.NoError(t, err)
	nc := ops.NewCommutation(a, false)
	g, err := symmetry.NewGroup(a, nc)
	require.NoError(t, err)

	return a, nc, g
}

// TestGroup_SizeAndIdentity pins the group order 2!·2! and the identity
// at element 0.
func TestGroup_SizeAndIdentity(t *testing.T) {
	a, _, g := fixture(t)

	assert.Equal(t, 4, g.Size())
	for r := 0; r < a.L(); r++ {
		assert.Equal(t, r, g.Element(0)[r], "element 0 is the identity")
	}
	assert.Len(t, g.Generators(), 2, "one adjacent transposition per source")
}

// TestGroup_GeneratorAction verifies the swap of source-0 copies on
// every party that consumes source 0.
func TestGroup_GeneratorAction(t *testing.T) {
	_, _, g := fixture(t)
	swap0 := g.Generators()[0]

	assert.Equal(t, 1, swap0[0], "A(1,0) -> A(2,0)")
	assert.Equal(t, 0, swap0[1], "A(2,0) -> A(1,0)")
	assert.Equal(t, 4, swap0[2], "B(1,1) -> B(2,1)")
	assert.Equal(t, 5, swap0[3], "B(1,2) -> B(2,2)")
	assert.Equal(t, 6, swap0[6], "C untouched by source 0")

	swap1 := g.Generators()[1]
	assert.Equal(t, 3, swap1[2], "B(1,1) -> B(1,2)")
	assert.Equal(t, 7, swap1[6], "C(0,1) -> C(0,2)")
	assert.Equal(t, 0, swap1[0], "A untouched by source 1")
}

// TestApply maps sequences and bitvecs consistently.
func TestApply(t *testing.T) {
	a, _, g := fixture(t)
	swap0 := g.Generators()[0]

	seq := []int{0, 2, 6}
	img := symmetry.Apply(swap0, seq)
	assert.Equal(t, []int{1, 4, 6}, img)

	bv := ops.BitvecOf(a.L(), seq)
	ibv := symmetry.ApplyToBitvec(swap0, bv)
	assert.Equal(t, []int{1, 4, 6}, ibv.Ranks())
}

// TestRepresentative_OrbitInvariance checks that every orbit member maps
// to the same representative (the exact-quotient property).
func TestRepresentative_OrbitInvariance(t *testing.T) {
	a, nc, g := fixture(t)

	seq := []int{1, 4, 6} // A(2,0) B(2,1) C(0,1)
	rep, ok := g.Representative(seq)
	require.True(t, ok)

	// Apply each group element and re-derive the representative.
	for i := 0; i < g.Size(); i++ {
		img := symmetry.Apply(g.Element(i), seq)
		r2, ok := g.Representative(img)
		require.True(t, ok)
		assert.Equal(t, rep, r2, "element %d breaks the quotient", i)
	}

	// The representative is itself canonical.
	c, ok := canon.Canonicalize(rep, a, nc)
	require.True(t, ok)
	assert.Equal(t, rep, c)

	// And it is the lex-minimum image: swapping the copies of source 0
	// alone maps A(2,0) B(2,1) C(0,1) to A(1,0) B(1,1) C(0,1) = ranks 0 2 6.
	assert.Equal(t, []int{0, 2, 6}, rep)
}

// TestRepresentative_Unit leaves the empty monomial alone.
func TestRepresentative_Unit(t *testing.T) {
	_, _, g := fixture(t)
	rep, ok := g.Representative(nil)
	require.True(t, ok)
	assert.Empty(t, rep)
}
