package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/inflation/ops"
	"github.com/katalvlaran/inflation/scenario"
)

// bilocal returns the three-party line scenario, two sources at
// inflation level 2, binary outcomes, single settings.
func bilocal(t *testing.T) *scenario.Scenario {
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

	return sc
}

// TestAlphabet_BilocalEnumeration pins the alphabet size and order for
// the bilocal scenario: A has copies (1,0),(2,0); B has (1,1)…(2,2);
// C has (0,1),(0,2); one setting and one explicit CG outcome each.
func TestAlphabet_BilocalEnumeration(t *testing.T) {
	a, err := ops.NewAlphabet(bilocal(t))
	require.NoError(t, err)

	assert.Equal(t, 8, a.L(), "2 + 4 + 2 operators expected")
	assert.Equal(t, ops.Operator{Party: 0, Copies: []int{1, 0}, Setting: 0, Outcome: 0}, a.Op(0))
	assert.Equal(t, ops.Operator{Party: 0, Copies: []int{2, 0}, Setting: 0, Outcome: 0}, a.Op(1))
	assert.Equal(t, ops.Operator{Party: 1, Copies: []int{1, 1}, Setting: 0, Outcome: 0}, a.Op(2))
	assert.Equal(t, ops.Operator{Party: 1, Copies: []int{2, 2}, Setting: 0, Outcome: 0}, a.Op(5))
	assert.Equal(t, ops.Operator{Party: 2, Copies: []int{0, 2}, Setting: 0, Outcome: 0}, a.Op(7))

	for r := 0; r < a.L(); r++ {
		got, err := a.Rank(a.Op(r))
		require.NoError(t, err)
		assert.Equal(t, r, got, "rank round trip")
	}

	_, err = a.Rank(ops.Operator{Party: 0, Copies: []int{3, 0}})
	assert.ErrorIs(t, err, ops.ErrUnknownOperator, "copy index past inflation level")

	bs, err := a.ByParty(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 5}, bs)

	_, err = a.ByParty(7)
	assert.ErrorIs(t, err, ops.ErrBadParty)
}

// TestAlphabet_CollinsGisin verifies that the last outcome is dropped by
// default and kept under WithFullOutcomes.
func TestAlphabet_CollinsGisin(t *testing.T) {
	sc, err := scenario.New(scenario.Config{
		Outcomes:   []int{3},
		Settings:   []int{2},
		Inflation:  []int{1},
		Hypergraph: [][]int{{1}},
		Network:    true,
	})
	require.NoError(t, err)

	cg, err := ops.NewAlphabet(sc)
	require.NoError(t, err)
	assert.Equal(t, 4, cg.L(), "2 settings × 2 explicit outcomes")
	for _, op := range cg.All() {
		assert.Less(t, op.Outcome, 2, "outcome o_p-1 never appears under CG")
	}

	full, err := ops.NewAlphabet(sc, ops.WithFullOutcomes())
	require.NoError(t, err)
	assert.Equal(t, 6, full.L(), "2 settings × 3 outcomes")

	groups, err := full.OrthoGroups(0)
	require.NoError(t, err)
	require.Len(t, groups, 2, "one ortho group per setting")
	assert.Equal(t, []int{0, 1, 2}, groups[0])
	assert.Equal(t, []int{3, 4, 5}, groups[1])
}

// TestCommutation_OverlapRule pins the commutation semantics on the
// bilocal alphabet: same-party operators are non-commuting exactly when
// their copy vectors overlap on some source.
func TestCommutation_OverlapRule(t *testing.T) {
	a, err := ops.NewAlphabet(bilocal(t))
	require.NoError(t, err)
	nc := ops.NewCommutation(a, false)

	// Ranks (see TestAlphabet_BilocalEnumeration):
	//   2 = B(1,1), 3 = B(1,2), 4 = B(2,1), 5 = B(2,2).
	assert.True(t, nc.NonCommuting(2, 3), "B(1,1), B(1,2) share copy 1 on source 0")
	assert.True(t, nc.NonCommuting(3, 5), "B(1,2), B(2,2) share copy 2 on source 1")
	assert.False(t, nc.NonCommuting(2, 5), "B(1,1), B(2,2) are fully disjoint")
	assert.False(t, nc.NonCommuting(3, 4), "B(1,2), B(2,1) are fully disjoint")

	// Different parties always commute, even when causally connected.
	assert.False(t, nc.NonCommuting(0, 2), "A(1,0) and B(1,1) commute")

	// Same-party A operators differ on their only source.
	assert.False(t, nc.NonCommuting(0, 1), "A(1,0) and A(2,0) commute")

	// Zero diagonal and symmetry.
	for i := 0; i < a.L(); i++ {
		assert.False(t, nc.NonCommuting(i, i))
		for j := 0; j < a.L(); j++ {
			assert.Equal(t, nc.NonCommuting(i, j), nc.NonCommuting(j, i))
		}
	}
}

// TestCommutation_CommutingModel checks that the commuting model zeroes
// the whole matrix.
func TestCommutation_CommutingModel(t *testing.T) {
	a, err := ops.NewAlphabet(bilocal(t))
	require.NoError(t, err)
	nc := ops.NewCommutation(a, true)

	for i := 0; i < a.L(); i++ {
		for j := 0; j < a.L(); j++ {
			assert.False(t, nc.NonCommuting(i, j))
		}
	}
	assert.True(t, nc.Commuting())
}
