package genset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/inflation/genset"
	"github.com/katalvlaran/inflation/ops"
	"github.com/katalvlaran/inflation/scenario"
)

// chsh is the two-party, two-setting, two-outcome scenario with one
// shared source and no inflation.
func chsh(t *testing.T) *scenario.Scenario {
	t.Helper()
	sc, err := scenario.New(scenario.Config{
		Outcomes:   []int{2, 2},
		Settings:   []int{2, 2},
		Inflation:  []int{1},
		Hypergraph: [][]int{{1, 1}},
		Network:    true,
	})
	require.NoError(t, err)

	return sc
}

// TestRawBitvecs_CHSH counts the event space: each party contributes
// (2+1)·(2+1) = 9 events, 81 in total, with the empty event first.
func TestRawBitvecs_CHSH(t *testing.T) {
	full, err := ops.NewAlphabet(chsh(t), ops.WithFullOutcomes())
	require.NoError(t, err)

	set, err := genset.RawBitvecs(full)
	require.NoError(t, err)
	assert.Equal(t, 81, set.Len())
	assert.Zero(t, set.Vec(0).Count(), "empty event first")

	// Every event holds at most one outcome per measurement context.
	for i := 0; i < set.Len(); i++ {
		seen := map[[2]int]int{}
		for _, r := range set.Vec(i).Ranks() {
			op := full.Op(r)
			seen[[2]int{op.Party, op.Setting}]++
		}
		for _, n := range seen {
			assert.Equal(t, 1, n)
		}
	}

	// Index round trip.
	for i := 0; i < set.Len(); i++ {
		j, ok := set.Index(set.Vec(i))
		require.True(t, ok)
		assert.Equal(t, i, j)
	}
}

// TestRawBitvecs_NeedsFullAlphabet rejects the CG alphabet.
func TestRawBitvecs_NeedsFullAlphabet(t *testing.T) {
	cg, err := ops.NewAlphabet(chsh(t))
	require.NoError(t, err)
	_, err = genset.RawBitvecs(cg)
	assert.ErrorIs(t, err, genset.ErrNeedFullAlphabet)
}

// TestRawBitvecs_MaxLength bounds the event size.
func TestRawBitvecs_MaxLength(t *testing.T) {
	full, err := ops.NewAlphabet(chsh(t), ops.WithFullOutcomes())
	require.NoError(t, err)

	set, err := genset.RawBitvecs(full, genset.WithMaxLength(1))
	require.NoError(t, err)
	// Empty event plus one per operator: 1 + 8.
	assert.Equal(t, 9, set.Len())
}
