package lpcons_test

import (
	"testing"

	"github.com/katalvlaran/inflation/genset"
	"github.com/katalvlaran/inflation/lpcons"
	"github.com/katalvlaran/inflation/ops"
	"github.com/katalvlaran/inflation/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instrumental is a two-party scenario where party A has observed
// children and party B is a leaf; one source, no inflation.
func instrumental(t *testing.T) *genset.BitvecSet {
	t.Helper()
	sc, err := scenario.New(scenario.Config{
		Outcomes:    []int{2, 2},
		Settings:    []int{1, 1},
		Inflation:   []int{1},
		Hypergraph:  [][]int{{1, 1}},
		HasChildren: []bool{true, false},
		Network:     false,
	})
	require.NoError(t, err)
	full, err := ops.NewAlphabet(sc, ops.WithFullOutcomes())
	require.NoError(t, err)
	set, err := genset.RawBitvecs(full)
	require.NoError(t, err)
	// Ranks: 0,1 = A outcomes; 2,3 = B outcomes. 9 events.
	require.Equal(t, 9, set.Len())

	return set
}

// eventProb values an event under independent marginals
// q = P(a), r = P(b).
func eventProb(set *genset.BitvecSet, vi int, q, r []float64) float64 {
	p := 1.0
	for _, rk := range set.Vec(vi).Ranks() {
		op := set.Alphabet().Op(rk)
		if op.Party == 0 {
			p *= q[op.Outcome]
		} else {
			p *= r[op.Outcome]
		}
	}

	return p
}

// TestNormalization emits one equality per background of the
// child-bearing party and every row sums to zero on a normalized
// distribution.
func TestNormalization(t *testing.T) {
	set := instrumental(t)
	as, err := lpcons.New(set)
	require.NoError(t, err)

	rows, err := as.Normalization()
	require.NoError(t, err)
	// One context at party A, three backgrounds: {}, {B=0}, {B=1}.
	require.Len(t, rows, 3)

	q := []float64{0.3, 0.7}
	r := []float64{0.6, 0.4}
	x := make([]float64, set.Len())
	for vi := range x {
		x[vi] = eventProb(set, vi, q, r)
	}
	for _, row := range rows {
		assert.InDelta(t, 0, row.Apply(x), 1e-12,
			"normalization holds on a product distribution")
	}
}

// TestCGFold_RoundTrip pins property: every folded row, evaluated on
// the CG events, reproduces the probability of the original full event.
func TestCGFold_RoundTrip(t *testing.T) {
	set := instrumental(t)
	as, err := lpcons.New(set)
	require.NoError(t, err)

	rows, err := as.CGFold()
	require.NoError(t, err)
	require.Len(t, rows, set.Len(), "one row per event")

	q := []float64{0.3, 0.7}
	r := []float64{0.6, 0.4}
	x := make([]float64, set.Len())
	for vi := range x {
		x[vi] = eventProb(set, vi, q, r)
	}
	for vi, row := range rows {
		assert.InDelta(t, x[vi], row.Apply(x), 1e-12,
			"folded expansion of event %d equals its probability", vi)

		// Fold terms never reference a folded (last-outcome leaf) event.
		for _, c := range row.Cols {
			for _, rk := range set.Vec(c).Ranks() {
				op := set.Alphabet().Op(rk)
				if op.Party == 1 {
					assert.Less(t, op.Outcome, 1, "CG subspace only")
				}
			}
		}
	}
}

// TestCGFold_Signs checks the parity rule on a doubly folded event.
func TestCGFold_Signs(t *testing.T) {
	sc, err := scenario.New(scenario.Config{
		Outcomes:   []int{2, 2},
		Settings:   []int{1, 1},
		Inflation:  []int{1},
		Hypergraph: [][]int{{1, 1}},
		Network:    true,
	})
	require.NoError(t, err)
	full, err := ops.NewAlphabet(sc, ops.WithFullOutcomes())
	require.NoError(t, err)
	set, err := genset.RawBitvecs(full)
	require.NoError(t, err)
	as, err := lpcons.New(set)
	require.NoError(t, err)

	rows, err := as.CGFold()
	require.NoError(t, err)

	// Find the row of the event {A=1, B=1}: both outcomes folded.
	bv := ops.BitvecOf(full.L(), []int{1, 3})
	vi, ok := set.Index(bv)
	require.True(t, ok)

	row := rows[vi]
	require.Len(t, row.Cols, 4)
	// P(∅) − P(A=0) − P(B=0) + P(A=0,B=0) ≥ 0.
	coefByCount := map[int]float64{}
	for k, c := range row.Cols {
		coefByCount[set.Vec(c).Count()] = row.Coefs[k]
	}
	assert.Equal(t, 1.0, coefByCount[0])
	assert.Equal(t, -1.0, coefByCount[1])
	assert.Equal(t, 1.0, coefByCount[2])
}

// TestLPIRows renders proportionality pairs deterministically.
func TestLPIRows(t *testing.T) {
	rows := lpcons.LPIRows(map[int]lpcons.Semi{
		7: {Coef: 0.25, Other: 3},
		2: {Coef: 0.5, Other: 1},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, []int{2, 1}, rows[0].Cols, "sorted by column id")
	assert.Equal(t, []float64{1, -0.5}, rows[0].Coefs)
	assert.Equal(t, []int{7, 3}, rows[1].Cols)
}

// TestAggregate stacks rows into COO form.
func TestAggregate(t *testing.T) {
	m := lpcons.Aggregate([]lpcons.Row{
		{Cols: []int{0, 2}, Coefs: []float64{1, -1}},
		{Cols: []int{1}, Coefs: []float64{2}},
	}, 4)
	assert.Equal(t, 2, m.NRows)
	assert.Equal(t, 4, m.NCols)
	assert.Equal(t, []int{0, 0, 1}, m.Rows)
	assert.Equal(t, []int{0, 2, 1}, m.Cols)
	assert.Equal(t, []float64{1, -1, 2}, m.Vals)
}
