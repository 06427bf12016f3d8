package program_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/inflation/monomial"
	"github.com/katalvlaran/inflation/program"
	"github.com/katalvlaran/inflation/scenario"
	"github.com/katalvlaran/inflation/valuation"
)

// chsh is the two-party Bell scenario: two settings, two outcomes, one
// source, no inflation.
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

// ghzCut is the triangle with pairwise sources, one source inflated to
// level 2.
func ghzCut(t *testing.T) *scenario.Scenario {
	t.Helper()
	sc, err := scenario.New(scenario.Config{
		Outcomes:  []int{2, 2, 2},
		Settings:  []int{1, 1, 1},
		Inflation: []int{2, 1, 1},
		Hypergraph: [][]int{
			{1, 1, 0},
			{0, 1, 1},
			{1, 0, 1},
		},
		Network: true,
	})
	require.NoError(t, err)

	return sc
}

// ghzDistribution mixes a GHZ diagonal with white noise at visibility v.
func ghzDistribution(v float64) []float64 {
	probs := make([]float64, 8)
	for i := range probs {
		probs[i] = (1 - v) / 8
	}
	probs[0] += v / 2
	probs[7] += v / 2

	return probs
}

// stubSolver returns a canned solution and remembers the program.
type stubSolver struct {
	got *program.Program
	sol *program.Solution
	err error
}

func (s *stubSolver) Solve(_ context.Context, p *program.Program) (*program.Solution, error) {
	s.got = p

	return s.sol, s.err
}

// chshObjective builds A_0(B_0+B_1) + A_1(B_0−B_1) over CG projectors:
// each correlator expands as 4·P(00|xy) − 2·P_A(0|x) − 2·P_B(0|y) + 1.
func chshObjective(t *testing.T, s *program.SDP) map[int]float64 {
	t.Helper()
	reg := s.Registry()
	signs := map[[2]int]float64{{0, 0}: 1, {0, 1}: 1, {1, 0}: 1, {1, 1}: -1}

	obj := map[int]float64{}
	for xy, sign := range signs {
		x, y := xy[0], xy[1]
		ab, err := reg.InternName(chshPairName(x, y))
		require.NoError(t, err)
		obj[ab.ID] += 4 * sign

		aOnly, err := reg.InternName(chshSingleName("A", x))
		require.NoError(t, err)
		obj[aOnly.ID] += -2 * sign

		bOnly, err := reg.InternName(chshSingleName("B", y))
		require.NoError(t, err)
		obj[bOnly.ID] += -2 * sign

		obj[monomial.OneID] += sign
	}

	return obj
}

func chshSingleName(party string, x int) string {
	return party + "_1_" + itoa(x) + "_0"
}

func chshPairName(x, y int) string {
	return "<" + chshSingleName("A", x) + " " + chshSingleName("B", y) + ">"
}

func itoa(v int) string { return string(rune('0' + v)) }

// TestSDP_CHSHSession drives the whole SDP path: npa1 generators, 5×5
// moment matrix, CHSH objective, stub solve.
func TestSDP_CHSHSession(t *testing.T) {
	s, err := program.NewSDP(chsh(t))
	require.NoError(t, err)

	require.NoError(t, s.BuildGenerators(program.NPASpec(1)))
	require.Equal(t, 5, s.Generators().Len())

	obj := chshObjective(t, s)
	require.NoError(t, s.SetObjective(obj, true))

	p, err := s.Constrain()
	require.NoError(t, err)
	require.NotNil(t, p.MomentMatrix)
	assert.Equal(t, 5, p.MomentMatrix.N)
	assert.Len(t, p.MomentMatrix.Monomials, 11)
	assert.True(t, p.Maximize)

	// The unit coefficient folds into the constant: Σ signs = 2.
	assert.InDelta(t, 2.0, p.Constant, 1e-12)
	// Four pair terms and the two surviving singles carry coefficients.
	assert.Len(t, p.Objective, 4+2)

	solver := &stubSolver{sol: &program.Solution{
		Status:    program.StatusFeasible,
		Objective: 2.8284271247461903,
	}}
	sol, err := s.Solve(context.Background(), solver)
	require.NoError(t, err)
	assert.Equal(t, program.StatusFeasible, sol.Status)
	assert.InDelta(t, 2.8284271, sol.Objective, 1e-6)
	assert.Same(t, p.MomentMatrix, solver.got.MomentMatrix,
		"the solver sees the same matrix Constrain produced")
}

// TestSDP_Deterministic runs two independent GHZ-cut sessions and
// expects identical programs (id stability, property of the pipeline).
func TestSDP_Deterministic(t *testing.T) {
	build := func() *program.Program {
		s, err := program.NewSDP(ghzCut(t))
		require.NoError(t, err)
		require.NoError(t, s.BuildGenerators(program.LocalSpec(1)))

		d, err := valuation.NewDistribution(ghzDistribution(0.51), ghzCut(t))
		require.NoError(t, err)
		require.NoError(t, s.SetDistribution(d))

		p, err := s.Constrain()
		require.NoError(t, err)

		return p
	}

	p1 := build()
	p2 := build()
	assert.Equal(t, p1.KnownVars, p2.KnownVars)
	assert.Equal(t, p1.LowerBounds, p2.LowerBounds)
	assert.Equal(t, p1.MomentMatrix.IDs, p2.MomentMatrix.IDs)
	assert.Equal(t, p1.Names, p2.Names)
}

// TestSDP_GHZKnownVars checks that the GHZ marginals land in the known
// table of the cut-inflation relaxation.
func TestSDP_GHZKnownVars(t *testing.T) {
	s, err := program.NewSDP(ghzCut(t))
	require.NoError(t, err)
	require.NoError(t, s.BuildGenerators(program.LocalSpec(1)))

	d, err := valuation.NewDistribution(ghzDistribution(0.51), ghzCut(t))
	require.NoError(t, err)
	require.NoError(t, s.SetDistribution(d))

	p, err := s.Constrain()
	require.NoError(t, err)
	assert.Greater(t, len(p.KnownVars), 1, "marginals beyond the unit are known")
	for id, v := range p.KnownVars {
		assert.GreaterOrEqual(t, v, 0.0, "probabilities are non-negative (%s)", p.Names[id])
		assert.LessOrEqual(t, v, 1.0)
	}
}

// TestSDP_Product interns M_i† · M_j.
func TestSDP_Product(t *testing.T) {
	s, err := program.NewSDP(chsh(t))
	require.NoError(t, err)
	require.NoError(t, s.BuildGenerators(program.NPASpec(1)))

	c, err := s.Product(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "A_1_0_0", c.Name, "unit times A_0")

	same, err := s.Product(1, 1)
	require.NoError(t, err)
	assert.Same(t, c, same, "projector squared is itself")

	_, err = s.Product(0, 9)
	assert.ErrorIs(t, err, program.ErrIndexRange)

	fresh, err := program.NewSDP(chsh(t))
	require.NoError(t, err)
	_, err = fresh.Product(0, 0)
	assert.ErrorIs(t, err, program.ErrNoGenerators)
}

// TestSDP_UserRows covers zero handling and the pre-solve infeasibility
// check.
func TestSDP_UserRows(t *testing.T) {
	s, err := program.NewSDP(chsh(t))
	require.NoError(t, err)
	require.NoError(t, s.BuildGenerators(program.NPASpec(1)))

	a0, err := s.Registry().InternName("A_1_0_0")
	require.NoError(t, err)

	s.AddEquality(map[int]float64{a0.ID: 1, monomial.OneID: -0.5})
	s.AddInequality(map[int]float64{a0.ID: 1})
	s.AddEquality(map[int]float64{monomial.ZeroID: 3}) // drops silently
	p, err := s.Constrain()
	require.NoError(t, err)
	assert.Len(t, p.Equalities, 1, "the zero-only row vanished")
	assert.Len(t, p.Inequalities, 1)

	s.AddEquality(map[int]float64{monomial.ZeroID: 3, monomial.OneID: 5})
	_, err = s.Constrain()
	assert.ErrorIs(t, err, program.ErrInfeasibleConstraint)
}

// TestSDP_SolverFailure propagates the solver error unchanged.
func TestSDP_SolverFailure(t *testing.T) {
	s, err := program.NewSDP(chsh(t))
	require.NoError(t, err)
	require.NoError(t, s.BuildGenerators(program.NPASpec(1)))

	boom := errors.New("mosek: license expired")
	_, err = s.Solve(context.Background(), &stubSolver{err: boom})
	assert.ErrorIs(t, err, boom)

	_, err = s.Solve(context.Background(), nil)
	assert.ErrorIs(t, err, program.ErrNilSolver)
}

// TestLP_Session drives the LP path on a small scenario.
func TestLP_Session(t *testing.T) {
	sc, err := scenario.New(scenario.Config{
		Outcomes:   []int{2, 2},
		Settings:   []int{1, 1},
		Inflation:  []int{1},
		Hypergraph: [][]int{{1, 1}},
		Network:    true,
	})
	require.NoError(t, err)

	l, err := program.NewLP(sc)
	require.NoError(t, err)
	require.NoError(t, l.BuildGenerators(program.BitvecSpec()))
	require.Equal(t, 9, l.Events().Len())

	err = l.BuildGenerators(program.NPASpec(1))
	assert.ErrorIs(t, err, program.ErrBadSpec)
	require.NoError(t, l.BuildGenerators(program.BitvecSpec()))

	// Product of two compatible events unions them.
	c, err := l.Product(1, 3)
	require.NoError(t, err)
	assert.False(t, c.IsZero())

	d, err := valuation.NewDistribution([]float64{0.4, 0.1, 0.1, 0.4}, sc)
	require.NoError(t, err)
	require.NoError(t, l.SetDistribution(d))

	p, err := l.Constrain()
	require.NoError(t, err)
	assert.Nil(t, p.MomentMatrix, "LP programs carry no moment matrix")
	assert.NotNil(t, p.EventInequalities)
	assert.Len(t, p.Inequalities, 9, "one CG row per event")
	assert.Empty(t, p.Equalities, "leaf-only network has no normalization rows")
	assert.NotEmpty(t, p.KnownVars)
	for id := range p.Objective {
		assert.Contains(t, p.Names, id)
	}

	sol, err := l.Solve(context.Background(), &stubSolver{sol: &program.Solution{Status: program.StatusInfeasible}})
	require.NoError(t, err)
	assert.Equal(t, "infeasible", sol.Status.String())
}

// TestCertificateAsDict renders dual vectors through the name table.
func TestCertificateAsDict(t *testing.T) {
	s, err := program.NewSDP(chsh(t))
	require.NoError(t, err)
	require.NoError(t, s.BuildGenerators(program.NPASpec(1)))
	p, err := s.Constrain()
	require.NoError(t, err)

	sol := &program.Solution{
		Status: program.StatusInfeasible,
		Dual:   map[int]float64{0: 1.5, 2: -0.5, 3: 0, 99: 2},
	}
	cert := p.CertificateAsDict(sol)
	require.Len(t, cert, 3, "zero coefficients drop")
	assert.Equal(t, 1.5, cert[p.Names[0]])
	assert.Equal(t, 2.0, cert["#99"], "unnamed ids render numerically")

	assert.Nil(t, p.CertificateAsDict(nil))
	assert.Nil(t, p.CertificateAsDict(&program.Solution{}))
}

// TestStatusString covers the verdict rendering.
func TestStatusString(t *testing.T) {
	assert.Equal(t, "feasible", program.StatusFeasible.String())
	assert.Equal(t, "infeasible", program.StatusInfeasible.String())
	assert.Equal(t, "unknown", program.StatusUnknown.String())
}
