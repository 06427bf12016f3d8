package program

import (
	"context"
	"fmt"
	"sort"

	"github.com/golang/glog"

	"github.com/katalvlaran/inflation/canon"
	"github.com/katalvlaran/inflation/genset"
	"github.com/katalvlaran/inflation/moment"
	"github.com/katalvlaran/inflation/monomial"
	"github.com/katalvlaran/inflation/ops"
	"github.com/katalvlaran/inflation/scenario"
	"github.com/katalvlaran/inflation/symmetry"
	"github.com/katalvlaran/inflation/valuation"
)

// SDP is the semidefinite relaxation engine. Construction precomputes
// the alphabet, commutation matrix, symmetry group, registry, and
// valuation engine; BuildGenerators and Constrain do the per-session
// work.
type SDP struct {
	sc  *scenario.Scenario
	a   *ops.Alphabet
	nc  *ops.Commutation
	grp *symmetry.Group
	reg *monomial.Registry
	val *valuation.Engine

	set    *genset.Set
	matrix *moment.Matrix

	userEq   []map[int]float64
	userIneq []map[int]float64
}

// NewSDP builds an SDP engine for sc.
func NewSDP(sc *scenario.Scenario, opts ...Option) (*SDP, error) {
	if sc == nil {
		return nil, ErrNilScenario
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	a, err := ops.NewAlphabet(sc)
	if err != nil {
		return nil, err
	}
	nc := ops.NewCommutation(a, cfg.commuting)
	grp, err := symmetry.NewGroup(a, nc)
	if err != nil {
		return nil, err
	}
	reg, err := monomial.NewRegistry(a, nc, grp)
	if err != nil {
		return nil, err
	}
	val, err := valuation.New(reg, a, cfg.valOpts...)
	if err != nil {
		return nil, err
	}

	return &SDP{sc: sc, a: a, nc: nc, grp: grp, reg: reg, val: val}, nil
}

// Registry exposes the interning store for id-level callers.
func (s *SDP) Registry() *monomial.Registry { return s.reg }

// Valuation exposes the numeric engine.
func (s *SDP) Valuation() *valuation.Engine { return s.val }

// Alphabet exposes the operator alphabet.
func (s *SDP) Alphabet() *ops.Alphabet { return s.a }

// Generators returns the current generating set, or nil.
func (s *SDP) Generators() *genset.Set { return s.set }

// BuildGenerators materializes the generating set named by spec.
func (s *SDP) BuildGenerators(spec GeneratorSpec) error {
	var (
		set *genset.Set
		err error
	)
	var gopts []genset.Option
	if spec.MaxLength > 0 {
		gopts = append(gopts, genset.WithMaxLength(spec.MaxLength))
	}
	switch spec.Style {
	case StyleNPA:
		set, err = genset.NPA(s.a, s.nc, spec.Level, gopts...)
	case StyleLocal:
		set, err = genset.Local(s.a, s.nc, spec.Level, gopts...)
	case StylePhysical:
		set, err = genset.Physical(s.a, s.nc, spec.Level, gopts...)
	case StyleBlocks:
		set, err = genset.PartyBlocks(s.a, s.nc, spec.Blocks)
	case StyleExplicit:
		set, err = genset.Explicit(s.a, s.nc, spec.Monomials)
	default:
		return fmt.Errorf("%w: style %d on the SDP path", ErrBadSpec, spec.Style)
	}
	if err != nil {
		return err
	}
	s.set = set
	s.matrix = nil

	return nil
}

// Product returns the interned canonical product M_i† · M_j.
func (s *SDP) Product(i, j int) (*monomial.Compound, error) {
	if s.set == nil {
		return nil, ErrNoGenerators
	}
	if i < 0 || j < 0 || i >= s.set.Len() || j >= s.set.Len() {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrIndexRange, i, j)
	}
	prod := append(canon.Dagger(s.set.Seq(i)), s.set.Seq(j)...)

	return s.reg.InternSequence(prod), nil
}

// SetDistribution forwards the observed tensor to the valuation engine.
// Call after BuildGenerators so every matrix monomial is interned; the
// moment matrix is built here if missing for exactly that reason.
func (s *SDP) SetDistribution(d *valuation.Distribution) error {
	if err := s.ensureMatrix(); err != nil {
		return err
	}

	return s.val.SetDistribution(d)
}

// SetValues forwards explicit values keyed by registry compound id.
func (s *SDP) SetValues(values map[int]float64) error {
	if err := s.ensureMatrix(); err != nil {
		return err
	}

	return s.val.SetValues(values)
}

// SetObjective installs the objective keyed by registry compound id.
func (s *SDP) SetObjective(obj map[int]float64, maximize bool) error {
	return s.val.SetObjective(obj, maximize)
}

// AddEquality appends a user equality row keyed by registry id.
func (s *SDP) AddEquality(row map[int]float64) { s.userEq = append(s.userEq, row) }

// AddInequality appends a user inequality row (≥ 0) keyed by registry
// id.
func (s *SDP) AddInequality(row map[int]float64) { s.userIneq = append(s.userIneq, row) }

// ensureMatrix builds the moment matrix once per generating set.
func (s *SDP) ensureMatrix() error {
	if s.set == nil {
		return ErrNoGenerators
	}
	if s.matrix != nil {
		return nil
	}
	m, err := moment.Build(s.set, s.reg, s.grp)
	if err != nil {
		return err
	}
	s.matrix = m

	return nil
}

// Constrain assembles the sparse SDP program keyed by compact
// moment-matrix ids.
func (s *SDP) Constrain() (*Program, error) {
	if err := s.ensureMatrix(); err != nil {
		return nil, err
	}
	remap := s.matrix.Remap

	p := &Program{
		KnownVars:     map[int]float64{},
		SemiknownVars: map[int]valuation.Semiknown{},
		LowerBounds:   map[int]float64{},
		UpperBounds:   map[int]float64{},
		MomentMatrix:  s.matrix,
		Names:         map[int]string{},
		Maximize:      s.val.Maximize(),
	}
	for k, c := range s.matrix.Monomials {
		p.Names[k] = c.Name
	}

	remapTable(s.val.Known(), remap, p.KnownVars, "known value")
	remapTable(s.val.LowerBounds(), remap, p.LowerBounds, "lower bound")
	remapTable(s.val.UpperBounds(), remap, p.UpperBounds, "upper bound")

	for id, semi := range s.val.Semiknowns() {
		cid, ok := remap[id]
		rid, ok2 := remap[semi.ID]
		if !ok || !ok2 {
			glog.Warningf("program: semiknown on %s falls outside the moment matrix; kept free",
				s.reg.Compound(id).Name)

			continue
		}
		p.SemiknownVars[cid] = valuation.Semiknown{Coef: semi.Coef, ID: rid}
	}

	obj, constant := s.val.ProcessedObjective()
	p.Objective = map[int]float64{}
	p.Constant = constant
	remapTable(obj, remap, p.Objective, "objective coefficient")

	for _, row := range s.userEq {
		out, err := s.remapUserRow(row, remap)
		if err != nil {
			return nil, err
		}
		if out != nil {
			p.Equalities = append(p.Equalities, out)
		}
	}
	for _, row := range s.userIneq {
		out, err := s.remapUserRow(row, remap)
		if err != nil {
			return nil, err
		}
		if out != nil {
			p.Inequalities = append(p.Inequalities, out)
		}
	}

	return p, nil
}

// Solve assembles the program and blocks on the external solver.
func (s *SDP) Solve(ctx context.Context, solver Solver) (*Solution, error) {
	if solver == nil {
		return nil, ErrNilSolver
	}
	p, err := s.Constrain()
	if err != nil {
		return nil, err
	}

	return solver.Solve(ctx, p)
}

// remapUserRow translates a registry-id row to compact ids. Zero-id
// entries contribute nothing; a row left with only the unit and a
// non-zero coefficient is infeasible before solving. Rows referencing
// monomials outside the matrix are dropped with a warning.
func (s *SDP) remapUserRow(row map[int]float64, remap map[int]int) (map[int]float64, error) {
	out := map[int]float64{}
	unitOnly := true
	unitCoef := 0.0
	ids := make([]int, 0, len(row))
	for id := range row {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		coef := row[id]
		if id == monomial.ZeroID || coef == 0 {
			continue
		}
		cid, ok := remap[id]
		if !ok {
			glog.Warningf("program: dropping constraint row referencing %s outside the moment matrix",
				s.reg.Compound(id).Name)

			return nil, nil
		}
		out[cid] = coef
		if id == monomial.OneID {
			unitCoef = coef
		} else {
			unitOnly = false
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	if unitOnly && unitCoef != 0 {
		return nil, fmt.Errorf("%w: constant %v", ErrInfeasibleConstraint, unitCoef)
	}

	return out, nil
}

// remapTable copies src through the compact-id remap, silently skipping
// entries that fell out of the matrix (they are not variables of this
// relaxation). The label names the table in trace logs.
func remapTable(src map[int]float64, remap map[int]int, dst map[int]float64, label string) {
	ids := make([]int, 0, len(src))
	for id := range src {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if cid, ok := remap[id]; ok {
			dst[cid] = src[id]
		} else if glog.V(2) {
			glog.Infof("program: %s on id %d outside the moment matrix", label, id)
		}
	}
}
