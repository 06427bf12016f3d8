package program

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/inflation/genset"
	"github.com/katalvlaran/inflation/lpcons"
	"github.com/katalvlaran/inflation/monomial"
	"github.com/katalvlaran/inflation/ops"
	"github.com/katalvlaran/inflation/scenario"
	"github.com/katalvlaran/inflation/symmetry"
	"github.com/katalvlaran/inflation/valuation"
)

// LP is the linear-programming engine over the full-outcome event
// space. Operators commute on this path regardless of the model chosen
// for the SDP.
type LP struct {
	sc  *scenario.Scenario
	a   *ops.Alphabet
	nc  *ops.Commutation
	grp *symmetry.Group
	reg *monomial.Registry
	val *valuation.Engine

	set  *genset.BitvecSet
	cols []int // event index → registry compound id

	userEq   []map[int]float64
	userIneq []map[int]float64
	maxLen   int
}

// NewLP builds an LP engine for sc.
func NewLP(sc *scenario.Scenario, opts ...Option) (*LP, error) {
	if sc == nil {
		return nil, ErrNilScenario
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	a, err := ops.NewAlphabet(sc, ops.WithFullOutcomes())
	if err != nil {
		return nil, err
	}
	nc := ops.NewCommutation(a, true)
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

	return &LP{sc: sc, a: a, nc: nc, grp: grp, reg: reg, val: val}, nil
}

// Registry exposes the interning store.
func (l *LP) Registry() *monomial.Registry { return l.reg }

// Valuation exposes the numeric engine.
func (l *LP) Valuation() *valuation.Engine { return l.val }

// Events returns the current event set, or nil.
func (l *LP) Events() *genset.BitvecSet { return l.set }

// BuildGenerators enumerates the event space. Only StyleBitvecs is
// meaningful on the LP path; MaxLength bounds the event size.
func (l *LP) BuildGenerators(spec GeneratorSpec) error {
	if spec.Style != StyleBitvecs {
		return fmt.Errorf("%w: style %d on the LP path", ErrBadSpec, spec.Style)
	}
	var gopts []genset.Option
	if spec.MaxLength > 0 {
		gopts = append(gopts, genset.WithMaxLength(spec.MaxLength))
	}
	set, err := genset.RawBitvecs(l.a, gopts...)
	if err != nil {
		return err
	}
	l.set = set
	l.maxLen = spec.MaxLength

	// Intern every event in enumeration order: column ids become
	// deterministic, symmetry mates collapse to one compound.
	l.cols = make([]int, set.Len())
	for i := 0; i < set.Len(); i++ {
		l.cols[i] = l.reg.InternSequence(set.Vec(i).Ranks()).ID
	}

	return nil
}

// Product multiplies two events: the union of their operator sets,
// interned. Conflicting outcomes on a shared context annihilate to the
// zero compound.
func (l *LP) Product(i, j int) (*monomial.Compound, error) {
	if l.set == nil {
		return nil, ErrNoGenerators
	}
	if i < 0 || j < 0 || i >= l.set.Len() || j >= l.set.Len() {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrIndexRange, i, j)
	}
	u := l.set.Vec(i).Clone()
	u.Or(l.set.Vec(j))

	return l.reg.InternSequence(u.Ranks()), nil
}

// SetDistribution forwards the observed tensor to the valuation engine.
func (l *LP) SetDistribution(d *valuation.Distribution) error {
	if l.set == nil {
		return ErrNoGenerators
	}

	return l.val.SetDistribution(d)
}

// SetValues forwards explicit values keyed by registry compound id.
func (l *LP) SetValues(values map[int]float64) error {
	return l.val.SetValues(values)
}

// SetObjective installs the objective keyed by registry compound id.
func (l *LP) SetObjective(obj map[int]float64, maximize bool) error {
	return l.val.SetObjective(obj, maximize)
}

// AddEquality appends a user equality row keyed by registry id.
func (l *LP) AddEquality(row map[int]float64) { l.userEq = append(l.userEq, row) }

// AddInequality appends a user inequality row (≥ 0).
func (l *LP) AddInequality(row map[int]float64) { l.userIneq = append(l.userIneq, row) }

// Constrain assembles the sparse LP keyed by registry compound ids:
// normalization equalities, Collins–Gisin fold inequalities, LPI rows
// from the semiknown table, and user rows.
func (l *LP) Constrain() (*Program, error) {
	if l.set == nil {
		return nil, ErrNoGenerators
	}
	as, err := lpcons.New(l.set)
	if err != nil {
		return nil, err
	}
	eqRows, err := as.Normalization()
	if err != nil {
		return nil, err
	}
	ineqRows, err := as.CGFold()
	if err != nil {
		return nil, err
	}

	p := &Program{
		KnownVars:         l.val.Known(),
		SemiknownVars:     l.val.Semiknowns(),
		LowerBounds:       l.val.LowerBounds(),
		UpperBounds:       l.val.UpperBounds(),
		Names:             map[int]string{},
		Maximize:          l.val.Maximize(),
		EventEqualities:   lpcons.Aggregate(eqRows, l.set.Len()),
		EventInequalities: lpcons.Aggregate(ineqRows, l.set.Len()),
	}
	for _, row := range eqRows {
		p.Equalities = append(p.Equalities, l.rowToDict(row))
	}
	for _, row := range ineqRows {
		p.Inequalities = append(p.Inequalities, l.rowToDict(row))
	}

	obj, constant := l.val.ProcessedObjective()
	p.Objective = obj
	p.Constant = constant

	for _, row := range l.userEq {
		out, err := sanitizeUserRow(row)
		if err != nil {
			return nil, err
		}
		if out != nil {
			p.Equalities = append(p.Equalities, out)
		}
	}
	for _, row := range l.userIneq {
		out, err := sanitizeUserRow(row)
		if err != nil {
			return nil, err
		}
		if out != nil {
			p.Inequalities = append(p.Inequalities, out)
		}
	}

	l.nameProgram(p)

	return p, nil
}

// Solve assembles the program and blocks on the external solver.
func (l *LP) Solve(ctx context.Context, solver Solver) (*Solution, error) {
	if solver == nil {
		return nil, ErrNilSolver
	}
	p, err := l.Constrain()
	if err != nil {
		return nil, err
	}

	return solver.Solve(ctx, p)
}

// rowToDict converts an event-column row to a compound-id dict. Columns
// landing on the same compound (symmetry mates) merge.
func (l *LP) rowToDict(row lpcons.Row) map[int]float64 {
	out := map[int]float64{}
	for k, c := range row.Cols {
		id := l.cols[c]
		if id == monomial.ZeroID {
			continue
		}
		out[id] += row.Coefs[k]
	}
	for id, coef := range out {
		if coef == 0 {
			delete(out, id)
		}
	}

	return out
}

// nameProgram fills the Names table for every id the program touches.
func (l *LP) nameProgram(p *Program) {
	name := func(id int) { p.Names[id] = l.reg.Compound(id).Name }
	for id := range p.KnownVars {
		name(id)
	}
	for id, s := range p.SemiknownVars {
		name(id)
		name(s.ID)
	}
	for id := range p.Objective {
		name(id)
	}
	for id := range p.LowerBounds {
		name(id)
	}
	for id := range p.UpperBounds {
		name(id)
	}
	for _, row := range p.Equalities {
		for id := range row {
			name(id)
		}
	}
	for _, row := range p.Inequalities {
		for id := range row {
			name(id)
		}
	}
}

// sanitizeUserRow drops zero-id entries and detects rows that reduce to
// a non-zero constant equated to zero.
func sanitizeUserRow(row map[int]float64) (map[int]float64, error) {
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
		out[id] = coef
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
