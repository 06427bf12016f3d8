// Package program: engine contracts, solver handoff types, and
// sentinel errors.
package program

import (
	"context"
	"errors"

	"github.com/katalvlaran/inflation/lpcons"
	"github.com/katalvlaran/inflation/moment"
	"github.com/katalvlaran/inflation/monomial"
	"github.com/katalvlaran/inflation/valuation"
)

// Sentinel errors for program assembly.
var (
	// ErrNilScenario indicates a nil scenario.
	ErrNilScenario = errors.New("program: scenario is nil")

	// ErrNoGenerators indicates Constrain before BuildGenerators.
	ErrNoGenerators = errors.New("program: generators not built")

	// ErrBadSpec indicates an unusable generator specification.
	ErrBadSpec = errors.New("program: invalid generator specification")

	// ErrIndexRange indicates a Product index outside the generator set.
	ErrIndexRange = errors.New("program: generator index out of range")

	// ErrInfeasibleConstraint indicates a constraint that reduces to a
	// non-zero constant equated to zero; the session is infeasible
	// before any solver runs.
	ErrInfeasibleConstraint = errors.New("program: constraint fixes a non-zero constant to zero")

	// ErrNilSolver indicates Solve without a solver.
	ErrNilSolver = errors.New("program: solver is nil")
)

// Status is the solver verdict.
type Status int

const (
	// StatusUnknown: the solver could not decide.
	StatusUnknown Status = iota

	// StatusFeasible: a certificate of compatibility exists.
	StatusFeasible

	// StatusInfeasible: the relaxation rules the distribution out.
	StatusInfeasible
)

// String renders the verdict for logs and certificates.
func (s Status) String() string {
	switch s {
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Program is the sparse handoff consumed by the solver. Ids are compact
// moment-matrix ids on the SDP path and interned compound ids on the
// LP path; Names resolves either kind.
type Program struct {
	Objective     map[int]float64
	Constant      float64
	Maximize      bool
	KnownVars     map[int]float64
	SemiknownVars map[int]valuation.Semiknown
	Equalities    []map[int]float64
	Inequalities  []map[int]float64
	LowerBounds   map[int]float64
	UpperBounds   map[int]float64

	// MomentMatrix is set on the SDP path only.
	MomentMatrix *moment.Matrix

	// EventEqualities and EventInequalities carry the raw event-space
	// sparse systems on the LP
	// path (coordinate form), for writers that prefer matrices over
	// dict rows.
	EventEqualities   *lpcons.COO
	EventInequalities *lpcons.COO

	Names map[int]string
}

// Solution is the solver's answer, keyed like the Program it solved.
type Solution struct {
	Status    Status
	Objective float64
	Primal    map[int]float64
	Dual      map[int]float64

	// Message carries the solver's own status string; set verbatim on
	// failures.
	Message string
}

// Solver is the external numerical collaborator. The call blocks; the
// caller owns cancellation through ctx.
type Solver interface {
	Solve(ctx context.Context, p *Program) (*Solution, error)
}

// Engine is the capability set shared by the SDP and LP paths.
type Engine interface {
	// BuildGenerators materializes the generating monomial set.
	BuildGenerators(spec GeneratorSpec) error

	// Product returns the interned canonical product M_i† · M_j.
	Product(i, j int) (*monomial.Compound, error)

	// Constrain assembles the sparse program from the current
	// generators, values, bounds, and objective.
	Constrain() (*Program, error)

	// Solve runs Constrain and hands the result to the solver.
	Solve(ctx context.Context, s Solver) (*Solution, error)
}

// Style selects a generating-set family.
type Style int

const (
	// StyleNPA: products of at most Level single-party operators.
	StyleNPA Style = iota

	// StyleLocal: at most Level operators per party.
	StyleLocal

	// StylePhysical: the PSD-safe subset of StyleLocal.
	StylePhysical

	// StyleBlocks: explicit party-index blocks.
	StyleBlocks

	// StyleExplicit: caller-supplied monomials, unit first.
	StyleExplicit

	// StyleBitvecs: the LP event enumeration.
	StyleBitvecs
)

// GeneratorSpec names a generating set.
type GeneratorSpec struct {
	Style     Style
	Level     int
	Blocks    [][]int
	Monomials [][]int
	MaxLength int
}

// NPASpec is the npaN hierarchy.
func NPASpec(level int) GeneratorSpec { return GeneratorSpec{Style: StyleNPA, Level: level} }

// LocalSpec is the localN hierarchy.
func LocalSpec(level int) GeneratorSpec { return GeneratorSpec{Style: StyleLocal, Level: level} }

// PhysicalSpec is the physicalN hierarchy.
func PhysicalSpec(level int) GeneratorSpec { return GeneratorSpec{Style: StylePhysical, Level: level} }

// BlocksSpec lists explicit party-index blocks.
func BlocksSpec(blocks [][]int) GeneratorSpec {
	return GeneratorSpec{Style: StyleBlocks, Blocks: blocks}
}

// ExplicitSpec lists explicit monomials; the unit must come first.
func ExplicitSpec(monomials [][]int) GeneratorSpec {
	return GeneratorSpec{Style: StyleExplicit, Monomials: monomials}
}

// BitvecSpec is the LP event enumeration.
func BitvecSpec() GeneratorSpec { return GeneratorSpec{Style: StyleBitvecs} }

// Option configures engine construction.
type Option func(*config)

type config struct {
	commuting bool
	valOpts   []valuation.Option
}

// WithCommuting selects the all-commuting operator model.
func WithCommuting() Option {
	return func(c *config) { c.commuting = true }
}

// WithLPI enables linearized polynomial inference downstream.
func WithLPI() Option {
	return func(c *config) { c.valOpts = append(c.valOpts, valuation.WithLPI()) }
}

// WithSupports switches the valuation to the supports problem.
func WithSupports() Option {
	return func(c *config) { c.valOpts = append(c.valOpts, valuation.WithSupports()) }
}

// WithOnlySpecifiedValues forwards the valuation escape hatch.
func WithOnlySpecifiedValues() Option {
	return func(c *config) { c.valOpts = append(c.valOpts, valuation.WithOnlySpecifiedValues()) }
}
