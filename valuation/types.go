// Package valuation: states, options, and sentinel errors.
package valuation

import "errors"

// State tracks how much of a compound monomial is numerically bound.
type State int

const (
	// Free: no factor has a value.
	Free State = iota

	// PartiallyKnown: some factors have values, some do not.
	PartiallyKnown

	// FullyKnown: every factor has a value.
	FullyKnown
)

// Semiknown is the proportionality c = Coef · compound(ID) produced by
// pulling known factors out of a partially known compound.
type Semiknown struct {
	Coef float64
	ID   int
}

// Sentinel errors for valuation.
var (
	// ErrNilInput indicates a nil registry or alphabet.
	ErrNilInput = errors.New("valuation: nil construction input")

	// ErrBadTensor indicates a probability tensor whose length does not
	// match the scenario's outcome and setting cardinalities.
	ErrBadTensor = errors.New("valuation: tensor shape mismatch")

	// ErrNotSupportPattern indicates a supports-mode tensor holding a
	// value other than 0 or 1.
	ErrNotSupportPattern = errors.New("valuation: supports mode needs a 0/1 tensor")

	// ErrInconsistentValue indicates the same monomial valued twice
	// with different numbers.
	ErrInconsistentValue = errors.New("valuation: contradictory value")

	// ErrInconsistentBound indicates contradictory bounds on one
	// monomial.
	ErrInconsistentBound = errors.New("valuation: contradictory bound")

	// ErrNonAtomicValue indicates a multi-factor compound valued
	// without the only-specified-values escape hatch.
	ErrNonAtomicValue = errors.New("valuation: non-atomic monomial needs OnlySpecifiedValues")

	// ErrBadID indicates a monomial id outside the registry.
	ErrBadID = errors.New("valuation: monomial id out of range")
)

// Option configures an Engine.
type Option func(*Engine)

// WithLPI enables linearized polynomial inference: partially known
// compounds become semiknown proportionalities instead of staying free.
func WithLPI() Option {
	return func(e *Engine) { e.useLPI = true }
}

// WithSupports switches to the supports problem: strictly positive
// knowns turn into lower bounds of 1 and the tensor must be a 0/1
// pattern.
func WithSupports() Option {
	return func(e *Engine) { e.supports = true }
}

// WithOnlySpecifiedValues permits valuing multi-factor compounds
// directly, without propagation through their atoms.
func WithOnlySpecifiedValues() Option {
	return func(e *Engine) { e.onlySpecified = true }
}
