package valuation

import (
	"fmt"
	"sort"

	"github.com/golang/glog"
)

// SetLowerBound pins a lower bound. A previous bound of 0 (the default
// for physical monomials) may be replaced; re-binding any other bound
// with a different number is fatal, as is crossing an existing upper
// bound.
func (e *Engine) SetLowerBound(id int, v float64) error {
	if id < 0 || id >= e.reg.NumCompounds() {
		return fmt.Errorf("%w: %d", ErrBadID, id)
	}
	if prev, ok := e.lower[id]; ok && prev != v && prev != 0 {
		return fmt.Errorf("%w: lower bound %v then %v on %s",
			ErrInconsistentBound, prev, v, e.reg.Compound(id).Name)
	}
	if up, ok := e.upper[id]; ok && v > up {
		return fmt.Errorf("%w: lower %v above upper %v on %s",
			ErrInconsistentBound, v, up, e.reg.Compound(id).Name)
	}
	e.lower[id] = v

	return nil
}

// SetUpperBound pins an upper bound with the mirrored checks.
func (e *Engine) SetUpperBound(id int, v float64) error {
	if id < 0 || id >= e.reg.NumCompounds() {
		return fmt.Errorf("%w: %d", ErrBadID, id)
	}
	if prev, ok := e.upper[id]; ok && prev != v {
		return fmt.Errorf("%w: upper bound %v then %v on %s",
			ErrInconsistentBound, prev, v, e.reg.Compound(id).Name)
	}
	if lo, ok := e.lower[id]; ok && v < lo {
		return fmt.Errorf("%w: upper %v below lower %v on %s",
			ErrInconsistentBound, v, lo, e.reg.Compound(id).Name)
	}
	e.upper[id] = v

	return nil
}

// SetObjective installs a linear objective over compound ids.
// Coefficients on the zero monomial contribute nothing and are dropped
// with a warning.
func (e *Engine) SetObjective(obj map[int]float64, maximize bool) error {
	clean := make(map[int]float64, len(obj))
	ids := make([]int, 0, len(obj))
	for id := range obj {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if id < 0 || id >= e.reg.NumCompounds() {
			return fmt.Errorf("%w: %d", ErrBadID, id)
		}
		if e.reg.Compound(id).IsZero() {
			glog.Warningf("valuation: dropping objective coefficient on the zero monomial")

			continue
		}
		if obj[id] == 0 {
			continue
		}
		clean[id] = obj[id]
	}
	e.objective = clean
	e.maximize = maximize

	return nil
}

// Maximize reports the objective sense.
func (e *Engine) Maximize() bool { return e.maximize }

// ProcessedObjective substitutes known and semiknown entries:
// known coefficients fold into the constant, semiknown coefficients
// reroute onto their representative compound. The result is what the
// solver optimizes.
func (e *Engine) ProcessedObjective() (map[int]float64, float64) {
	out := make(map[int]float64)
	constant := 0.0
	ids := make([]int, 0, len(e.objective))
	for id := range e.objective {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		coef := e.objective[id]
		switch {
		case hasKey(e.known, id):
			constant += coef * e.known[id]
		case hasKey(e.semi, id):
			s := e.semi[id]
			out[s.ID] += coef * s.Coef
		default:
			out[id] += coef
		}
	}
	for id, coef := range out {
		if coef == 0 {
			delete(out, id)
		}
	}

	return out, constant
}

// Known returns a copy of the known-value table.
func (e *Engine) Known() map[int]float64 { return copyMap(e.known) }

// Semiknowns returns a copy of the semiknown table.
func (e *Engine) Semiknowns() map[int]Semiknown {
	out := make(map[int]Semiknown, len(e.semi))
	for k, v := range e.semi {
		out[k] = v
	}

	return out
}

// LowerBounds returns a copy of the lower-bound table.
func (e *Engine) LowerBounds() map[int]float64 { return copyMap(e.lower) }

// UpperBounds returns a copy of the upper-bound table.
func (e *Engine) UpperBounds() map[int]float64 { return copyMap(e.upper) }

func copyMap(in map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}

func hasKey[V any](m map[int]V, id int) bool {
	_, ok := m[id]

	return ok
}
