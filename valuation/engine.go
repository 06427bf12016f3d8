package valuation

import (
	"fmt"
	"sort"

	"github.com/golang/glog"

	"github.com/katalvlaran/inflation/monomial"
	"github.com/katalvlaran/inflation/ops"
)

// Engine owns the numeric side of a session: atom values, derived
// known and semiknown tables, bounds, and the objective. Monomial
// identity never changes here; every table may be overwritten by the
// user any number of times.
type Engine struct {
	reg *monomial.Registry
	a   *ops.Alphabet

	useLPI        bool
	supports      bool
	onlySpecified bool

	atomValues map[int]float64 // atomic id → value
	known      map[int]float64 // compound id → value
	semi       map[int]Semiknown
	lower      map[int]float64
	upper      map[int]float64
	objective  map[int]float64
	maximize   bool
}

// New creates an empty engine over the registry's alphabet.
func New(reg *monomial.Registry, a *ops.Alphabet, opts ...Option) (*Engine, error) {
	if reg == nil || a == nil {
		return nil, ErrNilInput
	}
	e := &Engine{reg: reg, a: a}
	for _, opt := range opts {
		opt(e)
	}
	e.ResetValues()
	e.ResetBounds()

	return e, nil
}

// ResetValues returns every monomial to Free. The unit stays 1.
func (e *Engine) ResetValues() {
	e.atomValues = make(map[int]float64)
	e.known = map[int]float64{monomial.OneID: 1}
	e.semi = make(map[int]Semiknown)
}

// ResetBounds drops every explicit bound; defaults are re-derived on
// the next propagation.
func (e *Engine) ResetBounds() {
	e.lower = make(map[int]float64)
	e.upper = make(map[int]float64)
}

// ResetObjective drops the objective.
func (e *Engine) ResetObjective() {
	e.objective = nil
	e.maximize = false
}

// Reset selectively clears state: "values", "bounds", "objective", or
// "all".
func (e *Engine) Reset(which string) error {
	switch which {
	case "values":
		e.ResetValues()
	case "bounds":
		e.ResetBounds()
	case "objective":
		e.ResetObjective()
	case "all":
		e.ResetValues()
		e.ResetBounds()
		e.ResetObjective()
	default:
		return fmt.Errorf("valuation: unknown reset target %q", which)
	}

	return nil
}

// SetDistribution values every knowable interned atom by its marginal
// and propagates. Supports mode insists on a 0/1 pattern.
func (e *Engine) SetDistribution(d *Distribution) error {
	if d == nil {
		return ErrNilInput
	}
	if e.supports && !d.IsSupportPattern() {
		return ErrNotSupportPattern
	}
	for id := 0; id < e.reg.NumAtoms(); id++ {
		atom := e.reg.Atom(id)
		if !atom.Knowable {
			continue
		}
		e.atomValues[id] = d.Marginal(e.triples(atom))
	}
	e.propagate()

	return nil
}

// SetValues binds values keyed by compound id. Single-factor compounds
// value their atom and propagate; multi-factor compounds need
// OnlySpecifiedValues and bind directly. The zero monomial is ignored
// with a warning; valuing the unit with anything but 1 is fatal.
// Re-binding with a different number is fatal.
func (e *Engine) SetValues(values map[int]float64) error {
	ids := make([]int, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		v := values[id]
		if id < 0 || id >= e.reg.NumCompounds() {
			return fmt.Errorf("%w: %d", ErrBadID, id)
		}
		c := e.reg.Compound(id)
		switch {
		case c.IsZero():
			glog.Warningf("valuation: ignoring value for the zero monomial")
		case c.IsOne():
			if v != 1 {
				return fmt.Errorf("%w: unit valued %v", ErrInconsistentValue, v)
			}
		case len(c.Atoms) == 1:
			if err := e.setAtomValue(c.Atoms[0], v); err != nil {
				return err
			}
		case e.onlySpecified:
			if prev, ok := e.known[id]; ok && prev != v {
				return fmt.Errorf("%w: %s valued %v then %v", ErrInconsistentValue, c.Name, prev, v)
			}
			e.known[id] = v
		default:
			return fmt.Errorf("%w: %s", ErrNonAtomicValue, c.Name)
		}
	}
	e.propagate()

	return nil
}

// SetValuesByName binds values keyed by symbolic name. Unknown names
// warn and are discarded.
func (e *Engine) SetValuesByName(values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	byID := make(map[int]float64, len(names))
	for _, name := range names {
		c, err := e.reg.InternName(name)
		if err != nil {
			glog.Warningf("valuation: discarding unknown monomial %q: %v", name, err)

			continue
		}
		byID[c.ID] = values[name]
	}

	return e.SetValues(byID)
}

// setAtomValue records an atom value, rejecting contradictions and
// allowing consistent duplicates.
func (e *Engine) setAtomValue(atomID int, v float64) error {
	if prev, ok := e.atomValues[atomID]; ok && prev != v {
		return fmt.Errorf("%w: %s valued %v then %v",
			ErrInconsistentValue, e.reg.Atom(atomID).Name, prev, v)
	}
	e.atomValues[atomID] = v

	return nil
}

// State reports how much of compound id is bound.
func (e *Engine) State(id int) State {
	if _, ok := e.known[id]; ok {
		return FullyKnown
	}
	if _, ok := e.semi[id]; ok {
		return PartiallyKnown
	}
	c := e.reg.Compound(id)
	n := 0
	for _, atomID := range c.Atoms {
		if _, ok := e.atomValues[atomID]; ok {
			n++
		}
	}
	switch {
	case len(c.Atoms) > 0 && n == len(c.Atoms):
		return FullyKnown
	case n > 0:
		return PartiallyKnown
	default:
		return Free
	}
}

// propagate rebuilds the known and semiknown tables from the atom
// values and refreshes default bounds. Runs over every interned
// compound; ids ascend, so derived rest-compounds interned on the fly
// are themselves revisited.
func (e *Engine) propagate() {
	for id := 2; id < e.reg.NumCompounds(); id++ {
		c := e.reg.Compound(id)
		if _, pinned := e.known[id]; pinned && len(c.Atoms) != 1 {
			continue // directly bound under OnlySpecifiedValues
		}

		coef := 1.0
		var unknown []*monomial.Atomic
		for _, atomID := range c.Atoms {
			if v, ok := e.atomValues[atomID]; ok {
				coef *= v
			} else {
				unknown = append(unknown, e.reg.Atom(atomID))
			}
		}
		switch {
		case len(unknown) == 0:
			delete(e.semi, id)
			e.known[id] = coef
		case len(unknown) < len(c.Atoms) && e.useLPI:
			rest := e.reg.CompoundFromAtoms(unknown)
			delete(e.known, id)
			e.semi[id] = Semiknown{Coef: coef, ID: rest.ID}
		default:
			delete(e.known, id)
			delete(e.semi, id)
		}
	}

	if e.supports {
		for id, v := range e.known {
			if id != monomial.OneID && v > 0 {
				delete(e.known, id)
				e.lower[id] = 1
			}
		}
	}
	e.refreshDefaultLowerBounds()
}

// refreshDefaultLowerBounds pins 0 as the lower bound of every
// physically positive compound without an explicit bound.
func (e *Engine) refreshDefaultLowerBounds() {
	for id := 2; id < e.reg.NumCompounds(); id++ {
		if _, ok := e.lower[id]; ok {
			continue
		}
		if e.physicallyPositive(e.reg.Compound(id)) {
			e.lower[id] = 0
		}
	}
}

// physicallyPositive reports whether every factor is a product of
// same-party copy-disjoint projectors, hence PSD and non-negative in
// expectation.
func (e *Engine) physicallyPositive(c *monomial.Compound) bool {
	for _, atomID := range c.Atoms {
		seq := e.reg.Atom(atomID).Seq
		for i := 0; i < len(seq); i++ {
			for j := i + 1; j < len(seq); j++ {
				oi, oj := e.a.Op(seq[i]), e.a.Op(seq[j])
				if oi.Party == oj.Party && oi.SharesCopy(oj) {
					return false
				}
			}
		}
	}

	return true
}

// triples extracts the (party, setting, outcome) assignments of an
// atom.
func (e *Engine) triples(atom *monomial.Atomic) [][3]int {
	out := make([][3]int, 0, len(atom.Seq))
	for _, r := range atom.Seq {
		op := e.a.Op(r)
		out = append(out, [3]int{op.Party, op.Setting, op.Outcome})
	}

	return out
}
