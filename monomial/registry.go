package monomial

import (
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/inflation/canon"
	"github.com/katalvlaran/inflation/factor"
	"github.com/katalvlaran/inflation/ops"
	"github.com/katalvlaran/inflation/symmetry"
)

// Registry is the grow-only interning store for atomic and compound
// monomials. It is the single large mutable structure of a session; the
// caller serializes all writes. Resolve is pure and safe to call from
// any number of goroutines.
type Registry struct {
	a   *ops.Alphabet
	nc  *ops.Commutation
	grp *symmetry.Group

	atoms       []*Atomic
	atomicByKey map[string]*Atomic // orbit-representative key
	atomicAlias map[string]*Atomic // raw canonical key -> same object

	compounds       []*Compound
	compoundByAtoms map[string]*Compound
}

// Resolution is the pure outcome of canonicalizing, factorizing, and
// orbit-reducing an operator string. It carries no registry state and
// can be computed concurrently.
type Resolution struct {
	// Zero marks annihilation under the orthogonality rule.
	Zero bool
	// Atoms holds each factor's orbit-representative sequence, ordered
	// by representative key for a deterministic compound identity.
	Atoms [][]int
}

// NewRegistry creates an empty registry with the reserved zero and one
// compounds pre-interned at ids 0 and 1.
func NewRegistry(a *ops.Alphabet, nc *ops.Commutation, grp *symmetry.Group) (*Registry, error) {
	if a == nil || nc == nil || grp == nil {
		return nil, ErrNilInput
	}
	r := &Registry{
		a:               a,
		nc:              nc,
		grp:             grp,
		atomicByKey:     make(map[string]*Atomic),
		atomicAlias:     make(map[string]*Atomic),
		compoundByAtoms: make(map[string]*Compound),
	}
	r.compounds = []*Compound{
		{ID: ZeroID, Name: "0"},
		{ID: OneID, Name: "1"},
	}
	r.compoundByAtoms[""] = r.compounds[OneID]

	return r, nil
}

// Zero returns the annihilated monomial.
func (r *Registry) Zero() *Compound { return r.compounds[ZeroID] }

// One returns the unit monomial.
func (r *Registry) One() *Compound { return r.compounds[OneID] }

// Compound returns the compound with the given id.
func (r *Registry) Compound(id int) *Compound { return r.compounds[id] }

// NumCompounds returns the number of interned compounds, reserved ids
// included.
func (r *Registry) NumCompounds() int { return len(r.compounds) }

// Atom returns the atomic monomial with the given atomic id.
func (r *Registry) Atom(id int) *Atomic { return r.atoms[id] }

// NumAtoms returns the number of interned atoms.
func (r *Registry) NumAtoms() int { return len(r.atoms) }

// Resolve canonicalizes seq, splits it into atomic components, and
// reduces each component to its orbit representative. Pure: the
// registry is only read, never written.
func (r *Registry) Resolve(seq []int) *Resolution {
	c, ok := canon.Canonicalize(seq, r.a, r.nc)
	if !ok {
		return &Resolution{Zero: true}
	}

	comps := factor.Split(c, r.a)
	atoms := make([][]int, 0, len(comps))
	for _, comp := range comps {
		rep, ok := r.grp.Representative(comp)
		if !ok {
			// Unreachable for components of a canonical string:
			// relabeling preserves orthogonality structure.
			return &Resolution{Zero: true}
		}
		atoms = append(atoms, rep)
	}
	sort.Slice(atoms, func(i, j int) bool {
		return seqKey(atoms[i]) < seqKey(atoms[j])
	})

	return &Resolution{Atoms: atoms}
}

// Intern stores the resolution, creating any missing atoms, and returns
// the interned compound. Must be called from the owning goroutine; ids
// are assigned in call order, so a deterministic call order yields
// deterministic ids.
func (r *Registry) Intern(res *Resolution) *Compound {
	if res.Zero {
		return r.Zero()
	}

	atoms := make([]*Atomic, 0, len(res.Atoms))
	for _, rep := range res.Atoms {
		atoms = append(atoms, r.internAtom(rep))
	}

	return r.CompoundFromAtoms(atoms)
}

// InternSequence resolves and interns in one step.
func (r *Registry) InternSequence(seq []int) *Compound {
	return r.Intern(r.Resolve(seq))
}

// CompoundFromAtoms assembles (and interns) the compound with exactly
// the given atomic factors. Unlike InternSequence this never re-factors:
// the multiset of atoms is taken as-is, which is what name parsing and
// the semiknown split need.
func (r *Registry) CompoundFromAtoms(atoms []*Atomic) *Compound {
	ids := make([]int, len(atoms))
	for i, a := range atoms {
		ids[i] = a.ID
	}
	sort.Ints(ids)

	key := idsKey(ids)
	if c, ok := r.compoundByAtoms[key]; ok {
		return c
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = r.atoms[id].Name
	}
	c := &Compound{
		ID:    len(r.compounds),
		Atoms: ids,
		Name:  strings.Join(names, "*"),
	}
	r.compounds = append(r.compounds, c)
	r.compoundByAtoms[key] = c

	return c
}

// InternAtomSequence interns a single already-atomic component and
// returns its Atomic. The input is orbit-reduced first.
func (r *Registry) InternAtomSequence(comp []int) (*Atomic, bool) {
	rep, ok := r.grp.Representative(comp)
	if !ok {
		return nil, false
	}
	atom := r.internAtom(rep)
	r.AliasAtom(comp, atom)

	return atom, true
}

// internAtom interns an orbit-representative sequence.
func (r *Registry) internAtom(rep []int) *Atomic {
	key := seqKey(rep)
	if a, ok := r.atomicByKey[key]; ok {
		return a
	}
	atom := &Atomic{
		ID:       len(r.atoms),
		Seq:      append([]int(nil), rep...),
		Knowable: factor.Knowable(rep, r.a, r.a.Scenario()),
		Name:     FormatAtomic(rep, r.a),
	}
	r.atoms = append(r.atoms, atom)
	r.atomicByKey[key] = atom

	return atom
}

// AliasAtom records an alternate raw canonical key for an interned
// atom, so symmetry duplicates hit the cache without re-deriving the
// representative.
func (r *Registry) AliasAtom(raw []int, atom *Atomic) {
	key := seqKey(raw)
	if _, ok := r.atomicAlias[key]; !ok {
		r.atomicAlias[key] = atom
	}
}

// AtomByRawKey returns the atom aliased to the raw canonical sequence,
// checking the representative table first.
func (r *Registry) AtomByRawKey(raw []int) (*Atomic, bool) {
	key := seqKey(raw)
	if a, ok := r.atomicByKey[key]; ok {
		return a, true
	}
	a, ok := r.atomicAlias[key]

	return a, ok
}

// seqKey packs a rank sequence into a byte-level map key.
func seqKey(seq []int) string {
	var b strings.Builder
	b.Grow(4 * len(seq))
	for i, r := range seq {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(r))
	}

	return b.String()
}

// idsKey packs sorted atomic ids into a map key.
func idsKey(ids []int) string { return seqKey(ids) }
