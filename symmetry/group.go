package symmetry

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/katalvlaran/inflation/canon"
	"github.com/katalvlaran/inflation/ops"
)

// ErrNilAlphabet is returned when a nil alphabet or commutation matrix
// is passed to NewGroup.
var ErrNilAlphabet = errors.New("symmetry: alphabet or commutation is nil")

// Group is the source-relabeling group realized as permutations of the
// operator alphabet. Element 0 is the identity. The value is built once
// per scenario and never mutates.
type Group struct {
	a     *ops.Alphabet
	nc    *ops.Commutation
	elems [][]int // alphabet permutations, identity first
	gens  [][]int // adjacent-transposition permutations
}

// NewGroup enumerates the direct product of per-source copy
// permutations and precomputes each element's action on the alphabet.
// Complexity: O(Π k_s! · L).
func NewGroup(a *ops.Alphabet, nc *ops.Commutation) (*Group, error) {
	if a == nil || nc == nil {
		return nil, ErrNilAlphabet
	}
	sc := a.Scenario()
	nS := sc.NumSources()

	// Per-source permutation tables, identity first.
	// combin.Permutations emits lexicographic order, so index 0 is the
	// identity permutation of {0..k_s−1}.
	perSource := make([][][]int, nS)
	lens := make([]int, nS)
	for s := 0; s < nS; s++ {
		perSource[s] = combin.Permutations(sc.Inflation(s), sc.Inflation(s))
		lens[s] = len(perSource[s])
	}

	g := &Group{a: a, nc: nc}
	for _, combo := range combin.Cartesian(lens) {
		pick := make([][]int, nS)
		for s := 0; s < nS; s++ {
			pick[s] = perSource[s][combo[s]]
		}
		perm, err := alphabetPerm(a, pick)
		if err != nil {
			return nil, err
		}
		g.elems = append(g.elems, perm)
	}

	// Adjacent transpositions (i, i+1) per source, identity elsewhere.
	for s := 0; s < nS; s++ {
		k := sc.Inflation(s)
		for i := 0; i+1 < k; i++ {
			pick := make([][]int, nS)
			for s2 := 0; s2 < nS; s2++ {
				pick[s2] = identity(sc.Inflation(s2))
			}
			swap := identity(k)
			swap[i], swap[i+1] = swap[i+1], swap[i]
			pick[s] = swap
			perm, err := alphabetPerm(a, pick)
			if err != nil {
				return nil, err
			}
			g.gens = append(g.gens, perm)
		}
	}

	return g, nil
}

// alphabetPerm builds the alphabet permutation induced by the chosen
// per-source copy permutations (0-based over copies 1..k_s).
func alphabetPerm(a *ops.Alphabet, pick [][]int) ([]int, error) {
	perm := make([]int, a.L())
	for r, op := range a.All() {
		copies := make([]int, len(op.Copies))
		for s, c := range op.Copies {
			if c == 0 {
				continue
			}
			copies[s] = pick[s][c-1] + 1
		}
		img := ops.Operator{Party: op.Party, Copies: copies, Setting: op.Setting, Outcome: op.Outcome}
		ir, err := a.Rank(img)
		if err != nil {
			return nil, fmt.Errorf("symmetry: relabeled operator escapes alphabet: %w", err)
		}
		perm[r] = ir
	}

	return perm, nil
}

func identity(n int) []int {
	id := make([]int, n)
	for i := range id {
		id[i] = i
	}

	return id
}

// Size returns the group order Π k_s!.
func (g *Group) Size() int { return len(g.elems) }

// Element returns the i-th alphabet permutation. Shared storage.
func (g *Group) Element(i int) []int { return g.elems[i] }

// Generators returns the adjacent-transposition permutations.
// Shared storage; callers must not mutate.
func (g *Group) Generators() [][]int { return g.gens }

// Apply maps every rank of seq through perm. O(n).
func Apply(perm, seq []int) []int {
	out := make([]int, len(seq))
	for i, r := range seq {
		out[i] = perm[r]
	}

	return out
}

// ApplyToBitvec maps a bitvec through perm in O(L).
func ApplyToBitvec(perm []int, b ops.Bitvec) ops.Bitvec {
	out := ops.NewBitvec(len(perm))
	for _, r := range b.Ranks() {
		out.Set(perm[r])
	}

	return out
}

// Representative returns the lex-minimum canonical image of seq over
// the whole group: the unique stored form of its symmetry orbit.
// Relabeling preserves orthogonality, so a non-zero input cannot
// annihilate; the zero flag of Canonicalize is still honored.
func (g *Group) Representative(seq []int) ([]int, bool) {
	best, ok := canon.Canonicalize(seq, g.a, g.nc)
	if !ok {
		return nil, false
	}
	for _, perm := range g.elems[1:] {
		img, ok := canon.Canonicalize(Apply(perm, seq), g.a, g.nc)
		if !ok {
			return nil, false
		}
		if lexLess(img, best) {
			best = img
		}
	}

	return best, true
}

// lexLess orders rank sequences by length, then elementwise.
func lexLess(a, b []int) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}
