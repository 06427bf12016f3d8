package genset

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/katalvlaran/inflation/canon"
	"github.com/katalvlaran/inflation/ops"
	"github.com/katalvlaran/inflation/symmetry"
)

// NPA builds the level-n NPA generating set: all products of at most n
// single-party operators with party indices in non-decreasing order.
// Complexity: O(N_P^n) block specs, each expanded over the per-party
// operator choices.
func NPA(a *ops.Alphabet, nc *ops.Commutation, n int, opts ...Option) (*Set, error) {
	if a == nil || nc == nil {
		return nil, ErrNilInput
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: npa%d", ErrBadLevel, n)
	}
	cfg := applyOptions(opts)
	maxLen := n
	if cfg.maxLength > 0 && cfg.maxLength < maxLen {
		maxLen = cfg.maxLength
	}

	nP := a.Scenario().NumParties()
	blocks := [][]int{}
	for length := 1; length <= maxLen; length++ {
		lens := make([]int, length)
		for i := range lens {
			lens[i] = nP
		}
		for _, tuple := range combin.Cartesian(lens) {
			if sort.IntsAreSorted(tuple) {
				blocks = append(blocks, tuple)
			}
		}
	}

	return fromBlocks(a, nc, blocks, nil)
}

// Local builds the level-n local generating set: all monomials with at
// most n operators per party. Block specs are enumerated the way the
// hierarchy is usually written: frequency vectors in reversed
// lexicographic per-party order, stably sorted by total length.
func Local(a *ops.Alphabet, nc *ops.Commutation, n int, opts ...Option) (*Set, error) {
	if a == nil || nc == nil {
		return nil, ErrNilInput
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: local%d", ErrBadLevel, n)
	}
	cfg := applyOptions(opts)
	nP := a.Scenario().NumParties()
	maxLen := n * nP
	if cfg.maxLength > 0 && cfg.maxLength < maxLen {
		maxLen = cfg.maxLength
	}

	blocks := localBlocks(nP, n, maxLen)

	return fromBlocks(a, nc, blocks, nil)
}

// Physical builds the level-n physical generating set: the subset of
// localN whose operators commute pairwise, so every monomial is a
// product of projectors on disjoint source copies and hence positive
// semidefinite by construction.
func Physical(a *ops.Alphabet, nc *ops.Commutation, n int, opts ...Option) (*Set, error) {
	if a == nil || nc == nil {
		return nil, ErrNilInput
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: physical%d", ErrBadLevel, n)
	}
	cfg := applyOptions(opts)
	nP := a.Scenario().NumParties()
	maxLen := n * nP
	if cfg.maxLength > 0 && cfg.maxLength < maxLen {
		maxLen = cfg.maxLength
	}

	blocks := localBlocks(nP, n, maxLen)

	return fromBlocks(a, nc, blocks, copyDisjoint(a))
}

// PartyBlocks builds one monomial per cartesian product of measurement
// choices for each explicit party-index list. The empty block yields
// the unit.
func PartyBlocks(a *ops.Alphabet, nc *ops.Commutation, blocks [][]int) (*Set, error) {
	if a == nil || nc == nil {
		return nil, ErrNilInput
	}
	nP := a.Scenario().NumParties()
	for _, block := range blocks {
		for _, p := range block {
			if p < 0 || p >= nP {
				return nil, fmt.Errorf("%w: %d", ErrBadBlock, p)
			}
		}
	}

	return fromBlocks(a, nc, blocks, nil)
}

// Explicit builds a set from caller-supplied operator strings. The
// first must be the empty sequence (the unit); the rest are
// canonicalized, zeros are dropped and duplicates merge. No block-length
// filter applies.
func Explicit(a *ops.Alphabet, nc *ops.Commutation, monomials [][]int) (*Set, error) {
	if a == nil || nc == nil {
		return nil, ErrNilInput
	}
	if len(monomials) == 0 || len(monomials[0]) != 0 {
		return nil, ErrUnitFirst
	}
	s := newSet(a, nc)
	for _, m := range monomials[1:] {
		c, ok := canon.Canonicalize(m, a, nc)
		if !ok {
			continue
		}
		s.add(c)
	}

	return s, nil
}

// ClosedUnder reports whether the set is closed under every generator
// of the symmetry group, and returns the indices of the generators that
// break closure. A non-closed set still yields a sound relaxation: the
// broken symmetries are dropped with a warning by the moment builder.
func (s *Set) ClosedUnder(grp *symmetry.Group) (bool, []int) {
	var broken []int
	for gi, perm := range grp.Generators() {
		for _, seq := range s.seqs {
			img, ok := canon.Canonicalize(symmetry.Apply(perm, seq), s.a, s.nc)
			if !ok {
				continue
			}
			if _, found := s.Index(img); !found {
				broken = append(broken, gi)

				break
			}
		}
	}

	return len(broken) == 0, broken
}

// fromBlocks expands each block spec over the per-party operator
// choices, canonicalizes, and filters: zeros are dropped, products
// collapsing below the block length are dropped (they belong to a
// shorter block), and an optional keep predicate prunes candidates
// before canonicalization.
func fromBlocks(a *ops.Alphabet, nc *ops.Commutation, blocks [][]int, keep func([]int) bool) (*Set, error) {
	s := newSet(a, nc)
	for _, block := range blocks {
		if len(block) == 0 {
			continue // the unit is pre-seeded
		}
		lens := make([]int, len(block))
		choices := make([][]int, len(block))
		for i, p := range block {
			ranks, err := a.ByParty(p)
			if err != nil {
				return nil, err
			}
			choices[i] = ranks
			lens[i] = len(ranks)
		}
		if containsZero(lens) {
			continue // a party with no explicit outcomes spans no block
		}
		for _, pick := range combin.Cartesian(lens) {
			seq := make([]int, len(block))
			for i := range block {
				seq[i] = choices[i][pick[i]]
			}
			if keep != nil && !keep(seq) {
				continue
			}
			c, ok := canon.Canonicalize(seq, a, nc)
			if !ok || len(c) != len(block) {
				continue
			}
			s.add(c)
		}
	}

	return s, nil
}

// localBlocks enumerates the localN block specs: frequency vectors over
// [0..n] per party, reversed, filtered by total length, stably ordered
// by total length.
func localBlocks(nP, n, maxLen int) [][]int {
	lens := make([]int, nP)
	for i := range lens {
		lens[i] = n + 1
	}
	var freqs [][]int
	for _, f := range combin.Cartesian(lens) {
		rev := make([]int, nP)
		total := 0
		for i, v := range f {
			rev[nP-1-i] = v
			total += v
		}
		if total > 0 && total <= maxLen {
			freqs = append(freqs, rev)
		}
	}
	sort.SliceStable(freqs, func(i, j int) bool {
		return sum(freqs[i]) < sum(freqs[j])
	})

	blocks := make([][]int, 0, len(freqs))
	for _, f := range freqs {
		block := []int{}
		for p, count := range f {
			for k := 0; k < count; k++ {
				block = append(block, p)
			}
		}
		blocks = append(blocks, block)
	}

	return blocks
}

// copyDisjoint keeps only candidates whose same-party operators sit on
// strictly disjoint source copies. The criterion is structural, not
// model-dependent: it selects the same physical monomials under both
// commutation models.
func copyDisjoint(a *ops.Alphabet) func([]int) bool {
	return func(seq []int) bool {
		for i := 0; i < len(seq); i++ {
			for j := i + 1; j < len(seq); j++ {
				oi, oj := a.Op(seq[i]), a.Op(seq[j])
				if oi.Party == oj.Party && oi.SharesCopy(oj) {
					return false
				}
			}
		}

		return true
	}
}

func applyOptions(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func containsZero(lens []int) bool {
	for _, l := range lens {
		if l == 0 {
			return true
		}
	}

	return false
}

func sum(v []int) int {
	t := 0
	for _, x := range v {
		t += x
	}

	return t
}
