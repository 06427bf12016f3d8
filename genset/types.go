// Package genset: sentinel errors, options, and the Set container.
package genset

import (
	"errors"
	"strconv"
	"strings"

	"github.com/katalvlaran/inflation/ops"
)

// Sentinel errors for generating-set construction.
var (
	// ErrNilInput indicates a nil alphabet or commutation matrix.
	ErrNilInput = errors.New("genset: nil construction input")

	// ErrBadLevel indicates a hierarchy level < 1.
	ErrBadLevel = errors.New("genset: hierarchy level must be >= 1")

	// ErrBadBlock indicates a party index outside the scenario in a
	// block specification.
	ErrBadBlock = errors.New("genset: party index out of range in block")

	// ErrUnitFirst indicates an explicit specification whose first
	// monomial is not the unit.
	ErrUnitFirst = errors.New("genset: explicit specification must start with the unit")
)

// Option configures set construction.
type Option func(*config)

type config struct {
	maxLength int
}

// WithMaxLength truncates the generating set to monomials of at most n
// operators. Zero (the default) means no truncation.
func WithMaxLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxLength = n
		}
	}
}

// Set is an ordered generating set of canonical monomials. Seqs[0] is
// always the unit (empty sequence). The set is immutable after
// construction.
type Set struct {
	a    *ops.Alphabet
	nc   *ops.Commutation
	seqs [][]int
	keys map[string]int
}

// newSet seeds the unit monomial at index 0.
func newSet(a *ops.Alphabet, nc *ops.Commutation) *Set {
	s := &Set{a: a, nc: nc, keys: make(map[string]int)}
	s.seqs = append(s.seqs, []int{})
	s.keys[""] = 0

	return s
}

// add appends a canonical sequence unless it is already present.
func (s *Set) add(seq []int) {
	k := seqKey(seq)
	if _, dup := s.keys[k]; dup {
		return
	}
	s.keys[k] = len(s.seqs)
	s.seqs = append(s.seqs, seq)
}

// Len returns the number of generators, unit included.
func (s *Set) Len() int { return len(s.seqs) }

// Seq returns the i-th generator. Shared storage.
func (s *Set) Seq(i int) []int { return s.seqs[i] }

// Seqs returns all generators in order. Shared storage.
func (s *Set) Seqs() [][]int { return s.seqs }

// Alphabet returns the alphabet the set was built over.
func (s *Set) Alphabet() *ops.Alphabet { return s.a }

// Commutation returns the commutation matrix the set was built with.
func (s *Set) Commutation() *ops.Commutation { return s.nc }

// Index returns the position of the canonical sequence seq, if present.
func (s *Set) Index(seq []int) (int, bool) {
	i, ok := s.keys[seqKey(seq)]

	return i, ok
}

// seqKey packs a rank sequence into a map key.
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
