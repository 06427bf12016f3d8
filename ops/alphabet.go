package ops

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/katalvlaran/inflation/scenario"
)

// AlphabetOption configures alphabet construction.
type AlphabetOption func(*alphabetConfig)

type alphabetConfig struct {
	full bool
}

// WithFullOutcomes keeps the last outcome of every measurement instead
// of dropping it per Collins–Gisin. Used only by the LP event path.
func WithFullOutcomes() AlphabetOption {
	return func(c *alphabetConfig) { c.full = true }
}

// Alphabet is the ordered set of all legal operators of a scenario.
// It is built once and never mutates; lookups are read-only.
type Alphabet struct {
	sc    *scenario.Scenario
	full  bool
	ops   []Operator
	ranks map[string]int
	parts [][]int   // parts[p]  = ranks of party p, in lex order
	ortho [][][]int // ortho[p]  = groups of ranks equal up to outcome
}

// NewAlphabet enumerates every legal operator tuple of sc in the default
// lexicographic order and indexes it for O(1) rank lookup.
// Complexity: O(L) construction, L = alphabet size.
func NewAlphabet(sc *scenario.Scenario, opts ...AlphabetOption) (*Alphabet, error) {
	if sc == nil {
		return nil, ErrNilScenario
	}
	var cfg alphabetConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Alphabet{
		sc:    sc,
		full:  cfg.full,
		ranks: make(map[string]int),
		parts: make([][]int, sc.NumParties()),
		ortho: make([][][]int, sc.NumParties()),
	}
	for p := 0; p < sc.NumParties(); p++ {
		a.enumerateParty(p)
	}

	return a, nil
}

// enumerateParty appends every operator of party p in lex order:
// copy vectors (cartesian over feeding sources), then setting, then
// outcome. Orthogonality groups are collected alongside: one group per
// (copies, setting) context.
func (a *Alphabet) enumerateParty(p int) {
	sc := a.sc
	nS := sc.NumSources()

	// Cartesian enumeration of copy vectors. Non-feeding sources
	// contribute the single value 0; feeding sources range over 1..k_s.
	lens := make([]int, nS)
	for s := 0; s < nS; s++ {
		if sc.Feeds(s, p) {
			lens[s] = sc.Inflation(s)
		} else {
			lens[s] = 1
		}
	}

	outMax := a.outcomeMax(p)
	for _, idx := range combin.Cartesian(lens) {
		copies := make([]int, nS)
		for s := 0; s < nS; s++ {
			if sc.Feeds(s, p) {
				copies[s] = idx[s] + 1
			}
		}
		for x := 0; x < sc.Settings(p); x++ {
			group := make([]int, 0, outMax+1)
			for o := 0; o <= outMax; o++ {
				op := Operator{Party: p, Copies: copies, Setting: x, Outcome: o}
				r := len(a.ops)
				a.ops = append(a.ops, op)
				a.ranks[key(op)] = r
				a.parts[p] = append(a.parts[p], r)
				group = append(group, r)
			}
			if len(group) > 0 {
				a.ortho[p] = append(a.ortho[p], group)
			}
		}
	}
}

// outcomeMax returns the largest explicit outcome for party p:
// o_p − 1 under full enumeration, o_p − 2 under Collins–Gisin.
func (a *Alphabet) outcomeMax(p int) int {
	if a.full {
		return a.sc.Outcomes(p) - 1
	}

	return a.sc.Outcomes(p) - 2
}

// L returns the alphabet size.
func (a *Alphabet) L() int { return len(a.ops) }

// Full reports whether the last outcome is kept per measurement.
func (a *Alphabet) Full() bool { return a.full }

// Scenario returns the underlying scenario.
func (a *Alphabet) Scenario() *scenario.Scenario { return a.sc }

// All returns the ordered operator slice. Shared storage; callers must
// not mutate the returned operators.
func (a *Alphabet) All() []Operator { return a.ops }

// Op returns the operator of rank r. Panics on out-of-range r: ranks are
// produced by this package, so a bad rank is a programmer error.
func (a *Alphabet) Op(r int) Operator { return a.ops[r] }

// Rank returns the rank of op, or ErrUnknownOperator when op is not a
// legal tuple of this alphabet. Complexity: O(N_S) for the key.
func (a *Alphabet) Rank(op Operator) (int, error) {
	r, ok := a.ranks[key(op)]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownOperator, op.Tuple())
	}

	return r, nil
}

// ByParty returns the ranks of party p in lex order.
// The returned slice is shared and must not be mutated.
func (a *Alphabet) ByParty(p int) ([]int, error) {
	if p < 0 || p >= len(a.parts) {
		return nil, fmt.Errorf("%w: %d", ErrBadParty, p)
	}

	return a.parts[p], nil
}

// OrthoGroups returns, for party p, the groups of ranks that share all
// coordinates except the outcome. Within a group operators are mutually
// orthogonal projectors summing (over the full outcome range) to a
// marginal identity.
func (a *Alphabet) OrthoGroups(p int) ([][]int, error) {
	if p < 0 || p >= len(a.ortho) {
		return nil, fmt.Errorf("%w: %d", ErrBadParty, p)
	}

	return a.ortho[p], nil
}

// key packs an operator tuple into a compact string map key.
func key(op Operator) string {
	var b strings.Builder
	b.Grow(4 * (3 + len(op.Copies)))
	b.WriteString(strconv.Itoa(op.Party))
	for _, c := range op.Copies {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c))
	}
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(op.Setting))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(op.Outcome))

	return b.String()
}
