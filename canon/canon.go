package canon

import (
	"sort"

	"github.com/katalvlaran/inflation/ops"
)

// Canonicalize rewrites seq (a slice of alphabet ranks) to its normal
// form. The input is not mutated. The second return is false when the
// string annihilates to zero under the orthogonality rule.
//
// The empty string is the unit monomial and is returned unchanged.
func Canonicalize(seq []int, a *ops.Alphabet, nc *ops.Commutation) ([]int, bool) {
	out := append([]int(nil), seq...)
	if len(out) < 2 {
		return out, true
	}
	if nc.Commuting() {
		return reduceCommuting(out, a)
	}

	return reduceOrdered(out, a, nc)
}

// Dagger returns the adjoint of seq: the operators in reverse order.
// Projectors are self-adjoint, so reversal is the whole operation.
// Under the commuting model the adjoint canonicalizes back to seq.
func Dagger(seq []int) []int {
	out := make([]int, len(seq))
	for i, r := range seq {
		out[len(seq)-1-i] = r
	}

	return out
}

// reduceCommuting: sort, collapse adjacent duplicates, annihilate on
// adjacent same-context outcome conflict. Same-context operators sort
// adjacently because the context is a lex-order prefix of the tuple.
func reduceCommuting(out []int, a *ops.Alphabet) ([]int, bool) {
	sort.Ints(out)
	w := 0
	for i := 0; i < len(out); i++ {
		if w > 0 && out[w-1] == out[i] {
			continue // idempotence
		}
		if w > 0 && a.Op(out[w-1]).SameContext(a.Op(out[i])) {
			return nil, false // orthogonality
		}
		out[w] = out[i]
		w++
	}

	return out[:w], true
}

// reduceOrdered applies the three rules to fixed point on an ordered
// string. Each pass scans adjacent pairs once; passes repeat until no
// rule fires.
func reduceOrdered(out []int, a *ops.Alphabet, nc *ops.Commutation) ([]int, bool) {
	for changed := true; changed; {
		changed = false
		for i := 0; i+1 < len(out); i++ {
			x, y := out[i], out[i+1]
			if x == y {
				out = append(out[:i], out[i+1:]...)
				changed = true
				i--

				continue
			}
			if a.Op(x).SameContext(a.Op(y)) {
				return nil, false
			}
			if !nc.NonCommuting(x, y) && x > y {
				out[i], out[i+1] = y, x
				changed = true
			}
		}
	}

	return out, true
}
