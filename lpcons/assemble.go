package lpcons

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/inflation/genset"
	"github.com/katalvlaran/inflation/ops"
)

// Assembler derives constraint rows from a full-outcome event set.
type Assembler struct {
	set *genset.BitvecSet
	a   *ops.Alphabet
}

// New wraps an event set for row assembly.
func New(set *genset.BitvecSet) (*Assembler, error) {
	if set == nil {
		return nil, ErrNilSet
	}

	return &Assembler{set: set, a: set.Alphabet()}, nil
}

// Normalization emits one equality per (context, background) pair for
// every party with observed children: the outcomes of a measurement sum
// to the background marginal.
func (as *Assembler) Normalization() ([]Row, error) {
	sc := as.a.Scenario()
	var rows []Row
	for p := 0; p < sc.NumParties(); p++ {
		if !sc.HasChildren(p) {
			continue
		}
		groups, err := as.a.OrthoGroups(p)
		if err != nil {
			return nil, err
		}
		for _, group := range groups {
			for vi := 0; vi < as.set.Len(); vi++ {
				v := as.set.Vec(vi)
				if touches(v, group) {
					continue
				}
				row := Row{}
				for _, r := range group {
					ext := v.Clone()
					ext.Set(r)
					ei, ok := as.set.Index(ext)
					if !ok {
						return nil, fmt.Errorf("%w: normalization of context at party %d", ErrEventMissing, p)
					}
					row.Cols = append(row.Cols, ei)
					row.Coefs = append(row.Coefs, 1)
				}
				row.Cols = append(row.Cols, vi)
				row.Coefs = append(row.Coefs, -1)
				rows = append(rows, row)
			}
		}
	}

	return rows, nil
}

// CGFold emits one inequality per event: non-negativity of the event
// probability written over the Collins–Gisin subspace. Last-outcome
// operators at leaf parties are substituted by background minus the
// explicit outcomes; a term choosing k explicit substitutions carries
// sign (−1)^k. Events free of last outcomes yield the plain row
// P(event) ≥ 0.
func (as *Assembler) CGFold() ([]Row, error) {
	sc := as.a.Scenario()
	var rows []Row
	for vi := 0; vi < as.set.Len(); vi++ {
		v := as.set.Vec(vi)

		// Folded operators: last outcome at a leaf party.
		var folded []int
		for _, r := range v.Ranks() {
			op := as.a.Op(r)
			if !sc.HasChildren(op.Party) && op.Outcome == sc.Outcomes(op.Party)-1 {
				folded = append(folded, r)
			}
		}
		if len(folded) == 0 {
			rows = append(rows, Row{Cols: []int{vi}, Coefs: []float64{1}})

			continue
		}

		base := v.Clone()
		for _, r := range folded {
			base.Clear(r)
		}
		row, err := as.expandFold(base, folded)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// expandFold multiplies out the substitution
// P(op_last) = P(∅) − Σ_{o'<last} P(op_{o'}) over every folded operator.
// Choices are walked recursively; the sign parity XORs per explicit
// substitution.
func (as *Assembler) expandFold(base ops.Bitvec, folded []int) (Row, error) {
	row := Row{}
	var walk func(k int, cur ops.Bitvec, sign float64) error
	walk = func(k int, cur ops.Bitvec, sign float64) error {
		if k == len(folded) {
			ei, ok := as.set.Index(cur)
			if !ok {
				return fmt.Errorf("%w: CG fold term", ErrEventMissing)
			}
			row.Cols = append(row.Cols, ei)
			row.Coefs = append(row.Coefs, sign)

			return nil
		}
		op := as.a.Op(folded[k])

		// Choice 1: drop the operator (background marginal), sign kept.
		if err := walk(k+1, cur, sign); err != nil {
			return err
		}
		// Choice 2: one explicit outcome, sign flipped.
		for o := 0; o < as.a.Scenario().Outcomes(op.Party)-1; o++ {
			alt := op
			alt.Outcome = o
			r, err := as.a.Rank(alt)
			if err != nil {
				return err
			}
			next := cur.Clone()
			next.Set(r)
			if err := walk(k+1, next, -sign); err != nil {
				return err
			}
		}

		return nil
	}
	if err := walk(0, base, 1); err != nil {
		return Row{}, err
	}

	return mergeDuplicateCols(row), nil
}

// LPIRows renders semiknown proportionalities as equality rows
// x_c − coef·x_other = 0, ordered by column id for determinism.
func LPIRows(semi map[int]Semi) []Row {
	cols := make([]int, 0, len(semi))
	for c := range semi {
		cols = append(cols, c)
	}
	sort.Ints(cols)

	rows := make([]Row, 0, len(cols))
	for _, c := range cols {
		s := semi[c]
		rows = append(rows, Row{
			Cols:  []int{c, s.Other},
			Coefs: []float64{1, -s.Coef},
		})
	}

	return rows
}

// touches reports whether v holds any rank of group.
func touches(v ops.Bitvec, group []int) bool {
	for _, r := range group {
		if v.Get(r) {
			return true
		}
	}

	return false
}

// mergeDuplicateCols sums coefficients landing on the same column and
// drops exact zeros, keeping first-appearance column order.
func mergeDuplicateCols(r Row) Row {
	idx := map[int]int{}
	out := Row{RHS: r.RHS}
	for k, c := range r.Cols {
		if at, ok := idx[c]; ok {
			out.Coefs[at] += r.Coefs[k]

			continue
		}
		idx[c] = len(out.Cols)
		out.Cols = append(out.Cols, c)
		out.Coefs = append(out.Coefs, r.Coefs[k])
	}
	w := 0
	for k := range out.Cols {
		if out.Coefs[k] != 0 {
			out.Cols[w], out.Coefs[w] = out.Cols[k], out.Coefs[k]
			w++
		}
	}
	out.Cols, out.Coefs = out.Cols[:w], out.Coefs[:w]

	return out
}
