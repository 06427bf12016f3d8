// Package lpcons: row and sparse-matrix value types.
package lpcons

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// Sentinel errors for assembler construction.
var (
	// ErrNilSet indicates a nil event set.
	ErrNilSet = errors.New("lpcons: event set is nil")

	// ErrEventMissing indicates a row referencing an event outside the
	// set; the enumeration and the row builders disagree.
	ErrEventMissing = errors.New("lpcons: referenced event not in set")
)

// Row is one sparse constraint row: Σ Coefs[k]·x[Cols[k]] (= or ≥) RHS.
// The interpretation (equality vs inequality) is carried by the list it
// belongs to, matching the program handoff contract.
type Row struct {
	Cols  []int
	Coefs []float64
	RHS   float64
}

// Apply evaluates the row against a dense variable vector:
// Σ Coefs[k]·x[Cols[k]]. Used for certificate checks and tests.
func (r Row) Apply(x []float64) float64 {
	vals := make([]float64, len(r.Cols))
	picked := make([]float64, len(r.Cols))
	for k, c := range r.Cols {
		vals[k] = r.Coefs[k]
		picked[k] = x[c]
	}

	return floats.Dot(vals, picked)
}

// Semi is a semiknown proportionality: x = Coef · x[Other].
type Semi struct {
	Coef  float64
	Other int
}

// COO is a coordinate-form sparse matrix.
type COO struct {
	NRows, NCols int
	Rows, Cols   []int
	Vals         []float64
}

// Aggregate stacks rows into a coordinate sparse matrix with nCols
// columns. Complexity: O(total nonzeros).
func Aggregate(rows []Row, nCols int) *COO {
	m := &COO{NRows: len(rows), NCols: nCols}
	for i, r := range rows {
		for k, c := range r.Cols {
			m.Rows = append(m.Rows, i)
			m.Cols = append(m.Cols, c)
			m.Vals = append(m.Vals, r.Coefs[k])
		}
	}

	return m
}
