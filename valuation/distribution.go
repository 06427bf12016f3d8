package valuation

import (
	"fmt"

	"github.com/katalvlaran/inflation/scenario"
)

// Distribution is the observed probability tensor, indexed
// [a_1,…,a_Np, x_1,…,x_Np] in row-major order: outcome axes first,
// then setting axes.
type Distribution struct {
	probs    []float64
	outcomes []int
	settings []int
	strides  []int
}

// NewDistribution validates the flat tensor against the scenario's
// cardinalities. Complexity: O(len(probs)).
func NewDistribution(probs []float64, sc *scenario.Scenario) (*Distribution, error) {
	if sc == nil {
		return nil, ErrNilInput
	}
	outcomes := make([]int, sc.NumParties())
	settings := make([]int, sc.NumParties())
	for p := 0; p < sc.NumParties(); p++ {
		outcomes[p] = sc.Outcomes(p)
		settings[p] = sc.Settings(p)
	}

	return newDistribution(probs, outcomes, settings)
}

// NewDistributionShaped builds a tensor with an explicit outcome and
// setting split, the private-settings reshape of a flat observation
// vector.
func NewDistributionShaped(probs []float64, outcomes, settings []int) (*Distribution, error) {
	if len(outcomes) != len(settings) {
		return nil, fmt.Errorf("%w: %d outcome axes, %d setting axes", ErrBadTensor, len(outcomes), len(settings))
	}

	return newDistribution(probs, outcomes, settings)
}

func newDistribution(probs []float64, outcomes, settings []int) (*Distribution, error) {
	dims := append(append([]int(nil), outcomes...), settings...)
	total := 1
	for _, d := range dims {
		if d < 1 {
			return nil, fmt.Errorf("%w: non-positive axis", ErrBadTensor)
		}
		total *= d
	}
	if len(probs) != total {
		return nil, fmt.Errorf("%w: %d cells, want %d", ErrBadTensor, len(probs), total)
	}

	strides := make([]int, len(dims))
	acc := 1
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= dims[i]
	}

	return &Distribution{
		probs:    append([]float64(nil), probs...),
		outcomes: append([]int(nil), outcomes...),
		settings: append([]int(nil), settings...),
		strides:  strides,
	}, nil
}

// At reads P(a_1,…,a_Np | x_1,…,x_Np).
func (d *Distribution) At(outs, sets []int) float64 {
	idx := 0
	nP := len(d.outcomes)
	for p := 0; p < nP; p++ {
		idx += outs[p] * d.strides[p]
	}
	for p := 0; p < nP; p++ {
		idx += sets[p] * d.strides[nP+p]
	}

	return d.probs[idx]
}

// Marginal sums the tensor over every party absent from triples,
// reading the given (party, setting, outcome) assignments for the
// involved ones. Absent parties are marginalized at setting 0, which is
// sound under no-signaling.
func (d *Distribution) Marginal(triples [][3]int) float64 {
	nP := len(d.outcomes)
	outs := make([]int, nP)
	sets := make([]int, nP)
	involved := make([]bool, nP)
	for _, tr := range triples {
		involved[tr[0]] = true
		sets[tr[0]] = tr[1]
		outs[tr[0]] = tr[2]
	}

	// Walk the free outcome axes.
	var sum float64
	var walk func(p int)
	walk = func(p int) {
		if p == nP {
			sum += d.At(outs, sets)

			return
		}
		if involved[p] {
			walk(p + 1)

			return
		}
		for o := 0; o < d.outcomes[p]; o++ {
			outs[p] = o
			walk(p + 1)
		}
	}
	walk(0)

	return sum
}

// IsSupportPattern reports whether every cell is exactly 0 or 1.
func (d *Distribution) IsSupportPattern() bool {
	for _, v := range d.probs {
		if v != 0 && v != 1 {
			return false
		}
	}

	return true
}
