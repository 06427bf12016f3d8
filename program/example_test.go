package program_test

import (
	"fmt"

	"github.com/katalvlaran/inflation/program"
	"github.com/katalvlaran/inflation/scenario"
)

// ExampleSDP builds the CHSH Bell scenario at NPA level 1 and inspects
// the resulting moment matrix.
func ExampleSDP() {
	sc, _ := scenario.New(scenario.Config{
		Outcomes:   []int{2, 2},
		Settings:   []int{2, 2},
		Inflation:  []int{1},
		Hypergraph: [][]int{{1, 1}},
		Network:    true,
	})

	sdp, _ := program.NewSDP(sc)
	_ = sdp.BuildGenerators(program.NPASpec(1))

	prog, _ := sdp.Constrain()
	fmt.Println("matrix size:", prog.MomentMatrix.N)
	fmt.Println("distinct monomials:", len(prog.MomentMatrix.Monomials))
	fmt.Println("corner monomial:", prog.MomentMatrix.Monomial(0, 0).Name)

	// Output:
	// matrix size: 5
	// distinct monomials: 11
	// corner monomial: 1
}
