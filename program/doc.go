// Package program wires the monomial engine into solvable LP and SDP
// relaxations behind one capability interface.
//
// 🚀 Two engines, one shape
//
//	SDP - builds a generating set, computes the symmetry-quotiented
//	      moment matrix, and hands the solver a program keyed by the
//	      matrix's compact monomial ids.
//	LP  - enumerates the event space over the full-outcome alphabet,
//	      assembles normalization equalities and Collins–Gisin fold
//	      inequalities, and keys the program by interned compound ids.
//
// Both satisfy Engine: BuildGenerators, Product, Constrain, Solve. The
// solver itself is an external collaborator consuming the sparse
// Program value and returning a Solution; nothing in this module
// implements one.
//
// Determinism: two sessions on the same scenario and generator
// specification produce identical Programs, id for id and coefficient
// for coefficient.
//
// ⚙️ Usage:
//
//	sdp, _ := program.NewSDP(sc)
//	_ = sdp.BuildGenerators(program.NPASpec(2))
//	_ = sdp.SetDistribution(dist)
//	prog, _ := sdp.Constrain()
//	sol, _ := sdp.Solve(ctx, mySolver)
package program
