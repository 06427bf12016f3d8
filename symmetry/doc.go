// Package symmetry computes the source-relabeling group of an inflated
// scenario and its action on operator strings.
//
// 🚀 Where does the symmetry come from?
//
//	Copies of an inflated source are interchangeable: relabeling the
//	copies of source s by any permutation of {1..k_s} maps the operator
//	alphabet onto itself and leaves the physics invariant. The full
//	group is the direct product of the per-source symmetric groups; a
//	generating set of Σ(k_s − 1) adjacent transpositions suffices for
//	incremental closure.
//
// ✨ Exposed operations:
//   - Element(i): the i-th alphabet permutation (identity first)
//   - Generators(): adjacent-transposition alphabet permutations
//   - Apply / ApplyToBitvec: O(n) and O(L) pointwise action
//   - Representative: lex-minimum canonical image over the whole orbit
//
// Relabeling preserves the commutation and orthogonality structure, so
// the canonical image of a non-zero monomial never annihilates.
//
// Complexity: construction enumerates Π k_s! elements of length L;
// inflation levels are small in practice, keeping this tractable.
package symmetry
