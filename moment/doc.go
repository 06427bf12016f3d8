// Package moment assembles the symbolic moment matrix of a generating
// set: the n×n table of interned monomial ids Γ[i,j] = id(M_i† · M_j),
// quotiented by the inflation symmetry.
//
// 🚀 Pipeline
//
//  1. Product table. Every upper-triangle cell is resolved
//     (canonicalize → factor → orbit-reduce) in parallel; resolution is
//     pure, so goroutine scheduling cannot influence the result. Ids
//     are then interned in row-major order, which keeps them
//     deterministic run to run.
//  2. Induced permutations. Each symmetry generator permutes the
//     generating set; a set that is not closed under a generator drops
//     that generator with a warning, leaving a sound (if weaker)
//     relaxation.
//  3. Quotient. Γ[i,j] is replaced by the minimum over its orbit until
//     a fixed point is reached, so orbit representatives are canonical.
//  4. Compaction. Surviving ids are renumbered densely, preserving
//     ascending registry order; the id table maps back to the interned
//     compounds.
//
// The numeric view substitutes known values into the symmetric matrix
// for certificate evaluation.
//
// Complexity: O(n²) resolutions plus O(|gens|·n²) quotient sweeps.
package moment
