// Package monomial interns atomic and compound monomials and assigns
// them stable integer ids.
//
// 🚀 What is interned, exactly?
//
//	An operator string is canonicalized, split into atomic causal
//	components, and each component is replaced by the lex-minimum
//	canonical image of its symmetry orbit. Atoms are interned by the
//	byte image of that representative; compounds are interned by their
//	sorted atomic id tuple. Different raw inputs landing on the same
//	representative alias to one interned object.
//
// ✨ Guarantees:
//   - two monomials compare equal iff their canonical forms agree
//   - every atomic factor of an interned compound is itself interned
//   - ids are dense and stable within a session: 0 = zero, 1 = one,
//     compounds from 2 in insertion order
//   - the registry grows monotonically; no entry is removed or rewritten
//
// The two-phase Resolve/Intern split keeps the expensive part pure:
// Resolve performs canonicalization, factorization, and orbit reduction
// without touching the registry, so callers may fan it out across
// goroutines and intern the results in a deterministic order afterward.
//
// Compounds refer to their atoms by integer id only; atoms never refer
// back, so the arena is cycle-free by construction.
package monomial
