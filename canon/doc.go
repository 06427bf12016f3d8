// Package canon rewrites operator strings to a unique normal form.
//
// Three local rules are applied to fixed point:
//
//  1. Orthogonality: adjacent operators with identical (party, copies,
//     setting) and distinct outcomes annihilate the whole string.
//  2. Idempotence: adjacent identical operators collapse to one.
//  3. Commutation sort: adjacent commuting operators in decreasing rank
//     order are swapped.
//
// Termination: every swap strictly decreases the lexicographic rank
// tuple, which is bounded below; idempotence strictly shortens the
// string; orthogonality stops immediately. Confluence holds because the
// commuting swaps generate an equivalence of orderings and the two
// annihilation rules fire on identical or same-context adjacent pairs,
// so the normal form is independent of rule application order.
//
// Under the commuting model every pair is sortable and canonicalization
// degenerates to: sort by rank, collapse adjacent duplicates, annihilate
// on adjacent same-context outcome conflict.
//
// Complexity: O(n²) per string in the non-commuting model (bubble
// passes), O(n log n) in the commuting model.
package canon
