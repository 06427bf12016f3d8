// Package genset builds the generating monomial sets that index the
// moment matrix (SDP path) or the event space (LP path).
//
// 🚀 Specification styles
//
//	npaN        - products of at most N single-party operators, party
//	              indices non-decreasing (the NPA hierarchy).
//	localN      - at most N operators per party.
//	physicalN   - the subset of localN whose operators commute pairwise
//	              (copies disjoint per source), so every factor is
//	              positive semidefinite by construction.
//	party blocks- explicit lists of party indices, one monomial per
//	              cartesian product of measurement choices.
//	explicit    - caller-supplied monomials, unit first.
//	raw bitvecs - per-party event enumerations over the full-outcome
//	              alphabet, multiplied across parties (LP path).
//
// Every candidate runs through the canonicalizer: zeros are discarded,
// products that collapse below their block length are discarded (they
// already appear in a shorter block), and duplicates merge. The unit
// monomial always sits at index 0.
//
// A set remembers its canonical keys, so membership lookup and the
// symmetry-closure check are O(1) per monomial.
package genset
