// Package ops enumerates the operator alphabet of an inflated scenario
// and precomputes its commutation structure.
//
// 🚀 What is an operator?
//
//	A measurement event of one party on one assignment of source copies:
//	(party, copy_1 … copy_{N_S}, setting, outcome). Copy 0 marks a
//	source the party does not consume. Outcomes follow the
//	Collins–Gisin convention: the last outcome per measurement is
//	implicit, so the default alphabet stops at o_p − 2. The LP event
//	path uses WithFullOutcomes to keep every outcome.
//
// ✨ Key features:
//   - total lexicographic order: party major, then copies, setting, outcome
//   - O(1) rank lookup from operator tuples
//   - per-party rank slices and orthogonality groups
//   - L×L non-commutation matrix, computed once, symmetric, zero diagonal
//
// Two operators commute iff the commuting model is selected, or they
// belong to different parties, or their copy vectors are disjoint on
// every source both consume. Overlapping on even a single source copy
// makes same-party operators non-commuting.
//
// Complexity: alphabet construction O(L), commutation matrix O(L²).
package ops
