// Package factor splits canonical monomials into their atomic causal
// components.
//
// 🚀 How does factorization work?
//
//	View the monomial as a graph: vertices are operator positions, and
//	two positions are adjacent when their operators hold the same
//	non-zero copy index on some source, i.e. they touch a common copy of
//	a common latent. The atomic factors are exactly the connected
//	components of this graph. An empty monomial has zero factors and is
//	the unit.
//
// Components are found with a disjoint-set union (path compression +
// union by rank) over dense integer positions. Each component is
// emitted with its operators in input order, and components are ordered
// by their smallest member rank, so the factorization is unique and
// independent of canonicalization order.
//
// The package also decides knowability: an atomic component corresponds
// to a marginal of the observed distribution iff each party appears at
// most once, every source it touches is touched on a single copy, and
// the scenario's extra predicate (non-network DAGs) accepts it.
//
// Complexity: Split is O(n²·N_S) pair scanning plus near-O(n) DSU.
package factor
