// Package valuation binds numeric values to interned monomials and
// derives the known, semiknown, and bound structures the solver
// consumes.
//
// 🚀 How values flow
//
//	The user supplies values for atomic monomials, either directly or
//	through an observed probability tensor (knowable atoms read their
//	marginal off the tensor). Every interned compound is then split:
//	all factors known → the compound moves to the known table; some
//	factors known and LPI enabled → the known part is pulled out as a
//	coefficient and the compound becomes a proportionality onto the
//	remaining sub-compound (itself interned); otherwise the compound
//	stays free.
//
// Per-monomial state machine: Free → PartiallyKnown → FullyKnown, with
// only forward transitions inside a single SetValues call. ResetValues
// returns every monomial to Free; the unit is always 1.
//
// Bounds: physically positive monomials (every factor a product of
// copy-disjoint projectors) default to a lower bound of 0. Supports
// mode replaces every strictly positive known by the lower bound 1 and
// rejects tensors holding anything but 0 and 1.
//
// The processed objective substitutes known values into a constant term
// and reroutes semiknown coefficients onto their representatives.
package valuation
