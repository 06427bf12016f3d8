// Package lpcons translates an LP event space into sparse constraint
// rows.
//
// 🚀 Row families
//
//	Normalization - for every measurement context of a party with
//	    observed children and every context-free background event:
//	    Σ_outcomes P(event + outcome) − P(event) = 0.
//	Collins–Gisin fold - for every full event, non-negativity rewritten
//	    over the CG subspace: each last-outcome operator op expands as
//	    P(background) − Σ_{o' < last} P(op_{o'}), so a term picking k
//	    explicit outcomes carries sign (−1)^k (the parity combines by
//	    XOR across substituted operators). The expansion of an event
//	    with no last outcomes is the plain row P(event) ≥ 0.
//	LPI - proportionality rows x_c − coef·x_rest = 0 for semiknown
//	    pairs produced by the valuation engine. Disabled by default
//	    upstream.
//
// Rows are emitted as (columns, coefficients) pairs over the event
// index space of a genset.BitvecSet and aggregate into a coordinate
// sparse matrix.
//
// Folding a CG row back — substituting the last-outcome identity in
// reverse — reproduces the full normalization equality, which is the
// property tests pin down.
package lpcons
