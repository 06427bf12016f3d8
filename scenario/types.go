// Package scenario: sentinel errors and the Config input type.
// All constructors MUST return these sentinels and tests MUST check them
// via errors.Is. No constructor panics on user-triggered conditions.
package scenario

import "errors"

// Sentinel errors for scenario validation. Every message is prefixed
// with "scenario: ..." so failures grep cleanly across logs.
var (
	// ErrNoParties indicates an empty party list.
	ErrNoParties = errors.New("scenario: at least one party required")

	// ErrNoSources indicates an empty source list.
	ErrNoSources = errors.New("scenario: at least one source required")

	// ErrBadCardinality indicates an outcome or setting cardinality < 1.
	ErrBadCardinality = errors.New("scenario: cardinality must be >= 1")

	// ErrBadInflation indicates an inflation level < 1.
	ErrBadInflation = errors.New("scenario: inflation level must be >= 1")

	// ErrShapeMismatch indicates hypergraph / cardinality vectors whose
	// lengths disagree with the declared party and source counts.
	ErrShapeMismatch = errors.New("scenario: shape mismatch")

	// ErrBadHypergraph indicates a hypergraph entry outside {0,1} or a
	// source feeding no party.
	ErrBadHypergraph = errors.New("scenario: malformed hypergraph")

	// ErrBadPartyName indicates a duplicate or empty explicit party name.
	ErrBadPartyName = errors.New("scenario: invalid party name")
)

// Config is the mutable construction input for a Scenario.
//
// Fields:
//
//	Names       - optional explicit party names; defaults to A, B, C, …
//	Outcomes    - outcome cardinality o_p per party, each >= 1.
//	Settings    - setting cardinality s_p per party, each >= 1.
//	Inflation   - inflation level k_s per source, each >= 1.
//	Hypergraph  - Hypergraph[s][p] in {0,1}: source s feeds party p.
//	HasChildren - optional; parties that are non-leaf observed nodes.
//	Network     - true when the DAG is a network (no observed-to-observed
//	              arrows); enables the plain knowability rule.
//	KnowableExtra - optional extra knowability predicate for non-network
//	              DAGs; receives the (party, setting, outcome) triples of
//	              an atomic component.
type Config struct {
	Names         []string
	Outcomes      []int
	Settings      []int
	Inflation     []int
	Hypergraph    [][]int
	HasChildren   []bool
	Network       bool
	KnowableExtra func(triples [][3]int) bool
}
