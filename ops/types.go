// Package ops: operator value type and sentinel errors.
package ops

import "errors"

// Sentinel errors for alphabet construction and lookup.
var (
	// ErrNilScenario is returned when a nil scenario is passed.
	ErrNilScenario = errors.New("ops: scenario is nil")

	// ErrUnknownOperator is returned by Rank for a tuple outside the alphabet.
	ErrUnknownOperator = errors.New("ops: operator not in alphabet")

	// ErrBadParty is returned for a party index outside the scenario.
	ErrBadParty = errors.New("ops: party index out of range")
)

// Operator is a single measurement event on the inflated scenario.
//
// Fields:
//
//	Party   - party index, 0-based.
//	Copies  - one entry per source; 0 when the party does not consume
//	          the source, otherwise 1..k_s.
//	Setting - measurement setting, 0-based. Parties without inputs use 0.
//	Outcome - measurement outcome, 0-based.
type Operator struct {
	Party   int
	Copies  []int
	Setting int
	Outcome int
}

// Equal reports exact tuple equality.
func (o Operator) Equal(b Operator) bool {
	if o.Party != b.Party || o.Setting != b.Setting || o.Outcome != b.Outcome {
		return false
	}
	if len(o.Copies) != len(b.Copies) {
		return false
	}
	for s := range o.Copies {
		if o.Copies[s] != b.Copies[s] {
			return false
		}
	}

	return true
}

// SharesCopy reports whether o and b hold the same non-zero copy index
// on at least one source. This single relation drives both the
// commutation rule (same party + shared copy = non-commuting) and the
// causal factorization (shared copy = same atomic component).
func (o Operator) SharesCopy(b Operator) bool {
	for s := range o.Copies {
		if o.Copies[s] != 0 && o.Copies[s] == b.Copies[s] {
			return true
		}
	}

	return false
}

// SameContext reports whether o and b agree on party, copies, and
// setting. Two same-context operators with distinct outcomes are
// orthogonal; with equal outcomes they are identical projectors.
func (o Operator) SameContext(b Operator) bool {
	if o.Party != b.Party || o.Setting != b.Setting {
		return false
	}
	for s := range o.Copies {
		if o.Copies[s] != b.Copies[s] {
			return false
		}
	}

	return true
}

// Tuple renders the fixed-width integer image (party, copies…, setting,
// outcome); Rank quotes it in its unknown-operator error.
func (o Operator) Tuple() []int {
	t := make([]int, 0, 3+len(o.Copies))
	t = append(t, o.Party)
	t = append(t, o.Copies...)
	t = append(t, o.Setting, o.Outcome)

	return t
}
