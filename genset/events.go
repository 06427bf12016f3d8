package genset

import (
	"errors"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/katalvlaran/inflation/ops"
)

// ErrNeedFullAlphabet indicates a raw-bitvec enumeration over a
// Collins–Gisin alphabet; the LP event space needs every outcome.
var ErrNeedFullAlphabet = errors.New("genset: raw bitvecs need the full-outcome alphabet")

// BitvecSet is the LP-path generating set: event bitvectors over the
// full-outcome alphabet. Vecs[0] is the empty event (the unit).
type BitvecSet struct {
	a    *ops.Alphabet
	vecs []ops.Bitvec
	keys map[string]int
}

// RawBitvecs enumerates every event of the inflated scenario: for each
// party, at most one outcome per measurement context (a context is one
// (copies, setting) orthogonality group), multiplied across parties.
//
// Steps, per party:
//  1. Each context contributes its group size + 1 choices (skip, or one
//     of the outcomes).
//  2. The cartesian product over contexts yields the party's events.
//  3. The cross-party cartesian product yields the full event space.
//
// WithMaxLength bounds the total operator count of an event.
// Complexity: O(Π_p Π_groups (o_p+1)) events; callers choose scenarios
// accordingly.
func RawBitvecs(a *ops.Alphabet, opts ...Option) (*BitvecSet, error) {
	if a == nil {
		return nil, ErrNilInput
	}
	if !a.Full() {
		return nil, ErrNeedFullAlphabet
	}
	cfg := applyOptions(opts)
	sc := a.Scenario()

	// Per-party event lists as rank slices.
	perParty := make([][][]int, sc.NumParties())
	for p := 0; p < sc.NumParties(); p++ {
		groups, err := a.OrthoGroups(p)
		if err != nil {
			return nil, err
		}
		lens := make([]int, len(groups))
		for i, g := range groups {
			lens[i] = len(g) + 1
		}
		for _, pick := range combin.Cartesian(lens) {
			event := []int{}
			for i, choice := range pick {
				if choice == 0 {
					continue // context not measured in this event
				}
				event = append(event, groups[i][choice-1])
			}
			perParty[p] = append(perParty[p], event)
		}
	}

	// Cross-party product.
	lens := make([]int, len(perParty))
	for p := range perParty {
		lens[p] = len(perParty[p])
	}
	s := &BitvecSet{a: a, keys: make(map[string]int)}
	for _, pick := range combin.Cartesian(lens) {
		bv := ops.NewBitvec(a.L())
		n := 0
		for p, choice := range pick {
			for _, r := range perParty[p][choice] {
				bv.Set(r)
				n++
			}
		}
		if cfg.maxLength > 0 && n > cfg.maxLength {
			continue
		}
		s.add(bv)
	}

	return s, nil
}

// add appends a bitvec unless already present.
func (s *BitvecSet) add(bv ops.Bitvec) {
	k := bv.Key()
	if _, dup := s.keys[k]; dup {
		return
	}
	s.keys[k] = len(s.vecs)
	s.vecs = append(s.vecs, bv)
}

// Len returns the number of events, the empty event included.
func (s *BitvecSet) Len() int { return len(s.vecs) }

// Vec returns the i-th event. Shared storage.
func (s *BitvecSet) Vec(i int) ops.Bitvec { return s.vecs[i] }

// Vecs returns all events in order. Shared storage.
func (s *BitvecSet) Vecs() []ops.Bitvec { return s.vecs }

// Alphabet returns the full-outcome alphabet of the event space.
func (s *BitvecSet) Alphabet() *ops.Alphabet { return s.a }

// Index returns the position of an event, if present.
func (s *BitvecSet) Index(bv ops.Bitvec) (int, bool) {
	i, ok := s.keys[bv.Key()]

	return i, ok
}
