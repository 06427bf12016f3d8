package monomial

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/inflation/ops"
)

// Symbolic monomial names. The grammar:
//
//	compound  = "0" | "1" | atomic *( "*" atomic )
//	atomic    = operator | "<" operator *( " " operator ) ">"
//	operator  = party "_" copy_1 "_" … "_" copy_NS "_" setting "_" outcome
//
// A copy of 0 (source not consumed) renders as "0"; the parser also
// accepts "∅". Everything here stays at the symbolic boundary: the
// algorithmic core never reads names.

// FormatOp renders one operator, e.g. "B_2_1_0_0".
func FormatOp(op ops.Operator, a *ops.Alphabet) string {
	parts := make([]string, 0, 3+len(op.Copies))
	parts = append(parts, a.Scenario().Name(op.Party))
	for _, c := range op.Copies {
		parts = append(parts, strconv.Itoa(c))
	}
	parts = append(parts, strconv.Itoa(op.Setting), strconv.Itoa(op.Outcome))

	return strings.Join(parts, "_")
}

// FormatAtomic renders an atomic rank sequence. Single operators render
// bare; longer products are wrapped in expectation brackets.
func FormatAtomic(seq []int, a *ops.Alphabet) string {
	names := make([]string, len(seq))
	for i, r := range seq {
		names[i] = FormatOp(a.Op(r), a)
	}
	if len(names) == 1 {
		return names[0]
	}

	return "<" + strings.Join(names, " ") + ">"
}

// ParseOp parses one operator name into an alphabet rank.
func ParseOp(s string, a *ops.Alphabet) (int, error) {
	sc := a.Scenario()
	fields := strings.Split(strings.ReplaceAll(s, "∅", "0"), "_")
	if len(fields) != 3+sc.NumSources() {
		return 0, fmt.Errorf("%w: %q has %d fields, want %d", ErrBadName, s, len(fields), 3+sc.NumSources())
	}
	party := -1
	for p := 0; p < sc.NumParties(); p++ {
		if sc.Name(p) == fields[0] {
			party = p

			break
		}
	}
	if party < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParty, fields[0])
	}
	nums := make([]int, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrBadName, s, err)
		}
		nums = append(nums, v)
	}
	op := ops.Operator{
		Party:   party,
		Copies:  nums[:sc.NumSources()],
		Setting: nums[sc.NumSources()],
		Outcome: nums[sc.NumSources()+1],
	}
	r, err := a.Rank(op)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrBadName, s, err)
	}

	return r, nil
}

// ParseName parses a compound name into the rank sequences of its
// "*"-separated atomic factors. The reserved names "1" and "0" return
// no factors with the zero flag set accordingly.
func ParseName(s string, a *ops.Alphabet) (factors [][]int, zero bool, err error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return nil, false, fmt.Errorf("%w: empty", ErrBadName)
	case "0":
		return nil, true, nil
	case "1":
		return nil, false, nil
	}
	for _, part := range strings.Split(s, "*") {
		part = strings.TrimSpace(part)
		inner := part
		if strings.HasPrefix(part, "<") {
			if !strings.HasSuffix(part, ">") {
				return nil, false, fmt.Errorf("%w: unbalanced brackets in %q", ErrBadName, part)
			}
			inner = part[1 : len(part)-1]
		}
		factor := []int{}
		for _, opName := range strings.Fields(inner) {
			r, err := ParseOp(opName, a)
			if err != nil {
				return nil, false, err
			}
			factor = append(factor, r)
		}
		if len(factor) == 0 {
			return nil, false, fmt.Errorf("%w: empty factor in %q", ErrBadName, s)
		}
		factors = append(factors, factor)
	}

	return factors, false, nil
}

// InternName parses a symbolic name and interns the result. Each factor
// is interned as an atom and the compound assembled from the atom ids;
// factors are never concatenated, so the printed factorization is
// preserved exactly.
func (r *Registry) InternName(s string) (*Compound, error) {
	factors, zero, err := ParseName(s, r.a)
	if err != nil {
		return nil, err
	}
	if zero {
		return r.Zero(), nil
	}
	atoms := make([]*Atomic, 0, len(factors))
	for _, f := range factors {
		atom, ok := r.InternAtomSequence(f)
		if !ok {
			return r.Zero(), nil
		}
		atoms = append(atoms, atom)
	}

	return r.CompoundFromAtoms(atoms), nil
}
