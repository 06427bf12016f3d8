package scenario

import (
	"fmt"
)

// Scenario is the frozen description of an inflated causal scenario.
// All slices are private copies of the Config input; accessors hand out
// copies or scalars, except Sources, which returns the shared cached
// slice.
type Scenario struct {
	names       []string
	outcomes    []int
	settings    []int
	inflation   []int
	hypergraph  [][]int
	hasChildren []bool
	network     bool
	extra       func(triples [][3]int) bool

	// sourcesOf[p] caches the ordered source indices feeding party p.
	sourcesOf [][]int
}

// New validates cfg and freezes it into a Scenario.
// Stage 1 (Validate): shapes, ranges, hypergraph entries.
// Stage 2 (Prepare): copy every slice, derive per-party source lists.
// Stage 3 (Finalize): return the immutable value.
// Complexity: O(N_S·N_P) time and memory.
func New(cfg Config) (*Scenario, error) {
	nP := len(cfg.Outcomes)
	nS := len(cfg.Inflation)
	if nP == 0 {
		return nil, ErrNoParties
	}
	if nS == 0 {
		return nil, ErrNoSources
	}
	if len(cfg.Settings) != nP {
		return nil, fmt.Errorf("%w: %d settings for %d parties", ErrShapeMismatch, len(cfg.Settings), nP)
	}
	if len(cfg.Hypergraph) != nS {
		return nil, fmt.Errorf("%w: %d hypergraph rows for %d sources", ErrShapeMismatch, len(cfg.Hypergraph), nS)
	}
	if cfg.Names != nil && len(cfg.Names) != nP {
		return nil, fmt.Errorf("%w: %d names for %d parties", ErrShapeMismatch, len(cfg.Names), nP)
	}
	if cfg.HasChildren != nil && len(cfg.HasChildren) != nP {
		return nil, fmt.Errorf("%w: %d has-children flags for %d parties", ErrShapeMismatch, len(cfg.HasChildren), nP)
	}
	for p := 0; p < nP; p++ {
		if cfg.Outcomes[p] < 1 || cfg.Settings[p] < 1 {
			return nil, fmt.Errorf("%w: party %d", ErrBadCardinality, p)
		}
	}
	for s := 0; s < nS; s++ {
		if cfg.Inflation[s] < 1 {
			return nil, fmt.Errorf("%w: source %d", ErrBadInflation, s)
		}
		if len(cfg.Hypergraph[s]) != nP {
			return nil, fmt.Errorf("%w: hypergraph row %d has %d entries", ErrShapeMismatch, s, len(cfg.Hypergraph[s]))
		}
		feeds := 0
		for p := 0; p < nP; p++ {
			switch cfg.Hypergraph[s][p] {
			case 0:
			case 1:
				feeds++
			default:
				return nil, fmt.Errorf("%w: entry [%d][%d] = %d", ErrBadHypergraph, s, p, cfg.Hypergraph[s][p])
			}
		}
		if feeds == 0 {
			return nil, fmt.Errorf("%w: source %d feeds no party", ErrBadHypergraph, s)
		}
	}

	names := cfg.Names
	if names == nil {
		names = DefaultNames(nP)
	}
	seen := make(map[string]struct{}, nP)
	for _, n := range names {
		if n == "" {
			return nil, fmt.Errorf("%w: empty name", ErrBadPartyName)
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("%w: duplicate %q", ErrBadPartyName, n)
		}
		seen[n] = struct{}{}
	}

	sc := &Scenario{
		names:       append([]string(nil), names...),
		outcomes:    append([]int(nil), cfg.Outcomes...),
		settings:    append([]int(nil), cfg.Settings...),
		inflation:   append([]int(nil), cfg.Inflation...),
		hypergraph:  make([][]int, nS),
		hasChildren: make([]bool, nP),
		network:     cfg.Network,
		extra:       cfg.KnowableExtra,
		sourcesOf:   make([][]int, nP),
	}
	for s := 0; s < nS; s++ {
		sc.hypergraph[s] = append([]int(nil), cfg.Hypergraph[s]...)
	}
	if cfg.HasChildren != nil {
		copy(sc.hasChildren, cfg.HasChildren)
	}
	for p := 0; p < nP; p++ {
		for s := 0; s < nS; s++ {
			if sc.hypergraph[s][p] == 1 {
				sc.sourcesOf[p] = append(sc.sourcesOf[p], s)
			}
		}
	}

	return sc, nil
}

// NumParties returns N_P. Complexity: O(1).
func (sc *Scenario) NumParties() int { return len(sc.outcomes) }

// NumSources returns N_S. Complexity: O(1).
func (sc *Scenario) NumSources() int { return len(sc.inflation) }

// Name returns the name of party p.
func (sc *Scenario) Name(p int) string { return sc.names[p] }

// Names returns a copy of the ordered party names.
func (sc *Scenario) Names() []string { return append([]string(nil), sc.names...) }

// Outcomes returns o_p, the outcome cardinality of party p.
func (sc *Scenario) Outcomes(p int) int { return sc.outcomes[p] }

// Settings returns s_p, the setting cardinality of party p.
func (sc *Scenario) Settings(p int) int { return sc.settings[p] }

// Inflation returns k_s, the inflation level of source s.
func (sc *Scenario) Inflation(s int) int { return sc.inflation[s] }

// Feeds reports whether source s feeds party p.
func (sc *Scenario) Feeds(s, p int) bool { return sc.hypergraph[s][p] == 1 }

// Sources returns the ordered source indices feeding party p.
// The returned slice is shared and must not be mutated.
func (sc *Scenario) Sources(p int) []int { return sc.sourcesOf[p] }

// HasChildren reports whether party p has observed children
// (a non-leaf node of the original DAG).
func (sc *Scenario) HasChildren(p int) bool { return sc.hasChildren[p] }

// Network reports whether the scenario is a network DAG.
func (sc *Scenario) Network() bool { return sc.network }

// CopyWidth returns the operator tuple width W = 1 + N_S + 2.
func (sc *Scenario) CopyWidth() int { return 1 + len(sc.inflation) + 2 }

// KnowableExtra applies the optional non-network knowability predicate
// to the (party, setting, outcome) triples of an atomic component.
// Network scenarios and scenarios without a predicate always pass.
func (sc *Scenario) KnowableExtra(triples [][3]int) bool {
	if sc.network || sc.extra == nil {
		return true
	}
	return sc.extra(triples)
}

// DefaultNames produces n party names: A…Z, then AA, AB, … (base-26).
// Complexity: O(n).
func DefaultNames(n int) []string {
	names := make([]string, n)
	for i := 0; i < n; i++ {
		name := ""
		for v := i; ; v = v/26 - 1 {
			name = string(rune('A'+v%26)) + name
			if v < 26 {
				break
			}
		}
		names[i] = name
	}
	return names
}
