// Package scenario describes the inflated causal scenario every other
// package consumes: parties with outcome and setting cardinalities,
// latent sources with inflation levels, and the bipartite hypergraph
// connecting sources to parties.
//
// 🚀 What is a scenario?
//
//	A frozen snapshot of the causal structure under test. Construction
//	validates every shape and range once; after New returns, the value
//	never mutates, so downstream packages read it without locks.
//
// ✨ Key features:
//   - validate-then-freeze construction from a Config
//   - YAML loader for declarative scenario files
//   - default party naming A, B, C, … with base-26 extension
//   - derived accessors: Feeds, Sources, CopyWidth, HasChildren
//
// ⚙️ Usage:
//
//	sc, err := scenario.New(scenario.Config{
//	  Outcomes:  []int{2, 2, 2},
//	  Settings:  []int{1, 1, 1},
//	  Inflation: []int{2, 2},
//	  Hypergraph: [][]int{
//	    {1, 1, 0}, // source 0 feeds parties A, B
//	    {0, 1, 1}, // source 1 feeds parties B, C
//	  },
//	})
//
// Complexity: construction is O(N_S·N_P); all accessors are O(1) or
// O(N_S).
package scenario
