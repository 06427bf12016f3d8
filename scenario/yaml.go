package scenario

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrBadYAML indicates an unreadable or non-decodable scenario document.
var ErrBadYAML = errors.New("scenario: cannot decode YAML document")

// yamlDoc mirrors the declarative scenario file layout.
type yamlDoc struct {
	Names       []string `yaml:"names"`
	Outcomes    []int    `yaml:"outcomes"`
	Settings    []int    `yaml:"settings"`
	Inflation   []int    `yaml:"inflation"`
	Hypergraph  [][]int  `yaml:"hypergraph"`
	HasChildren []bool   `yaml:"has_children"`
	Network     *bool    `yaml:"network"`
}

// FromYAML decodes a declarative scenario description and validates it
// through New. The Network flag defaults to true when omitted; the
// KnowableExtra predicate cannot be expressed declaratively and is
// left nil.
//
// Example document:
//
//	outcomes:   [2, 2, 2]
//	settings:   [1, 1, 1]
//	inflation:  [2, 2]
//	hypergraph:
//	  - [1, 1, 0]
//	  - [0, 1, 1]
func FromYAML(r io.Reader) (*Scenario, error) {
	var doc yamlDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadYAML, err)
	}
	network := true
	if doc.Network != nil {
		network = *doc.Network
	}

	return New(Config{
		Names:       doc.Names,
		Outcomes:    doc.Outcomes,
		Settings:    doc.Settings,
		Inflation:   doc.Inflation,
		Hypergraph:  doc.Hypergraph,
		HasChildren: doc.HasChildren,
		Network:     network,
	})
}
