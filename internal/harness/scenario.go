package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario covers.
	Description string `yaml:"description"`

	// Version is written to the preamble. Zero means 7400.
	Version uint32 `yaml:"version,omitempty"`

	// Nodes are the top-level records in file order.
	Nodes []NodeSpec `yaml:"nodes"`

	// Assertions are checked against the written bytes.
	Assertions []Assertion `yaml:"assertions"`
}

// NodeSpec describes one node and its subtree.
type NodeSpec struct {
	Name       string         `yaml:"name"`
	Properties []PropertySpec `yaml:"properties,omitempty"`
	Children   []NodeSpec     `yaml:"children,omitempty"`
}

// PropertySpec describes one property.
type PropertySpec struct {
	// Type is a wire code ("I") or a type name ("Int32").
	Type string `yaml:"type"`

	// Value is converted to Type. Binary values are hex strings.
	Value any `yaml:"value"`
}

// Assertion checks one fact about the written bytes.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Path selects a node (node_size, property_list_size, end_offset).
	Path string `yaml:"path,omitempty"`

	// Size is the expected size (file_size, node_size, property_list_size).
	Size int `yaml:"size,omitempty"`

	// Offset is an absolute byte offset (end_offset, bytes_at).
	Offset int `yaml:"offset,omitempty"`

	// Hex is the expected bytes at Offset (bytes_at).
	Hex string `yaml:"hex,omitempty"`
}

// Assertion type constants.
const (
	AssertFileSize         = "file_size"
	AssertNodeSize         = "node_size"
	AssertPropertyListSize = "property_list_size"
	AssertEndOffset        = "end_offset"
	AssertBytesAt          = "bytes_at"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "child:" vs "children:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Nodes) == 0 {
		return fmt.Errorf("nodes list is required and must be non-empty")
	}

	for i, n := range s.Nodes {
		if err := validateNode(n, fmt.Sprintf("nodes[%d]", i)); err != nil {
			return err
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	return nil
}

func validateNode(n NodeSpec, where string) error {
	if n.Name == "" {
		return fmt.Errorf("%s: name is required", where)
	}
	for i, p := range n.Properties {
		if p.Type == "" {
			return fmt.Errorf("%s.properties[%d]: type is required", where, i)
		}
		if p.Value == nil {
			return fmt.Errorf("%s.properties[%d]: value is required", where, i)
		}
	}
	for i, c := range n.Children {
		if err := validateNode(c, fmt.Sprintf("%s.children[%d]", where, i)); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertFileSize:
		return nil
	case AssertNodeSize, AssertPropertyListSize, AssertEndOffset:
		if a.Path == "" {
			return fmt.Errorf("%s requires path", a.Type)
		}
		return nil
	case AssertBytesAt:
		if a.Hex == "" {
			return fmt.Errorf("%s requires hex", a.Type)
		}
		return nil
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}
