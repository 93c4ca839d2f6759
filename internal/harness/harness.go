package harness

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/roach88/fbxport/internal/fbx"
)

// Run builds, marshals and checks a scenario.
//
// An error is returned when the scenario cannot be turned into a tree or
// the writer fails; failed checks are reported in the result instead.
func Run(scenario *Scenario) (*Result, error) {
	nodes, err := BuildNodes(scenario.Nodes)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	version := scenario.Version
	if version == 0 {
		version = fbx.Version7400
	}
	data, err := fbx.Marshal(version, nodes)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: marshal: %w", scenario.Name, err)
	}

	result := NewResult(data)
	checkRoundTrip(data, result)
	for _, a := range scenario.Assertions {
		if err := checkAssertion(a, nodes, data); err != nil {
			result.AddError(err.Error())
		}
	}
	return result, nil
}

// checkRoundTrip decodes data and requires the decoded tree to marshal
// back to the same bytes.
func checkRoundTrip(data []byte, result *Result) {
	f, err := fbx.Decode(data)
	if err != nil {
		result.AddError(fmt.Sprintf("decode: %v", err))
		return
	}
	again, err := fbx.Marshal(f.Version, f.Nodes)
	if err != nil {
		result.AddError(fmt.Sprintf("re-marshal: %v", err))
		return
	}
	if !bytes.Equal(data, again) {
		result.AddError(fmt.Sprintf("round trip changed the file: %d bytes in, %d bytes out", len(data), len(again)))
	}
}

// BuildNodes turns node specs into a tree.
func BuildNodes(specs []NodeSpec) ([]*fbx.Node, error) {
	nodes := make([]*fbx.Node, 0, len(specs))
	for _, s := range specs {
		n, err := buildNode(s)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func buildNode(s NodeSpec) (n *fbx.Node, err error) {
	// Names over 255 bytes panic in NewNode.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("node %q: %v", s.Name, r)
		}
	}()

	n = fbx.NewNode(s.Name)
	for i, ps := range s.Properties {
		p, err := buildProperty(ps)
		if err != nil {
			return nil, fmt.Errorf("node %q property %d: %w", s.Name, i, err)
		}
		n.AddProperties(p)
	}
	children, err := BuildNodes(s.Children)
	if err != nil {
		return nil, err
	}
	n.AddChild(children...)
	return n, nil
}

func buildProperty(s PropertySpec) (p *fbx.Property, err error) {
	t, ok := parseType(s.Type)
	if !ok {
		return nil, fmt.Errorf("unknown property type %q", s.Type)
	}

	value := s.Value
	if t == fbx.TypeBinary {
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("binary value must be a hex string, got %T", value)
		}
		if value, err = hex.DecodeString(str); err != nil {
			return nil, fmt.Errorf("binary value: %w", err)
		}
	}

	// NewProperty panics on values that do not fit the type.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fbx.NewProperty(t, value), nil
}

// parseType accepts a one-letter wire code or a type name.
func parseType(s string) (fbx.Type, bool) {
	if len(s) == 1 {
		return fbx.TypeForCode(s[0])
	}
	for t := fbx.TypeInt16; t <= fbx.TypeBoolArray; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}
