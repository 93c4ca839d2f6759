package harness

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/roach88/fbxport/internal/fbx"
)

// recordHeaderSize is endOffset, propCount, propListLen and nameLen.
const recordHeaderSize = 13

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Path     string // Node path, if the assertion has one
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Path != "" {
		fmt.Fprintf(&buf, " (%s)", e.Path)
	}
	fmt.Fprintf(&buf, "\n  Expected: %s\n  Actual: %s", e.Expected, e.Actual)
	return buf.String()
}

func checkAssertion(a Assertion, nodes []*fbx.Node, data []byte) error {
	switch a.Type {
	case AssertFileSize:
		return expectInt(a, len(data), a.Size)
	case AssertBytesAt:
		return checkBytesAt(a, data)
	}

	n, start, err := locate(nodes, a.Path)
	if err != nil {
		return err
	}
	switch a.Type {
	case AssertNodeSize:
		return expectInt(a, n.TotalSize(), a.Size)
	case AssertPropertyListSize:
		return expectInt(a, n.PropertyListSize(), a.Size)
	case AssertEndOffset:
		return checkEndOffset(a, n, start, data)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func expectInt(a Assertion, actual, expected int) error {
	if actual == expected {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Path:     a.Path,
		Expected: fmt.Sprint(expected),
		Actual:   fmt.Sprint(actual),
	}
}

// checkEndOffset reads the end offset from the node's header in data. It
// must match both the expected value and start plus the measured size.
func checkEndOffset(a Assertion, n *fbx.Node, start int, data []byte) error {
	if start+4 > len(data) {
		return &AssertionError{
			Type:     a.Type,
			Path:     a.Path,
			Expected: fmt.Sprintf("header at offset %d", start),
			Actual:   fmt.Sprintf("file is %d bytes", len(data)),
		}
	}
	written := int(binary.LittleEndian.Uint32(data[start:]))
	if err := expectInt(a, written, a.Offset); err != nil {
		return err
	}
	if measured := start + n.TotalSize(); written != measured {
		return &AssertionError{
			Type:     a.Type,
			Path:     a.Path,
			Expected: fmt.Sprintf("start %d + size %d = %d", start, n.TotalSize(), measured),
			Actual:   fmt.Sprint(written),
		}
	}
	return nil
}

func checkBytesAt(a Assertion, data []byte) error {
	want, err := hex.DecodeString(a.Hex)
	if err != nil {
		return fmt.Errorf("%s: bad hex %q: %w", a.Type, a.Hex, err)
	}
	end := a.Offset + len(want)
	if a.Offset < 0 || end > len(data) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d bytes at offset %d", len(want), a.Offset),
			Actual:   fmt.Sprintf("file is %d bytes", len(data)),
		}
	}
	if got := data[a.Offset:end]; !bytes.Equal(got, want) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%x at offset %d", want, a.Offset),
			Actual:   fmt.Sprintf("%x", got),
		}
	}
	return nil
}

// locate resolves a "/"-separated path and returns the node with the
// absolute offset of its header. The tree must have been measured.
func locate(nodes []*fbx.Node, path string) (*fbx.Node, int, error) {
	parts := strings.Split(path, "/")
	siblings := nodes
	pos := fbx.PreambleSize

	var found *fbx.Node
	for depth, name := range parts {
		found = nil
		for _, n := range siblings {
			if n.Name() == name {
				found = n
				break
			}
			pos += n.TotalSize()
		}
		if found == nil {
			return nil, 0, fmt.Errorf("path %s: no node %q", path, strings.Join(parts[:depth+1], "/"))
		}
		if depth < len(parts)-1 {
			siblings = found.Children()
			pos += recordHeaderSize + len(found.Name()) + found.PropertyListSize()
		}
	}
	return found, pos, nil
}
