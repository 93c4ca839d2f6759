package fbx

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ccoveille/go-safecast"
)

// Magic opens every binary file: product identifier, two spaces, NUL.
const Magic = "Kaydara FBX Binary  \x00"

// Version7400 is the format version written by default.
const Version7400 uint32 = 7400

// PreambleSize is the length of magic, marker bytes and version.
const PreambleSize = len(Magic) + 2 + 4

// preambleMarker follows the magic; its meaning is undocumented but readers
// require it.
const preambleMarker = 0x1A

var nullRecord [NullRecordSize]byte

// SizeMismatchError reports that the bytes written for a node differ from
// the size Measure computed for it. Every end offset after that node would
// be wrong, so the output must be discarded.
type SizeMismatchError struct {
	Node     string
	Measured int
	Written  int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("fbx: node %q wrote %d bytes, measured %d", e.Node, e.Written, e.Measured)
}

// Marshal measures nodes and encodes them after the file preamble.
// The buffer is allocated once at its final size.
func Marshal(version uint32, nodes []*Node) ([]byte, error) {
	total := MeasureAll(nodes)
	buf := make([]byte, 0, PreambleSize+total)
	buf = AppendPreamble(buf, version)

	var err error
	for _, n := range nodes {
		if buf, err = AppendNode(buf, n); err != nil {
			return nil, err
		}
	}
	if len(buf) != PreambleSize+total {
		return nil, fmt.Errorf("fbx: encoded %d bytes, measured %d", len(buf), PreambleSize+total)
	}
	return buf, nil
}

// AppendPreamble appends the magic, marker bytes and version to buf.
func AppendPreamble(buf []byte, version uint32) []byte {
	buf = append(buf, Magic...)
	buf = append(buf, preambleMarker, 0x00)
	return binary.LittleEndian.AppendUint32(buf, version)
}

// AppendNode appends the record for n and its subtree to buf. len(buf) is
// taken as the absolute file offset of the record, so buf must hold
// everything written before it, preamble included.
//
// n and all its descendants must have been measured; AppendNode panics
// otherwise.
func AppendNode(buf []byte, n *Node) ([]byte, error) {
	n.mustBeSized()
	start := len(buf)

	end, err := safecast.ToUint32(start + n.totalSize)
	if err != nil {
		return buf, fmt.Errorf("fbx: end offset of node %q: %w", n.name, err)
	}
	count, err := safecast.ToUint32(len(n.properties))
	if err != nil {
		return buf, fmt.Errorf("fbx: property count of node %q: %w", n.name, err)
	}
	listLen, err := safecast.ToUint32(n.propertyListSize)
	if err != nil {
		return buf, fmt.Errorf("fbx: property list of node %q: %w", n.name, err)
	}

	buf = binary.LittleEndian.AppendUint32(buf, end)
	buf = binary.LittleEndian.AppendUint32(buf, count)
	buf = binary.LittleEndian.AppendUint32(buf, listLen)
	buf = append(buf, byte(len(n.name)))
	buf = append(buf, n.name...)

	for _, p := range n.properties {
		if buf, err = appendProperty(buf, p); err != nil {
			return buf, fmt.Errorf("fbx: node %q: %w", n.name, err)
		}
	}
	for _, c := range n.children {
		if buf, err = AppendNode(buf, c); err != nil {
			return buf, err
		}
	}
	if len(n.children) > 0 {
		buf = append(buf, nullRecord[:]...)
	}

	if written := len(buf) - start; written != n.totalSize {
		return buf, &SizeMismatchError{Node: n.name, Measured: n.totalSize, Written: written}
	}
	return buf, nil
}

func appendProperty(buf []byte, p *Property) ([]byte, error) {
	buf = append(buf, p.typ.Code())

	switch v := p.value.(type) {
	case int16:
		buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
	case bool:
		if v {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case int32:
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	case float32:
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	case float64:
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	case int64:
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	case string:
		l, err := safecast.ToUint32(len(v))
		if err != nil {
			return buf, fmt.Errorf("string property: %w", err)
		}
		buf = binary.LittleEndian.AppendUint32(buf, l)
		buf = append(buf, v...)
	case []byte:
		l, err := safecast.ToUint32(len(v))
		if err != nil {
			return buf, fmt.Errorf("binary property: %w", err)
		}
		buf = binary.LittleEndian.AppendUint32(buf, l)
		buf = append(buf, v...)
	default:
		panic(fmt.Sprintf("fbx: cannot encode %v property holding %T", p.typ, p.value))
	}
	return buf, nil
}
