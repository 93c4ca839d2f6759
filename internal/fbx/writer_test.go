package fbx

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fbxport/internal/testutil"
)

func TestMarshal_EmptyIsPreambleOnly(t *testing.T) {
	data, err := Marshal(Version7400, nil)
	require.NoError(t, err)

	require.Len(t, data, PreambleSize)
	assert.Equal(t, 27, PreambleSize)
	assert.Equal(t, Magic, string(data[:21]))
	assert.Equal(t, byte(0x1A), data[21])
	assert.Equal(t, byte(0x00), data[22])
	assert.Equal(t, uint32(7400), binary.LittleEndian.Uint32(data[23:]))
}

func TestMagic(t *testing.T) {
	assert.Len(t, Magic, 21)
	assert.True(t, bytes.HasSuffix([]byte(Magic), []byte("  \x00")))
}

func TestMarshal_SingleLeaf(t *testing.T) {
	data, err := Marshal(Version7400, []*Node{NewNode("X", Int32(42))})
	require.NoError(t, err)

	want := []byte{
		27 + 19, 0, 0, 0, // end offset
		1, 0, 0, 0, // property count
		5, 0, 0, 0, // property list length
		1, 'X',
		'I', 42, 0, 0, 0,
	}
	assert.Equal(t, want, data[PreambleSize:])
}

func TestMarshal_SampleTreeGolden(t *testing.T) {
	data, err := Marshal(Version7400, sampleTree())
	require.NoError(t, err)
	testutil.AssertGoldenHex(t, "sample_tree", data)
}

func TestMarshal_ScalarEncodings(t *testing.T) {
	n := NewNode("S",
		Int16(-2),
		Bool(true),
		Bool(false),
		Int32(-1),
		Float32(1),
		Float64(-2),
		Int64(1<<40),
		String("hé"),
		Binary([]byte{0xff}),
	)
	buf, err := AppendNode(nil, measured(n))
	require.NoError(t, err)

	props := buf[recordHeaderSize+1:]
	want := []byte{
		'Y', 0xfe, 0xff,
		'C', 1,
		'C', 0,
		'I', 0xff, 0xff, 0xff, 0xff,
		'F', 0x00, 0x00, 0x80, 0x3f,
		'D', 0, 0, 0, 0, 0, 0, 0x00, 0xc0,
		'L', 0, 0, 0, 0, 0, 1, 0, 0,
		'S', 3, 0, 0, 0, 'h', 0xc3, 0xa9,
		'R', 1, 0, 0, 0, 0xff,
	}
	assert.Equal(t, want, props)
	assert.Equal(t, uint32(len(want)), binary.LittleEndian.Uint32(buf[8:]))
}

func TestAppendNode_EndOffsetIsAbsolute(t *testing.T) {
	n := measured(NewNode("X", Int32(42)))
	prefix := make([]byte, 100)

	buf, err := AppendNode(prefix, n)
	require.NoError(t, err)

	assert.Equal(t, uint32(100+19), binary.LittleEndian.Uint32(buf[100:]))
	assert.Len(t, buf, 119)
}

func TestMarshal_EveryEndOffsetMatchesMeasuredSize(t *testing.T) {
	roots := sampleTree()
	data, err := Marshal(Version7400, roots)
	require.NoError(t, err)

	var check func(nodes []*Node, pos int) int
	check = func(nodes []*Node, pos int) int {
		for _, n := range nodes {
			end := int(binary.LittleEndian.Uint32(data[pos:]))
			assert.Equal(t, n.TotalSize(), end-pos, "node %s", n.Name())
			assert.Equal(t, uint32(n.PropertyListSize()), binary.LittleEndian.Uint32(data[pos+8:]))

			childStart := pos + recordHeaderSize + len(n.Name()) + n.PropertyListSize()
			if len(n.Children()) > 0 {
				trailer := check(n.Children(), childStart)
				assert.Equal(t, make([]byte, NullRecordSize), data[trailer:trailer+NullRecordSize])
				assert.Equal(t, end, trailer+NullRecordSize)
			} else {
				assert.Equal(t, end, childStart)
			}
			// The next sibling starts where this node ends.
			pos = end
		}
		return pos
	}
	assert.Equal(t, len(data), check(roots, PreambleSize))
}

func TestMarshal_LeafNeverWritesTrailer(t *testing.T) {
	data, err := Marshal(Version7400, []*Node{NewNode("Objects")})
	require.NoError(t, err)
	assert.Len(t, data, PreambleSize+recordHeaderSize+len("Objects"))
}

func TestMarshal_ChildWithoutPropertiesStillGetsTrailer(t *testing.T) {
	parent := NewNode("A")
	parent.AddChild(NewNode("B"))

	data, err := Marshal(Version7400, []*Node{parent})
	require.NoError(t, err)

	wantLen := PreambleSize + (recordHeaderSize + 1) + (recordHeaderSize + 1) + NullRecordSize
	require.Len(t, data, wantLen)
	assert.Equal(t, make([]byte, NullRecordSize), data[wantLen-NullRecordSize:])
}

func TestMarshal_Deterministic(t *testing.T) {
	a, err := Marshal(Version7400, sampleTree())
	require.NoError(t, err)
	b, err := Marshal(Version7400, sampleTree())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMarshal_SameTreeTwice(t *testing.T) {
	roots := sampleTree()
	a, err := Marshal(Version7400, roots)
	require.NoError(t, err)
	b, err := Marshal(Version7400, roots)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAppendNode_PanicsOnUnsizedNode(t *testing.T) {
	assert.PanicsWithValue(t, `fbx: node "X" has not been measured`, func() {
		_, _ = AppendNode(nil, NewNode("X"))
	})
}

func TestAppendNode_PanicsOnChildMutatedAfterMeasure(t *testing.T) {
	parent := NewNode("A")
	child := parent.AddChild(NewNode("B"))
	Measure(parent)

	child.AddProperty(TypeInt32, 1)

	assert.Panics(t, func() { _, _ = AppendNode(nil, parent) })
}

func TestAppendNode_DetectsSizeMismatch(t *testing.T) {
	n := measured(NewNode("X", Int32(42)))
	n.totalSize++

	_, err := AppendNode(nil, n)

	var mismatch *SizeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "X", mismatch.Node)
	assert.Equal(t, 20, mismatch.Measured)
	assert.Equal(t, 19, mismatch.Written)
}

func TestAppendPreamble_CustomVersion(t *testing.T) {
	buf := AppendPreamble(nil, 7500)
	assert.Equal(t, uint32(7500), binary.LittleEndian.Uint32(buf[23:]))
}

func measured(n *Node) *Node {
	Measure(n)
	return n
}
