package fbx

const (
	// recordHeaderSize covers endOffset, propCount, propListLen and nameLen.
	recordHeaderSize = 4 + 4 + 4 + 1

	// NullRecordSize is the all-zero record terminating a child list.
	NullRecordSize = 13
)

// Measure computes the encoded size of n and its subtree, storing the total
// and property list sizes on every node visited.
func Measure(n *Node) int {
	size := recordHeaderSize + len(n.name)

	props := 0
	for _, p := range n.properties {
		props += p.encodedSize()
	}
	size += props

	for _, c := range n.children {
		size += Measure(c)
	}
	if len(n.children) > 0 {
		size += NullRecordSize
	}

	n.totalSize = size
	n.propertyListSize = props
	n.sized = true
	return size
}

// MeasureAll measures a sequence of root nodes and returns the sum of their
// sizes. No null record follows the last root.
func MeasureAll(nodes []*Node) int {
	total := 0
	for _, n := range nodes {
		total += Measure(n)
	}
	return total
}
