package fbx

import "fmt"

// MaxNameLen is the longest node name the one-byte length field can hold.
const MaxNameLen = 255

// Node is a named record holding ordered properties and ordered children.
//
// Nodes are mutated only while a tree is being built. Measure annotates
// them with their sizes; any later mutation clears that annotation and the
// writer refuses to emit the node until it is measured again.
type Node struct {
	name       string
	properties []*Property
	children   []*Node

	totalSize        int
	propertyListSize int
	sized            bool
}

// NewNode creates a node with the given properties.
// It panics if name is longer than MaxNameLen bytes.
func NewNode(name string, props ...*Property) *Node {
	if len(name) > MaxNameLen {
		panic(fmt.Sprintf("fbx: node name is %d bytes, max %d", len(name), MaxNameLen))
	}
	n := &Node{name: name}
	n.AddProperties(props...)
	return n
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// AddProperty appends one property of type t per value.
// It panics if a value does not fit t (see NewProperty).
func (n *Node) AddProperty(t Type, values ...any) {
	for _, v := range values {
		n.properties = append(n.properties, NewProperty(t, v))
	}
	n.sized = false
}

// AddProperties appends prebuilt properties in order.
func (n *Node) AddProperties(props ...*Property) {
	for _, p := range props {
		if p == nil {
			panic("fbx: nil property")
		}
		n.properties = append(n.properties, p)
	}
	n.sized = false
}

// AddChild appends children in order and returns the first one, which
// lets builders attach and populate a child in one expression:
//
//	ts := header.AddChild(fbx.NewNode("CreationTimeStamp"))
//
// It returns nil when called without children.
func (n *Node) AddChild(children ...*Node) *Node {
	if len(children) == 0 {
		return nil
	}
	for _, c := range children {
		if c == nil {
			panic("fbx: nil child node")
		}
		n.children = append(n.children, c)
	}
	n.sized = false
	return children[0]
}

// Properties returns the properties in insertion order.
// The slice must not be modified.
func (n *Node) Properties() []*Property { return n.properties }

// Children returns the children in insertion order.
// The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Child returns the first child called name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Sized reports whether n carries sizes from a Measure that happened after
// its last mutation.
func (n *Node) Sized() bool { return n.sized }

// TotalSize is the encoded size of n including its subtree and trailer.
// It panics if n has not been measured.
func (n *Node) TotalSize() int {
	n.mustBeSized()
	return n.totalSize
}

// PropertyListSize is the encoded size of n's own properties.
// It panics if n has not been measured.
func (n *Node) PropertyListSize() int {
	n.mustBeSized()
	return n.propertyListSize
}

func (n *Node) mustBeSized() {
	if !n.sized {
		panic(fmt.Sprintf("fbx: node %q has not been measured", n.name))
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%d props, %d children)", n.name, len(n.properties), len(n.children))
}
