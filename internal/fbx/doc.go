// Package fbx implements the node-record codec of the binary FBX format
// (version 7.4 semantics).
//
// A file is a preamble followed by a flat sequence of root node records.
// Every record starts with the absolute offset of the byte following its
// whole subtree, so the codec works in two passes:
//
//  1. Measure walks the tree post-order and annotates every node with its
//     total size and the size of its own property list.
//  2. AppendNode walks the tree in the same order and emits bytes, using
//     the cursor position plus the measured size as the end offset.
//
// If the two passes ever disagree every later end offset is wrong, so the
// writer checks the bytes it produced for each node against the measured
// size and fails loudly on mismatch.
//
// # Record layout
//
//	endOffset   uint32 LE
//	propCount   uint32 LE
//	propListLen uint32 LE
//	nameLen     uint8
//	name        [nameLen]byte
//	properties  ...
//	children    ...
//	[13 zero bytes when the node has children]
//
// # Preconditions
//
// Building a malformed tree is a programmer error and panics: a property
// whose value does not fit its type, an array property, a name longer than
// 255 bytes, or writing a node that was not measured. Cycles are not
// detected; measuring a cyclic tree does not terminate.
//
// Decode reads files produced by this package back into a sized tree. It is
// used for inspection and for verifying end offsets in tests.
package fbx
