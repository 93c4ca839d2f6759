// Package harness runs conformance scenarios against the binary writer.
//
// A scenario describes a node tree in YAML together with facts about the
// bytes the writer must produce for it. The harness builds the tree,
// marshals it, decodes the result, re-marshals the decoded tree and then
// checks every assertion. Round-trip identity is always checked.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario covers"
//	version: 7400            # optional, defaults to 7400
//	nodes:
//	  - name: Model
//	    properties:
//	      - {type: L, value: 1}
//	      - {type: String, value: "Cube"}
//	    children:
//	      - name: Version
//	        properties: [{type: I, value: 232}]
//	assertions:
//	  - {type: file_size, size: 101}
//	  - {type: node_size, path: Model/Version, size: 25}
//	  - {type: property_list_size, path: Model, size: 18}
//	  - {type: end_offset, path: Model, offset: 101}
//	  - {type: bytes_at, offset: 27, hex: "65000000"}
//
// Property types are given either as the one-letter wire code or as the
// type name. Binary values are hex strings.
//
// # Assertion Types
//
//   - file_size: total number of bytes written, preamble included
//   - node_size: measured size of the node at path, subtree included
//   - property_list_size: byte length of the node's property list
//   - end_offset: the end offset stored in the node's header
//   - bytes_at: raw bytes at an absolute offset
//
// Paths are node names joined by "/", starting at a top-level node. Each
// step picks the first node with that name.
package harness
