// Package document builds the fixed top-level skeleton of an FBX 7.4 file.
//
// Build returns the root records in the order readers expect:
//
//	FBXHeaderExtension, FileId, CreationTime, Creator, GlobalSettings,
//	Documents, References, Definitions, Objects, Connections, Takes
//
// Objects and Connections are left empty. Callers that export geometry
// attach their Geometry/Model subtrees and connection records to
// Document.Objects and Document.Connections before marshalling; the codec
// does not care what those subtrees contain.
//
// Everything that varies between runs comes in through Options: the
// application identity, the clock and the file id source. With a fixed
// clock and FixedFileIDs two builds are byte-identical.
package document
