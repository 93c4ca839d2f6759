// Package export is the I/O boundary of an export: it decides whether to
// write, marshals the document, and persists the bytes.
//
// The filesystem is an afero.Fs so callers and tests can swap the OS for
// memory. Marshalling always finishes before the first byte is written and
// the bytes go to a temporary file that is renamed into place, so a failed
// write never leaves a partial file at the destination.
package export
