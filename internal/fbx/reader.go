package fbx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrArrayProperty is returned by Decode for array-typed properties, which
// this codec neither writes nor reads.
var ErrArrayProperty = errors.New("fbx: array properties are not supported")

// DecodeError describes malformed input at a byte offset.
type DecodeError struct {
	Offset  int
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fbx: offset %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("fbx: offset %d: %s", e.Offset, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// File is a decoded binary file.
type File struct {
	Version uint32
	Nodes   []*Node
}

// Decode parses a binary file into a tree of nodes.
//
// Every record's end offset is checked against the position where its
// subtree actually ends, and every property list length against the bytes
// its properties occupy. Decoded nodes are left measured with their
// on-disk sizes, so Marshal reproduces data byte for byte.
//
// A null record at the top level ends the root list; anything after it
// (the footer some producers append) is ignored.
func Decode(data []byte) (*File, error) {
	if len(data) < PreambleSize {
		return nil, &DecodeError{Offset: len(data), Message: "truncated preamble"}
	}
	if string(data[:len(Magic)]) != Magic {
		return nil, &DecodeError{Offset: 0, Message: "bad magic"}
	}
	if data[len(Magic)] != preambleMarker || data[len(Magic)+1] != 0 {
		return nil, &DecodeError{Offset: len(Magic), Message: "bad preamble marker"}
	}

	f := &File{Version: binary.LittleEndian.Uint32(data[len(Magic)+2:])}
	d := &decoder{data: data, pos: PreambleSize}
	for d.pos < len(d.data) && !d.atNullRecord() {
		n, err := d.node()
		if err != nil {
			return nil, err
		}
		f.Nodes = append(f.Nodes, n)
	}
	return f, nil
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) errorf(format string, args ...any) error {
	return &DecodeError{Offset: d.pos, Message: fmt.Sprintf(format, args...)}
}

func (d *decoder) need(n int) error {
	if n < 0 || len(d.data)-d.pos < n {
		return d.errorf("need %d bytes, have %d", n, len(d.data)-d.pos)
	}
	return nil
}

func (d *decoder) u32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(d.data[d.pos:])
	d.pos += 4
	return v, nil
}

func (d *decoder) bytes(n int) ([]byte, error) {
	if err := d.need(n); err != nil {
		return nil, err
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) atNullRecord() bool {
	if len(d.data)-d.pos < NullRecordSize {
		return false
	}
	for _, b := range d.data[d.pos : d.pos+NullRecordSize] {
		if b != 0 {
			return false
		}
	}
	return true
}

func (d *decoder) node() (*Node, error) {
	start := d.pos
	if err := d.need(recordHeaderSize); err != nil {
		return nil, err
	}
	end, _ := d.u32()
	count, _ := d.u32()
	listLen, _ := d.u32()
	nameLen := int(d.data[d.pos])
	d.pos++

	name, err := d.bytes(nameLen)
	if err != nil {
		return nil, err
	}
	n := &Node{name: string(name)}
	if int(end) < d.pos || int(end) > len(d.data) {
		return nil, &DecodeError{Offset: start, Message: fmt.Sprintf("node %q has end offset %d outside [%d, %d]", n.name, end, d.pos, len(d.data))}
	}

	propsStart := d.pos
	for i := uint32(0); i < count; i++ {
		p, err := d.property()
		if err != nil {
			return nil, err
		}
		n.properties = append(n.properties, p)
	}
	if got := d.pos - propsStart; got != int(listLen) {
		return nil, &DecodeError{Offset: propsStart, Message: fmt.Sprintf("node %q properties occupy %d bytes, header says %d", n.name, got, listLen)}
	}

	if d.pos < int(end) {
		for !d.atNullRecord() {
			if d.pos >= int(end) {
				return nil, d.errorf("child list of node %q is not terminated", n.name)
			}
			c, err := d.node()
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, c)
		}
		d.pos += NullRecordSize
	}
	if d.pos != int(end) {
		return nil, &DecodeError{Offset: start, Message: fmt.Sprintf("node %q ends at %d, header says %d", n.name, d.pos, end)}
	}

	n.totalSize = d.pos - start
	n.propertyListSize = int(listLen)
	n.sized = true
	return n, nil
}

func (d *decoder) property() (*Property, error) {
	if err := d.need(1); err != nil {
		return nil, err
	}
	code := d.data[d.pos]
	t, ok := TypeForCode(code)
	if !ok {
		return nil, d.errorf("unknown property type code %q", code)
	}
	if t.IsArray() {
		return nil, &DecodeError{Offset: d.pos, Message: fmt.Sprintf("%v property", t), Err: ErrArrayProperty}
	}
	d.pos++

	if t == TypeString || t == TypeBinary {
		l, err := d.u32()
		if err != nil {
			return nil, err
		}
		b, err := d.bytes(int(l))
		if err != nil {
			return nil, err
		}
		if t == TypeString {
			return String(string(b)), nil
		}
		return Binary(b), nil
	}

	b, err := d.bytes(t.Width())
	if err != nil {
		return nil, err
	}
	switch t {
	case TypeInt16:
		return Int16(int16(binary.LittleEndian.Uint16(b))), nil
	case TypeBool:
		return Bool(b[0] != 0), nil
	case TypeInt32:
		return Int32(int32(binary.LittleEndian.Uint32(b))), nil
	case TypeFloat32:
		return Float32(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
	case TypeFloat64:
		return Float64(math.Float64frombits(binary.LittleEndian.Uint64(b))), nil
	default:
		return Int64(int64(binary.LittleEndian.Uint64(b))), nil
	}
}
