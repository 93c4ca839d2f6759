package fbx

import (
	"fmt"
	"math"
	"reflect"
)

// Type identifies the wire type of a property.
// The set is closed; codes are fixed by the file format.
type Type uint8

const (
	TypeInt16 Type = iota + 1
	TypeBool
	TypeInt32
	TypeFloat32
	TypeFloat64
	TypeInt64
	TypeString
	TypeBinary
	TypeFloat32Array
	TypeFloat64Array
	TypeInt64Array
	TypeInt32Array
	TypeBoolArray
)

// VariableWidth is returned by Type.Width for String and Binary.
const VariableWidth = -1

type typeInfo struct {
	name  string
	code  byte
	width int
	array bool
}

var typeTable = [...]typeInfo{
	TypeInt16:        {"Int16", 'Y', 2, false},
	TypeBool:         {"Bool", 'C', 1, false},
	TypeInt32:        {"Int32", 'I', 4, false},
	TypeFloat32:      {"Float32", 'F', 4, false},
	TypeFloat64:      {"Float64", 'D', 8, false},
	TypeInt64:        {"Int64", 'L', 8, false},
	TypeString:       {"String", 'S', VariableWidth, false},
	TypeBinary:       {"Binary", 'R', VariableWidth, false},
	TypeFloat32Array: {"Float32Array", 'f', 4, true},
	TypeFloat64Array: {"Float64Array", 'd', 8, true},
	TypeInt64Array:   {"Int64Array", 'l', 8, true},
	TypeInt32Array:   {"Int32Array", 'i', 4, true},
	TypeBoolArray:    {"BoolArray", 'b', 1, true},
}

func (t Type) info() typeInfo {
	if t == 0 || int(t) >= len(typeTable) {
		panic(fmt.Sprintf("fbx: unknown property type %d", uint8(t)))
	}
	return typeTable[t]
}

// Code returns the one-byte wire code.
func (t Type) Code() byte { return t.info().code }

// Width returns the byte width of a scalar, the element width of an
// array type, or VariableWidth for String and Binary.
func (t Type) Width() int { return t.info().width }

// IsArray reports whether t is one of the array variants.
func (t Type) IsArray() bool { return t.info().array }

func (t Type) String() string {
	if t == 0 || int(t) >= len(typeTable) {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return typeTable[t].name
}

// TypeForCode maps a wire code back to its Type.
func TypeForCode(code byte) (Type, bool) {
	for t := TypeInt16; int(t) < len(typeTable); t++ {
		if typeTable[t].code == code {
			return t, true
		}
	}
	return 0, false
}

// Property is a typed value attached to a node. Properties are immutable.
// Two properties with equal values are still distinct and both get written.
type Property struct {
	typ Type
	// one of int16, bool, int32, float32, float64, int64, string, []byte
	value any
}

func Int16(v int16) *Property     { return &Property{typ: TypeInt16, value: v} }
func Bool(v bool) *Property       { return &Property{typ: TypeBool, value: v} }
func Int32(v int32) *Property     { return &Property{typ: TypeInt32, value: v} }
func Float32(v float32) *Property { return &Property{typ: TypeFloat32, value: v} }
func Float64(v float64) *Property { return &Property{typ: TypeFloat64, value: v} }
func Int64(v int64) *Property     { return &Property{typ: TypeInt64, value: v} }
func String(v string) *Property   { return &Property{typ: TypeString, value: v} }

// Binary copies v so later changes to the caller's slice are not seen.
func Binary(v []byte) *Property {
	return &Property{typ: TypeBinary, value: append([]byte{}, v...)}
}

// NewProperty builds a property of type t from a dynamically typed value.
// Any Go integer is accepted for integer and float types as long as it is
// representable. It panics when v does not fit t, and for array types,
// which this codec does not encode.
func NewProperty(t Type, v any) *Property {
	if t.IsArray() {
		panic(fmt.Sprintf("fbx: array property %v is not supported", t))
	}
	p, ok := convert(t, v)
	if !ok {
		panic(fmt.Sprintf("fbx: %v property cannot hold %T(%v)", t, v, v))
	}
	return p
}

func convert(t Type, v any) (*Property, bool) {
	switch t {
	case TypeBool:
		b, ok := v.(bool)
		return Bool(b), ok
	case TypeString:
		s, ok := v.(string)
		return String(s), ok
	case TypeBinary:
		b, ok := v.([]byte)
		return Binary(b), ok
	case TypeInt16:
		n, ok := toInt64(v)
		if !ok || n < math.MinInt16 || n > math.MaxInt16 {
			return nil, false
		}
		return Int16(int16(n)), true
	case TypeInt32:
		n, ok := toInt64(v)
		if !ok || n < math.MinInt32 || n > math.MaxInt32 {
			return nil, false
		}
		return Int32(int32(n)), true
	case TypeInt64:
		n, ok := toInt64(v)
		return Int64(n), ok
	case TypeFloat32:
		if f, ok := v.(float32); ok {
			return Float32(f), true
		}
		f, ok := toFloat64(v)
		return Float32(float32(f)), ok
	case TypeFloat64:
		f, ok := toFloat64(v)
		return Float64(f), ok
	}
	return nil, false
}

func toInt64(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	n, ok := toInt64(v)
	return float64(n), ok
}

// Type returns the wire type of p.
func (p *Property) Type() Type { return p.typ }

// Value returns the stored value: int16, bool, int32, float32, float64,
// int64, string or []byte. The []byte must not be modified.
func (p *Property) Value() any { return p.value }

// PayloadSize is the encoded size of p excluding its type code.
func (p *Property) PayloadSize() int {
	switch v := p.value.(type) {
	case string:
		return 4 + len(v)
	case []byte:
		return 4 + len(v)
	}
	return p.typ.Width()
}

// encodedSize is the size of p inside a property list.
func (p *Property) encodedSize() int {
	return 1 + p.PayloadSize()
}

func (p *Property) String() string {
	switch v := p.value.(type) {
	case string:
		return fmt.Sprintf("%v(%q)", p.typ, v)
	case []byte:
		return fmt.Sprintf("%v(%x)", p.typ, v)
	}
	return fmt.Sprintf("%v(%v)", p.typ, p.value)
}
