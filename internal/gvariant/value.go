package gvariant

import (
	"fmt"
)

// Value is a typed GVariant value.
type Value struct {
	typ  Type
	data any
}

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{typ: TypeBoolean, data: b} }

// Byte returns a byte value.
func Byte(b uint8) Value { return Value{typ: TypeByte, data: b} }

// Int16 returns an int16 value.
func Int16(n int16) Value { return Value{typ: TypeInt16, data: n} }

// Uint16 returns a uint16 value.
func Uint16(n uint16) Value { return Value{typ: TypeUint16, data: n} }

// Int32 returns an int32 value.
func Int32(n int32) Value { return Value{typ: TypeInt32, data: n} }

// Uint32 returns a uint32 value.
func Uint32(n uint32) Value { return Value{typ: TypeUint32, data: n} }

// Int64 returns an int64 value.
func Int64(n int64) Value { return Value{typ: TypeInt64, data: n} }

// Uint64 returns a uint64 value.
func Uint64(n uint64) Value { return Value{typ: TypeUint64, data: n} }

// Handle returns a file descriptor handle value.
func Handle(n int32) Value { return Value{typ: TypeHandle, data: n} }

// Double returns a double value.
func Double(f float64) Value { return Value{typ: TypeDouble, data: f} }

// String returns a string value.
func String(s string) Value { return Value{typ: TypeString, data: s} }

// ObjectPath returns an object path value.
func ObjectPath(s string) Value { return Value{typ: TypeObjectPath, data: s} }

// Signature returns a signature value.
func Signature(s string) Value { return Value{typ: TypeSignature, data: s} }

// Variant boxes a value in a variant.
func Variant(v Value) Value { return Value{typ: TypeVariant, data: v} }

// Just returns a maybe value holding v.
func Just(v Value) Value {
	inner := v
	return Value{typ: MaybeOf(v.typ), data: &inner}
}

// Nothing returns an empty maybe value of the given element type.
func Nothing(elem Type) Value {
	return Value{typ: MaybeOf(elem), data: (*Value)(nil)}
}

// Array returns an array value. Every item must have the element type.
func Array(elem Type, items ...Value) (Value, error) {
	for i, item := range items {
		if !item.typ.Equal(elem) {
			return Value{}, fmt.Errorf("gvariant: array item %d has type %s, want %s", i, item.typ, elem)
		}
	}
	return Value{typ: ArrayOf(elem), data: append([]Value{}, items...)}, nil
}

// Strings returns an array of strings.
func Strings(ss ...string) Value {
	items := make([]Value, len(ss))
	for i, s := range ss {
		items[i] = String(s)
	}
	return Value{typ: ArrayOf(TypeString), data: items}
}

// Tuple returns a tuple of the given values.
func Tuple(items ...Value) Value {
	fields := make([]Type, len(items))
	for i, item := range items {
		fields[i] = item.typ
	}
	return Value{typ: TupleOf(fields...), data: append([]Value{}, items...)}
}

// DictEntry returns a dictionary entry. The key must have a basic type.
func DictEntry(key, value Value) (Value, error) {
	if !key.typ.IsBasic() {
		return Value{}, fmt.Errorf("gvariant: dictionary key type %s is not basic", key.typ)
	}
	return Value{typ: DictEntryOf(key.typ, value.typ), data: []Value{key, value}}, nil
}

// Type returns the value's type.
func (v Value) Type() Type {
	return v.typ
}

// Interface returns the Go representation of a basic value: bool, uint8, int16, uint16,
// int32, uint32, int64, uint64, float64 or string. Containers return nil.
func (v Value) Interface() any {
	if v.typ.IsBasic() {
		return v.data
	}
	return nil
}

// Children returns the items of an array, tuple or dictionary entry.
func (v Value) Children() []Value {
	if items, ok := v.data.([]Value); ok {
		return items
	}
	return nil
}

// Unwrap returns the value inside a variant or a non-empty maybe.
func (v Value) Unwrap() (Value, bool) {
	switch inner := v.data.(type) {
	case Value:
		return inner, true
	case *Value:
		if inner == nil {
			return Value{}, false
		}
		return *inner, true
	default:
		return Value{}, false
	}
}
