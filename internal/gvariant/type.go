package gvariant

import (
	"errors"
	"fmt"
	"strings"
)

// Type is a parsed GVariant type signature such as "s", "as" or "a{sv}".
type Type struct {
	code   byte
	elem   *Type
	fields []Type
}

// Common types.
var (
	TypeBoolean    = Type{code: 'b'}
	TypeByte       = Type{code: 'y'}
	TypeInt16      = Type{code: 'n'}
	TypeUint16     = Type{code: 'q'}
	TypeInt32      = Type{code: 'i'}
	TypeUint32     = Type{code: 'u'}
	TypeInt64      = Type{code: 'x'}
	TypeUint64     = Type{code: 't'}
	TypeHandle     = Type{code: 'h'}
	TypeDouble     = Type{code: 'd'}
	TypeString     = Type{code: 's'}
	TypeObjectPath = Type{code: 'o'}
	TypeSignature  = Type{code: 'g'}
	TypeVariant    = Type{code: 'v'}
)

// ErrInvalidType is returned when a type signature cannot be parsed.
var ErrInvalidType = errors.New("gvariant: invalid type signature")

// ParseType parses a complete type signature.
func ParseType(sig string) (Type, error) {
	t, rest, err := parseOne(sig)
	if err != nil {
		return Type{}, fmt.Errorf("%w %q: %v", ErrInvalidType, sig, err)
	}
	if rest != "" {
		return Type{}, fmt.Errorf("%w %q: trailing %q", ErrInvalidType, sig, rest)
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error. Intended for constant signatures.
func MustParseType(sig string) Type {
	t, err := ParseType(sig)
	if err != nil {
		panic(err)
	}
	return t
}

// ArrayOf returns the array type with the given element type.
func ArrayOf(elem Type) Type {
	return Type{code: 'a', elem: &elem}
}

// MaybeOf returns the maybe type with the given element type.
func MaybeOf(elem Type) Type {
	return Type{code: 'm', elem: &elem}
}

// TupleOf returns the tuple type with the given member types.
func TupleOf(fields ...Type) Type {
	return Type{code: '(', fields: append([]Type(nil), fields...)}
}

// DictEntryOf returns the dictionary entry type for a key and value type.
func DictEntryOf(key, value Type) Type {
	return Type{code: '{', fields: []Type{key, value}}
}

func parseOne(s string) (Type, string, error) {
	if s == "" {
		return Type{}, "", errors.New("unexpected end of signature")
	}

	c := s[0]
	switch c {
	case 'b', 'y', 'n', 'q', 'i', 'u', 'x', 't', 'h', 'd', 's', 'o', 'g', 'v':
		return Type{code: c}, s[1:], nil
	case 'a', 'm':
		elem, rest, err := parseOne(s[1:])
		if err != nil {
			return Type{}, "", err
		}
		return Type{code: c, elem: &elem}, rest, nil
	case '(':
		rest := s[1:]
		fields := []Type{}
		for {
			if rest == "" {
				return Type{}, "", errors.New("unterminated tuple")
			}
			if rest[0] == ')' {
				return Type{code: '(', fields: fields}, rest[1:], nil
			}
			f, r, err := parseOne(rest)
			if err != nil {
				return Type{}, "", err
			}
			fields = append(fields, f)
			rest = r
		}
	case '{':
		key, rest, err := parseOne(s[1:])
		if err != nil {
			return Type{}, "", err
		}
		if !key.IsBasic() {
			return Type{}, "", fmt.Errorf("dictionary key %q is not a basic type", key)
		}
		value, rest, err := parseOne(rest)
		if err != nil {
			return Type{}, "", err
		}
		if rest == "" || rest[0] != '}' {
			return Type{}, "", errors.New("unterminated dictionary entry")
		}
		return Type{code: '{', fields: []Type{key, value}}, rest[1:], nil
	default:
		return Type{}, "", fmt.Errorf("unknown type code %q", c)
	}
}

// String returns the type signature.
func (t Type) String() string {
	var sb strings.Builder
	t.writeTo(&sb)
	return sb.String()
}

func (t Type) writeTo(sb *strings.Builder) {
	switch t.code {
	case 'a', 'm':
		sb.WriteByte(t.code)
		t.elem.writeTo(sb)
	case '(':
		sb.WriteByte('(')
		for _, f := range t.fields {
			f.writeTo(sb)
		}
		sb.WriteByte(')')
	case '{':
		sb.WriteByte('{')
		t.fields[0].writeTo(sb)
		t.fields[1].writeTo(sb)
		sb.WriteByte('}')
	default:
		sb.WriteByte(t.code)
	}
}

// Code returns the leading type code character.
func (t Type) Code() byte {
	return t.code
}

// Elem returns the element type of an array or maybe type.
func (t Type) Elem() Type {
	if t.elem == nil {
		return Type{}
	}
	return *t.elem
}

// Fields returns the member types of a tuple or dictionary entry type.
func (t Type) Fields() []Type {
	return t.fields
}

// Equal reports whether two types have the same signature.
func (t Type) Equal(o Type) bool {
	return t.String() == o.String()
}

// IsBasic reports whether the type is a basic (non-container) type.
func (t Type) IsBasic() bool {
	switch t.code {
	case 'b', 'y', 'n', 'q', 'i', 'u', 'x', 't', 'h', 'd', 's', 'o', 'g':
		return true
	default:
		return false
	}
}

func (t Type) alignment() int {
	switch t.code {
	case 'n', 'q':
		return 2
	case 'i', 'u', 'h':
		return 4
	case 'x', 't', 'd', 'v':
		return 8
	case 'a', 'm':
		return t.elem.alignment()
	case '(', '{':
		a := 1
		for _, f := range t.fields {
			if fa := f.alignment(); fa > a {
				a = fa
			}
		}
		return a
	default:
		return 1
	}
}

// fixedSize returns the serialized size of fixed-size types, or 0 for variable-size ones.
func (t Type) fixedSize() int {
	switch t.code {
	case 'b', 'y':
		return 1
	case 'n', 'q':
		return 2
	case 'i', 'u', 'h':
		return 4
	case 'x', 't', 'd':
		return 8
	case '(', '{':
		if len(t.fields) == 0 {
			return 1
		}
		offset := 0
		for _, f := range t.fields {
			size := f.fixedSize()
			if size == 0 {
				return 0
			}
			offset = align(offset, f.alignment()) + size
		}
		return align(offset, t.alignment())
	default:
		return 0
	}
}

func align(offset, alignment int) int {
	return (offset + alignment - 1) &^ (alignment - 1)
}
