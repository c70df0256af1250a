package gvariant

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// ErrMalformed is returned when serialized data does not match its type.
var ErrMalformed = errors.New("gvariant: malformed data")

// Decode deserializes data as a value of type t using the given byte order.
func Decode(t Type, data []byte, order binary.ByteOrder) (Value, error) {
	return decode(t, data, order)
}

func malformed(t Type, format string, args ...any) error {
	return fmt.Errorf("%w: type %s: %s", ErrMalformed, t, fmt.Sprintf(format, args...))
}

func decode(t Type, data []byte, order binary.ByteOrder) (Value, error) {
	if size := t.fixedSize(); size > 0 && len(data) != size {
		return Value{}, malformed(t, "got %d bytes, want %d", len(data), size)
	}

	switch t.code {
	case 'b':
		if data[0] > 1 {
			return Value{}, malformed(t, "boolean byte %d", data[0])
		}
		return Value{typ: t, data: data[0] == 1}, nil
	case 'y':
		return Value{typ: t, data: data[0]}, nil
	case 'n':
		return Value{typ: t, data: int16(order.Uint16(data))}, nil
	case 'q':
		return Value{typ: t, data: order.Uint16(data)}, nil
	case 'i', 'h':
		return Value{typ: t, data: int32(order.Uint32(data))}, nil
	case 'u':
		return Value{typ: t, data: order.Uint32(data)}, nil
	case 'x':
		return Value{typ: t, data: int64(order.Uint64(data))}, nil
	case 't':
		return Value{typ: t, data: order.Uint64(data)}, nil
	case 'd':
		return Value{typ: t, data: math.Float64frombits(order.Uint64(data))}, nil
	case 's', 'o', 'g':
		return decodeString(t, data)
	case 'v':
		return decodeVariant(t, data, order)
	case 'm':
		return decodeMaybe(t, data, order)
	case 'a':
		return decodeArray(t, data, order)
	case '(', '{':
		return decodeTuple(t, data, order)
	default:
		return Value{}, malformed(t, "unsupported type")
	}
}

func decodeString(t Type, data []byte) (Value, error) {
	if len(data) == 0 || data[len(data)-1] != 0 {
		return Value{}, malformed(t, "missing nul terminator")
	}
	s := data[:len(data)-1]
	if bytes.IndexByte(s, 0) >= 0 {
		return Value{}, malformed(t, "embedded nul")
	}
	if !utf8.Valid(s) {
		return Value{}, malformed(t, "invalid UTF-8")
	}
	return Value{typ: t, data: string(s)}, nil
}

func decodeVariant(t Type, data []byte, order binary.ByteOrder) (Value, error) {
	sep := bytes.LastIndexByte(data, 0)
	if sep < 0 {
		return Value{}, malformed(t, "missing type separator")
	}
	childType, err := ParseType(string(data[sep+1:]))
	if err != nil {
		return Value{}, malformed(t, "%v", err)
	}
	child, err := decode(childType, data[:sep], order)
	if err != nil {
		return Value{}, err
	}
	return Value{typ: t, data: child}, nil
}

func decodeMaybe(t Type, data []byte, order binary.ByteOrder) (Value, error) {
	if len(data) == 0 {
		return Value{typ: t, data: (*Value)(nil)}, nil
	}

	childData := data
	if t.elem.fixedSize() == 0 {
		if data[len(data)-1] != 0 {
			return Value{}, malformed(t, "missing maybe terminator")
		}
		childData = data[:len(data)-1]
	}

	child, err := decode(*t.elem, childData, order)
	if err != nil {
		return Value{}, err
	}
	return Value{typ: t, data: &child}, nil
}

func decodeArray(t Type, data []byte, order binary.ByteOrder) (Value, error) {
	elem := *t.elem
	items := []Value{}
	if len(data) == 0 {
		return Value{typ: t, data: items}, nil
	}

	if size := elem.fixedSize(); size > 0 {
		if len(data)%size != 0 {
			return Value{}, malformed(t, "%d bytes is not a multiple of %d", len(data), size)
		}
		for off := 0; off < len(data); off += size {
			item, err := decode(elem, data[off:off+size], order)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{typ: t, data: items}, nil
	}

	osz := offsetSize(len(data))
	last := readOffset(data[len(data)-osz:], osz, order)
	if last > len(data) || (len(data)-last)%osz != 0 {
		return Value{}, malformed(t, "bad framing offset %d", last)
	}

	n := (len(data) - last) / osz
	start := 0
	for i := 0; i < n; i++ {
		end := readOffset(data[last+i*osz:], osz, order)
		start = align(start, elem.alignment())
		if end < start || end > last {
			return Value{}, malformed(t, "item %d spans %d..%d", i, start, end)
		}
		item, err := decode(elem, data[start:end], order)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
		start = end
	}
	return Value{typ: t, data: items}, nil
}

func decodeTuple(t Type, data []byte, order binary.ByteOrder) (Value, error) {
	items := []Value{}
	if len(t.fields) == 0 {
		return Value{typ: t, data: items}, nil
	}

	osz := offsetSize(len(data))
	framesEnd := len(data)
	pos := 0
	for i, f := range t.fields {
		pos = align(pos, f.alignment())

		var end int
		switch {
		case f.fixedSize() > 0:
			end = pos + f.fixedSize()
		case i == len(t.fields)-1:
			end = framesEnd
		default:
			framesEnd -= osz
			if framesEnd < pos {
				return Value{}, malformed(t, "framing offsets overlap member %d", i)
			}
			end = readOffset(data[framesEnd:], osz, order)
		}

		if pos > end || end > framesEnd {
			return Value{}, malformed(t, "member %d spans %d..%d", i, pos, end)
		}
		item, err := decode(f, data[pos:end], order)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
		pos = end
	}
	return Value{typ: t, data: items}, nil
}

// offsetSize returns the width of framing offsets in a container of the given size.
func offsetSize(size int) int {
	switch {
	case uint64(size) > math.MaxUint32:
		return 8
	case size > math.MaxUint16:
		return 4
	case size > math.MaxUint8:
		return 2
	case size > 0:
		return 1
	default:
		return 0
	}
}

func readOffset(b []byte, size int, order binary.ByteOrder) int {
	switch size {
	case 1:
		return int(b[0])
	case 2:
		return int(order.Uint16(b))
	case 4:
		return int(order.Uint32(b))
	default:
		return int(order.Uint64(b))
	}
}
