package gvariant

import (
	"encoding/binary"
	"math"
)

// Marshal serializes the value using the given byte order.
func (v Value) Marshal(order binary.ByteOrder) []byte {
	return encode(v, order)
}

func encode(v Value, order binary.ByteOrder) []byte {
	t := v.typ
	switch t.code {
	case 'b':
		if v.data.(bool) {
			return []byte{1}
		}
		return []byte{0}
	case 'y':
		return []byte{v.data.(uint8)}
	case 'n':
		return appendUint16(order, nil, uint16(v.data.(int16)))
	case 'q':
		return appendUint16(order, nil, v.data.(uint16))
	case 'i', 'h':
		return appendUint32(order, nil, uint32(v.data.(int32)))
	case 'u':
		return appendUint32(order, nil, v.data.(uint32))
	case 'x':
		return appendUint64(order, nil, uint64(v.data.(int64)))
	case 't':
		return appendUint64(order, nil, v.data.(uint64))
	case 'd':
		return appendUint64(order, nil, math.Float64bits(v.data.(float64)))
	case 's', 'o', 'g':
		return append([]byte(v.data.(string)), 0)
	case 'v':
		child := v.data.(Value)
		buf := encode(child, order)
		buf = append(buf, 0)
		return append(buf, child.typ.String()...)
	case 'm':
		child := v.data.(*Value)
		if child == nil {
			return []byte{}
		}
		buf := encode(*child, order)
		if t.elem.fixedSize() == 0 {
			buf = append(buf, 0)
		}
		return buf
	case 'a':
		return encodeArray(t, v.data.([]Value), order)
	case '(', '{':
		return encodeTuple(t, v.data.([]Value), order)
	default:
		return nil
	}
}

func encodeArray(t Type, items []Value, order binary.ByteOrder) []byte {
	buf := []byte{}
	elem := *t.elem
	fixed := elem.fixedSize() > 0

	var ends []int
	for _, item := range items {
		buf = pad(buf, elem.alignment())
		buf = append(buf, encode(item, order)...)
		if !fixed {
			ends = append(ends, len(buf))
		}
	}
	if fixed {
		return buf
	}
	return appendOffsets(buf, ends, order)
}

func encodeTuple(t Type, items []Value, order binary.ByteOrder) []byte {
	if len(t.fields) == 0 {
		return []byte{0}
	}

	buf := []byte{}
	var ends []int
	for i, item := range items {
		f := t.fields[i]
		buf = pad(buf, f.alignment())
		buf = append(buf, encode(item, order)...)
		if f.fixedSize() == 0 && i != len(items)-1 {
			ends = append(ends, len(buf))
		}
	}

	if size := t.fixedSize(); size > 0 {
		for len(buf) < size {
			buf = append(buf, 0)
		}
		return buf
	}

	// offsets are stored last-member-first
	for i, j := 0, len(ends)-1; i < j; i, j = i+1, j-1 {
		ends[i], ends[j] = ends[j], ends[i]
	}
	return appendOffsets(buf, ends, order)
}

func pad(buf []byte, alignment int) []byte {
	for len(buf)%alignment != 0 {
		buf = append(buf, 0)
	}
	return buf
}

func appendOffsets(body []byte, offsets []int, order binary.ByteOrder) []byte {
	n := len(offsets)
	if n == 0 {
		return body
	}

	var total int
	switch {
	case len(body)+n <= math.MaxUint8:
		total = len(body) + n
	case len(body)+2*n <= math.MaxUint16:
		total = len(body) + 2*n
	case uint64(len(body)+4*n) <= math.MaxUint32:
		total = len(body) + 4*n
	default:
		total = len(body) + 8*n
	}

	size := offsetSize(total)
	for _, off := range offsets {
		switch size {
		case 1:
			body = append(body, byte(off))
		case 2:
			body = appendUint16(order, body, uint16(off))
		case 4:
			body = appendUint32(order, body, uint32(off))
		default:
			body = appendUint64(order, body, uint64(off))
		}
	}
	return body
}

func appendUint16(order binary.ByteOrder, b []byte, v uint16) []byte {
	var tmp [2]byte
	order.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendUint32(order binary.ByteOrder, b []byte, v uint32) []byte {
	var tmp [4]byte
	order.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendUint64(order binary.ByteOrder, b []byte, v uint64) []byte {
	var tmp [8]byte
	order.PutUint64(tmp[:], v)
	return append(b, tmp[:]...)
}
