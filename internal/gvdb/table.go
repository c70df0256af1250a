package gvdb

import (
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/klauern/yoink/internal/gvariant"
)

// Item types.
const (
	TypeValue = 'v'
	TypeList  = 'L'
	TypeTable = 'H'
)

// Table is a GVDB hash table.
type Table struct {
	file    *File
	buckets []uint32
	items   []item
}

type item struct {
	hash     uint32
	parent   uint32
	keyStart uint32
	keySize  uint16
	typ      byte
	value    pointer
}

func (f *File) table(p pointer) (*Table, error) {
	data, err := f.deref(p, 4)
	if err != nil {
		return nil, err
	}
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: hash table header truncated", ErrInvalidFile)
	}

	order := f.order
	bloomWords := order.Uint32(data[0:4]) & (1<<27 - 1)
	nBuckets := order.Uint32(data[4:8])

	offset := uint64(8) + 4*uint64(bloomWords)
	bucketsEnd := offset + 4*uint64(nBuckets)
	if bucketsEnd > uint64(len(data)) {
		return nil, fmt.Errorf("%w: hash table buckets truncated", ErrInvalidFile)
	}

	t := &Table{file: f, buckets: make([]uint32, nBuckets)}
	for i := range t.buckets {
		t.buckets[i] = order.Uint32(data[offset+4*uint64(i):])
	}

	rest := data[bucketsEnd:]
	t.items = make([]item, len(rest)/itemSize)
	for i := range t.items {
		b := rest[i*itemSize : (i+1)*itemSize]
		t.items[i] = item{
			hash:     order.Uint32(b[0:4]),
			parent:   order.Uint32(b[4:8]),
			keyStart: order.Uint32(b[8:12]),
			keySize:  order.Uint16(b[12:14]),
			typ:      b[14],
			value:    readPointer(b[16:24], order),
		}
	}
	return t, nil
}

// Len returns the number of items in the table, including list and table items.
func (t *Table) Len() int {
	return len(t.items)
}

// Keys yields the full name of every item in on-disk order. A key that cannot be
// reconstructed, or that is not valid UTF-8, yields an error; iteration stops there.
func (t *Table) Keys() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for i := range t.items {
			key, err := t.fullKey(i)
			if err == nil && !utf8.ValidString(key) {
				err = fmt.Errorf("%w: key %q is not valid UTF-8", ErrInvalidFile, key)
			}
			if err != nil {
				yield("", err)
				return
			}
			if !yield(key, nil) {
				return
			}
		}
	}
}

// Value returns the value stored under key.
func (t *Table) Value(key string) (gvariant.Value, error) {
	it, err := t.lookup(key)
	if err != nil {
		return gvariant.Value{}, err
	}
	if it.typ != TypeValue {
		return gvariant.Value{}, fmt.Errorf("%w: %q has type %q", ErrNotValue, key, it.typ)
	}

	data, err := t.file.deref(it.value, 8)
	if err != nil {
		return gvariant.Value{}, err
	}
	boxed, err := gvariant.Decode(gvariant.TypeVariant, data, t.file.order)
	if err != nil {
		return gvariant.Value{}, fmt.Errorf("decode %q: %w", key, err)
	}
	v, _ := boxed.Unwrap()
	return v, nil
}

// Table returns the nested hash table stored under key.
func (t *Table) Table(key string) (*Table, error) {
	it, err := t.lookup(key)
	if err != nil {
		return nil, err
	}
	if it.typ != TypeTable {
		return nil, fmt.Errorf("%w: %q is not a table", ErrNotValue, key)
	}
	return t.file.table(it.value)
}

// List returns the key segments of the children of a list item, as dconf uses
// for directories.
func (t *Table) List(key string) ([]string, error) {
	it, err := t.lookup(key)
	if err != nil {
		return nil, err
	}
	if it.typ != TypeList {
		return nil, fmt.Errorf("%w: %q is not a list", ErrNotValue, key)
	}

	data, err := t.file.deref(it.value, 4)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(data)/4)
	for off := 0; off+4 <= len(data); off += 4 {
		idx := t.file.order.Uint32(data[off:])
		if int(idx) >= len(t.items) {
			return nil, fmt.Errorf("%w: list child %d out of range", ErrInvalidFile, idx)
		}
		seg, err := t.segment(t.items[idx])
		if err != nil {
			return nil, err
		}
		names = append(names, seg)
	}
	return names, nil
}

func (t *Table) lookup(key string) (*item, error) {
	if len(t.buckets) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}

	hash := hashKey(key)
	bucket := hash % uint32(len(t.buckets))
	start := t.buckets[bucket]
	end := uint32(len(t.items))
	if int(bucket) < len(t.buckets)-1 {
		end = t.buckets[bucket+1]
	}
	end = min(end, uint32(len(t.items)))

	for i := start; i < end; i++ {
		if t.items[i].hash != hash {
			continue
		}
		name, err := t.fullKey(int(i))
		if err != nil {
			return nil, err
		}
		if name == key {
			return &t.items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
}

func (t *Table) segment(it item) (string, error) {
	end := uint64(it.keyStart) + uint64(it.keySize)
	if end > uint64(len(t.file.data)) {
		return "", fmt.Errorf("%w: key %d..%d out of range", ErrInvalidFile, it.keyStart, end)
	}
	return string(t.file.data[it.keyStart:end]), nil
}

// fullKey rebuilds an item's name by walking its parent chain.
func (t *Table) fullKey(i int) (string, error) {
	name := ""
	for depth := 0; ; depth++ {
		if depth > len(t.items) {
			return "", fmt.Errorf("%w: parent cycle at item %d", ErrInvalidFile, i)
		}
		it := t.items[i]
		seg, err := t.segment(it)
		if err != nil {
			return "", err
		}
		name = seg + name
		if it.parent == noParent {
			return name, nil
		}
		if int(it.parent) >= len(t.items) {
			return "", fmt.Errorf("%w: parent %d out of range", ErrInvalidFile, it.parent)
		}
		i = int(it.parent)
	}
}

// hashKey is the djb2 variant GVDB uses, with key bytes treated as signed chars.
func hashKey(key string) uint32 {
	h := uint32(5381)
	for i := 0; i < len(key); i++ {
		h = h*33 + uint32(int32(int8(key[i])))
	}
	return h
}
