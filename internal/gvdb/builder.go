package gvdb

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/klauern/yoink/internal/gvariant"
)

// Builder assembles a GVDB file. Keys beginning with "/" are laid out the way dconf
// writes them: every directory level becomes a list item and keys share their parents'
// key bytes. Other keys are stored flat.
type Builder struct {
	order   binary.ByteOrder
	entries []*buildEntry
	index   map[string]int
}

type buildEntry struct {
	key      string
	segment  string
	parent   int
	typ      byte
	value    gvariant.Value
	children []int
}

// NewBuilder returns an empty little-endian builder.
func NewBuilder() *Builder {
	return &Builder{order: binary.LittleEndian, index: make(map[string]int)}
}

// WithByteOrder sets the byte order of the produced file.
func (b *Builder) WithByteOrder(order binary.ByteOrder) *Builder {
	b.order = order
	return b
}

// Set stores v under key, replacing any previous value.
func (b *Builder) Set(key string, v gvariant.Value) *Builder {
	if i, ok := b.index[key]; ok && b.entries[i].typ == TypeValue {
		b.entries[i].value = v
		return b
	}

	parent, segment := -1, key
	if strings.HasPrefix(key, "/") {
		if cut := strings.LastIndex(key[:len(key)-1], "/"); cut >= 0 {
			parent = b.dir(key[:cut+1])
			segment = key[cut+1:]
		}
	}
	b.add(&buildEntry{key: key, segment: segment, parent: parent, typ: TypeValue, value: v})
	return b
}

// dir returns the list item for a "/a/b/" style directory, creating its ancestors.
func (b *Builder) dir(path string) int {
	if i, ok := b.index[path]; ok {
		return i
	}
	if path == "/" {
		return b.add(&buildEntry{key: path, segment: path, parent: -1, typ: TypeList})
	}
	cut := strings.LastIndex(path[:len(path)-1], "/")
	parent := b.dir(path[:cut+1])
	return b.add(&buildEntry{key: path, segment: path[cut+1:], parent: parent, typ: TypeList})
}

func (b *Builder) add(e *buildEntry) int {
	i := len(b.entries)
	b.entries = append(b.entries, e)
	b.index[e.key] = i
	if e.parent >= 0 {
		p := b.entries[e.parent]
		p.children = append(p.children, i)
	}
	return i
}

// Bytes serializes the file.
func (b *Builder) Bytes() []byte {
	n := len(b.entries)
	nBuckets := max(n, 1)

	hashes := make([]uint32, n)
	for i, e := range b.entries {
		hashes[i] = hashKey(e.key)
	}

	// items are stored grouped by bucket; pos maps entry index to item index
	ordered := make([]int, n)
	for i := range ordered {
		ordered[i] = i
	}
	sort.SliceStable(ordered, func(x, y int) bool {
		return hashes[ordered[x]]%uint32(nBuckets) < hashes[ordered[y]]%uint32(nBuckets)
	})
	pos := make([]int, n)
	for itemIdx, entryIdx := range ordered {
		pos[entryIdx] = itemIdx
	}

	buckets := make([]uint32, nBuckets)
	counts := make([]uint32, nBuckets)
	for _, h := range hashes {
		counts[h%uint32(nBuckets)]++
	}
	var running uint32
	for i := range buckets {
		buckets[i] = running
		running += counts[i]
	}

	tableStart := headerSize
	tableEnd := tableStart + 8 + 4*nBuckets + itemSize*n
	buf := make([]byte, tableEnd)

	o := b.order
	if o == binary.BigEndian {
		copy(buf, signatureBE)
	} else {
		copy(buf, signatureLE)
	}
	o.PutUint32(buf[16:], uint32(tableStart))
	o.PutUint32(buf[20:], uint32(tableEnd))

	o.PutUint32(buf[tableStart:], 0)
	o.PutUint32(buf[tableStart+4:], uint32(nBuckets))
	for i, start := range buckets {
		o.PutUint32(buf[tableStart+8+4*i:], start)
	}

	itemsStart := tableStart + 8 + 4*nBuckets
	for itemIdx, entryIdx := range ordered {
		e := b.entries[entryIdx]

		keyStart := len(buf)
		buf = append(buf, e.segment...)

		var payload []byte
		align := 8
		switch e.typ {
		case TypeValue:
			payload = gvariant.Variant(e.value).Marshal(o)
		case TypeList:
			align = 4
			payload = make([]byte, 4*len(e.children))
			for i, child := range e.children {
				o.PutUint32(payload[4*i:], uint32(pos[child]))
			}
		}
		for len(buf)%align != 0 {
			buf = append(buf, 0)
		}
		valueStart := len(buf)
		buf = append(buf, payload...)

		parent := uint32(noParent)
		if e.parent >= 0 {
			parent = uint32(pos[e.parent])
		}

		rec := buf[itemsStart+itemSize*itemIdx:]
		o.PutUint32(rec[0:], hashes[entryIdx])
		o.PutUint32(rec[4:], parent)
		o.PutUint32(rec[8:], uint32(keyStart))
		o.PutUint16(rec[12:], uint16(len(e.segment)))
		rec[14] = e.typ
		rec[15] = 0
		o.PutUint32(rec[16:], uint32(valueStart))
		o.PutUint32(rec[20:], uint32(len(buf)))
	}
	return buf
}

// WriteFile writes the serialized file to path, creating parent directories.
func (b *Builder) WriteFile(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, b.Bytes(), os.FileMode(0o600))
}
