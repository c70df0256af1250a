package gvdb

import (
	"encoding/binary"
	"errors"
	"slices"
	"testing"

	"github.com/spf13/afero"

	"github.com/klauern/yoink/internal/gvariant"
)

func collectKeys(t *testing.T, table *Table) []string {
	t.Helper()
	var keys []string
	for key, err := range table.Keys() {
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		keys = append(keys, key)
	}
	return keys
}

func TestHashKey(t *testing.T) {
	tests := map[string]struct {
		key  string
		want uint32
	}{
		"empty":       {key: "", want: 5381},
		"single char": {key: "a", want: 5381*33 + 'a'},
		"signed high": {key: "\xff", want: 5381*33 - 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := hashKey(tt.key); got != tt.want {
				t.Errorf("hashKey(%q) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}

func TestBuilder_RoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			data := NewBuilder().
				WithByteOrder(order).
				Set("/org/gnome/desktop/interface/gtk-theme", gvariant.String("Adwaita-dark")).
				Set("/org/gnome/desktop/interface/clock-format", gvariant.String("24h")).
				Set("/org/gnome/shell/favorite-apps", gvariant.Strings("firefox.desktop")).
				Set("/org/gnome/desktop/session/idle-delay", gvariant.Uint32(300)).
				Bytes()

			f, err := Parse(data)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if f.ByteOrder() != order {
				t.Errorf("ByteOrder() = %v, want %v", f.ByteOrder(), order)
			}

			root, err := f.Root()
			if err != nil {
				t.Fatalf("Root() error = %v", err)
			}

			values := map[string]string{
				"/org/gnome/desktop/interface/gtk-theme":    "'Adwaita-dark'",
				"/org/gnome/desktop/interface/clock-format": "'24h'",
				"/org/gnome/shell/favorite-apps":            "['firefox.desktop']",
				"/org/gnome/desktop/session/idle-delay":     "uint32 300",
			}
			for key, want := range values {
				v, err := root.Value(key)
				if err != nil {
					t.Errorf("Value(%q) error = %v", key, err)
					continue
				}
				if got := v.String(); got != want {
					t.Errorf("Value(%q) = %s, want %s", key, got, want)
				}
			}

			keys := collectKeys(t, root)
			// 4 values + "/", "/org/", "/org/gnome/", desktop, interface, session, shell
			if len(keys) != 11 || root.Len() != 11 {
				t.Errorf("got %d keys (Len %d), want 11: %v", len(keys), root.Len(), keys)
			}
			for key := range values {
				if !slices.Contains(keys, key) {
					t.Errorf("Keys() missing %q", key)
				}
			}
			if !slices.Contains(keys, "/org/gnome/desktop/") {
				t.Errorf("Keys() missing directory item: %v", keys)
			}
		})
	}
}

func TestTable_DirectoryItems(t *testing.T) {
	data := NewBuilder().
		Set("/a/x", gvariant.Int32(1)).
		Set("/a/y", gvariant.Int32(2)).
		Set("/b", gvariant.Int32(3)).
		Bytes()

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	root, err := f.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}

	if _, err := root.Value("/a/"); !errors.Is(err, ErrNotValue) {
		t.Errorf("Value(dir) error = %v, want ErrNotValue", err)
	}

	children, err := root.List("/a/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !slices.Equal(children, []string{"x", "y"}) {
		t.Errorf("List(/a/) = %v, want [x y]", children)
	}

	top, err := root.List("/")
	if err != nil {
		t.Fatalf("List(/) error = %v", err)
	}
	if !slices.Equal(top, []string{"a/", "b"}) {
		t.Errorf("List(/) = %v, want [a/ b]", top)
	}

	if _, err := root.List("/b"); !errors.Is(err, ErrNotValue) {
		t.Errorf("List(value) error = %v, want ErrNotValue", err)
	}
	if _, err := root.Table("/a/"); !errors.Is(err, ErrNotValue) {
		t.Errorf("Table(list) error = %v, want ErrNotValue", err)
	}
}

func TestTable_FlatKeys(t *testing.T) {
	data := NewBuilder().
		Set("a.x", gvariant.Int32(1)).
		Set("a.y", gvariant.Int32(2)).
		Set("b.z", gvariant.Int32(3)).
		Set("b.z", gvariant.Int32(4)).
		Bytes()

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	root, err := f.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}

	keys := collectKeys(t, root)
	slices.Sort(keys)
	if !slices.Equal(keys, []string{"a.x", "a.y", "b.z"}) {
		t.Errorf("Keys() = %v", keys)
	}

	v, err := root.Value("b.z")
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v.String() != "4" {
		t.Errorf("Value(b.z) = %s, want replaced value 4", v)
	}

	if _, err := root.Value("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Value(missing) error = %v, want ErrNotFound", err)
	}
}

func TestTable_EmptyFile(t *testing.T) {
	f, err := Parse(NewBuilder().Bytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	root, err := f.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	if root.Len() != 0 {
		t.Errorf("Len() = %d, want 0", root.Len())
	}
	if _, err := root.Value("x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Value() error = %v, want ErrNotFound", err)
	}
}

func TestKeys_InvalidUTF8(t *testing.T) {
	data := NewBuilder().Set("bad\xffkey", gvariant.Int32(1)).Bytes()

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	root, err := f.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}

	var gotErr error
	for _, err := range root.Keys() {
		if err != nil {
			gotErr = err
		}
	}
	if !errors.Is(gotErr, ErrInvalidFile) {
		t.Errorf("Keys() error = %v, want ErrInvalidFile", gotErr)
	}
}

func TestParse_Invalid(t *testing.T) {
	valid := NewBuilder().Set("k", gvariant.Int32(1)).Bytes()

	badVersion := slices.Clone(valid)
	binary.LittleEndian.PutUint32(badVersion[8:], 1)

	badRoot := slices.Clone(valid)
	binary.LittleEndian.PutUint32(badRoot[20:], uint32(len(valid)+100))

	tests := map[string]struct {
		data     []byte
		rootFail bool
	}{
		"too short":     {data: []byte("GVariant")},
		"bad signature": {data: append([]byte("NotAGvdb"), valid[8:]...)},
		"bad version":   {data: badVersion},
		"root overflow": {data: badRoot, rootFail: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := Parse(tt.data)
			if !tt.rootFail {
				if !errors.Is(err, ErrInvalidFile) {
					t.Errorf("Parse() error = %v, want ErrInvalidFile", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if _, err := f.Root(); !errors.Is(err, ErrInvalidFile) {
				t.Errorf("Root() error = %v, want ErrInvalidFile", err)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := NewBuilder().Set("/k", gvariant.Bool(true)).WriteFile(fs, "/home/u/.config/dconf/user"); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := Open(fs, "/home/u/.config/dconf/user")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	root, err := f.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	v, err := root.Value("/k")
	if err != nil || v.String() != "true" {
		t.Errorf("Value(/k) = %v, %v", v, err)
	}

	if _, err := Open(fs, "/missing"); err == nil {
		t.Error("Open(missing) should fail")
	}
}
