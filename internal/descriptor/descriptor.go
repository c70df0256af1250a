// Package descriptor loads descriptor files into the model and writes new ones.
//
// A descriptor is a TOML document with a single [target] table. The style key selects
// the backend and decides which other keys are read:
//
//	[target]
//	style = "dconf"
//	path = "~/.config/dconf/user"
//	exclude = ["/org/gnome/shell/"]
package descriptor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"github.com/klauern/yoink/internal/logging"
	"github.com/klauern/yoink/internal/model"
)

// Loader reads descriptor files with a fixed extension from a filesystem.
type Loader struct {
	fs  afero.Fs
	ext string
}

// NewLoader creates a loader for files ending in "."+ext. An empty ext selects the default.
func NewLoader(fs afero.Fs, ext string) *Loader {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = model.DefaultExtension
	}
	return &Loader{fs: fs, ext: ext}
}

// Extension returns the recognized extension, without the dot.
func (l *Loader) Extension() string {
	return l.ext
}

// IsDescriptor reports whether path names a descriptor. A file named only by the
// extension (".yoink") has no associated data file and is not a descriptor.
func (l *Loader) IsDescriptor(path string) bool {
	return HasExtension(path, l.ext)
}

// HasExtension reports whether the base name of path is a non-empty stem followed by "."+ext.
func HasExtension(path, ext string) bool {
	name := filepath.Base(path)
	suffix := "." + ext
	return strings.HasSuffix(name, suffix) && len(name) > len(suffix) && filepath.Ext(name) == suffix
}

// Load checks the extension of path, reads it and parses it.
func (l *Loader) Load(path string) (*model.Descriptor, error) {
	if !l.IsDescriptor(path) {
		return nil, &InvalidKindError{Path: path, Extension: l.ext}
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	return Parse(path, data)
}

type document struct {
	Target toml.Primitive `toml:"target"`
}

type header struct {
	Style string `toml:"style"`
}

// Parse decodes descriptor text. path is only used for error reporting and is recorded
// in the returned descriptor. Keys the selected style does not use are logged and ignored.
func Parse(path string, data []byte) (*model.Descriptor, error) {
	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	if !md.IsDefined("target") {
		return nil, &MalformedError{Path: path, Err: ErrMissingTarget}
	}

	var head header
	if err := md.PrimitiveDecode(doc.Target, &head); err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	if !md.IsDefined("target", "style") {
		return nil, &MalformedError{Path: path, Err: fmt.Errorf("%w: target.style", ErrMissingField)}
	}

	var cfg model.StyleConfig
	switch style := model.Style(head.Style); style {
	case model.StyleBytes:
		var c model.BytesConfig
		err = md.PrimitiveDecode(doc.Target, &c)
		cfg = c
	case model.StyleDconf:
		var c model.DconfConfig
		err = md.PrimitiveDecode(doc.Target, &c)
		cfg = c
	default:
		return nil, &MalformedError{
			Path: path,
			Err:  fmt.Errorf("%w %q (valid: bytes, dconf)", ErrUnknownStyle, head.Style),
		}
	}
	if err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	if !md.IsDefined("target", "path") {
		return nil, &MalformedError{Path: path, Err: fmt.Errorf("%w: target.path", ErrMissingField)}
	}

	for _, key := range md.Undecoded() {
		logging.Warn("ignoring unknown descriptor key",
			logging.Descriptor(path),
			logging.Style(head.Style),
			"key", key.String())
	}

	return &model.Descriptor{Path: path, Target: model.Target{Config: cfg}}, nil
}

type encodedTarget struct {
	Style   string   `toml:"style"`
	Path    string   `toml:"path"`
	Exclude []string `toml:"exclude,omitempty"`
}

// Encode writes cfg as descriptor text.
func Encode(w io.Writer, cfg model.StyleConfig) error {
	target := encodedTarget{Style: cfg.Style().String(), Path: cfg.ResourcePath()}
	if dc, ok := cfg.(model.DconfConfig); ok {
		target.Exclude = dc.Exclude
	}

	enc := toml.NewEncoder(w)
	enc.Indent = ""
	return enc.Encode(struct {
		Target encodedTarget `toml:"target"`
	}{Target: target})
}

// Write encodes cfg to a new descriptor at path. An existing file is only replaced
// when overwrite is set.
func Write(fs afero.Fs, path string, cfg model.StyleConfig, overwrite bool) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return err
	}
	if exists && !overwrite {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, cfg); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
