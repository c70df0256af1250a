package backend

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/klauern/yoink/internal/model"
)

// Bytes copies a file's raw content.
type Bytes struct {
	fs       afero.Fs
	resource string
}

// NewBytes creates a raw bytes backend for cfg.
func NewBytes(env Env, cfg model.BytesConfig) (*Bytes, error) {
	resource, err := resolve(env, cfg.Path)
	if err != nil {
		return nil, err
	}
	return &Bytes{fs: filesystem(env), resource: resource}, nil
}

// Style implements Backend.
func (b *Bytes) Style() model.Style { return model.StyleBytes }

// Resource implements Backend.
func (b *Bytes) Resource() string { return b.resource }

// Pull copies the resource verbatim to w.
func (b *Bytes) Pull(w io.Writer) (int64, error) {
	data, err := afero.ReadFile(b.fs, b.resource)
	if err != nil {
		return 0, &ResourceError{Resource: b.resource, Op: OpRead, Err: err}
	}
	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("write pulled content: %w", err)
	}
	return int64(n), nil
}

// Push replaces the resource with the content of r, creating it and its parent
// directories when missing. The resource is truncated to the pushed length.
func (b *Bytes) Push(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &ResourceError{Resource: b.resource, Op: OpReadSource, Err: err}
	}

	if err := b.fs.MkdirAll(filepath.Dir(b.resource), 0o750); err != nil {
		return &ResourceError{Resource: b.resource, Op: OpCreateParents, Err: err}
	}

	// #nosec G302 G304 - the resource path comes from the user's descriptor
	f, err := b.fs.OpenFile(b.resource, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &ResourceError{Resource: b.resource, Op: OpOpen, Err: err}
	}
	defer func() { _ = f.Close() }()

	n, err := f.Write(data)
	if err != nil {
		return &ResourceError{Resource: b.resource, Op: OpWrite, Err: err}
	}
	if err := f.Truncate(int64(n)); err != nil {
		return &ResourceError{Resource: b.resource, Op: OpTruncate, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ResourceError{Resource: b.resource, Op: OpWrite, Err: err}
	}
	return nil
}
