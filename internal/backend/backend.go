// Package backend implements pull and push for each kind of resource a descriptor
// can target.
//
// Every style has one Backend implementation, built from the descriptor's configuration
// by New. Callers only see the Backend interface, so adding a style means adding a
// configuration variant in model and a case in FactoryFor.
package backend

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/klauern/yoink/internal/model"
	"github.com/klauern/yoink/internal/pathctx"
)

// Backend moves bytes between a resource and a local stream.
type Backend interface {
	// Style returns the style this backend serves.
	Style() model.Style

	// Resource returns the resolved resource path.
	Resource() string

	// Pull writes the resource's serialized form to w and returns the number of bytes written.
	Pull(w io.Writer) (int64, error)

	// Push replaces the resource's content with everything read from r.
	Push(r io.Reader) error
}

// Env is what a backend needs from its caller.
type Env struct {
	// Fs is the filesystem resources are read from and written to.
	Fs afero.Fs

	// BaseDir is the directory relative resource paths are joined to. When empty,
	// relative paths are left relative to the process working directory.
	BaseDir string
}

// Factory builds a backend for one configuration variant.
type Factory func(env Env, cfg model.StyleConfig) (Backend, error)

// BytesFactory returns the Factory for raw bytes resources.
func BytesFactory() Factory {
	return func(env Env, cfg model.StyleConfig) (Backend, error) {
		c, ok := cfg.(model.BytesConfig)
		if !ok {
			return nil, fmt.Errorf("%w: %T for style bytes", ErrUnknownStyle, cfg)
		}
		return NewBytes(env, c)
	}
}

// DconfFactory returns the Factory for dconf settings databases.
func DconfFactory() Factory {
	return func(env Env, cfg model.StyleConfig) (Backend, error) {
		c, ok := cfg.(model.DconfConfig)
		if !ok {
			return nil, fmt.Errorf("%w: %T for style dconf", ErrUnknownStyle, cfg)
		}
		return NewDconf(env, c)
	}
}

// FactoryFor returns the Factory for a style.
func FactoryFor(style model.Style) (Factory, error) {
	switch style {
	case model.StyleBytes:
		return BytesFactory(), nil
	case model.StyleDconf:
		return DconfFactory(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownStyle, style)
	}
}

// New builds the backend selected by cfg.
func New(env Env, cfg model.StyleConfig) (Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: no target configured", ErrUnknownStyle)
	}
	factory, err := FactoryFor(cfg.Style())
	if err != nil {
		return nil, err
	}
	return factory(env, cfg)
}

func resolve(env Env, p string) (string, error) {
	if p == "" {
		return "", errors.New("empty resource path")
	}
	return pathctx.Resolve(env.BaseDir, p)
}

func filesystem(env Env) afero.Fs {
	if env.Fs == nil {
		return afero.NewOsFs()
	}
	return env.Fs
}
