// Package pathctx resolves the paths a descriptor names relative to the descriptor's
// own directory.
//
// Resolution is explicit by default: BaseDir and Resolve join a resource path to the
// descriptor's directory without touching process state. Scoped is the compatibility
// mode: it changes the working directory for the duration of an action and always
// changes it back.
package pathctx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/klauern/yoink/internal/logging"
)

// ErrNoParentDirectory is returned when a descriptor path has no parent directory.
var ErrNoParentDirectory = errors.New("descriptor has no parent directory")

// RestoreError reports a failure to change back to the previous working directory.
type RestoreError struct {
	Dir string
	Err error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore working directory %s: %v", e.Dir, e.Err)
}

func (e *RestoreError) Unwrap() error {
	return e.Err
}

// BaseDir returns the absolute directory containing descriptorPath.
func BaseDir(descriptorPath string) (string, error) {
	if descriptorPath == "" {
		return "", ErrNoParentDirectory
	}
	abs, err := filepath.Abs(descriptorPath)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", descriptorPath, err)
	}
	dir := filepath.Dir(abs)
	if dir == abs {
		return "", fmt.Errorf("%w: %s", ErrNoParentDirectory, descriptorPath)
	}
	return dir, nil
}

// Resolve returns the location of p as seen from base. A leading "~" expands to the
// user's home directory, absolute paths are returned cleaned, and anything else is
// joined to base. An empty base leaves relative paths relative to the working directory.
func Resolve(base, p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", p, err)
	}
	if filepath.IsAbs(expanded) || base == "" {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(base, expanded), nil
}

// Scoped runs fn with the working directory set to the directory containing
// descriptorPath and restores the previous working directory afterwards, whether or
// not fn failed. A failed restore is joined to fn's error; fn's value is returned as is.
func Scoped[T any](descriptorPath string, fn func() (T, error)) (T, error) {
	var zero T

	base, err := BaseDir(descriptorPath)
	if err != nil {
		return zero, err
	}

	prev, err := os.Getwd()
	if err != nil {
		return zero, fmt.Errorf("get working directory: %w", err)
	}
	if err := os.Chdir(base); err != nil {
		return zero, fmt.Errorf("change to %s: %w", base, err)
	}
	logging.Debug("changed working directory", logging.Path(base))

	v, err := fn()

	if rerr := os.Chdir(prev); rerr != nil {
		logging.Error("failed to restore working directory", logging.Path(prev), logging.Err(rerr))
		err = errors.Join(err, &RestoreError{Dir: prev, Err: rerr})
	}
	return v, err
}
