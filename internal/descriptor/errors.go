package descriptor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKind is returned for paths that do not carry the descriptor extension.
	ErrInvalidKind = errors.New("not a descriptor")

	// ErrMissingTarget is the cause of a MalformedError when the [target] table is absent.
	ErrMissingTarget = errors.New("missing [target] table")

	// ErrMissingField is the cause of a MalformedError when a required key is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownStyle is the cause of a MalformedError for an unrecognized target.style.
	ErrUnknownStyle = errors.New("unknown style")

	// ErrExists is returned by Write when the descriptor already exists.
	ErrExists = errors.New("descriptor already exists")
)

// InvalidKindError reports a path rejected before it was read.
type InvalidKindError struct {
	Path      string
	Extension string
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("%s: not a descriptor (expected a .%s file)", e.Path, e.Extension)
}

// Unwrap lets errors.Is match ErrInvalidKind.
func (e *InvalidKindError) Unwrap() error {
	return ErrInvalidKind
}

// ReadError reports a descriptor that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read descriptor %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// MalformedError reports a descriptor whose contents do not match the schema.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed descriptor %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
