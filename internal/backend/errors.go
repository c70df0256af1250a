package backend

import (
	"errors"
	"fmt"

	"github.com/klauern/yoink/internal/model"
)

// Resource operations reported in ResourceError.Op.
const (
	OpRead          = "read"
	OpReadSource    = "read source"
	OpCreateParents = "create parent directories of"
	OpOpen          = "open"
	OpWrite         = "write"
	OpTruncate      = "truncate"
	OpDecode        = "decode"
)

var (
	// ErrUnsupportedDirection is matched by UnsupportedDirectionError.
	ErrUnsupportedDirection = errors.New("unsupported direction")

	// ErrUnknownStyle is returned when no backend serves a configuration.
	ErrUnknownStyle = errors.New("unknown style")
)

// ResourceError reports a failed step against a resource.
type ResourceError struct {
	Resource string
	Op       string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// UnsupportedDirectionError reports a direction a backend cannot perform.
type UnsupportedDirectionError struct {
	Style     model.Style
	Direction model.Direction
}

func (e *UnsupportedDirectionError) Error() string {
	return fmt.Sprintf("%s targets do not support %s", e.Style, e.Direction)
}

// Unwrap lets errors.Is match ErrUnsupportedDirection.
func (e *UnsupportedDirectionError) Unwrap() error {
	return ErrUnsupportedDirection
}
