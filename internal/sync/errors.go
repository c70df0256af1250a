package sync

import (
	"errors"
	"fmt"

	"github.com/klauern/yoink/internal/model"
)

var (
	// ErrAssociatedFileMissing is matched when a push finds no associated data file.
	ErrAssociatedFileMissing = errors.New("associated data file does not exist")

	// ErrBatchFailed is matched by BatchError.
	ErrBatchFailed = errors.New("one or more paths could not be yoinked")

	// ErrPathNotFound is returned by Run for a target that does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrNotFileOrDir is returned by Run for a target such as a pipe or device.
	ErrNotFileOrDir = errors.New("is not a file or directory")
)

// AssociatedFileError reports a failed step against a descriptor's associated data file.
type AssociatedFileError struct {
	Path string
	Op   string
	Err  error
}

func (e *AssociatedFileError) Error() string {
	return fmt.Sprintf("%s associated file %s: %v", e.Op, e.Path, e.Err)
}

func (e *AssociatedFileError) Unwrap() error {
	return e.Err
}

// SyncError attaches the descriptor and direction to any failure of one descriptor's sync.
type SyncError struct {
	Descriptor string
	Direction  model.Direction
	Err        error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Direction, e.Descriptor, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// BatchError reports a directory walk in which at least one path failed.
// The individual failures are in the walk's Result.
type BatchError struct {
	Root     string
	Failures int
}

func (e *BatchError) Error() string {
	noun := "failures"
	if e.Failures == 1 {
		noun = "failure"
	}
	return fmt.Sprintf("%v (%d %s under %s)", ErrBatchFailed, e.Failures, noun, e.Root)
}

// Unwrap lets errors.Is match ErrBatchFailed.
func (e *BatchError) Unwrap() error {
	return ErrBatchFailed
}
