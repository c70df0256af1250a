package sync

import (
	"fmt"
	"strings"

	"github.com/klauern/yoink/internal/model"
)

// FileResult is the outcome of syncing one descriptor.
type FileResult struct {
	// Descriptor is the descriptor path as it was walked or given.
	Descriptor string

	// Direction is the direction that was attempted.
	Direction model.Direction

	// Style is the descriptor's target style, empty when the descriptor did not load.
	Style model.Style

	// Resource is the resolved resource path, empty when no backend was built.
	Resource string

	// Bytes is the number of bytes pulled. Pushes report zero.
	Bytes int64

	// Error contains any error that occurred during processing.
	Error error
}

// Success returns true if the descriptor was synced.
func (fr *FileResult) Success() bool {
	return fr.Error == nil
}

// DirError records a directory that could not be fully enumerated.
type DirError struct {
	Path string
	Err  error
}

// Result contains the complete outcome of a sync run.
type Result struct {
	// Root is the path the run started from.
	Root string

	// Direction is the direction of the run.
	Direction model.Direction

	// Files contains the result for each attempted descriptor, in walk order.
	Files []FileResult

	// DirErrors contains enumeration failures.
	DirErrors []DirError
}

// Succeeded returns descriptors that were synced.
func (r *Result) Succeeded() []FileResult {
	return r.filter(true)
}

// Failed returns descriptors that failed to sync.
func (r *Result) Failed() []FileResult {
	return r.filter(false)
}

func (r *Result) filter(success bool) []FileResult {
	var filtered []FileResult
	for _, fr := range r.Files {
		if fr.Success() == success {
			filtered = append(filtered, fr)
		}
	}
	return filtered
}

// Failures returns the number of failed descriptors plus enumeration failures.
func (r *Result) Failures() int {
	return len(r.Failed()) + len(r.DirErrors)
}

// Success returns true if nothing failed.
func (r *Result) Success() bool {
	return r.Failures() == 0
}

// TotalProcessed returns the number of descriptors attempted.
func (r *Result) TotalProcessed() int {
	return len(r.Files)
}

// TotalBytes returns the number of bytes pulled across all descriptors.
func (r *Result) TotalBytes() int64 {
	var total int64
	for _, fr := range r.Files {
		total += fr.Bytes
	}
	return total
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s\n", directionVerb(r.Direction), r.Root))
	sb.WriteString(fmt.Sprintf("  Descriptors: %d\n", r.TotalProcessed()))
	sb.WriteString(fmt.Sprintf("  Succeeded:   %d\n", len(r.Succeeded())))
	sb.WriteString(fmt.Sprintf("  Failed:      %d\n", len(r.Failed())))
	if r.Direction == model.Pull {
		sb.WriteString(fmt.Sprintf("  Bytes:       %d\n", r.TotalBytes()))
	}

	if !r.Success() {
		sb.WriteString("\nErrors:\n")
		for _, de := range r.DirErrors {
			sb.WriteString(fmt.Sprintf("  - %s: %v\n", de.Path, de.Err))
		}
		for _, f := range r.Failed() {
			sb.WriteString(fmt.Sprintf("  - %s: %v\n", f.Descriptor, Cause(f.Error)))
		}
	}

	return sb.String()
}

func directionVerb(d model.Direction) string {
	switch d {
	case model.Pull:
		return "Pulled"
	case model.Push:
		return "Pushed"
	default:
		return "Synced"
	}
}

// Cause drops the SyncError prefix for output that already names the descriptor.
func Cause(err error) error {
	if se, ok := err.(*SyncError); ok {
		return se.Err
	}
	return err
}
