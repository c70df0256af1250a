// Package sync applies descriptors: it pulls each descriptor's resource into the
// associated data file next to it, or pushes that file back into the resource.
//
// # Single descriptors
//
// SyncFile loads one descriptor, builds its backend and moves the bytes:
//
//	s := sync.New(afero.NewOsFs(), sync.DefaultOptions())
//	fr, err := s.SyncFile("dots/bashrc.yoink", model.Pull)
//
// A pull writes into the associated data file (created when missing) and truncates it
// to exactly the pulled length. A push reads the associated data file, which must exist.
//
// # Directories
//
// Walk applies SyncFile to every descriptor in a directory, optionally recursing.
// A failing descriptor never stops the walk: its error is logged and recorded in the
// Result, and the walk returns a BatchError once every descriptor was attempted.
//
// # Path resolution
//
// Resource paths in a descriptor are relative to the descriptor's directory. By default
// they are joined to that directory. With Options.ChangeDir the process working directory
// is changed to the descriptor's directory around the backend call instead, and always
// restored afterwards.
package sync
