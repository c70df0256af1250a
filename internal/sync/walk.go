package sync

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/klauern/yoink/internal/logging"
	"github.com/klauern/yoink/internal/model"
)

// Walk syncs every descriptor in dir, descending into subdirectories when recursive
// is set. Failures are logged and recorded and the walk moves on to the next entry.
// When anything failed the returned error is a *BatchError and the Result lists every
// failure.
func (s *Syncer) Walk(dir string, direction model.Direction, recursive bool) (*Result, error) {
	defer logging.Timer("walk")()

	result := &Result{Root: dir, Direction: direction}
	s.walk(dir, direction, recursive, result, make(map[string]bool))

	logging.Debug("walk completed",
		logging.Path(dir),
		logging.Direction(direction.String()),
		logging.Count(result.TotalProcessed()),
	)

	if failures := result.Failures(); failures > 0 {
		return result, &BatchError{Root: dir, Failures: failures}
	}
	return result, nil
}

// walk syncs the descriptors in dir. visited holds the real paths of directories
// already walked, so a link back to an ancestor is skipped instead of looping.
func (s *Syncer) walk(dir string, direction model.Direction, recursive bool, result *Result, visited map[string]bool) {
	key := s.realPath(dir)
	if visited[key] {
		s.skip(dir, "already walked")
		return
	}
	visited[key] = true

	entries, err := s.readDir(dir)
	if err != nil {
		logging.Error("failed to read directory", logging.Path(dir), logging.Err(err))
		result.DirErrors = append(result.DirErrors, DirError{Path: dir, Err: err})
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		info := entry
		if entry.Mode()&os.ModeSymlink != 0 {
			info, err = s.fs.Stat(path)
			if err != nil {
				s.skip(path, "broken link")
				continue
			}
		}

		switch {
		case info.IsDir():
			if recursive {
				s.walk(path, direction, recursive, result, visited)
			}
		case info.Mode().IsRegular() && s.loader.IsDescriptor(path):
			fr, err := s.SyncFile(path, direction)
			if err != nil {
				logging.Error("failed to sync descriptor",
					logging.Descriptor(path),
					logging.Direction(direction.String()),
					logging.Err(err),
				)
			}
			result.Files = append(result.Files, fr)
		}
	}
}

// skip reports a walk entry passed over without an attempt.
func (s *Syncer) skip(path, reason string) {
	logging.Debug("skipping path", logging.Path(path), slog.String("reason", reason))
	if s.opts.OnSkip != nil {
		s.opts.OnSkip(path, reason)
	}
}

// realPath resolves links in dir on the OS filesystem. Other filesystems have no
// links, so the cleaned path already identifies the directory.
func (s *Syncer) realPath(dir string) string {
	if _, ok := s.fs.(*afero.OsFs); ok {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return resolved
		}
	}
	return filepath.Clean(dir)
}

// readDir lists dir sorted by name. Entries read before an error are still returned.
func (s *Syncer) readDir(dir string) ([]os.FileInfo, error) {
	f, err := s.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	entries, err := f.Readdir(-1)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, err
}
