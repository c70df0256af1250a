package sync

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/klauern/yoink/internal/backend"
	"github.com/klauern/yoink/internal/descriptor"
	"github.com/klauern/yoink/internal/logging"
	"github.com/klauern/yoink/internal/model"
	"github.com/klauern/yoink/internal/pathctx"
)

// Options configures synchronization behavior.
type Options struct {
	// Extension marks descriptor files (default "yoink").
	Extension string

	// ChangeDir changes the process working directory to each descriptor's directory
	// around the backend call instead of joining resource paths to it. Only meaningful
	// with an OS-backed filesystem.
	ChangeDir bool

	// OnResult is called after each descriptor is attempted.
	OnResult func(FileResult)

	// OnSkip is called for walk entries passed over without an attempt: broken links
	// and directories reached again through a link.
	OnSkip func(path, reason string)
}

// DefaultOptions returns the default sync options.
func DefaultOptions() Options {
	return Options{
		Extension: model.DefaultExtension,
	}
}

// Syncer applies descriptors found on a filesystem.
type Syncer struct {
	fs     afero.Fs
	loader *descriptor.Loader
	opts   Options
}

// New creates a Syncer over fs.
func New(fs afero.Fs, opts Options) *Syncer {
	return &Syncer{
		fs:     fs,
		loader: descriptor.NewLoader(fs, opts.Extension),
		opts:   opts,
	}
}

// Run syncs path: a directory is walked and a regular file is synced as one descriptor.
// Anything else fails with ErrNotFileOrDir.
func (s *Syncer) Run(path string, direction model.Direction, recursive bool) (*Result, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, err
	}

	switch {
	case info.IsDir():
		return s.Walk(path, direction, recursive)
	case !info.Mode().IsRegular():
		return nil, fmt.Errorf("%s %w", path, ErrNotFileOrDir)
	}

	result := &Result{Root: path, Direction: direction}
	fr, err := s.SyncFile(path, direction)
	result.Files = append(result.Files, fr)
	return result, err
}

// SyncFile syncs one descriptor. The returned FileResult's Error is the returned error.
func (s *Syncer) SyncFile(path string, direction model.Direction) (FileResult, error) {
	fr := FileResult{Descriptor: path, Direction: direction}

	log := logging.With(
		logging.Descriptor(path),
		logging.Direction(direction.String()),
	)
	log.Debug("syncing descriptor")

	var err error
	switch direction {
	case model.Pull:
		err = s.pull(path, &fr)
	case model.Push:
		err = s.push(path, &fr)
	default:
		err = fmt.Errorf("unknown direction %q", direction)
	}

	if err != nil {
		fr.Error = &SyncError{Descriptor: path, Direction: direction, Err: err}
	} else {
		log.Info("synced descriptor",
			logging.Style(fr.Style.String()),
			logging.Resource(fr.Resource),
			logging.Bytes(fr.Bytes),
		)
	}

	if s.opts.OnResult != nil {
		s.opts.OnResult(fr)
	}
	return fr, fr.Error
}

// pull writes the resource into the associated data file and truncates the file to the
// pulled length. Bytes already written stay in place when the pull fails midway.
func (s *Syncer) pull(path string, fr *FileResult) error {
	d, b, err := s.prepare(path, fr)
	if err != nil {
		return err
	}

	assoc := d.AssociatedPath()
	// #nosec G302 G304 - the associated file sits next to the user's descriptor
	f, err := s.fs.OpenFile(assoc, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return &AssociatedFileError{Path: assoc, Op: "open", Err: err}
	}
	defer func() { _ = f.Close() }()

	n, err := s.inContext(d, func() (int64, error) {
		return b.Pull(f)
	})
	fr.Bytes = n
	if err != nil {
		return err
	}

	if err := f.Truncate(n); err != nil {
		return &AssociatedFileError{Path: assoc, Op: "truncate", Err: err}
	}
	if err := f.Close(); err != nil {
		return &AssociatedFileError{Path: assoc, Op: "close", Err: err}
	}
	return nil
}

// push writes the associated data file into the resource.
func (s *Syncer) push(path string, fr *FileResult) error {
	d, b, err := s.prepare(path, fr)
	if err != nil {
		return err
	}

	assoc := d.AssociatedPath()
	f, err := s.fs.Open(assoc)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%w: %w", ErrAssociatedFileMissing, err)
		}
		return &AssociatedFileError{Path: assoc, Op: "open", Err: err}
	}
	defer func() { _ = f.Close() }()

	_, err = s.inContext(d, func() (int64, error) {
		return 0, b.Push(f)
	})
	return err
}

// prepare loads the descriptor and builds its backend.
func (s *Syncer) prepare(path string, fr *FileResult) (*model.Descriptor, backend.Backend, error) {
	d, err := s.loader.Load(path)
	if err != nil {
		return nil, nil, err
	}
	fr.Style = d.Target.Style()

	env := backend.Env{Fs: s.fs}
	if !s.opts.ChangeDir {
		env.BaseDir, err = pathctx.BaseDir(d.Path)
		if err != nil {
			return nil, nil, err
		}
	}

	b, err := backend.New(env, d.Target.Config)
	if err != nil {
		return nil, nil, err
	}
	fr.Resource = b.Resource()
	return d, b, nil
}

func (s *Syncer) inContext(d *model.Descriptor, fn func() (int64, error)) (int64, error) {
	if s.opts.ChangeDir {
		return pathctx.Scoped(d.Path, fn)
	}
	return fn()
}
