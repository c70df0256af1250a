package backend

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/klauern/yoink/internal/gvdb"
	"github.com/klauern/yoink/internal/logging"
	"github.com/klauern/yoink/internal/model"
)

// Dconf serializes a dconf database as "key = value" lines. It is pull-only.
type Dconf struct {
	fs       afero.Fs
	resource string
	cfg      model.DconfConfig
}

// NewDconf creates a dconf backend for cfg.
func NewDconf(env Env, cfg model.DconfConfig) (*Dconf, error) {
	resource, err := resolve(env, cfg.Path)
	if err != nil {
		return nil, err
	}
	return &Dconf{fs: filesystem(env), resource: resource, cfg: cfg}, nil
}

// Style implements Backend.
func (d *Dconf) Style() model.Style { return model.StyleDconf }

// Resource implements Backend.
func (d *Dconf) Resource() string { return d.resource }

// Pull writes one "key = value" line per key, in the database's item order. Keys
// matching an exclude prefix are left out. A key whose value cannot be read (directory
// entries, damaged values) is skipped and only logged at debug level; the output is
// lossy for such keys. A key that is not valid text stops the pull.
func (d *Dconf) Pull(w io.Writer) (int64, error) {
	db, err := gvdb.Open(d.fs, d.resource)
	if err != nil {
		return 0, &ResourceError{Resource: d.resource, Op: OpRead, Err: err}
	}
	table, err := db.Root()
	if err != nil {
		return 0, &ResourceError{Resource: d.resource, Op: OpDecode, Err: err}
	}

	var total int64
	for key, err := range table.Keys() {
		if err != nil {
			return total, &ResourceError{Resource: d.resource, Op: OpDecode, Err: err}
		}
		if d.cfg.Excludes(key) {
			continue
		}

		value, err := table.Value(key)
		if err != nil {
			logging.Debug("skipping key without a readable value",
				logging.Resource(d.resource), "key", key, logging.Err(err))
			continue
		}

		n, err := fmt.Fprintf(w, "%s = %s\n", key, value)
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("write key %s: %w", key, err)
		}
	}
	return total, nil
}

// Push is not supported for dconf databases.
func (d *Dconf) Push(io.Reader) error {
	return &UnsupportedDirectionError{Style: model.StyleDconf, Direction: model.Push}
}
