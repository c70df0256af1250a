package e2e

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/klauern/yoink/internal/gvdb"
)

// Fixture provides helpers for creating test fixtures in E2E tests.
type Fixture struct {
	t       *testing.T
	baseDir string
}

// NewFixture creates a new fixture helper rooted at the given directory.
func NewFixture(t *testing.T, baseDir string) *Fixture {
	t.Helper()
	return &Fixture{
		t:       t,
		baseDir: baseDir,
	}
}

// WriteFile writes content to a file relative to the fixture base directory.
// It creates parent directories as needed.
func (f *Fixture) WriteFile(relPath, content string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		f.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
		f.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}

	return fullPath
}

// WriteDescriptor writes a descriptor targeting resource with the given style.
// Extra lines are appended to the [target] table verbatim.
func (f *Fixture) WriteDescriptor(relPath, style, resource string, extra ...string) string {
	f.t.Helper()

	var sb strings.Builder
	sb.WriteString("[target]\n")
	fmt.Fprintf(&sb, "style = %q\n", style)
	fmt.Fprintf(&sb, "path = %q\n", resource)
	for _, line := range extra {
		sb.WriteString(line + "\n")
	}

	return f.WriteFile(relPath, sb.String())
}

// WriteDconf writes a dconf database built by build.
func (f *Fixture) WriteDconf(relPath string, build func(*gvdb.Builder)) string {
	f.t.Helper()

	b := gvdb.NewBuilder()
	build(b)

	fullPath := filepath.Join(f.baseDir, relPath)
	if err := b.WriteFile(afero.NewOsFs(), fullPath); err != nil {
		f.t.Fatalf("failed to write dconf database %s: %v", fullPath, err)
	}
	return fullPath
}

// MkdirAll creates a directory and all parent directories relative to the base.
func (f *Fixture) MkdirAll(relPath string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	if err := os.MkdirAll(fullPath, 0o750); err != nil {
		f.t.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// Path returns the full path for a relative path.
func (f *Fixture) Path(relPath string) string {
	return filepath.Join(f.baseDir, relPath)
}

// Exists returns true if the file or directory exists.
func (f *Fixture) Exists(relPath string) bool {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)
	_, err := os.Stat(fullPath)
	return err == nil
}

// ReadFile reads and returns the content of a file.
func (f *Fixture) ReadFile(relPath string) string {
	f.t.Helper()
	fullPath := filepath.Join(f.baseDir, relPath)

	// #nosec G304 - fullPath is constructed from trusted test fixture base and test-provided path
	data, err := os.ReadFile(fullPath)
	if err != nil {
		f.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}

	return string(data)
}

// DotsFixture creates a fixture helper for a dotfiles directory inside the
// isolated home, where descriptors and their data files live.
func (h *Harness) DotsFixture() *Fixture {
	h.t.Helper()

	dir := filepath.Join(h.homeDir, "dots")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		h.t.Fatalf("failed to create dots directory: %v", err)
	}

	return NewFixture(h.t, dir)
}

// HomeFixture creates a fixture helper rooted at the isolated home, where the
// resources descriptors point at live.
func (h *Harness) HomeFixture() *Fixture {
	h.t.Helper()
	return NewFixture(h.t, h.homeDir)
}

// TempFixture creates a fixture helper for a new temporary directory.
func (h *Harness) TempFixture() *Fixture {
	h.t.Helper()

	tempDir := h.t.TempDir()
	return NewFixture(h.t, tempDir)
}
