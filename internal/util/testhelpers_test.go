//nolint:revive // var-naming - package name is meaningful
package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestCreateTempDir(t *testing.T) {
	dir := CreateTempDir(t)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("CreateTempDir() did not create directory: %s", dir)
	}
	if !strings.Contains(filepath.Base(dir), "yoink-test-") {
		t.Errorf("CreateTempDir() = %s, want yoink-test- prefix", dir)
	}
}

func TestWriteFileReadFile(t *testing.T) {
	dir := CreateTempDir(t)
	path := filepath.Join(dir, "subdir", "test.txt")
	content := "test content"

	WriteFile(t, path, content)

	if got := ReadFile(t, path); got != content {
		t.Errorf("file content = %q, want %q", got, content)
	}
}

func TestWriteDescriptor(t *testing.T) {
	dir := CreateTempDir(t)
	path := WriteDescriptor(t, filepath.Join(dir, "bashrc.yoink"), "bytes", "~/.bashrc")

	var doc struct {
		Target struct {
			Style string `toml:"style"`
			Path  string `toml:"path"`
		} `toml:"target"`
	}
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		t.Fatalf("descriptor is not valid TOML: %v", err)
	}
	AssertEqual(t, doc.Target.Style, "bytes")
	AssertEqual(t, doc.Target.Path, "~/.bashrc")
}

func TestAssertNoError(t *testing.T) {
	AssertNoError(t, nil)
}

func TestAssertEqual(t *testing.T) {
	t.Run("strings", func(t *testing.T) {
		AssertEqual(t, "hello", "hello")
	})
	t.Run("integers", func(t *testing.T) {
		AssertEqual(t, 42, 42)
	})
}
