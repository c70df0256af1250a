package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/klauern/yoink/internal/config"
	"github.com/klauern/yoink/internal/descriptor"
	"github.com/klauern/yoink/internal/model"
)

func TestNewCommand(t *testing.T) {
	tests := map[string]struct {
		name       string
		args       []string
		wantPath   string
		wantConfig model.StyleConfig
	}{
		"bytes with extension added": {
			name:       "bashrc",
			args:       []string{"--resource", "~/.bashrc"},
			wantPath:   "bashrc.yoink",
			wantConfig: model.BytesConfig{Path: "~/.bashrc"},
		},
		"extension kept": {
			name:       "vimrc.yoink",
			args:       []string{"--resource", "../.vimrc"},
			wantPath:   "vimrc.yoink",
			wantConfig: model.BytesConfig{Path: "../.vimrc"},
		},
		"dconf with excludes": {
			name: "dconf",
			args: []string{
				"--style", "dconf",
				"--resource", "~/.config/dconf/user",
				"--exclude", "/org/gnome/shell/",
				"--exclude", "/apps/",
			},
			wantPath: "dconf.yoink",
			wantConfig: model.DconfConfig{
				Path:    "~/.config/dconf/user",
				Exclude: []string{"/org/gnome/shell/", "/apps/"},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			args := append([]string{"new"}, tt.args...)
			args = append(args, filepath.Join(dir, "dots", tt.name))

			out, err := runCLI(t, args...)
			if err != nil {
				t.Fatalf("new error = %v", err)
			}

			path := filepath.Join(dir, "dots", tt.wantPath)
			if !strings.Contains(out, "Created '"+path+"'") {
				t.Errorf("output %q missing created line", out)
			}

			d, err := descriptor.NewLoader(afero.NewOsFs(), "").Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			assertStyleConfig(t, d.Target.Config, tt.wantConfig)
		})
	}
}

func assertStyleConfig(t *testing.T, got, want model.StyleConfig) {
	t.Helper()
	if got.Style() != want.Style() || got.ResourcePath() != want.ResourcePath() {
		t.Fatalf("config = %#v, want %#v", got, want)
	}
	gotDconf, ok := got.(model.DconfConfig)
	if !ok {
		return
	}
	wantExclude := want.(model.DconfConfig).Exclude
	if strings.Join(gotDconf.Exclude, ",") != strings.Join(wantExclude, ",") {
		t.Errorf("exclude = %v, want %v", gotDconf.Exclude, wantExclude)
	}
}

func TestNewCommand_Existing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yoink")

	if _, err := runCLI(t, "new", "--resource", "a", path); err != nil {
		t.Fatalf("first new error = %v", err)
	}

	_, err := runCLI(t, "new", "--resource", "b", path)
	if !errors.Is(err, descriptor.ErrExists) {
		t.Fatalf("second new error = %v, want ErrExists", err)
	}

	if _, err := runCLI(t, "new", "--force", "--resource", "b", path); err != nil {
		t.Fatalf("forced new error = %v", err)
	}
	d, err := descriptor.NewLoader(afero.NewOsFs(), "").Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := d.Target.Config.ResourcePath(); got != "b" {
		t.Errorf("resource = %q, want %q", got, "b")
	}
}

func TestNewCommand_ExcludeIgnoredForBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bashrc.yoink")

	out, err := runCLI(t, "new", "--resource", "~/.bashrc", "--exclude", "/apps/", path)
	if err != nil {
		t.Fatalf("new error = %v", err)
	}
	if !strings.Contains(out, "⚠ --exclude is ignored for the bytes style") {
		t.Errorf("output %q missing warning", out)
	}

	d, err := descriptor.NewLoader(afero.NewOsFs(), "").Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	assertStyleConfig(t, d.Target.Config, model.BytesConfig{Path: "~/.bashrc"})
}

func TestNewCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := map[string][]string{
		"missing resource": {"new", filepath.Join(dir, "a")},
		"unknown style":    {"new", "--style", "ini", "--resource", "x", filepath.Join(dir, "b")},
		"missing name":     {"new", "--resource", "x"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := runCLI(t, args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDescriptorPath(t *testing.T) {
	tests := map[string]struct {
		name string
		ext  string
		want string
	}{
		"adds extension":      {name: "dots/bashrc", ext: "yoink", want: "dots/bashrc.yoink"},
		"keeps extension":     {name: "dots/bashrc.yoink", ext: "yoink", want: "dots/bashrc.yoink"},
		"custom extension":    {name: "bashrc", ext: "sync", want: "bashrc.sync"},
		"other extension":     {name: "bashrc.yoink", ext: "sync", want: "bashrc.yoink.sync"},
		"bare extension name": {name: ".yoink", ext: "yoink", want: ".yoink.yoink"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := descriptorPath(tt.name, tt.ext); got != tt.want {
				t.Errorf("descriptorPath(%q, %q) = %q, want %q", tt.name, tt.ext, got, tt.want)
			}
		})
	}
}

func TestConfigCommand(t *testing.T) {
	tests := map[string]struct {
		args    []string
		want    []string
		wantErr bool
	}{
		"default shows yaml": {
			args: []string{"config"},
			want: []string{"extension: yoink", "direction: pull"},
		},
		"show yaml": {
			args: []string{"config", "show"},
			want: []string{"descriptor:", "color: auto", "# Using default configuration"},
		},
		"show json": {
			args: []string{"config", "show", "--format", "json"},
			want: []string{`"extension": "yoink"`, `"progress": true`},
		},
		"show unknown format": {
			args:    []string{"config", "show", "--format", "toml"},
			wantErr: true,
		},
		"path": {
			args: []string{"config", "path"},
			want: []string{filepath.Join("yoink", "config.yaml")},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
		})
	}
}

func TestConfigShow_JSONParses(t *testing.T) {
	t.Setenv("YOINK_SYNC_RECURSIVE", "true")

	out, err := runCLI(t, "config", "show", "--format", "json")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var cfg config.Config
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !cfg.Sync.Recursive {
		t.Error("environment override not reflected in shown config")
	}
}

func TestConfigInitCommand(t *testing.T) {
	t.Setenv("YOINK_HOME", t.TempDir())

	if _, err := runCLI(t, "config", "init"); err != nil {
		t.Fatalf("init error = %v", err)
	}
	if _, err := os.Stat(config.FilePath()); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, err := runCLI(t, "config", "init"); err == nil {
		t.Error("expected error when config already exists")
	}
	if _, err := runCLI(t, "config", "init", "--force"); err != nil {
		t.Errorf("forced init error = %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GetExtension() != model.DefaultExtension {
		t.Errorf("extension = %q", cfg.GetExtension())
	}
}
