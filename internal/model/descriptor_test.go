package model

import "testing"

func TestAssociatedPath(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"simple":         {in: "settings.yoink", want: "settings"},
		"nested":         {in: "dir/sub/blob.bin.yoink", want: "dir/sub/blob.bin"},
		"absolute":       {in: "/etc/x/conf.yoink", want: "/etc/x/conf"},
		"no extension":   {in: "dir/plain", want: "dir/plain"},
		"dotted dir":     {in: "a.d/file.yoink", want: "a.d/file"},
		"other ext kept": {in: "notes.txt", want: "notes"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := AssociatedPath(tt.in); got != tt.want {
				t.Errorf("AssociatedPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
			d := &Descriptor{Path: tt.in}
			if got := d.AssociatedPath(); got != tt.want {
				t.Errorf("Descriptor.AssociatedPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTargetStyle(t *testing.T) {
	tests := map[string]struct {
		target Target
		want   Style
	}{
		"bytes": {target: Target{Config: BytesConfig{Path: "a"}}, want: StyleBytes},
		"dconf": {target: Target{Config: DconfConfig{Path: "b"}}, want: StyleDconf},
		"empty": {target: Target{}, want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.target.Style(); got != tt.want {
				t.Errorf("Style() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDconfConfigExcludes(t *testing.T) {
	cfg := DconfConfig{Exclude: []string{"/org/gnome/shell/", "a."}}

	tests := map[string]struct {
		key  string
		want bool
	}{
		"matching prefix":       {key: "/org/gnome/shell/favorite-apps", want: true},
		"second prefix":         {key: "a.x", want: true},
		"prefix must lead":      {key: "b.a.x", want: false},
		"sibling not excluded":  {key: "/org/gnome/desktop/interface/gtk-theme", want: false},
		"exact prefix excluded": {key: "a.", want: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := cfg.Excludes(tt.key); got != tt.want {
				t.Errorf("Excludes(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}

	if (DconfConfig{}).Excludes("anything") {
		t.Error("empty exclude list should not exclude keys")
	}
}

func TestParseStyle(t *testing.T) {
	for _, s := range AllStyles() {
		got, err := ParseStyle(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStyle(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseStyle("sqlite"); err == nil {
		t.Error("ParseStyle(sqlite) should fail")
	}
}
