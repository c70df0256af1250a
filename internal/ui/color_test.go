package ui

import (
	"os"
	"testing"
)

func TestStatusSymbols(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tests := map[string]struct {
		fn   func(string) string
		msg  string
		want string
	}{
		"created descriptor": {StatusSuccess, "Created 'dots/bashrc.yoink'", "✓ Created 'dots/bashrc.yoink'"},
		"failed descriptor":  {StatusError, "dots/user.yoink: push", "✗ dots/user.yoink: push"},
		"ignored option":     {StatusWarning, "--exclude is ignored for the bytes style", "⚠ --exclude is ignored for the bytes style"},
		"broken link":        {StatusSkipped, "dots/gone.yoink (broken link)", "- dots/gone.yoink (broken link)"},
		"bare success":       {StatusSuccess, "", SymbolSuccess},
		"bare skip":          {StatusSkipped, "", SymbolSkipped},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.fn(tt.msg); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusSymbols_Colored(t *testing.T) {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		t.Skip("NO_COLOR disables styling when the colors are built")
	}
	initial := IsColorEnabled()
	defer func() {
		if !initial {
			DisableColors()
		}
	}()

	EnableColors()
	if got := StatusWarning("x"); got == SymbolWarning+" x" {
		t.Error("expected escape codes around the warning symbol with colors on")
	}
	if got := Bold("dots/a.yoink"); got == "dots/a.yoink" {
		t.Error("expected Bold to style text with colors on")
	}

	DisableColors()
	if got := Dim(SymbolSkipped); got != SymbolSkipped {
		t.Errorf("Dim() = %q with colors off", got)
	}
}
