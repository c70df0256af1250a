package model

import (
	"fmt"
	"strings"
)

// Style names the kind of resource a descriptor targets.
type Style string

const (
	// StyleBytes targets a file whose raw bytes are copied verbatim.
	StyleBytes Style = "bytes"

	// StyleDconf targets a binary key-value settings database (dconf's GVDB format).
	StyleDconf Style = "dconf"
)

// IsValid returns true if the style is recognized.
func (s Style) IsValid() bool {
	switch s {
	case StyleBytes, StyleDconf:
		return true
	default:
		return false
	}
}

// AllStyles returns all supported styles.
func AllStyles() []Style {
	return []Style{StyleBytes, StyleDconf}
}

// String returns the string representation of the style.
func (s Style) String() string {
	return string(s)
}

// Description returns a human-readable description of the style.
func (s Style) Description() string {
	switch s {
	case StyleBytes:
		return "Raw file contents, copied verbatim"
	case StyleDconf:
		return "dconf settings database, serialized as 'key = value' lines"
	default:
		return "Unknown style"
	}
}

// ParseStyle converts a string to a Style.
func ParseStyle(s string) (Style, error) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	if st.IsValid() {
		return st, nil
	}
	return "", fmt.Errorf("unknown style %q (valid: bytes, dconf)", s)
}
