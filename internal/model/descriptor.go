// Package model provides the data types yoink syncs: descriptors, styles and directions.
package model

import (
	"path/filepath"
	"strings"
)

// DefaultExtension is the file extension (without the dot) that marks a descriptor file.
const DefaultExtension = "yoink"

// Descriptor is the parsed contents of one descriptor file.
// It is built fresh for every sync and never mutated after loading.
type Descriptor struct {
	// Path is the descriptor file's path as it was given to the loader.
	Path string

	// Target holds the selected backend configuration.
	Target Target
}

// Target wraps the one backend configuration a descriptor selects.
type Target struct {
	Config StyleConfig
}

// Style returns the style of the selected configuration.
func (t Target) Style() Style {
	if t.Config == nil {
		return ""
	}
	return t.Config.Style()
}

// StyleConfig is implemented by every backend configuration variant.
// The set of variants is closed: BytesConfig and DconfConfig.
type StyleConfig interface {
	// Style returns the tag this variant is selected by.
	Style() Style
	// ResourcePath returns the configured resource path, unresolved.
	ResourcePath() string
}

// BytesConfig configures a raw bytes resource.
type BytesConfig struct {
	Path string `toml:"path"`
}

// Style implements StyleConfig.
func (BytesConfig) Style() Style { return StyleBytes }

// ResourcePath implements StyleConfig.
func (c BytesConfig) ResourcePath() string { return c.Path }

// DconfConfig configures a dconf settings database resource.
type DconfConfig struct {
	Path string `toml:"path"`
	// Exclude lists key prefixes that are never written to the associated file.
	Exclude []string `toml:"exclude,omitempty"`
}

// Style implements StyleConfig.
func (DconfConfig) Style() Style { return StyleDconf }

// ResourcePath implements StyleConfig.
func (c DconfConfig) ResourcePath() string { return c.Path }

// Excludes reports whether key starts with any configured exclusion prefix.
func (c DconfConfig) Excludes(key string) bool {
	for _, prefix := range c.Exclude {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// AssociatedPath returns the data file paired with the descriptor: its path with the
// final extension removed.
func (d *Descriptor) AssociatedPath() string {
	return AssociatedPath(d.Path)
}

// AssociatedPath strips the final extension from a descriptor path.
func AssociatedPath(descriptorPath string) string {
	return strings.TrimSuffix(descriptorPath, filepath.Ext(descriptorPath))
}
