// Package config provides configuration management for yoink.
// It supports YAML configuration files, environment variables, and sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/klauern/yoink/internal/model"
	"github.com/klauern/yoink/internal/util"
)

// Config represents the complete yoink configuration.
type Config struct {
	// Descriptor configures how descriptor files are recognized
	Descriptor DescriptorConfig `yaml:"descriptor" json:"descriptor"`

	// Sync configures default synchronization behavior
	Sync SyncConfig `yaml:"sync" json:"sync"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output" json:"output"`
}

// DescriptorConfig holds descriptor file settings.
type DescriptorConfig struct {
	// Extension is the file extension, without the dot, that marks a descriptor
	Extension string `yaml:"extension" json:"extension"`
}

// SyncConfig holds synchronization settings.
type SyncConfig struct {
	// Recursive descends into subdirectories when the target is a directory
	Recursive bool `yaml:"recursive" json:"recursive"`
	// Direction is the direction used when none is given on the command line (pull, push)
	Direction string `yaml:"direction" json:"direction"`
	// ChangeDir resolves resource paths by changing the process working directory
	// to each descriptor's directory instead of joining them to it
	ChangeDir bool `yaml:"change_dir" json:"change_dir"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Color controls color output (auto, always, never)
	Color string `yaml:"color" json:"color"`
	// Progress shows a spinner while walking directories on a terminal
	Progress bool `yaml:"progress" json:"progress"`
	// Verbose enables verbose output
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Descriptor: DescriptorConfig{
			Extension: model.DefaultExtension,
		},
		Sync: SyncConfig{
			Recursive: false,
			Direction: string(model.Pull),
			ChangeDir: false,
		},
		Output: OutputConfig{
			Color:    "auto",
			Progress: true,
			Verbose:  false,
		},
	}
}

// FilePath returns the path to the config file.
func FilePath() string {
	return util.ConfigPath()
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	configPath := FilePath()
	// #nosec G304 - configPath is constructed from trusted config directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern YOINK_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("YOINK_DESCRIPTOR_EXTENSION"); v != "" {
		c.Descriptor.Extension = strings.TrimPrefix(v, ".")
	}

	if v := os.Getenv("YOINK_SYNC_RECURSIVE"); v != "" {
		c.Sync.Recursive = parseBool(v)
	}
	if v := os.Getenv("YOINK_SYNC_DIRECTION"); v != "" {
		c.Sync.Direction = v
	}
	if v := os.Getenv("YOINK_SYNC_CHANGE_DIR"); v != "" {
		c.Sync.ChangeDir = parseBool(v)
	}

	if v := os.Getenv("YOINK_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("YOINK_OUTPUT_PROGRESS"); v != "" {
		c.Output.Progress = parseBool(v)
	}
	if v := os.Getenv("YOINK_OUTPUT_VERBOSE"); v != "" {
		c.Output.Verbose = parseBool(v)
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// GetDirection returns the configured default direction, falling back to pull
// when the value is not recognized.
func (c *Config) GetDirection() model.Direction {
	d, err := model.ParseDirection(c.Sync.Direction)
	if err != nil {
		return model.Pull
	}
	return d
}

// GetExtension returns the descriptor extension without a leading dot,
// falling back to the default when unset.
func (c *Config) GetExtension() string {
	ext := strings.TrimPrefix(strings.TrimSpace(c.Descriptor.Extension), ".")
	if ext == "" {
		return model.DefaultExtension
	}
	return ext
}

// Exists returns true if a config file exists.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}
