package util

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// EnvHome overrides the directory holding yoink's own configuration.
const EnvHome = "YOINK_HOME"

// HomeDir returns the user's home directory, or "" when it cannot be determined.
func HomeDir() string {
	home, _ := homedir.Dir()
	return home
}

// ExpandHome replaces a leading "~" in path with the user's home directory.
// Paths without a leading "~" are returned unchanged.
func ExpandHome(path string) (string, error) {
	return homedir.Expand(path)
}

// ConfigDir returns the directory holding yoink's configuration:
// $YOINK_HOME when set, otherwise ~/.config/yoink.
func ConfigDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	return filepath.Join(HomeDir(), ".config", "yoink")
}

// ConfigPath returns the path of yoink's config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
