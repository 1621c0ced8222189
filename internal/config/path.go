// Package config resolves photomatch settings from viper and the filesystem.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the configuration directory, ~/.config/photomatch. Without a
// home directory it falls back to .config/photomatch under the working
// directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", AppName)
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultPath returns name inside Dir.
func DefaultPath(name string) string {
	return filepath.Join(Dir(), name)
}

// ExpandPath resolves a leading ~ to the home directory and then expands
// $VAR references. Paths from config files and flags both go through it.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
