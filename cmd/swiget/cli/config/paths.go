// Package config provides configuration management for the swiget CLI.
package config

import (
	"os"
	"path/filepath"
)

// Dir returns the swiget config directory.
// Uses XDG_CONFIG_HOME/swiget, defaulting to ~/.config/swiget.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "swiget"), nil
}
