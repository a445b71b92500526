package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/relnote/config.yml
// - macOS: ~/Library/Application Support/relnote/config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relnote", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file,
// relative to the current directory.
func ProjectConfigPath() string {
	return ".relnote.yml"
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON
// config file, kept readable for migration.
func LegacyProjectConfigPath() string {
	return ".relnote.json"
}
