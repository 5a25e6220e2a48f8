package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/relnotes/config.yml
// - macOS: ~/Library/Application Support/relnotes/config.yml
// - Windows: %APPDATA%\relnotes\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relnotes", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level YAML config file.
// This is always .relnotes.yml relative to the current directory.
func ProjectConfigPath() string {
	return ".relnotes.yml"
}

// ProjectJSONConfigPath returns the path to the project-level JSON config file,
// read only when .relnotes.yml does not exist.
func ProjectJSONConfigPath() string {
	return ".relnotes.json"
}
