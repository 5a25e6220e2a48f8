// Package config provides hierarchical configuration management for relnotes using koanf.
// Configuration is loaded with priority: environment variables > project config (.relnotes.yml
// or .relnotes.json) > user config (~/.config/relnotes/config.yml) > defaults. Command-line
// flags are applied on top by the cli package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "RELNOTES_"

// Tag lookup backends.
const (
	BackendGoGit = "go-git"
	BackendCLI   = "cli"
)

// Configuration represents the relnotes CLI tool configuration
type Configuration struct {
	// ChangelogPath is the Markdown changelog scanned first.
	// Can be set via RELNOTES_CHANGELOG_PATH env var.
	ChangelogPath string `koanf:"changelog_path" validate:"required"`

	// RepoPath is any directory inside the git repository holding the tags.
	RepoPath string `koanf:"repo_path"`

	// TagBackend selects how tags are read: "go-git" (default, no git binary
	// needed) or "cli" (runs `git tag`).
	TagBackend string `koanf:"tag_backend" validate:"oneof=go-git cli"`

	// GitTimeout bounds the tag lookup. Zero means no timeout.
	GitTimeout time.Duration `koanf:"git_timeout" validate:"min=0"`

	// Debug enables debug logging to stderr.
	Debug bool `koanf:"debug"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relnotes.yml,
	// falling back to .relnotes.json). The parser is chosen by file extension.
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file.
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return nil
	}
	if err := loadConfigFile(k, userPath, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config. An explicit path must exist;
// the default locations are optional.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file %s does not exist", customPath)
		}
		if err := loadConfigFile(k, customPath, "project"); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		return nil
	}

	for _, path := range []string{ProjectConfigPath(), ProjectJSONConfigPath()} {
		if !fileExists(path) {
			continue
		}
		if err := loadConfigFile(k, path, "project"); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		return nil
	}
	return nil
}

// loadConfigFile loads a YAML or JSON config file, chosen by extension.
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ChangelogPath = expandHomePath(cfg.ChangelogPath)
	cfg.RepoPath = expandHomePath(cfg.RepoPath)

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: RELNOTES_TAG_BACKEND -> tag_backend
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
