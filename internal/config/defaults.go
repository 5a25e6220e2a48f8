package config

// GetDefaults returns the default configuration values as a map
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path": "CHANGELOG.md",
		"repo_path":      ".",
		"tag_backend":    BackendGoGit,
		"git_timeout":    "0s",
		"debug":          false,
	}
}
