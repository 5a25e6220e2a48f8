package changelog

import (
	"slices"
	"strings"
)

// NormalizeVersion trims surrounding whitespace and strips a single leading
// "v" or "V" from a version string.
// This allows accepting "v0.6.0", "V0.6.0" and "0.6.0" alike.
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") || strings.HasPrefix(version, "V") {
		return version[1:]
	}
	return version
}

// CandidateVersions returns the forms a heading may use for the given
// version: the version as given, the normalized form, then the "v"-prefixed
// normalized form, without duplicates.
// An empty or bare "v" input yields no candidates.
func CandidateVersions(version string) []string {
	given := strings.TrimSpace(version)
	bare := NormalizeVersion(given)
	if bare == "" {
		return nil
	}

	var candidates []string
	for _, c := range []string{given, bare, "v" + bare} {
		if !slices.Contains(candidates, c) {
			candidates = append(candidates, c)
		}
	}
	return candidates
}
