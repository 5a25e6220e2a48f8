package notes

import (
	"fmt"
	"strings"
)

// Guidance returns the remediation steps shown when no notes exist for
// version. knownVersions, when non-empty, are the versions the changelog
// at changelogPath does have sections for.
func Guidance(version, changelogPath string, knownVersions []string) []string {
	steps := []string{
		fmt.Sprintf("Create an annotated git tag:\n"+
			"      git tag -a %s -m \"Release notes\"\n"+
			"      git push origin %s", version, version),
		fmt.Sprintf("Or add a version entry to %s, for example:\n"+
			"      ## [%s] - YYYY-MM-DD\n"+
			"\n"+
			"      ### Added\n"+
			"      - Describe the new feature\n"+
			"\n"+
			"      ### Fixed\n"+
			"      - Describe the fix", changelogPath, version),
	}

	if len(knownVersions) > 0 {
		steps = append(steps, fmt.Sprintf("%s has entries for: %s",
			changelogPath, strings.Join(knownVersions, ", ")))
	}

	return steps
}
