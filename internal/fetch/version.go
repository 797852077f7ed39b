package fetch

import (
	"regexp"
	"strings"
)

var majorMinor = regexp.MustCompile(`^v\d+\.\d+$`)

// NormalizeVersion trims the version and adds the "v" prefix when it starts with a digit
func NormalizeVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return "", ErrEmptyVersion
	}
	if version[0] >= '0' && version[0] <= '9' {
		version = "v" + version
	}
	return version, nil
}

// TagForVersion returns the git tag Kubernetes publishes a version under.
// Releases are tagged vMAJOR.MINOR.PATCH, so v1.15 becomes v1.15.0.
func TagForVersion(version string) string {
	if majorMinor.MatchString(version) {
		return version + ".0"
	}
	return version
}

// URLForVersion fills the {version} placeholder of a schema URL template
func URLForVersion(template, tag string) string {
	return strings.ReplaceAll(template, "{version}", tag)
}
