// Package version carries build identity and release tag handling.
package version

import "strings"

// Build identity, set via -ldflags at release time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns a human-friendly version string for CLI output.
func Summary() string {
	if CommitHash == "unknown" {
		return Version
	}
	return Version + " (" + CommitHash + ")"
}

// tagRefPrefix is the prefix git places on tag refs.
const tagRefPrefix = "refs/tags/"

// FromRef extracts the version from a git tag ref.
// "refs/tags/0.3.1" yields "0.3.1". Inputs that are not tag refs are
// returned unchanged, so a bare version string passes through.
func FromRef(ref string) string {
	return strings.TrimPrefix(ref, tagRefPrefix)
}

// IsTagRef reports whether ref names a tag.
func IsTagRef(ref string) bool {
	return strings.HasPrefix(ref, tagRefPrefix)
}

// Normalize strips the 'v' prefix from version strings for comparison.
func Normalize(version string) string {
	if len(version) > 0 && version[0] == 'v' {
		return version[1:]
	}
	return version
}
