package registry

import (
	"fmt"
	"strings"

	"github.com/depot-labs/depot/internal/fetch"
)

// Recognized artifact suffixes. Both are zip archives.
var artifactSuffixes = []string{".mpkg.zip", ".art"}

// nameSeparator splits an artifact base name into name and version.
const nameSeparator = "-"

// IsRemote reports whether source is an http(s) URL rather than a local path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ParseArtifactName derives (name, version) from an artifact file name such
// as "foo-1.0.mpkg.zip". The base name must split on "-" into exactly two
// non-empty fields; names or versions containing "-" are not supported.
func ParseArtifactName(filename string) (name, version string, err error) {
	base, ok := trimArtifactSuffix(filename)
	if !ok {
		return "", "", fmt.Errorf("%w: %q must end in %s", ErrInvalidFormat, filename, strings.Join(artifactSuffixes, " or "))
	}

	parts := strings.Split(base, nameSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q, expected <name>%s<version>", ErrInvalidName, filename, nameSeparator)
	}
	if err := validateName(parts[0]); err != nil {
		return "", "", err
	}
	return parts[0], parts[1], nil
}

// artifactFileName returns the file name part of a local path or URL.
func artifactFileName(source string) (string, error) {
	if IsRemote(source) {
		name, err := fetch.FileName(source)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return name, nil
	}
	// Accept both separators so Windows-style paths resolve the same everywhere.
	if i := strings.LastIndexAny(source, `/\`); i >= 0 {
		return source[i+1:], nil
	}
	return source, nil
}

func trimArtifactSuffix(filename string) (string, bool) {
	for _, suffix := range artifactSuffixes {
		if strings.HasSuffix(filename, suffix) {
			return strings.TrimSuffix(filename, suffix), true
		}
	}
	return "", false
}

// validateName rejects record names that cannot be used as a single
// directory under the install root.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q is not a usable directory name", ErrInvalidName, name)
	}
	return nil
}
