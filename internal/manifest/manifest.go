// Package manifest rewrites the version field of a JSON manifest file
// (typically package.json) in place. The rewrite is a targeted string
// replacement on the first versioned field rather than a JSON round-trip, so
// the rest of the file stays byte-identical.
package manifest

import (
	"fmt"
	"os"
	"regexp"

	"github.com/raveheart1/relnote/internal/semver"
)

// versionField matches a `"version": "X.Y.Z"` field, capturing the parts
// around the version so the replacement preserves the original spacing.
var versionField = regexp.MustCompile(`("version"\s*:\s*")(\d+\.\d+\.\d+)(")`)

// Rewrite replaces the first version field in text with v. The second return
// value reports whether a field was found; when false, text is returned
// unchanged.
func Rewrite(text string, v semver.Version) (string, bool) {
	loc := versionField.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, false
	}

	// Splice the new version between capture groups 1 and 3.
	return text[:loc[3]] + v.String() + text[loc[6]:], true
}

// UpdateFile rewrites the version field of the manifest at path. A missing
// file is not an error: the manifest is optional and the update is skipped.
// Returns true when the file was modified.
func UpdateFile(path string, v semver.Version) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading manifest: %w", err)
	}

	updated, found := Rewrite(string(data), v)
	if !found || updated == string(data) {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("writing manifest: %w", err)
	}
	return true, nil
}
