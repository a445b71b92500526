// Package semver models the three-component version tuple tracked in the
// changelog. Only the subset needed for bump calculation is implemented;
// generated versions never carry prerelease or build metadata.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is a (major, minor, patch) tuple of non-negative integers.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Zero is the default version used when discovery finds no marker.
var Zero = Version{}

var (
	strictPattern = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)$`)
	markerPattern = regexp.MustCompile(`v(\d+)\.(\d+)\.(\d+)`)
)

// Parse parses a bare "X.Y.Z" or "vX.Y.Z" string.
func Parse(s string) (Version, error) {
	m := strictPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Zero, fmt.Errorf("invalid version %q (expected: X.Y.Z)", s)
	}
	return fromMatch(m), nil
}

// Find returns the first "vX.Y.Z" marker occurring anywhere in s.
// The second return value reports whether a marker was found.
func Find(s string) (Version, bool) {
	m := markerPattern.FindStringSubmatch(s)
	if m == nil {
		return Zero, false
	}
	return fromMatch(m), true
}

func fromMatch(m []string) Version {
	// The pattern guarantees digit-only groups; Atoi cannot fail here.
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch}
}

// String returns the bare "X.Y.Z" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag returns the "vX.Y.Z" form used in changelog headers.
func (v Version) Tag() string {
	return "v" + v.String()
}

// BumpMajor returns the next major version with minor and patch reset to 0.
func (v Version) BumpMajor() Version {
	return Version{Major: v.Major + 1}
}

// BumpMinor returns the next minor version with patch reset to 0.
func (v Version) BumpMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// BumpPatch returns the next patch version.
func (v Version) BumpPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// Compare returns -1, 0, or 1 if v is less than, equal to, or greater than o.
func (v Version) Compare(o Version) int {
	if c := cmpInt(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmpInt(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmpInt(v.Patch, o.Patch)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
