// Package commits models commit subjects and classifies them by their
// leading-marker convention. A subject qualifies for the changelog when it
// begins with a symbol outside plain ASCII that is not in the excluded set;
// qualifying subjects are partitioned into breaking, feature, and patch
// buckets by their leading marker.
package commits

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Commit is a single history entry, subject-line form.
type Commit struct {
	Hash    string
	Subject string
	When    time.Time
}

// Markers holds the marker sets driving classification.
// Breaking and Feature markers select the bump bucket; Excluded markers
// are ignored entirely during collection (refactor/style/chore symbols).
type Markers struct {
	Breaking []string
	Feature  []string
	Excluded []string
}

// DefaultMarkers returns the conventional marker sets.
func DefaultMarkers() Markers {
	return Markers{
		Breaking: []string{"🚨", "💥"},
		Feature:  []string{"✨", "🚀"},
		Excluded: []string{"🎨", "♻️", "🔧", "📝", "🚧", "✅", "🔖"},
	}
}

// Qualifies reports whether a subject belongs in the changelog: its first
// rune must be a symbol outside plain ASCII (letters, digits, and
// punctuation never qualify) and must not open with an excluded marker.
func (m Markers) Qualifies(subject string) bool {
	r, size := utf8.DecodeRuneInString(subject)
	if size == 0 || r == utf8.RuneError {
		return false
	}
	if r <= unicode.MaxASCII {
		return false
	}
	return !hasAnyPrefix(subject, m.Excluded)
}

// Buckets partitions qualifying commits by marker class. Every input commit
// lands in exactly one bucket; order within a bucket follows input order.
type Buckets struct {
	Breaking []Commit
	Feature  []Commit
	Patch    []Commit
}

// Partition splits commits into buckets by their leading marker.
// Precedence per commit: breaking marker, then feature marker, then patch.
func Partition(list []Commit, m Markers) Buckets {
	var b Buckets
	for _, c := range list {
		switch {
		case hasAnyPrefix(c.Subject, m.Breaking):
			b.Breaking = append(b.Breaking, c)
		case hasAnyPrefix(c.Subject, m.Feature):
			b.Feature = append(b.Feature, c)
		default:
			b.Patch = append(b.Patch, c)
		}
	}
	return b
}

// BumpKind selects which version component a run increments.
type BumpKind int

const (
	BumpPatch BumpKind = iota
	BumpMinor
	BumpMajor
)

// String returns a human-readable bump name.
func (k BumpKind) String() string {
	switch k {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	default:
		return "patch"
	}
}

// Kind returns the single bump rule for the run.
// Precedence: breaking > feature > patch.
func (b Buckets) Kind() BumpKind {
	switch {
	case len(b.Breaking) > 0:
		return BumpMajor
	case len(b.Feature) > 0:
		return BumpMinor
	default:
		return BumpPatch
	}
}

// Count returns the total number of commits across all buckets.
func (b Buckets) Count() int {
	return len(b.Breaking) + len(b.Feature) + len(b.Patch)
}

// Subjects returns the subject lines of a commit list, order preserved.
func Subjects(list []Commit) []string {
	subjects := make([]string, len(list))
	for i, c := range list {
		subjects[i] = c.Subject
	}
	return subjects
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
