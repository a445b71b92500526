package changelog

import (
	"fmt"
	"strings"
)

// MatchStrategy names a recorded-subject matching strategy. Collection halts
// at the first commit the strategy reports as already recorded.
type MatchStrategy string

const (
	// MatchSubstring reports a subject as recorded when it appears anywhere
	// in the document. This is the historical default. It can produce false
	// positives when one subject is a substring of an already-recorded
	// entry, truncating collection early; that behavior is intentional and
	// preserved.
	MatchSubstring MatchStrategy = "substring"

	// MatchExactLine reports a subject as recorded only when some document
	// line equals it exactly (ignoring the trailing hard-break whitespace).
	MatchExactLine MatchStrategy = "exact-line"

	// MatchAnchoredLine reports a subject as recorded when some document
	// line begins with it.
	MatchAnchoredLine MatchStrategy = "anchored-line"
)

// RecordedPredicate reports whether subject is already recorded in doc.
type RecordedPredicate func(subject, doc string) bool

// PredicateFor returns the predicate implementing the given strategy.
func PredicateFor(s MatchStrategy) (RecordedPredicate, error) {
	switch s {
	case MatchSubstring, "":
		return substringRecorded, nil
	case MatchExactLine:
		return exactLineRecorded, nil
	case MatchAnchoredLine:
		return anchoredLineRecorded, nil
	default:
		return nil, fmt.Errorf("unknown match strategy %q (valid: %s, %s, %s)",
			s, MatchSubstring, MatchExactLine, MatchAnchoredLine)
	}
}

// ValidStrategies returns the recognized strategy names.
func ValidStrategies() []MatchStrategy {
	return []MatchStrategy{MatchSubstring, MatchExactLine, MatchAnchoredLine}
}

func substringRecorded(subject, doc string) bool {
	return subject != "" && strings.Contains(doc, subject)
}

func exactLineRecorded(subject, doc string) bool {
	if subject == "" {
		return false
	}
	for _, line := range strings.Split(doc, "\n") {
		if strings.TrimRight(line, " \t\r") == subject {
			return true
		}
	}
	return false
}

func anchoredLineRecorded(subject, doc string) bool {
	if subject == "" {
		return false
	}
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, subject) {
			return true
		}
	}
	return false
}
