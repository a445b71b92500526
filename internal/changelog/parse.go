package changelog

import (
	"regexp"
	"strings"

	"github.com/raveheart1/relnote/internal/semver"
)

// headerPattern matches an entry header line, e.g. "**v1.2.0 2024-01-15 10:30**".
var headerPattern = regexp.MustCompile(`^\*\*v(\d+)\.(\d+)\.(\d+) (\d{4}-\d{2}-\d{2} \d{2}:\d{2})\*\*\s*$`)

// ParsedEntry is one entry read back from an existing document.
type ParsedEntry struct {
	Version semver.Version
	Stamp   string
	Lines   []string
}

// ParseDocument splits a flat changelog document into its entries, newest
// first. Lines before the first header (hand-written preamble) are skipped.
// Parsing is lenient: malformed sections are ignored rather than rejected,
// matching the best-effort posture of the rest of the pipeline.
func ParseDocument(doc string) []ParsedEntry {
	var entries []ParsedEntry
	var current *ParsedEntry

	for _, raw := range strings.Split(doc, "\n") {
		if m := headerPattern.FindStringSubmatch(raw); m != nil {
			if current != nil {
				entries = append(entries, *current)
			}
			v, _ := semver.Find("v" + m[1] + "." + m[2] + "." + m[3])
			current = &ParsedEntry{Version: v, Stamp: m[4]}
			continue
		}

		if current == nil {
			continue
		}
		line := strings.TrimRight(raw, " \t\r")
		if line == "" {
			continue
		}
		current.Lines = append(current.Lines, line)
	}

	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}
