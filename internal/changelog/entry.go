package changelog

import (
	"strings"
	"time"

	"github.com/raveheart1/relnote/internal/semver"
)

// hardBreak is the source-format line break: two trailing spaces before the
// newline, so renderers keep each commit on its own line.
const hardBreak = "  \n"

// stampLayout is the timestamp format in entry headers.
const stampLayout = "2006-01-02 15:04"

// Entry is one formatted changelog block: a bolded version+timestamp header
// followed by breaking lines, then feature lines, then patch lines.
type Entry struct {
	Version  semver.Version
	Stamp    time.Time
	Breaking []string
	Feature  []string
	Patch    []string
}

// Lines returns all commit lines of the entry in render order.
func (e Entry) Lines() []string {
	lines := make([]string, 0, len(e.Breaking)+len(e.Feature)+len(e.Patch))
	lines = append(lines, e.Breaking...)
	lines = append(lines, e.Feature...)
	lines = append(lines, e.Patch...)
	return lines
}

// Header returns the entry header line without the line break.
func (e Entry) Header() string {
	return "**" + e.Version.Tag() + " " + e.Stamp.Format(stampLayout) + "**"
}

// Render returns the entry text: header and commit lines, each terminated by
// a two-space hard break.
func (e Entry) Render() string {
	var b strings.Builder
	b.WriteString(e.Header())
	b.WriteString(hardBreak)
	for _, line := range e.Lines() {
		b.WriteString(line)
		b.WriteString(hardBreak)
	}
	return b.String()
}

// Prepend returns the document with the entry placed at the top. The
// previous content is kept verbatim below a separating blank line. This is a
// full-document rewrite, never an append.
func Prepend(doc string, e Entry) string {
	entry := e.Render()
	if doc == "" {
		return entry
	}
	return entry + "\n" + doc
}
