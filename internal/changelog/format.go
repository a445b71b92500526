package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/raveheart1/relnote/internal/commits"
)

// FormatOptions controls terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

var (
	headerColor   = color.New(color.Bold)
	breakingColor = color.New(color.FgRed)
	featureColor  = color.New(color.FgGreen)
	patchColor    = color.New(color.FgYellow)
)

// FormatEntries writes parsed entries to the writer with terminal styling.
// Commit lines are colored by their marker class.
func FormatEntries(entries []ParsedEntry, m commits.Markers, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatEntry(e, m, w, opts, width); err != nil {
			return fmt.Errorf("formatting entry %s: %w", e.Version.Tag(), err)
		}
	}
	return nil
}

func formatEntry(e ParsedEntry, m commits.Markers, w io.Writer, opts FormatOptions, width int) error {
	header := fmt.Sprintf("%s %s", e.Version.Tag(), e.Stamp)
	if opts.Plain {
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, headerColor.Sprint(header)); err != nil {
			return err
		}
	}

	for _, line := range e.Lines {
		if err := writeLine(line, m, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(line string, m commits.Markers, w io.Writer, opts FormatOptions, width int) error {
	const prefix = "  "
	text := wrapText(line, width-len(prefix), "    ")

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	_, err := fmt.Fprintf(w, "%s%s\n", prefix, lineColor(line, m).Sprint(text))
	return err
}

// lineColor picks the color for a commit line from its leading marker.
func lineColor(line string, m commits.Markers) *color.Color {
	b := commits.Partition([]commits.Commit{{Subject: line}}, m)
	switch {
	case len(b.Breaking) > 0:
		return breakingColor
	case len(b.Feature) > 0:
		return featureColor
	default:
		return patchColor
	}
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
