package changelog

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/relnote/internal/commits"
	"github.com/raveheart1/relnote/internal/semver"
)

func TestParseDocument(t *testing.T) {
	doc := "# Changelog\n" +
		"\n" +
		"**v1.1.0 2024-03-10 14:05**  \n" +
		"✨ add thing  \n" +
		"🐛 fix crash  \n" +
		"\n" +
		"**v1.0.0 2024-01-01 00:00**  \n" +
		"✨ first release  \n"

	entries := ParseDocument(doc)
	require.Len(t, entries, 2)

	assert.Equal(t, semver.Version{Major: 1, Minor: 1}, entries[0].Version)
	assert.Equal(t, "2024-03-10 14:05", entries[0].Stamp)
	assert.Equal(t, []string{"✨ add thing", "🐛 fix crash"}, entries[0].Lines)

	assert.Equal(t, semver.Version{Major: 1}, entries[1].Version)
	assert.Equal(t, []string{"✨ first release"}, entries[1].Lines)
}

func TestParseDocument_Empty(t *testing.T) {
	assert.Empty(t, ParseDocument(""))
	assert.Empty(t, ParseDocument("just prose, no headers\n"))
}

func TestParseDocument_RoundTripsRenderedEntry(t *testing.T) {
	e := Entry{
		Version:  semver.Version{Major: 2},
		Stamp:    time.Date(2024, 3, 10, 14, 5, 0, 0, time.UTC),
		Breaking: []string{"🚨 break api"},
		Patch:    []string{"fix typo"},
	}

	entries := ParseDocument(e.Render())
	require.Len(t, entries, 1)
	assert.Equal(t, e.Version, entries[0].Version)
	assert.Equal(t, []string{"🚨 break api", "fix typo"}, entries[0].Lines)
}

func TestFormatEntries_Plain(t *testing.T) {
	entries := []ParsedEntry{
		{
			Version: semver.Version{Major: 1, Minor: 1},
			Stamp:   "2024-03-10 14:05",
			Lines:   []string{"✨ add thing", "🐛 fix crash"},
		},
		{
			Version: semver.Version{Major: 1},
			Stamp:   "2024-01-01 00:00",
			Lines:   []string{"✨ first release"},
		},
	}

	var buf bytes.Buffer
	err := FormatEntries(entries, commits.DefaultMarkers(), &buf, FormatOptions{Plain: true, MaxWidth: 120})
	require.NoError(t, err)

	expected := "v1.1.0 2024-03-10 14:05\n" +
		"  ✨ add thing\n" +
		"  🐛 fix crash\n" +
		"\n" +
		"v1.0.0 2024-01-01 00:00\n" +
		"  ✨ first release\n"
	assert.Equal(t, expected, buf.String())
}

func TestFormatEntries_NoEntries(t *testing.T) {
	var buf bytes.Buffer
	err := FormatEntries(nil, commits.DefaultMarkers(), &buf, FormatOptions{Plain: true})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
