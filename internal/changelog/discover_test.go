package changelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/relnote/internal/semver"
)

func TestDiscoverVersion(t *testing.T) {
	tests := map[string]struct {
		doc      string
		window   int
		expected semver.Version
	}{
		"marker on first line": {
			doc:      "**v1.2.3 2024-01-15 10:30**  \n✨ add thing  \n",
			expected: semver.Version{Major: 1, Minor: 2, Patch: 3},
		},
		"first match wins": {
			doc:      "**v2.0.0 2024-02-01 09:00**  \n\n**v1.9.0 2024-01-15 10:30**  \n",
			expected: semver.Version{Major: 2},
		},
		"no marker anywhere": {
			doc:      "# Changelog\n\nnothing released yet\n",
			expected: semver.Zero,
		},
		"empty document": {
			doc:      "",
			expected: semver.Zero,
		},
		"marker outside window ignored": {
			doc:      "a\nb\nc\n**v3.0.0 2024-01-01 00:00**\n",
			window:   3,
			expected: semver.Zero,
		},
		"marker after preamble within window": {
			doc:      "# Changelog\n\n**v0.4.1 2023-11-02 18:45**  \n",
			expected: semver.Version{Minor: 4, Patch: 1},
		},
		"zero window uses default": {
			doc:      "**v1.0.0 2024-01-01 00:00**\n",
			window:   0,
			expected: semver.Version{Major: 1},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			window := tt.window
			if window == 0 {
				window = DefaultScanWindow
			}
			assert.Equal(t, tt.expected, DiscoverVersion(tt.doc, window))
		})
	}
}

func TestReadDocument_MissingFileIsEmpty(t *testing.T) {
	doc, err := ReadDocument(filepath.Join(t.TempDir(), "CHANGELOG.md"))
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestReadWriteDocument_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	content := "**v1.0.0 2024-01-01 00:00**  \n✨ first release  \n"

	require.NoError(t, WriteDocument(path, content))

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, content, doc)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}
