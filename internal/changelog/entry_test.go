package changelog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raveheart1/relnote/internal/semver"
)

var entryStamp = time.Date(2024, 3, 10, 14, 5, 0, 0, time.UTC)

func TestEntryRender(t *testing.T) {
	e := Entry{
		Version:  semver.Version{Major: 2},
		Stamp:    entryStamp,
		Breaking: []string{"🚨 break api"},
		Feature:  []string{"✨ add thing"},
		Patch:    []string{"fix typo"},
	}

	expected := "**v2.0.0 2024-03-10 14:05**  \n" +
		"🚨 break api  \n" +
		"✨ add thing  \n" +
		"fix typo  \n"
	assert.Equal(t, expected, e.Render())
}

func TestEntryRender_BucketOrder(t *testing.T) {
	e := Entry{
		Version:  semver.Version{Major: 1, Minor: 1},
		Stamp:    entryStamp,
		Patch:    []string{"🐛 fix one", "🐛 fix two"},
		Feature:  []string{"✨ feat"},
		Breaking: []string{"💥 break"},
	}

	lines := strings.Split(strings.TrimRight(e.Render(), " \n"), "  \n")
	assert.Equal(t, []string{
		"**v1.1.0 2024-03-10 14:05**",
		"💥 break",
		"✨ feat",
		"🐛 fix one",
		"🐛 fix two",
	}, lines)
}

func TestEntryRender_HardBreaks(t *testing.T) {
	e := Entry{Version: semver.Version{Patch: 1}, Stamp: entryStamp, Patch: []string{"🐛 fix"}}

	for _, line := range strings.SplitAfter(strings.TrimSuffix(e.Render(), "\n"), "\n") {
		if line == "" {
			continue
		}
		assert.True(t, strings.HasSuffix(line, "  \n") || !strings.HasSuffix(line, "\n"),
			"every rendered line carries the two-space break: %q", line)
	}
}

func TestPrepend(t *testing.T) {
	e := Entry{
		Version: semver.Version{Major: 1, Minor: 1},
		Stamp:   entryStamp,
		Feature: []string{"✨ add thing"},
	}

	t.Run("empty document", func(t *testing.T) {
		assert.Equal(t, e.Render(), Prepend("", e))
	})

	t.Run("existing content kept verbatim below", func(t *testing.T) {
		old := "**v1.0.0 2024-01-01 00:00**  \n🐛 fix crash  \n"
		doc := Prepend(old, e)

		assert.True(t, strings.HasPrefix(doc, e.Render()), "new entry at the top")
		assert.True(t, strings.HasSuffix(doc, old), "old content unchanged")
		assert.Equal(t, e.Render()+"\n"+old, doc)
	})

	t.Run("prepend is not an append", func(t *testing.T) {
		old := "**v1.0.0 2024-01-01 00:00**  \n"
		doc := Prepend(old, e)
		assert.Less(t, strings.Index(doc, "v1.1.0"), strings.Index(doc, "v1.0.0"))
	})
}
