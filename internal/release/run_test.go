package release

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/semver"
)

// fakePublisher records the calls a run makes.
type fakePublisher struct {
	doc       string
	manifestV semver.Version
	pushedV   semver.Version
	calls     []string

	writeErr error
	pushErr  error
}

func (f *fakePublisher) WriteChangelog(doc string) error {
	f.calls = append(f.calls, "write")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.doc = doc
	return nil
}

func (f *fakePublisher) UpdateManifest(v semver.Version) (bool, error) {
	f.calls = append(f.calls, "manifest")
	f.manifestV = v
	return true, nil
}

func (f *fakePublisher) CommitAndPush(_ context.Context, v semver.Version) error {
	f.calls = append(f.calls, "push")
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushedV = v
	return nil
}

func TestRun_HappyPath(t *testing.T) {
	p := testPlanner(t, changelog.MatchSubstring)
	pub := &fakePublisher{}
	doc := "**v1.2.3 2024-01-15 10:30**  \n🐛 fix old crash  \n"

	result, err := Run(context.Background(), p, doc, subjects("🚨 break api", "✨ add thing"), pub)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	require.NotNil(t, result.Plan)

	assert.Equal(t, []string{"write", "manifest", "push"}, pub.calls)
	assert.Equal(t, semver.Version{Major: 2}, pub.manifestV)
	assert.Equal(t, semver.Version{Major: 2}, pub.pushedV)
	assert.True(t, strings.HasPrefix(pub.doc, "**v2.0.0 "), "new entry on top")
	assert.True(t, strings.HasSuffix(pub.doc, doc), "prior content preserved")
}

func TestRun_NoQualifyingCommitsIsNoOp(t *testing.T) {
	p := testPlanner(t, changelog.MatchSubstring)
	pub := &fakePublisher{}

	result, err := Run(context.Background(), p, "", subjects("fix typo", "🎨 reformat"), pub)
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Empty(t, pub.calls, "no side effects on the no-op path")
}

func TestRun_WriteFailureStopsPipeline(t *testing.T) {
	p := testPlanner(t, changelog.MatchSubstring)
	pub := &fakePublisher{writeErr: errors.New("disk full")}

	result, err := Run(context.Background(), p, "", subjects("✨ add thing"), pub)
	require.Error(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, []string{"write"}, pub.calls, "manifest and push never attempted")
}

func TestRun_PushFailureLeavesLocalState(t *testing.T) {
	// No rollback: files are written and the error surfaces.
	p := testPlanner(t, changelog.MatchSubstring)
	pub := &fakePublisher{pushErr: errors.New("remote unreachable")}

	result, err := Run(context.Background(), p, "", subjects("✨ add thing"), pub)
	require.Error(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, []string{"write", "manifest", "push"}, pub.calls)
	assert.NotEmpty(t, pub.doc, "changelog write is not rolled back")
}
