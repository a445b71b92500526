// Package testutil provides git repository fixtures for tests. Repositories
// are built with go-git in temp directories, so tests need no git CLI and no
// network.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// fixtureEpoch is the base commit time; each commit advances by one minute
// so log order is deterministic.
var fixtureEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// Fixture is a temp git repository under test control.
type Fixture struct {
	t    *testing.T
	Path string
	Repo *git.Repository

	commitCount int
}

// InitRepo creates an empty git repository in a temp directory.
func InitRepo(t *testing.T) *Fixture {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	return &Fixture{t: t, Path: dir, Repo: repo}
}

// WriteFile writes a file relative to the repository root.
func (f *Fixture) WriteFile(name, content string) {
	f.t.Helper()

	path := filepath.Join(f.Path, name)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o644))
}

// ReadFile reads a file relative to the repository root.
func (f *Fixture) ReadFile(name string) string {
	f.t.Helper()

	data, err := os.ReadFile(filepath.Join(f.Path, name))
	require.NoError(f.t, err)
	return string(data)
}

// Commit stages everything and commits with the given subject. Each commit
// gets a distinct, increasing timestamp.
func (f *Fixture) Commit(subject string) string {
	f.t.Helper()

	worktree, err := f.Repo.Worktree()
	require.NoError(f.t, err)

	// go-git refuses empty commits unless the tree changed; touch a marker
	// file so every Commit call produces a real commit.
	f.WriteFile(".fixture", subject)
	require.NoError(f.t, worktree.AddWithOptions(&git.AddOptions{All: true}))

	f.commitCount++
	sig := &object.Signature{
		Name:  "fixture",
		Email: "fixture@example.com",
		When:  fixtureEpoch.Add(time.Duration(f.commitCount) * time.Minute),
	}
	hash, err := worktree.Commit(subject, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(f.t, err)

	return hash.String()
}

// CommitSubjects commits each subject in order, oldest first.
func (f *Fixture) CommitSubjects(subjects ...string) {
	f.t.Helper()
	for _, s := range subjects {
		f.Commit(s)
	}
}
