package release

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/gitrepo"
	"github.com/raveheart1/relnote/internal/manifest"
	"github.com/raveheart1/relnote/internal/semver"
)

// GitPublisher is the real Publisher: it writes files inside the repository
// worktree and publishes through go-git.
type GitPublisher struct {
	Repo          *gitrepo.Repo
	ChangelogPath string
	ManifestPath  string
	Remote        string
	Identity      gitrepo.Identity
	// NoPush writes and commits locally without touching the remote.
	NoPush bool
	Now    func() time.Time
}

// WriteChangelog rewrites the changelog file inside the worktree.
func (g *GitPublisher) WriteChangelog(doc string) error {
	path, err := g.worktreePath(g.ChangelogPath)
	if err != nil {
		return err
	}
	return changelog.WriteDocument(path, doc)
}

// UpdateManifest rewrites the manifest version field when the file exists.
func (g *GitPublisher) UpdateManifest(v semver.Version) (bool, error) {
	if g.ManifestPath == "" {
		return false, nil
	}
	path, err := g.worktreePath(g.ManifestPath)
	if err != nil {
		return false, err
	}
	return manifest.UpdateFile(path, v)
}

// CommitAndPush commits all working-tree changes as "Version X.Y.Z" under
// the bot identity, then pushes to the remote tracking branch unless NoPush
// is set.
func (g *GitPublisher) CommitAndPush(ctx context.Context, v semver.Version) error {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	changed, err := g.Repo.HasChanges()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	message := "Version " + v.String()
	if _, err := g.Repo.CommitAll(message, g.Identity, now()); err != nil {
		return fmt.Errorf("committing %q: %w", message, err)
	}

	if g.NoPush {
		return nil
	}
	return g.Repo.PushContext(ctx, g.Remote)
}

// worktreePath resolves a repo-relative path against the worktree root.
// Absolute paths pass through unchanged.
func (g *GitPublisher) worktreePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	root, err := g.Repo.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, path), nil
}
