package gitrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultPushTimeout bounds the network push so CI runs never hang
// indefinitely on a dead remote.
const DefaultPushTimeout = 60 * time.Second

// Identity is the author/committer identity used for generated commits.
type Identity struct {
	Name  string
	Email string
}

// CommitAll stages every working-tree change and commits it under the given
// identity. Returns the new commit hash. Committing with a clean tree is an
// error; callers are expected to check HasChanges first.
func (r *Repo) CommitAll(message string, id Identity, when time.Time) (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("staging changes: %w", err)
	}

	sig := &object.Signature{Name: id.Name, Email: id.Email, When: when}
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		return "", fmt.Errorf("creating commit: %w", err)
	}

	logDebug("[gitrepo] CommitAll: %s %q", hash.String()[:7], message)
	return hash.String(), nil
}

// Push pushes the current branch to the named remote with a default timeout.
// Authentication comes from the environment: SSH agent for SSH remotes,
// GIT_USERNAME/GIT_PASSWORD or GITHUB_TOKEN basic auth for HTTPS remotes.
func (r *Repo) Push(remoteName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultPushTimeout)
	defer cancel()
	return r.PushContext(ctx, remoteName)
}

// PushContext pushes the current branch to the named remote. There is no
// retry and no rollback of the local commit on failure; a failed push
// surfaces to the caller with the local repository state left modified.
func (r *Repo) PushContext(ctx context.Context, remoteName string) error {
	remote, err := r.repo.Remote(remoteName)
	if err != nil {
		return fmt.Errorf("resolving remote %q: %w", remoteName, err)
	}

	var url string
	if urls := remote.Config().URLs; len(urls) > 0 {
		url = urls[0]
	}

	logDebug("[gitrepo] pushing to remote %q (%s)", remoteName, url)

	err = r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remoteName,
		Auth:       getAuthForURL(url),
	})
	if err == git.NoErrAlreadyUpToDate {
		logDebug("[gitrepo] push: already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("pushing to %q: %w", remoteName, err)
	}
	return nil
}
