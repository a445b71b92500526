// Package gitrepo wraps the go-git operations the updater needs: opening the
// repository, reading the recent commit log, committing the working tree
// under the bot identity, and pushing to the remote tracking branch. No git
// CLI is required on the runner.
package gitrepo

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/raveheart1/relnote/internal/commits"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for repository operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repo is an open git repository.
type Repo struct {
	repo *git.Repository
}

// Open opens the repository at path, traversing up the directory tree to
// find the repository root. An empty path means the current working
// directory.
func Open(path string) (*Repo, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[gitrepo] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repo{repo: repo}, nil
}

// Root returns the absolute path to the repository worktree root.
func (r *Repo) Root() (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// CurrentBranch returns the name of the current branch, or an empty string
// in detached HEAD state.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		logDebug("[gitrepo] CurrentBranch: detached HEAD state")
		return "", nil
	}
	return head.Name().Short(), nil
}

// RecentCommits returns up to limit commits reachable from HEAD, newest
// first. Only the subject line of each message is kept. An unborn HEAD
// (empty repository) yields an empty list rather than an error.
func (r *Repo) RecentCommits(limit int) ([]commits.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		logDebug("[gitrepo] RecentCommits: no HEAD: %v", err)
		return nil, nil
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}
	defer iter.Close()

	var list []commits.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(list) >= limit {
			return errLimitReached
		}
		list = append(list, commits.Commit{
			Hash:    c.Hash.String(),
			Subject: subjectLine(c.Message),
			When:    c.Author.When,
		})
		return nil
	})
	if err != nil && err != errLimitReached {
		return nil, fmt.Errorf("iterating commit log: %w", err)
	}

	logDebug("[gitrepo] RecentCommits: collected %d commits", len(list))
	return list, nil
}

// errLimitReached stops log iteration once the bound is hit.
var errLimitReached = fmt.Errorf("commit limit reached")

// subjectLine returns the first line of a commit message.
func subjectLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = message[:i]
	}
	return strings.TrimRight(message, "\r")
}

// IsShallow reports whether the repository is a shallow clone, whose
// truncated history would cut commit collection short.
func (r *Repo) IsShallow() (bool, error) {
	hashes, err := r.repo.Storer.Shallow()
	if err != nil {
		return false, fmt.Errorf("reading shallow state: %w", err)
	}
	return len(hashes) > 0, nil
}

// HasChanges reports whether the working tree has uncommitted changes.
func (r *Repo) HasChanges() (bool, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("reading worktree status: %w", err)
	}
	return !status.IsClean(), nil
}
