package release

import (
	"context"
	"fmt"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/commits"
	"github.com/raveheart1/relnote/internal/semver"
)

// Publisher performs the side effects of a plan: the changelog rewrite, the
// optional manifest rewrite, and the version-control publish.
type Publisher interface {
	// WriteChangelog rewrites the changelog document in full.
	WriteChangelog(doc string) error
	// UpdateManifest rewrites the manifest version field if the manifest
	// exists. Returns true when the file was modified.
	UpdateManifest(v semver.Version) (bool, error)
	// CommitAndPush commits all working-tree changes under the bot identity
	// and pushes to the remote tracking branch.
	CommitAndPush(ctx context.Context, v semver.Version) error
}

// Result reports what a run did.
type Result struct {
	// Applied is false on the no-new-commits path, which is a clean no-op.
	Applied bool
	Plan    *Plan
}

// Run executes the full pipeline: plan against the document and the recent
// commit list, then hand the side effects to the publisher in order. A nil
// plan exits early with Applied false and no publisher calls. There is no
// rollback: a publish failure after the file writes leaves the local state
// modified, matching the single-writer assumption of the trigger platform.
func Run(ctx context.Context, p Planner, doc string, recent []commits.Commit, pub Publisher) (Result, error) {
	plan := p.Build(doc, recent)
	if plan == nil {
		return Result{}, nil
	}

	newDoc := changelog.Prepend(doc, plan.Entry)
	if err := pub.WriteChangelog(newDoc); err != nil {
		return Result{Plan: plan}, fmt.Errorf("writing changelog: %w", err)
	}

	if _, err := pub.UpdateManifest(plan.Next); err != nil {
		return Result{Plan: plan}, fmt.Errorf("updating manifest: %w", err)
	}

	if err := pub.CommitAndPush(ctx, plan.Next); err != nil {
		return Result{Plan: plan}, err
	}

	return Result{Applied: true, Plan: plan}, nil
}
