// Package release implements the changelog update pipeline: version
// discovery, commit collection, bump calculation, and changelog rewrite. The
// planning core is pure; all side effects go through the Publisher port so
// the pipeline can be tested without a live repository.
package release

import (
	"time"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/commits"
	"github.com/raveheart1/relnote/internal/semver"
)

// DefaultMaxCommits bounds how far back commit collection looks.
const DefaultMaxCommits = 100

// Plan is the computed outcome of a run before any side effect happens.
type Plan struct {
	Prior     semver.Version
	Next      semver.Version
	Kind      commits.BumpKind
	Entry     changelog.Entry
	Collected []commits.Commit
}

// Planner holds the pure inputs of the pipeline. The zero value is not
// usable; construct with NewPlanner.
type Planner struct {
	Markers    commits.Markers
	Recorded   changelog.RecordedPredicate
	ScanWindow int
	MaxCommits int
	Now        func() time.Time
}

// NewPlanner returns a Planner with conventional defaults and the given
// recorded-subject predicate.
func NewPlanner(m commits.Markers, recorded changelog.RecordedPredicate) Planner {
	return Planner{
		Markers:    m,
		Recorded:   recorded,
		ScanWindow: changelog.DefaultScanWindow,
		MaxCommits: DefaultMaxCommits,
		Now:        time.Now,
	}
}

// Build runs the pure stages against a changelog document and the recent
// commit list (newest first): discover the prior version, collect qualifying
// commits, and compute the bump and entry. Returns nil when no qualifying
// commits are found, which callers treat as a clean no-op.
func (p Planner) Build(doc string, recent []commits.Commit) *Plan {
	prior := changelog.DiscoverVersion(doc, p.ScanWindow)
	collected := p.Collect(doc, recent)
	if len(collected) == 0 {
		return nil
	}
	return p.planFromCollected(prior, collected)
}

// Collect walks recent commits newest-first, halting at the first subject
// the recorded predicate reports as already in the document, and keeps the
// qualifying ones. Order is preserved.
func (p Planner) Collect(doc string, recent []commits.Commit) []commits.Commit {
	limit := p.MaxCommits
	if limit <= 0 {
		limit = DefaultMaxCommits
	}
	if len(recent) > limit {
		recent = recent[:limit]
	}

	var collected []commits.Commit
	for _, c := range recent {
		if p.Recorded != nil && p.Recorded(c.Subject, doc) {
			break
		}
		if p.Markers.Qualifies(c.Subject) {
			collected = append(collected, c)
		}
	}
	return collected
}

// PlanFromCollected computes the bump and entry for an already-collected
// commit list. Exposed so the classification and formatting stages can be
// exercised independently of collection.
func (p Planner) PlanFromCollected(prior semver.Version, collected []commits.Commit) *Plan {
	if len(collected) == 0 {
		return nil
	}
	return p.planFromCollected(prior, collected)
}

func (p Planner) planFromCollected(prior semver.Version, collected []commits.Commit) *Plan {
	buckets := commits.Partition(collected, p.Markers)
	kind := buckets.Kind()

	var next semver.Version
	switch kind {
	case commits.BumpMajor:
		next = prior.BumpMajor()
	case commits.BumpMinor:
		next = prior.BumpMinor()
	default:
		next = prior.BumpPatch()
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	return &Plan{
		Prior: prior,
		Next:  next,
		Kind:  kind,
		Entry: changelog.Entry{
			Version:  next,
			Stamp:    now(),
			Breaking: commits.Subjects(buckets.Breaking),
			Feature:  commits.Subjects(buckets.Feature),
			Patch:    commits.Subjects(buckets.Patch),
		},
		Collected: collected,
	}
}
