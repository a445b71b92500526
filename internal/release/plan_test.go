package release

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/commits"
	"github.com/raveheart1/relnote/internal/semver"
)

var planStamp = time.Date(2024, 3, 10, 14, 5, 0, 0, time.UTC)

func testPlanner(t *testing.T, strategy changelog.MatchStrategy) Planner {
	t.Helper()
	recorded, err := changelog.PredicateFor(strategy)
	require.NoError(t, err)

	p := NewPlanner(commits.DefaultMarkers(), recorded)
	p.Now = func() time.Time { return planStamp }
	return p
}

func subjects(list ...string) []commits.Commit {
	cs := make([]commits.Commit, len(list))
	for i, s := range list {
		cs[i] = commits.Commit{Subject: s}
	}
	return cs
}

func TestPlanFromCollected_BreakingWins(t *testing.T) {
	p := testPlanner(t, changelog.MatchSubstring)

	plan := p.PlanFromCollected(
		semver.Version{Major: 1, Minor: 2, Patch: 3},
		subjects("🚨 break api", "✨ add thing", "fix typo"),
	)
	require.NotNil(t, plan)

	assert.Equal(t, semver.Version{Major: 2}, plan.Next)
	assert.Equal(t, commits.BumpMajor, plan.Kind)

	expected := "**v2.0.0 2024-03-10 14:05**  \n" +
		"🚨 break api  \n" +
		"✨ add thing  \n" +
		"fix typo  \n"
	assert.Equal(t, expected, plan.Entry.Render())
}

func TestPlanFromCollected_BumpSelection(t *testing.T) {
	prior := semver.Version{Major: 1, Minor: 2, Patch: 3}

	tests := map[string]struct {
		collected []commits.Commit
		expected  semver.Version
		kind      commits.BumpKind
	}{
		"feature bumps minor": {
			collected: subjects("✨ add thing", "🐛 fix crash"),
			expected:  semver.Version{Major: 1, Minor: 3},
			kind:      commits.BumpMinor,
		},
		"patch only": {
			collected: subjects("🐛 fix crash"),
			expected:  semver.Version{Major: 1, Minor: 2, Patch: 4},
			kind:      commits.BumpPatch,
		},
		"breaking resets minor and patch": {
			collected: subjects("💥 drop endpoint"),
			expected:  semver.Version{Major: 2},
			kind:      commits.BumpMajor,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := testPlanner(t, changelog.MatchSubstring)
			plan := p.PlanFromCollected(prior, tt.collected)
			require.NotNil(t, plan)
			assert.Equal(t, tt.expected, plan.Next)
			assert.Equal(t, tt.kind, plan.Kind)
			assert.Equal(t, 1, plan.Next.Compare(prior), "new version exceeds prior")
		})
	}
}

func TestPlanFromCollected_Empty(t *testing.T) {
	p := testPlanner(t, changelog.MatchSubstring)
	assert.Nil(t, p.PlanFromCollected(semver.Version{Major: 1}, nil))
}

func TestBuild_DiscoversPriorVersion(t *testing.T) {
	p := testPlanner(t, changelog.MatchSubstring)
	doc := "**v1.2.3 2024-01-15 10:30**  \n🐛 fix old crash  \n"

	plan := p.Build(doc, subjects("✨ add thing"))
	require.NotNil(t, plan)
	assert.Equal(t, semver.Version{Major: 1, Minor: 2, Patch: 3}, plan.Prior)
	assert.Equal(t, semver.Version{Major: 1, Minor: 3}, plan.Next)
}

func TestBuild_NoMarkerDefaultsToZero(t *testing.T) {
	p := testPlanner(t, changelog.MatchSubstring)

	plan := p.Build("", subjects("✨ add thing"))
	require.NotNil(t, plan)
	assert.Equal(t, semver.Zero, plan.Prior)
	assert.Equal(t, semver.Version{Minor: 1}, plan.Next)
}

func TestCollect_HaltsAtRecordedSubject(t *testing.T) {
	p := testPlanner(t, changelog.MatchSubstring)
	doc := "**v1.0.0 2024-01-01 00:00**  \n✨ recorded feature  \n"

	collected := p.Collect(doc, subjects(
		"✨ newest",
		"🐛 also new",
		"✨ recorded feature", // halt here
		"✨ older but never recorded",
	))
	assert.Equal(t, []string{"✨ newest", "🐛 also new"}, commits.Subjects(collected))
}

func TestCollect_SubstringFalsePositiveTruncates(t *testing.T) {
	// A candidate subject that is a substring of an already-recorded entry
	// halts collection early. Documented limitation, reproduced on purpose.
	p := testPlanner(t, changelog.MatchSubstring)
	doc := "**v1.0.0 2024-01-01 00:00**  \n✨ add thing with extra detail  \n"

	collected := p.Collect(doc, subjects(
		"🐛 new fix",
		"✨ add thing", // substring of the recorded entry
		"💥 never reached",
	))
	assert.Equal(t, []string{"🐛 new fix"}, commits.Subjects(collected))
}

func TestCollect_ExactLineStrategyAvoidsFalsePositive(t *testing.T) {
	p := testPlanner(t, changelog.MatchExactLine)
	doc := "**v1.0.0 2024-01-01 00:00**  \n✨ add thing with extra detail  \n"

	collected := p.Collect(doc, subjects("🐛 new fix", "✨ add thing"))
	assert.Equal(t, []string{"🐛 new fix", "✨ add thing"}, commits.Subjects(collected))
}

func TestCollect_FiltersNonQualifying(t *testing.T) {
	p := testPlanner(t, changelog.MatchSubstring)

	collected := p.Collect("", subjects(
		"✨ add thing",
		"fix typo",      // plain ascii, skipped
		"🎨 reformat",   // excluded marker, skipped
		"🐛 fix crash",
	))
	assert.Equal(t, []string{"✨ add thing", "🐛 fix crash"}, commits.Subjects(collected))
}

func TestCollect_RespectsMaxCommits(t *testing.T) {
	p := testPlanner(t, changelog.MatchSubstring)
	p.MaxCommits = 2

	collected := p.Collect("", subjects("✨ one", "✨ two", "✨ three"))
	assert.Equal(t, []string{"✨ one", "✨ two"}, commits.Subjects(collected))
}

func TestBuild_Idempotence(t *testing.T) {
	// Re-running immediately after a publish finds every commit recorded
	// and produces no plan.
	p := testPlanner(t, changelog.MatchSubstring)
	recent := subjects("✨ add thing", "🐛 fix crash")

	plan := p.Build("", recent)
	require.NotNil(t, plan)

	doc := changelog.Prepend("", plan.Entry)
	assert.Nil(t, p.Build(doc, recent), "second run is a no-op")
}

func TestBuild_IsPure(t *testing.T) {
	p := testPlanner(t, changelog.MatchSubstring)
	recent := subjects("✨ add thing")

	first := p.Build("", recent)
	second := p.Build("", recent)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Entry.Render(), second.Entry.Render())
}
