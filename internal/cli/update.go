package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/commits"
	"github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/gitrepo"
	"github.com/raveheart1/relnote/internal/release"
)

var (
	updateRepoFlag   string
	updateDryRunFlag bool
	updateNoPushFlag bool
	updateNoSpinFlag bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Scan new commits and prepend a changelog entry",
	Long: `Run the full update pipeline: discover the current version in the
changelog, collect new emoji-marked commits, compute the version bump,
prepend the formatted entry, sync the manifest version field, and commit and
push the result under the bot identity.

Exits 0 both when an entry was published and when there is nothing to do.

Examples:
  relnote update                # Full pipeline, push to the tracking remote
  relnote update --dry-run      # Print the planned entry, change nothing
  relnote update --no-push      # Write and commit locally only`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateRepoFlag, "repo", "", "Repository path (default: current directory)")
	updateCmd.Flags().BoolVar(&updateDryRunFlag, "dry-run", false, "Print the planned entry without changing anything")
	updateCmd.Flags().BoolVar(&updateNoPushFlag, "no-push", false, "Write and commit locally without pushing")
	updateCmd.Flags().BoolVar(&updateNoSpinFlag, "no-spinner", false, "Disable the push progress spinner")
}

func runUpdate(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	recorded, err := cfg.Strategy()
	if err != nil {
		return NewExitError(ExitConfigError, errors.ErrInvalidStrategy(cfg.MatchStrategy))
	}

	repo, err := gitrepo.Open(updateRepoFlag)
	if err != nil {
		return NewExitError(ExitRepositoryError, errors.ErrNotARepository(updateRepoFlag))
	}

	root, err := repo.Root()
	if err != nil {
		return NewExitError(ExitRepositoryError,
			errors.WrapWithMessage(err, errors.Repository, "resolving repository root"))
	}

	doc, err := changelog.ReadDocument(joinRoot(root, cfg.ChangelogPath))
	if err != nil {
		return NewExitError(ExitRepositoryError, errors.ErrChangelogUnreadable(cfg.ChangelogPath, err))
	}

	if shallow, shallowErr := repo.IsShallow(); shallowErr == nil && shallow {
		return NewExitError(ExitRepositoryError, errors.ErrShallowHistory())
	}

	recent, err := repo.RecentCommits(cfg.MaxCommits)
	if err != nil {
		return NewExitError(ExitRepositoryError,
			errors.WrapWithMessage(err, errors.Repository, "reading commit log",
				"Make sure the checkout has full history (fetch-depth: 0)"))
	}

	planner := release.NewPlanner(cfg.Markers(), recorded)
	planner.ScanWindow = cfg.ScanWindow
	planner.MaxCommits = cfg.MaxCommits

	if updateDryRunFlag {
		return printPlan(cmd, planner, doc, recent)
	}

	pub := &release.GitPublisher{
		Repo:          repo,
		ChangelogPath: cfg.ChangelogPath,
		ManifestPath:  cfg.ManifestPath,
		Remote:        cfg.Remote,
		Identity:      cfg.Identity(),
		NoPush:        updateNoPushFlag,
	}

	stopSpinner := startPushSpinner(cmd)
	result, err := release.Run(cmd.Context(), planner, doc, recent, pub)
	stopSpinner()
	if err != nil {
		return NewExitError(ExitPushFailed, errors.ErrPushFailed(cfg.Remote, err))
	}

	if !result.Applied {
		cmd.Println("No new commits to record.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Published %s (%s bump, %d commits)\n",
		result.Plan.Next.Tag(), result.Plan.Kind, len(result.Plan.Collected))
	return nil
}

// printPlan runs only the pure stages and prints the entry that would be
// written.
func printPlan(cmd *cobra.Command, planner release.Planner, doc string, recent []commits.Commit) error {
	plan := planner.Build(doc, recent)
	if plan == nil {
		cmd.Println("No new commits to record.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Would publish %s (%s bump, %d commits):\n\n",
		plan.Next.Tag(), plan.Kind, len(plan.Collected))
	fmt.Fprint(cmd.OutOrStdout(), plan.Entry.Render())
	return nil
}

// joinRoot resolves a repo-relative path against the repository root.
func joinRoot(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// startPushSpinner starts the progress spinner unless disabled or not
// wanted. Returns the stop function.
func startPushSpinner(cmd *cobra.Command) func() {
	if updateNoSpinFlag || updateDryRunFlag {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " Updating changelog..."
	s.Writer = cmd.ErrOrStderr()
	s.Start()
	return s.Stop
}
