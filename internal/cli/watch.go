package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/gitrepo"
	"github.com/raveheart1/relnote/internal/release"
)

var watchRepoFlag string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Preview the pending entry as commits land",
	Long: `Watch the repository HEAD and print the entry a run of 'relnote update'
would publish each time new commits arrive. Nothing is written; this is a
live dry run for working on commit subjects locally.

Press Ctrl+C to stop.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchRepoFlag, "repo", "", "Repository path (default: current directory)")
}

func runWatch(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	recorded, err := cfg.Strategy()
	if err != nil {
		return NewExitError(ExitConfigError, errors.ErrInvalidStrategy(cfg.MatchStrategy))
	}

	repo, err := gitrepo.Open(watchRepoFlag)
	if err != nil {
		return NewExitError(ExitRepositoryError, errors.ErrNotARepository(watchRepoFlag))
	}

	root, err := repo.Root()
	if err != nil {
		return NewExitError(ExitRepositoryError,
			errors.WrapWithMessage(err, errors.Repository, "resolving repository root"))
	}

	watcher, err := gitrepo.NewHeadWatcher(root)
	if err != nil {
		return NewExitError(ExitRepositoryError,
			errors.WrapWithMessage(err, errors.Repository, "starting repository watcher"))
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	planner := release.NewPlanner(cfg.Markers(), recorded)
	planner.ScanWindow = cfg.ScanWindow
	planner.MaxCommits = cfg.MaxCommits

	preview := func() {
		doc, err := changelog.ReadDocument(joinRoot(root, cfg.ChangelogPath))
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "cannot read changelog: %v\n", err)
			return
		}
		recent, err := repo.RecentCommits(cfg.MaxCommits)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "cannot read commit log: %v\n", err)
			return
		}
		if plan := planner.Build(doc, recent); plan != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Pending %s (%s bump, %d commits):\n\n",
				plan.Next.Tag(), plan.Kind, len(plan.Collected))
			fmt.Fprintln(cmd.OutOrStdout(), plan.Entry.Render())
		} else {
			cmd.Println("Nothing pending.")
		}
	}

	branch, _ := repo.CurrentBranch()
	if branch != "" {
		cmd.Printf("Watching %s on %s (Ctrl+C to stop)\n", root, branch)
	} else {
		cmd.Printf("Watching %s (Ctrl+C to stop)\n", root)
	}
	preview()

	g, ctx := errgroup.WithContext(ctx)
	ticks := watcher.Watch(ctx)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-ticks:
				if !ok {
					return nil
				}
				preview()
			}
		}
	})

	return g.Wait()
}
