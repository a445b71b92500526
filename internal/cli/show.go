package cli

import (
	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/gitrepo"
)

var (
	showLastFlag  int
	showPlainFlag bool
	showWidthFlag int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display recent changelog entries",
	Long: `Parse the changelog and print the most recent entries with the marker
classes colorized. Use --plain for raw output in scripts and CI logs.

Examples:
  relnote show              # Last 5 entries, colorized
  relnote show --last 1     # Most recent entry only
  relnote show --plain      # No colors, no width detection`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVarP(&showLastFlag, "last", "n", 5, "Number of entries to show")
	showCmd.Flags().BoolVar(&showPlainFlag, "plain", false, "Disable colors and width detection")
	showCmd.Flags().IntVar(&showWidthFlag, "width", 0, "Maximum line width (0 = auto-detect)")
}

func runShow(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if showLastFlag < 1 {
		return NewExitError(ExitInvalidArguments,
			errors.NewArgumentError("--last must be at least 1"))
	}

	path := cfg.ChangelogPath
	if repo, repoErr := gitrepo.Open(""); repoErr == nil {
		if root, rootErr := repo.Root(); rootErr == nil {
			path = joinRoot(root, cfg.ChangelogPath)
		}
	}

	doc, err := changelog.ReadDocument(path)
	if err != nil {
		return NewExitError(ExitRepositoryError, errors.ErrChangelogUnreadable(cfg.ChangelogPath, err))
	}

	entries := changelog.ParseDocument(doc)
	if len(entries) == 0 {
		cmd.Println("No changelog entries found.")
		return nil
	}
	if len(entries) > showLastFlag {
		entries = entries[:showLastFlag]
	}

	opts := changelog.FormatOptions{Plain: showPlainFlag, MaxWidth: showWidthFlag}
	return changelog.FormatEntries(entries, cfg.Markers(), cmd.OutOrStdout(), opts)
}
