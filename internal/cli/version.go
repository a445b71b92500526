package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/build"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for relnote",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "relnote %s\n", build.Version)
		fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", truncateCommit(build.Commit))
		fmt.Fprintf(cmd.OutOrStdout(), "built: %s\n", build.BuildDate)
		fmt.Fprintf(cmd.OutOrStdout(), "go: %s\n", runtime.Version())
		fmt.Fprintf(cmd.OutOrStdout(), "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// truncateCommit shortens the commit hash for display.
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
