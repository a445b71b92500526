// Package cli implements the relnote command tree. Each command lives in its
// own file and registers itself on rootCmd in init.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/config"
	"github.com/raveheart1/relnote/internal/errors"
	"github.com/raveheart1/relnote/internal/gitrepo"
)

var (
	configFlag string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "relnote",
	Short: "Emoji-convention changelog updater",
	Long: `relnote scans recent commit subjects, classifies them by their leading
emoji, computes the semantic-version bump, prepends a formatted entry to the
changelog, and commits and pushes the result under a bot identity.

Designed to run from CI on pushes to a single protected branch. Re-running
after a successful update is a clean no-op.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			gitrepo.SetDebugLogger(func(format string, args ...any) {
				cmd.PrintErrf(format+"\n", args...)
			})
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to project config file (default: .relnote.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
}

// Execute runs the command tree and prints structured errors to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

// printError prints a CLIError with category and remediation when available,
// or a plain error line otherwise.
func printError(err error) {
	var inner error = err
	if exitErr, ok := err.(*ExitError); ok && exitErr.Err != nil {
		inner = exitErr.Err
	}

	if cliErr := errors.AsCLIError(inner); cliErr != nil {
		errors.PrintError(cliErr)
		return
	}
	rootCmd.PrintErrf("Error: %v\n", inner)
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, NewExitError(ExitConfigError,
			errors.WrapWithMessage(err, errors.Configuration, "loading configuration",
				"Check the .relnote.yml syntax, or run 'relnote init' to write a fresh one"))
	}
	return cfg, nil
}
