package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relnote/internal/config"
	"github.com/raveheart1/relnote/internal/errors"
)

var initForceFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .relnote.yml in the current directory",
	Long: `Write a commented .relnote.yml with the default settings so a project
can adjust paths, markers, and the bot identity without consulting the docs.

Refuses to overwrite an existing file unless --force is given.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForceFlag, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command) error {
	path := config.ProjectConfigPath()

	if _, err := os.Stat(path); err == nil && !initForceFlag {
		return NewExitError(ExitInvalidArguments, errors.NewArgumentError(
			path+" already exists",
			"Pass --force to overwrite it",
		))
	}

	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return NewExitError(ExitConfigError,
			errors.WrapWithMessage(err, errors.Configuration, "writing "+path))
	}

	cmd.Printf("Wrote %s\n", path)
	return nil
}
