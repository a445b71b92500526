package errors

import "fmt"

// Prebuilt errors for the common failure paths of the update pipeline.

// ErrNotARepository is returned when the target directory is not inside a
// git repository.
func ErrNotARepository(path string) *CLIError {
	return NewRepositoryError(
		fmt.Sprintf("not a git repository: %s", path),
		"Run relnote from inside the repository, or pass --repo <path>",
		"Check that the CI checkout step ran before this job",
	)
}

// ErrShallowHistory is returned when the commit log looks truncated by a
// shallow clone.
func ErrShallowHistory() *CLIError {
	return NewRepositoryError(
		"commit history appears shallow; collection needs full history",
		"Use 'fetch-depth: 0' (or an unshallowed clone) in the CI checkout",
	)
}

// ErrChangelogUnreadable is returned when the changelog file exists but
// cannot be read.
func ErrChangelogUnreadable(path string, err error) *CLIError {
	return WrapWithMessage(err, Repository,
		fmt.Sprintf("cannot read changelog %s", path),
		"Check the file permissions and the changelog_path setting",
	)
}

// ErrPushFailed is returned when the push to the remote fails. The local
// commit is left in place; there is no rollback.
func ErrPushFailed(remote string, err error) *CLIError {
	return WrapWithMessage(err, Publish,
		fmt.Sprintf("push to %q failed (local commit kept)", remote),
		"Check that GITHUB_TOKEN or GIT_USERNAME/GIT_PASSWORD are set for HTTPS remotes",
		"Check that an SSH agent is available for SSH remotes",
		"Re-run the job once the remote is reachable; the run is idempotent",
	)
}

// ErrInvalidStrategy is returned for an unrecognized match_strategy value.
func ErrInvalidStrategy(strategy string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("unknown match_strategy %q", strategy),
		"Valid strategies: substring, exact-line, anchored-line",
	)
}
