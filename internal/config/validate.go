package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raveheart1/relnote/internal/changelog"
)

// ValidateConfigValues checks that a loaded configuration is usable.
func ValidateConfigValues(cfg *Configuration) error {
	if cfg.ChangelogPath == "" {
		return fmt.Errorf("changelog_path must not be empty")
	}
	if cfg.Remote == "" {
		return fmt.Errorf("remote must not be empty")
	}
	if cfg.BotName == "" || cfg.BotEmail == "" {
		return fmt.Errorf("bot_name and bot_email must not be empty")
	}
	if cfg.MaxCommits < 1 || cfg.MaxCommits > 1000 {
		return fmt.Errorf("max_commits must be between 1 and 1000, got %d", cfg.MaxCommits)
	}
	if cfg.ScanWindow < 1 {
		return fmt.Errorf("scan_window must be at least 1, got %d", cfg.ScanWindow)
	}
	if _, err := changelog.PredicateFor(changelog.MatchStrategy(cfg.MatchStrategy)); err != nil {
		return err
	}
	if len(cfg.BreakingMarkers) == 0 || len(cfg.FeatureMarkers) == 0 {
		return fmt.Errorf("breaking_markers and feature_markers must not be empty")
	}
	return nil
}

// ValidateYAMLSyntax validates YAML syntax by streaming through the document
// before handing the file to koanf, so syntax errors surface with line
// information.
func ValidateYAMLSyntax(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	for {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("YAML syntax error in %s: %w", path, err)
		}
	}
}
