// Package config provides hierarchical configuration management for relnote
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.relnote.yml) > user config (~/.config/relnote/config.yml)
// > defaults. A legacy project-level JSON config (.relnote.json) is still
// read, with a deprecation warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/raveheart1/relnote/internal/changelog"
	"github.com/raveheart1/relnote/internal/commits"
	"github.com/raveheart1/relnote/internal/gitrepo"
)

// Configuration represents the relnote settings.
type Configuration struct {
	// ChangelogPath is the changelog file, relative to the repository root.
	ChangelogPath string `koanf:"changelog_path"`
	// ManifestPath is the optional manifest whose version field is kept in
	// sync. Empty disables the manifest rewrite.
	ManifestPath string `koanf:"manifest_path"`

	// Remote is the push target.
	Remote string `koanf:"remote"`
	// BotName and BotEmail form the fixed identity for generated commits.
	BotName  string `koanf:"bot_name"`
	BotEmail string `koanf:"bot_email"`

	// MaxCommits bounds how many recent commits collection examines.
	MaxCommits int `koanf:"max_commits"`
	// ScanWindow bounds how many leading changelog lines version discovery reads.
	ScanWindow int `koanf:"scan_window"`
	// MatchStrategy selects how "already recorded" is decided:
	// substring (default), exact-line, or anchored-line.
	MatchStrategy string `koanf:"match_strategy"`

	// Marker sets for classification.
	BreakingMarkers []string `koanf:"breaking_markers"`
	FeatureMarkers  []string `koanf:"feature_markers"`
	ExcludedMarkers []string `koanf:"excluded_markers"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relnote.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("RELNOTE_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadUserConfig loads the user-level YAML config when it exists.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	return loadYAMLConfig(k, path, "user")
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON
// supported with a migration warning). Supports a custom path override.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}
	legacyPath := LegacyProjectConfigPath()

	if fileExists(yamlPath) {
		return loadYAMLConfig(k, yamlPath, "project")
	}

	if fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load legacy project config %s: %w", legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Move the settings to %s (YAML).\n\n", ProjectConfigPath())
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file.
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: RELNOTE_MAX_COMMITS -> max_commits
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RELNOTE_"))
}

// Markers returns the marker sets as the classifier consumes them.
func (c *Configuration) Markers() commits.Markers {
	return commits.Markers{
		Breaking: c.BreakingMarkers,
		Feature:  c.FeatureMarkers,
		Excluded: c.ExcludedMarkers,
	}
}

// Strategy returns the recorded-subject predicate selected by the config.
func (c *Configuration) Strategy() (changelog.RecordedPredicate, error) {
	return changelog.PredicateFor(changelog.MatchStrategy(c.MatchStrategy))
}

// Identity returns the bot identity for generated commits.
func (c *Configuration) Identity() gitrepo.Identity {
	return gitrepo.Identity{Name: c.BotName, Email: c.BotEmail}
}
