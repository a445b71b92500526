package config

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path":   "CHANGELOG.md",
		"manifest_path":    "package.json",
		"remote":           "origin",
		"bot_name":         "relnote-bot",
		"bot_email":        "relnote-bot@users.noreply.github.com",
		"max_commits":      100,
		"scan_window":      10,
		"match_strategy":   "substring",
		"breaking_markers": []string{"🚨", "💥"},
		"feature_markers":  []string{"✨", "🚀"},
		"excluded_markers": []string{"🎨", "♻️", "🔧", "📝", "🚧", "✅", "🔖"},
	}
}

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# relnote configuration
# Priority: RELNOTE_* env vars > .relnote.yml > ~/.config/relnote/config.yml > defaults

# Files (paths relative to the repository root)
changelog_path: CHANGELOG.md          # Changelog file, new entries prepended
manifest_path: package.json           # Manifest whose "version" field is kept in sync ("" disables)

# Publishing
remote: origin                        # Push target
bot_name: relnote-bot                 # Identity for generated commits
bot_email: relnote-bot@users.noreply.github.com

# Collection
max_commits: 100                      # How many recent commits to examine
scan_window: 10                       # Leading changelog lines searched for the version marker
match_strategy: substring             # substring | exact-line | anchored-line
                                      # substring reproduces the historical behavior, including
                                      # early truncation when a subject is a substring of a
                                      # recorded entry

# Markers (a commit qualifies when it starts with a non-ASCII symbol
# that is not excluded)
breaking_markers: ["🚨", "💥"]        # Major bump
feature_markers: ["✨", "🚀"]         # Minor bump
excluded_markers: ["🎨", "♻️", "🔧", "📝", "🚧", "✅", "🔖"]
`
}
