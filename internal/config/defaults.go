package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# jsonchangelog configuration
# See 'jsonchangelog config keys' for all options

changelog_name: CHANGELOG.json        # Output target; .yaml/.yml writes YAML
indent: 2                             # Pretty-print width (0-10, 0 = compact JSON)
link_references: true                 # Generate commit and compare URLs
dry_run: false                        # Log the document instead of writing it
debug: false                          # Log intermediate release structures

# Logging
log_level: info                       # debug | info | warn | error
log_format: text                      # text | json
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_name":  "CHANGELOG.json",
		"indent":          2,
		"debug":           false,
		"dry_run":         false,
		"link_references": true, // links are part of the persisted schema unless disabled
		"log_level":       "info",
		"log_format":      "text",
	}
}
