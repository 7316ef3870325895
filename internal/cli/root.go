package cli

import (
	"context"
	"errors"

	"github.com/ariel-frischer/jsonchangelog/internal/config"
	clierrors "github.com/ariel-frischer/jsonchangelog/internal/errors"
	"github.com/ariel-frischer/jsonchangelog/internal/logging"
	"github.com/spf13/cobra"
)

// Command group IDs shown in help output.
const (
	GroupRelease       = "release"
	GroupDocument      = "document"
	GroupConfiguration = "configuration"
)

var (
	configPath    string
	changelogFlag string
	debugFlag     bool
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "jsonchangelog",
	Short: "Structured JSON changelogs from conventional commits",
	Long: `jsonchangelog turns conventional-changelog release descriptions into a
structured changelog document ({"releases": [...]}, newest first), adding
commit and compare links for GitHub, GitLab and Bitbucket repositories.

New releases are prepended to the persisted history on every run; when no
changelog exists yet the full history is requested instead.

Configuration is read from .jsonchangelog.yml, JSONCHANGELOG_* environment
variables and flags. Source: https://github.com/ariel-frischer/jsonchangelog`,
	Example: `  # Prepend the next release to CHANGELOG.json
  conventional-changelog -p angular -r 1 --config json.js | jsonchangelog generate --next-version 1.2.0

  # Preview without writing
  jsonchangelog generate --next-version 1.2.0 --input releases.json --dry-run

  # Inspect the document
  jsonchangelog show --last 3
  jsonchangelog extract 1.2.0
  jsonchangelog check`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupDocument, Title: "Document Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: .jsonchangelog.yml)")
	rootCmd.PersistentFlags().StringVarP(&changelogFlag, "changelog", "f", "", "Changelog document (overrides changelog_name)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Log intermediate release structures")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: text, json")
}

// Execute runs the root command. Failures are printed to stderr, except
// ExitError values whose command already reported them.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		clierrors.Fprint(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// loadConfig resolves configuration, applying explicitly set flags as the
// highest-priority layer.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		Overrides:         flagOverrides(cmd),
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.ConfigInvalid(err)
	}
	return cfg, nil
}

// flagOverrides maps changed flags onto configuration keys.
func flagOverrides(cmd *cobra.Command) map[string]any {
	flags := cmd.Flags()
	overrides := map[string]any{}
	if flags.Changed("changelog") {
		overrides["changelog_name"] = changelogFlag
	}
	if flags.Changed("debug") {
		overrides["debug"] = debugFlag
	}
	if flags.Changed("log-level") {
		overrides["log_level"] = logLevelFlag
	}
	if flags.Changed("log-format") {
		overrides["log_format"] = logFormatFlag
	}
	if flags.Changed("indent") {
		overrides["indent"] = generateIndent
	}
	if flags.Changed("dry-run") {
		overrides["dry_run"] = generateDryRun
	}
	if flags.Changed("no-links") {
		overrides["link_references"] = !generateNoLinks
	}
	return overrides
}

// newLogger builds the logging sink for cfg, writing to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.Configuration) logging.Logger {
	return logging.New(cmd.ErrOrStderr(), cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
