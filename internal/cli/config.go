package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/ariel-frischer/jsonchangelog/internal/config"
	clierrors "github.com/ariel-frischer/jsonchangelog/internal/errors"
	"github.com/ariel-frischer/jsonchangelog/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configShowLayers    bool
	configInitForce     bool
	configMigrateDryRun bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage jsonchangelog configuration",
	Long: `Manage jsonchangelog configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (JSONCHANGELOG_*)
  3. Project config (.jsonchangelog.yml, or legacy .jsonchangelog.json)
  4. Built-in defaults`,
	Example: `  # Show the resolved configuration
  jsonchangelog config show

  # List every key with its type, default and environment variable
  jsonchangelog config keys

  # Set a value in the project config
  jsonchangelog config set indent 4`,
}

var configShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Show the resolved configuration",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

var configKeysCmd = &cobra.Command{
	Use:          "keys",
	Short:        "List known configuration keys",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigKeys(cmd)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the project config file",
	Long: `Set a value in the project config file, creating the file if needed.

The value is checked against the key's type before anything is written.
Comments on other keys are preserved.`,
	Example: `  jsonchangelog config set changelog_name CHANGELOG.yaml
  jsonchangelog config set link_references false`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(cmd, args[0], args[1])
	},
}

var configInitCmd = &cobra.Command{
	Use:          "init",
	Short:        "Write a commented project config file",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

var configMigrateCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Convert the legacy JSON config to YAML",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigMigrate(cmd)
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)

	configShowCmd.Flags().BoolVar(&configShowLayers, "layers", false, "Also list the layers that set each key")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configMigrateCmd.Flags().BoolVar(&configMigrateDryRun, "dry-run", false, "Report the migration without writing")

	configCmd.AddCommand(configShowCmd, configKeysCmd, configSetCmd, configInitCmd, configMigrateCmd)
}

// targetConfigPath is the file that config set and init write.
func targetConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.ProjectConfigPath()
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := struct {
		Config *config.Configuration `yaml:"config"`
		Layers []config.Layer        `yaml:"layers,omitempty"`
	}{Config: cfg}
	if configShowLayers {
		out.Layers = cfg.Layers
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigKeys(cmd *cobra.Command) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTYPE\tDEFAULT\tENV\tDESCRIPTION")
	for _, s := range config.SortedKeySchemas() {
		typ := s.Type.String()
		if len(s.AllowedValues) > 0 {
			typ = fmt.Sprintf("%s %v", typ, s.AllowedValues)
		}
		fmt.Fprintf(tw, "%s\t%s\t%v\t%s\t%s\n", s.Path, typ, s.Default, s.EnvVar(), s.Description)
	}
	return tw.Flush()
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	path := targetConfigPath()
	if err := config.SetConfigValue(path, key, value); err != nil {
		return clierrors.Wrap(err, clierrors.Configuration,
			fmt.Sprintf("cannot set %s", key),
			"List valid keys with: jsonchangelog config keys",
		)
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Set %s = %s in %s", key, value, path))
	return nil
}

func runConfigInit(cmd *cobra.Command) error {
	path := targetConfigPath()
	if _, err := os.Stat(path); err == nil && !configInitForce {
		output.PrintNotice(cmd.OutOrStdout(), fmt.Sprintf("%s already exists (use --force to overwrite)", path))
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	output.PrintSuccess(cmd.OutOrStdout(), "Created "+path)
	return nil
}

func runConfigMigrate(cmd *cobra.Command) error {
	result, err := config.MigrateProjectConfig(configMigrateDryRun)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Configuration, "config migration failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}
