package cli

import (
	"github.com/ariel-frischer/jsonchangelog/internal/changelog"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <version>",
	Short: "Extract release notes for a specific version",
	Long: `Extract release notes for a specific version in markdown format.

The output is suitable for GitHub or GitLab release notes and is written
to stdout.`,
	Example: `  jsonchangelog extract v1.2.0    # Extract notes for version 1.2.0
  jsonchangelog extract 1.2.0     # Same (v prefix optional)`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args[0])
	},
}

func init() {
	extractCmd.GroupID = GroupDocument
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, version string) error {
	doc, _, err := loadDocument(cmd)
	if err != nil {
		return err
	}

	r, err := lookupVersion(cmd, doc, version)
	if err != nil {
		return err
	}
	return changelog.RenderReleaseNotes(r, cmd.OutOrStdout())
}
