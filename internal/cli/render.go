package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/jsonchangelog/internal/changelog"
	"github.com/ariel-frischer/jsonchangelog/internal/output"
	"github.com/spf13/cobra"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the changelog document as markdown",
	Long: `Render every release of the changelog document as markdown, newest first.

Commit hashes link to their commit URLs and release headings link to their
compare URLs when the document carries them.`,
	Example: `  # Print markdown to stdout
  jsonchangelog render

  # Write CHANGELOG.md
  jsonchangelog render --output CHANGELOG.md`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd)
	},
}

func init() {
	renderCmd.GroupID = GroupDocument
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command) error {
	doc, _, err := loadDocument(cmd)
	if err != nil {
		return err
	}

	if renderOutput == "" {
		return changelog.RenderMarkdown(doc, cmd.OutOrStdout())
	}

	content, err := changelog.RenderMarkdownString(doc)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	if err := os.WriteFile(renderOutput, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", renderOutput, err)
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Rendered %d release(s) to %s", doc.GetReleaseCount(), renderOutput))
	return nil
}
