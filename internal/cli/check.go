package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/jsonchangelog/internal/changelog"
	"github.com/ariel-frischer/jsonchangelog/internal/output"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the changelog document for problems",
	Long: `Check the changelog document for problems the generator never rejects:
empty versions or dates, duplicate versions, versions that are not semantic
versions, and releases that are not ordered newest first.

Returns exit code 0 when the document is clean and 1 when problems are found.
A document that does not parse exits with code 5.`,
	Example: `  jsonchangelog check
  jsonchangelog check --changelog CHANGELOG.yaml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

func init() {
	checkCmd.GroupID = GroupDocument
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command) error {
	doc, name, err := loadDocument(cmd)
	if err != nil {
		return err
	}

	err = changelog.Check(doc)
	if err == nil {
		output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s is valid (%s)", name, checkSummary(doc)))
		return nil
	}

	var checkErr *changelog.CheckError
	if !errors.As(err, &checkErr) {
		return fmt.Errorf("checking %s: %w", name, err)
	}
	output.PrintFailure(cmd.OutOrStdout(), fmt.Sprintf("%s has %d problem(s):", name, len(checkErr.Findings)))
	findings := make([]string, len(checkErr.Findings))
	for i, f := range checkErr.Findings {
		findings[i] = f.Error()
	}
	output.PrintFindings(cmd.OutOrStdout(), findings)
	return NewExitError(ExitFailure)
}

func checkSummary(doc *changelog.Changelog) string {
	summary := fmt.Sprintf("%d releases, %d commits", doc.GetReleaseCount(), doc.GetCommitCount())
	if latest := doc.GetLatestRelease(); latest != nil {
		summary += ", latest " + latest.Version
	}
	return summary
}
