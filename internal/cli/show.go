package cli

import (
	"fmt"

	"github.com/ariel-frischer/jsonchangelog/internal/changelog"
	"github.com/spf13/cobra"
)

var (
	showLastFlag  int
	showPlainFlag bool
)

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Show releases from the changelog document",
	Long: `Show releases from the changelog document in the terminal.

By default, shows the 5 newest releases. Use a version argument to see a
single release, or use --last to control how many are shown.`,
	Example: `  jsonchangelog show              # Show 5 newest releases
  jsonchangelog show v1.2.0       # Show release 1.2.0
  jsonchangelog show 1.2.0        # Same (v prefix optional)
  jsonchangelog show --last 10    # Show 10 newest releases
  jsonchangelog show --plain      # Plain output (no colors/icons)`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args)
	},
}

func init() {
	showCmd.GroupID = GroupDocument
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVar(&showLastFlag, "last", 5, "Number of releases to show")
	showCmd.Flags().BoolVar(&showPlainFlag, "plain", false, "Plain text output (no colors/icons)")
}

func runShow(cmd *cobra.Command, args []string) error {
	doc, _, err := loadDocument(cmd)
	if err != nil {
		return err
	}

	opts := changelog.FormatOptions{Plain: showPlainFlag}

	if len(args) == 1 {
		r, err := lookupVersion(cmd, doc, args[0])
		if err != nil {
			return err
		}
		return changelog.FormatRelease(r, cmd.OutOrStdout(), opts)
	}

	return showLastReleases(cmd, doc, showLastFlag, opts)
}

func showLastReleases(cmd *cobra.Command, doc *changelog.Changelog, n int, opts changelog.FormatOptions) error {
	releases := doc.GetLastN(n)
	if len(releases) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No releases found.")
		return nil
	}

	if err := changelog.FormatTerminal(releases, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting releases: %w", err)
	}

	total := doc.GetReleaseCount()
	if total > len(releases) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d releases shown. Use --last %d to see all)\n",
			len(releases), total, total)
	}
	return nil
}
