package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/jsonchangelog/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/jsonchangelog"

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for jsonchangelog",
	Example: `  # Show version info
  jsonchangelog version

  # Plain output (for scripts)
  jsonchangelog version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := build.Current()
		if versionPlain {
			printPlainVersion(cmd.OutOrStdout(), info)
			return
		}
		printPrettyVersion(cmd.OutOrStdout(), info)
	},
}

func init() {
	versionCmd.GroupID = GroupConfiguration
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer, info build.Info) {
	fmt.Fprintf(w, "jsonchangelog %s\n", info.Version)
	fmt.Fprintf(w, "commit: %s\n", info.Commit)
	fmt.Fprintf(w, "built: %s\n", info.BuildDate)
	fmt.Fprintf(w, "go: %s\n", info.GoVersion)
	fmt.Fprintf(w, "platform: %s\n", info.Platform)
}

func printPrettyVersion(w io.Writer, info build.Info) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	title := "jsonchangelog"
	if build.IsDevBuild() {
		title += " " + dim("(dev build)")
	}
	fmt.Fprintln(w, cyan(title))
	fmt.Fprintln(w, dim(strings.Repeat("─", 36)))

	rows := []struct {
		label string
		value string
	}{
		{"Version", info.Version},
		{"Commit", info.ShortCommit()},
		{"Built", info.BuildDate},
		{"Go", info.GoVersion},
		{"Platform", info.Platform},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s  %s\n", yellow(fmt.Sprintf("%10s", row.label)), white(row.value))
	}
	fmt.Fprintln(w, dim(SourceURL))
}

var sauceCmd = &cobra.Command{
	Use:   "sauce",
	Short: "Display the source URL",
	Long:  "Display the source URL for the jsonchangelog project",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(SourceURL)
	},
}

func init() {
	rootCmd.AddCommand(sauceCmd)
}
