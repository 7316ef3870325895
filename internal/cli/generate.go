package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/jsonchangelog/internal/assembler"
	"github.com/ariel-frischer/jsonchangelog/internal/conventional"
	clierrors "github.com/ariel-frischer/jsonchangelog/internal/errors"
	"github.com/ariel-frischer/jsonchangelog/internal/output"
	"github.com/ariel-frischer/jsonchangelog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	generateNextVersion string
	generateInput       string
	generateIndent      int
	generateDryRun      bool
	generateNoLinks     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Prepend new releases to the changelog document",
	Long: `Read conventional-changelog release descriptions and prepend them to the
changelog document.

When the document does not exist yet, the full history is expected on the
input and the document is created. Otherwise only releases since the last tag
are taken and the document is updated. An empty input leaves the document
untouched.

Release descriptions are read from stdin (or --input) as a JSON array,
newline-delimited JSON objects, or concatenated JSON objects. The output
format follows the document extension: .yaml/.yml writes YAML, anything else
writes JSON.`,
	Example: `  # Update CHANGELOG.json with the release about to be published
  conventional-changelog -r 1 --config json.js | jsonchangelog generate --next-version 1.2.0

  # Bootstrap a YAML changelog from a saved full history
  jsonchangelog generate --next-version 1.0.0 --input history.json --changelog CHANGELOG.yaml

  # Print the assembled document instead of writing it
  jsonchangelog generate --next-version 1.2.0 --input releases.json --dry-run`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	generateCmd.GroupID = GroupRelease
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateNextVersion, "next-version", "", "Version being released (required)")
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "-", "Release descriptions file (- for stdin)")
	generateCmd.Flags().IntVar(&generateIndent, "indent", 2, "Indentation width, 0 for compact output")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Log the document instead of writing it")
	generateCmd.Flags().BoolVar(&generateNoLinks, "no-links", false, "Omit commit and compare URLs")
}

func runGenerate(cmd *cobra.Command) error {
	if generateNextVersion == "" {
		return clierrors.MissingNextVersion()
	}
	if cmd.Flags().Changed("indent") && (generateIndent < 0 || generateIndent > 10) {
		return clierrors.InvalidIndent(generateIndent)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	input, closeInput, err := openInput(cmd, generateInput)
	if err != nil {
		return clierrors.InputUnreadable(err)
	}
	defer closeInput()

	a := assembler.New(
		assembler.OptionsFromConfig(cfg),
		conventional.NewStream(input),
		storage.NewFile(""),
		newLogger(cmd, cfg),
	)

	result, err := a.Run(commandContext(cmd), generateNextVersion)
	if err != nil {
		return classify(err, cfg.ChangelogName)
	}

	printGenerateSummary(cmd.OutOrStdout(), cfg.ChangelogName, result)
	return nil
}

// openInput returns the release description stream for path. "-" and ""
// read the command's stdin.
func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func printGenerateSummary(w io.Writer, name string, result *assembler.Result) {
	switch {
	case result.NoOp():
		fmt.Fprintf(w, "No new releases; %s unchanged\n", name)
	case result.Written:
		output.PrintSuccess(w, fmt.Sprintf("%s %s: %d new, %d total (%s)",
			result.Operation(), name, len(result.NewReleases), result.Document.GetReleaseCount(), result.Mode))
	default:
		fmt.Fprintf(w, "Dry run: %s not written (%d new release(s))\n", name, len(result.NewReleases))
	}
}
