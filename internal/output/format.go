// Package output provides terminal status lines for the jsonchangelog CLI.
// It has no dependencies on other internal packages.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintSuccess prints a green checkmark followed by message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintFailure prints a red cross followed by message.
func PrintFailure(out io.Writer, message string) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", red("✗"), message)
}

// PrintNotice prints a yellow marker followed by message.
func PrintNotice(out io.Writer, message string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}

// PrintFindings prints one indented bullet per finding.
func PrintFindings(out io.Writer, findings []string) {
	dim := color.New(color.Faint).SprintFunc()
	for _, f := range findings {
		fmt.Fprintf(out, "  %s %s\n", dim("-"), f)
	}
}
