package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// TypeStyle defines the color and icon for a commit group type.
type TypeStyle struct {
	Color *color.Color
	Icon  string
}

// typeStyles maps conventional commit types to their terminal styling.
var typeStyles = map[string]TypeStyle{
	"feat":     {Color: color.New(color.FgGreen), Icon: "✓"},
	"fix":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"perf":     {Color: color.New(color.FgMagenta), Icon: "»"},
	"revert":   {Color: color.New(color.FgRed), Icon: "↺"},
	"security": {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

var defaultTypeStyle = TypeStyle{Color: color.New(color.FgBlue), Icon: "~"}

func styleFor(groupType string) TypeStyle {
	if s, ok := typeStyles[groupType]; ok {
		return s
	}
	return defaultTypeStyle
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes releases to the writer with terminal styling,
// separated by blank lines.
func FormatTerminal(releases []Release, w io.Writer, opts FormatOptions) error {
	for i := range releases {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := FormatRelease(&releases[i], w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", releases[i].Version, err)
		}
	}
	return nil
}

// FormatRelease writes a single release with color-coded group headers.
func FormatRelease(r *Release, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeReleaseHeader(r, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, g := range r.CommitGroups {
		if len(g.Commits) == 0 {
			continue
		}
		if err := writeGroupSection(g, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeReleaseHeader writes the version header line.
func writeReleaseHeader(r *Release, w io.Writer, opts FormatOptions) error {
	header := r.Version
	if !strings.HasPrefix(strings.ToLower(header), "v") {
		header = "v" + header
	}
	if r.Date != "" {
		header = fmt.Sprintf("%s (%s)", header, r.Date)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

func writeGroupSection(g CommitGroup, w io.Writer, opts FormatOptions, width int) error {
	style := styleFor(g.Type)

	title := g.Title
	if title == "" {
		title = capitalizeFirst(g.Type)
	}
	if title == "" {
		title = "Other"
	}

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", title); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(title)); err != nil {
			return err
		}
	}

	for _, c := range g.Commits {
		if err := writeCommit(c, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeCommit writes a single commit line with optional wrapping.
func writeCommit(c Commit, style TypeStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := c.Subject
	if scope := c.ScopeOrEmpty(); scope != "" {
		text = scope + ": " + text
	}
	if short := c.ShortHash(); short != "" {
		text = fmt.Sprintf("%s (%s)", text, short)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText breaks text at the last space that fits width. Words longer than
// width are split. Continuation lines start with indent.
func wrapText(text string, width int, indent string) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var lines []string
	for len(text) > width {
		cut := strings.LastIndexByte(text[:width], ' ')
		if cut <= 0 {
			cut = width
		}
		lines = append(lines, text[:cut])
		text = strings.TrimLeft(text[cut:], " ")
	}
	if text != "" {
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n"+indent)
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
