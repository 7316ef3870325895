package changelog

import (
	"fmt"
	"io"
	"strings"
)

// RenderMarkdown writes the document as markdown in the conventional-changelog
// layout: one section per release, one subsection per titled commit group.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(c *Changelog, w io.Writer) error {
	if _, err := io.WriteString(w, "# Changelog\n"); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for i := range c.Releases {
		r := &c.Releases[i]
		if _, err := io.WriteString(w, "\n"+formatReleaseHeader(r)+"\n"); err != nil {
			return fmt.Errorf("rendering version %s: %w", r.Version, err)
		}
		if err := renderGroups(r.CommitGroups, w); err != nil {
			return fmt.Errorf("rendering version %s: %w", r.Version, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(c *Changelog) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(c, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderReleaseNotes writes a single release's commit groups as markdown,
// without the release heading. The output suits hosted release pages.
func RenderReleaseNotes(r *Release, w io.Writer) error {
	var b strings.Builder
	if err := renderGroups(r.CommitGroups, &b); err != nil {
		return err
	}
	_, err := io.WriteString(w, strings.TrimPrefix(b.String(), "\n"))
	return err
}

// formatReleaseHeader formats the release heading, linking the version to the
// compare URL when one is present.
func formatReleaseHeader(r *Release) string {
	version := r.Version
	if r.CompareURL != "" {
		version = fmt.Sprintf("[%s](%s)", r.Version, r.CompareURL)
	}
	if r.Date == "" {
		return "## " + version
	}
	return fmt.Sprintf("## %s (%s)", version, r.Date)
}

func renderGroups(groups []CommitGroup, w io.Writer) error {
	for _, g := range groups {
		if len(g.Commits) == 0 {
			continue
		}
		if g.Title != "" {
			if _, err := io.WriteString(w, "\n### "+g.Title+"\n\n"); err != nil {
				return err
			}
		} else if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		for _, c := range g.Commits {
			if _, err := io.WriteString(w, formatCommitLine(c)+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatCommitLine renders "* **scope:** subject (hash)" with the short hash
// linked when a commit URL is present.
func formatCommitLine(c Commit) string {
	var b strings.Builder
	b.WriteString("* ")
	if scope := c.ScopeOrEmpty(); scope != "" {
		b.WriteString("**" + scope + ":** ")
	}
	b.WriteString(c.Subject)

	short := c.ShortHash()
	if short == "" {
		return b.String()
	}
	if c.CommitURL != "" {
		fmt.Fprintf(&b, " ([%s](%s))", short, c.CommitURL)
	} else {
		fmt.Fprintf(&b, " (%s)", short)
	}
	return b.String()
}
