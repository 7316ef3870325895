package changelog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ValidationError represents a single document check finding with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// CheckError aggregates every finding of a document check.
type CheckError struct {
	Findings []*ValidationError
}

func (e *CheckError) Error() string {
	msgs := make([]string, len(e.Findings))
	for i, f := range e.Findings {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%d changelog problem(s): %s", len(e.Findings), strings.Join(msgs, "; "))
}

// Check inspects a document for problems that the assembler itself never
// rejects: missing versions or dates, duplicate versions, versions that are
// not semantic versions, and releases that are not ordered newest first.
// Returns nil when the document is clean, or a *CheckError listing all findings.
func Check(c *Changelog) error {
	var findings []*ValidationError

	seen := make(map[string]int)
	var prev *semver.Version
	prevIndex := -1

	for i, r := range c.Releases {
		field := fmt.Sprintf("releases[%d]", i)

		if strings.TrimSpace(r.Version) == "" {
			findings = append(findings, &ValidationError{Field: field + ".version", Message: "required field is empty"})
			continue
		}
		if r.Date == "" {
			findings = append(findings, &ValidationError{Field: field + ".date", Message: "required field is empty"})
		}

		normalized := NormalizeVersion(r.Version)
		if first, dup := seen[normalized]; dup {
			findings = append(findings, &ValidationError{
				Field:   field + ".version",
				Message: fmt.Sprintf("duplicate version %q (first seen at releases[%d])", r.Version, first),
			})
			continue
		}
		seen[normalized] = i

		v, err := semver.NewVersion(r.Version)
		if err != nil {
			findings = append(findings, &ValidationError{
				Field:   field + ".version",
				Message: fmt.Sprintf("invalid semver format %q", r.Version),
			})
			continue
		}

		if prev != nil && !v.LessThan(prev) {
			findings = append(findings, &ValidationError{
				Field:   field + ".version",
				Message: fmt.Sprintf("version %s is not older than releases[%d] (%s); releases must be newest first", v, prevIndex, prev),
			})
		}
		prev, prevIndex = v, i
	}

	if len(findings) > 0 {
		return &CheckError{Findings: findings}
	}
	return nil
}
