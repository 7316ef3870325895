package errors

import "fmt"

// MissingNextVersion creates an error for a generate run without a target version.
func MissingNextVersion() *CLIError {
	return New(Argument, "next version is required",
		"Pass the version the release automation is about to publish",
		"Example: jsonchangelog generate --next-version 1.2.0 < releases.json",
	).WithUsage("jsonchangelog generate --next-version <version>")
}

// InvalidIndent creates an error for an indentation width outside 0..10.
func InvalidIndent(indent int) *CLIError {
	return New(Argument, fmt.Sprintf("invalid indent: %d", indent),
		"Use a width between 0 and 10 (0 writes compact JSON)",
	)
}

// ConfigInvalid wraps a configuration load or validation failure.
func ConfigInvalid(err error) *CLIError {
	return Wrap(err, Configuration,
		"invalid configuration",
		"Check .jsonchangelog.yml and JSONCHANGELOG_* environment variables",
		"List valid keys with: jsonchangelog config keys",
	)
}

// MalformedChangelog wraps a persisted document that does not parse.
func MalformedChangelog(path string, err error) *CLIError {
	return Wrap(err, Document,
		fmt.Sprintf("changelog %s is malformed", path),
		"Fix the document by hand or restore it from version control",
		"The document must be an object with a \"releases\" array",
		"Run 'jsonchangelog check' after fixing it",
	)
}

// ChangelogNotFound creates an error for read-side commands run without a document.
func ChangelogNotFound(path string) *CLIError {
	return New(Document, "changelog not found: "+path,
		"Generate one with: jsonchangelog generate --next-version <version>",
		"Or point to it with --changelog <path>",
	)
}

// UnsupportedProvider wraps a repository host with no URL patterns.
func UnsupportedProvider(err error) *CLIError {
	return Wrap(err, Provider,
		"cannot build links",
		"Supported hosts: github.com, gitlab.com, bitbucket.org",
		"Disable links with --no-links or link_references: false",
	)
}

// WriteFailed wraps a durable write failure.
func WriteFailed(err error) *CLIError {
	return Wrap(err, Storage,
		"changelog was not written",
		"Check that the target directory exists and is writable",
		"Preview the output with --dry-run",
	)
}

// InputUnreadable wraps a failure to read raw release descriptions.
func InputUnreadable(err error) *CLIError {
	return Wrap(err, Runtime,
		"cannot read release descriptions",
		"Pipe conventional-changelog JSON output to stdin or pass --input <file>",
	)
}
