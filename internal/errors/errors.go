// Package errors gives CLI failures a category and the steps that resolve
// them. The category also selects the process exit code.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory groups failures by what the user has to change.
type ErrorCategory int

const (
	// Argument failures come from missing or invalid command arguments.
	Argument ErrorCategory = iota
	// Configuration failures come from config files, env vars or values.
	Configuration
	// Document failures mean the persisted changelog cannot be used.
	Document
	// Provider failures mean a repository host has no URL patterns.
	Provider
	// Storage failures mean the changelog could not be written.
	Storage
	// Runtime covers everything else.
	Runtime
)

var categoryNames = [...]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Document:      "Document Error",
	Provider:      "Provider Error",
	Storage:       "Storage Error",
	Runtime:       "Runtime Error",
}

func (c ErrorCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Error"
	}
	return categoryNames[c]
}

// CLIError is a categorized failure with remediation steps.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Remediation []string
	// Usage is the correct invocation, shown for argument errors.
	Usage string
	Err   error
}

func (e *CLIError) Error() string { return e.Message }

func (e *CLIError) Unwrap() error { return e.Err }

// WithUsage sets the invocation hint and returns e.
func (e *CLIError) WithUsage(usage string) *CLIError {
	e.Usage = usage
	return e
}

// New returns a CLIError without an underlying cause.
func New(category ErrorCategory, message string, remediation ...string) *CLIError {
	return &CLIError{Category: category, Message: message, Remediation: remediation}
}

// Wrap categorizes err. A non-empty message is prefixed to the cause's text.
// Wrap returns nil for a nil err.
func Wrap(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if message != "" {
		msg = fmt.Sprintf("%s: %s", message, msg)
	}
	return &CLIError{Category: category, Message: msg, Remediation: remediation, Err: err}
}

// From returns the first CLIError in err's chain, or nil.
func From(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
