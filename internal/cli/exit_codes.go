package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/jsonchangelog/internal/changelog"
	"github.com/ariel-frischer/jsonchangelog/internal/config"
	clierrors "github.com/ariel-frischer/jsonchangelog/internal/errors"
	"github.com/ariel-frischer/jsonchangelog/internal/provider"
	"github.com/ariel-frischer/jsonchangelog/internal/storage"
)

// Exit codes for the jsonchangelog CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a generic failure, including failed checks
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfiguration indicates invalid configuration
	ExitConfiguration = 4

	// ExitMalformedDocument indicates the persisted changelog does not parse
	ExitMalformedDocument = 5

	// ExitUnsupportedProvider indicates a repository host without URL patterns
	ExitUnsupportedProvider = 6

	// ExitWriteFailed indicates the changelog could not be written
	ExitWriteFailed = 7
)

// ExitError carries an exit code for a failure the command already reported.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

var categoryExitCodes = map[clierrors.ErrorCategory]int{
	clierrors.Argument:      ExitInvalidArguments,
	clierrors.Configuration: ExitConfiguration,
	clierrors.Document:      ExitMalformedDocument,
	clierrors.Provider:      ExitUnsupportedProvider,
	clierrors.Storage:       ExitWriteFailed,
	clierrors.Runtime:       ExitFailure,
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := clierrors.From(err); cliErr != nil {
		if code, ok := categoryExitCodes[cliErr.Category]; ok {
			return code
		}
	}
	return ExitFailure
}

// classify turns domain failures into CLI errors with remediation. Unknown
// errors pass through unchanged.
func classify(err error, changelogName string) error {
	if err == nil || clierrors.From(err) != nil {
		return err
	}
	var upe *provider.UnsupportedProviderError
	switch {
	case changelog.IsParseError(err):
		return clierrors.MalformedChangelog(changelogName, err)
	case errors.As(err, &upe):
		return clierrors.UnsupportedProvider(err)
	case storage.IsWriteError(err):
		return clierrors.WriteFailed(err)
	case config.IsValidationError(err):
		return clierrors.ConfigInvalid(err)
	default:
		return err
	}
}
