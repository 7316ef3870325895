package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/jsonchangelog/internal/changelog"
	clierrors "github.com/ariel-frischer/jsonchangelog/internal/errors"
	"github.com/ariel-frischer/jsonchangelog/internal/storage"
	"github.com/spf13/cobra"
)

// loadDocument reads and parses the configured changelog document.
func loadDocument(cmd *cobra.Command) (*changelog.Changelog, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	name := cfg.ChangelogName
	store := storage.NewFile("")

	exists, err := store.Exists(name)
	if err != nil {
		return nil, name, fmt.Errorf("probing %s: %w", name, err)
	}
	if !exists {
		return nil, name, clierrors.ChangelogNotFound(name)
	}

	data, err := store.Read(name)
	if err != nil {
		return nil, name, fmt.Errorf("loading %s: %w", name, err)
	}
	doc, err := changelog.Parse(name, data)
	if err != nil {
		return nil, name, classify(err, name)
	}
	return doc, name, nil
}

// lookupVersion finds version in doc. A missing version lists what is
// available on stderr and yields an invalid-arguments exit.
func lookupVersion(cmd *cobra.Command, doc *changelog.Changelog, version string) (*changelog.Release, error) {
	r, err := doc.GetVersion(version)
	if err == nil {
		return r, nil
	}
	var notFound *changelog.VersionNotFoundError
	if !errors.As(err, &notFound) {
		return nil, fmt.Errorf("getting version: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", version)
	fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
	for _, v := range notFound.AvailableVersions {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", v)
	}
	return nil, NewExitError(ExitInvalidArguments)
}
