package changelog

import (
	"fmt"
	"slices"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// NormalizeVersion normalizes a version string by removing the "v" prefix.
// This allows accepting both "v0.6.0" and "0.6.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}

// GetVersion returns the first release matching version, with or without
// a "v" prefix.
func (c *Changelog) GetVersion(version string) (*Release, error) {
	want := NormalizeVersion(version)
	i := slices.IndexFunc(c.Releases, func(r Release) bool {
		return NormalizeVersion(r.Version) == want
	})
	if i < 0 {
		return nil, &VersionNotFoundError{Version: version, AvailableVersions: c.ListVersions()}
	}
	return &c.Releases[i], nil
}

// ListVersions returns all version identifiers in document order (newest first).
func (c *Changelog) ListVersions() []string {
	versions := make([]string, len(c.Releases))
	for i, r := range c.Releases {
		versions[i] = r.Version
	}
	return versions
}

// GetLastN returns up to n of the newest releases.
func (c *Changelog) GetLastN(n int) []Release {
	n = max(0, min(n, len(c.Releases)))
	return c.Releases[:n:n]
}

// GetReleaseCount returns the number of releases in the document.
func (c *Changelog) GetReleaseCount() int {
	return len(c.Releases)
}

// GetCommitCount returns the total number of commits across all releases.
func (c *Changelog) GetCommitCount() int {
	count := 0
	for _, r := range c.Releases {
		count += r.CommitCount()
	}
	return count
}

// GetLatestRelease returns the newest release, or nil for an empty document.
func (c *Changelog) GetLatestRelease() *Release {
	if len(c.Releases) == 0 {
		return nil
	}
	return &c.Releases[0]
}
