package assembler

import (
	"fmt"

	"github.com/ariel-frischer/jsonchangelog/internal/changelog"
	"github.com/ariel-frischer/jsonchangelog/internal/conventional"
	"github.com/ariel-frischer/jsonchangelog/internal/provider"
)

// ReleaseNormalizer turns a raw release description into a persisted release
// record. Implementations must be pure: no I/O and no shared state.
type ReleaseNormalizer interface {
	Normalize(raw conventional.RawRelease) (changelog.Release, error)
}

// Normalizer is the default ReleaseNormalizer.
type Normalizer struct {
	// LinkReferences adds commit and compare URLs.
	LinkReferences bool
}

// Normalize implements ReleaseNormalizer. With links enabled, the provider is
// detected once per release and an unrecognized host fails the release with a
// provider.UnsupportedProviderError.
func (n Normalizer) Normalize(raw conventional.RawRelease) (changelog.Release, error) {
	var links *provider.Links
	if n.LinkReferences {
		l, err := provider.NewLinks(provider.RepoURL(raw.Host, raw.Owner, raw.Repository))
		if err != nil {
			return changelog.Release{}, fmt.Errorf("release %s: %w", raw.Version, err)
		}
		links = &l
	}

	groups, err := normalizeGroups(raw.CommitGroups, links)
	if err != nil {
		return changelog.Release{}, fmt.Errorf("release %s: %w", raw.Version, err)
	}

	release := changelog.Release{
		Version:      raw.Version,
		Date:         raw.Date,
		CommitGroups: groups,
	}

	if links != nil && raw.PreviousTag != "" {
		compareURL, err := links.CompareURL(raw.PreviousTag, raw.CurrentTag)
		if err != nil {
			return changelog.Release{}, fmt.Errorf("release %s: %w", raw.Version, err)
		}
		release.CompareURL = compareURL
	}

	return release, nil
}

func normalizeGroups(rawGroups []conventional.RawCommitGroup, links *provider.Links) ([]changelog.CommitGroup, error) {
	groups := make([]changelog.CommitGroup, 0, len(rawGroups))
	for _, rg := range rawGroups {
		commits, err := normalizeCommits(rg.Commits, links)
		if err != nil {
			return nil, err
		}
		groups = append(groups, changelog.CommitGroup{
			Title:   rg.Title,
			Type:    rg.FirstType(),
			Commits: commits,
		})
	}
	return groups, nil
}

func normalizeCommits(rawCommits []conventional.RawCommit, links *provider.Links) ([]changelog.Commit, error) {
	commits := make([]changelog.Commit, 0, len(rawCommits))
	for _, rc := range rawCommits {
		c := changelog.Commit{
			Hash:    rc.Hash,
			Subject: rc.Subject,
		}
		if rc.Scope != nil {
			scope := *rc.Scope
			c.Scope = &scope
		}
		if links != nil {
			commitURL, err := links.CommitURL(rc.Hash)
			if err != nil {
				return nil, err
			}
			c.CommitURL = commitURL
		}
		commits = append(commits, c)
	}
	return commits, nil
}
