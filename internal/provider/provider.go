// Package provider derives hosting-provider hyperlinks (commit and compare URLs)
// for a repository base URL. Recognition is a fixed table keyed by hostname;
// adding a provider means extending the Provider variant and both URL pattern
// switches together.
package provider

import (
	"fmt"
	"net/url"
	"strings"
)

// Provider identifies a recognized git hosting provider.
type Provider int

const (
	// Unknown is the zero value and never yields URLs.
	Unknown Provider = iota
	GitHub
	GitLab
	Bitbucket
)

// String returns the provider's display name.
func (p Provider) String() string {
	switch p {
	case GitHub:
		return "GitHub"
	case GitLab:
		return "GitLab"
	case Bitbucket:
		return "Bitbucket"
	default:
		return "unknown"
	}
}

// hosts is the recognition table: hostname -> provider.
var hosts = map[string]Provider{
	"github.com":    GitHub,
	"gitlab.com":    GitLab,
	"bitbucket.org": Bitbucket,
}

// UnsupportedProviderError is returned when a repository URL's host is not in
// the recognition table.
type UnsupportedProviderError struct {
	Host    string
	RepoURL string
}

func (e *UnsupportedProviderError) Error() string {
	if e.Host == "" {
		return fmt.Sprintf("unsupported git provider: cannot determine host of repository URL %q", e.RepoURL)
	}
	return fmt.Sprintf("unsupported git provider %q (supported: github.com, gitlab.com, bitbucket.org)", e.Host)
}

// RepoURL joins host, owner and repository with path separators.
// A trailing slash on host is tolerated.
func RepoURL(host, owner, repository string) string {
	return strings.TrimSuffix(host, "/") + "/" + owner + "/" + repository
}

// Detect resolves the provider for a repository base URL. Hosts given without
// a scheme (e.g. "github.com/acme/widget") are parsed as https.
func Detect(repoURL string) (Provider, error) {
	host := hostname(repoURL)
	if p, ok := hosts[host]; ok {
		return p, nil
	}
	return Unknown, &UnsupportedProviderError{Host: host, RepoURL: repoURL}
}

func hostname(repoURL string) string {
	u, err := url.Parse(repoURL)
	if err == nil && u.Hostname() != "" {
		return strings.ToLower(u.Hostname())
	}
	if strings.Contains(repoURL, "://") {
		return ""
	}
	u, err = url.Parse("https://" + repoURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// Links derives URLs for one repository. The zero value is not usable; build
// one with NewLinks.
type Links struct {
	provider Provider
	repoURL  string
}

// NewLinks detects the provider of repoURL and returns a link builder for it.
func NewLinks(repoURL string) (Links, error) {
	p, err := Detect(repoURL)
	if err != nil {
		return Links{}, err
	}
	return Links{provider: p, repoURL: repoURL}, nil
}

// Provider returns the detected provider.
func (l Links) Provider() Provider {
	return l.provider
}

// CommitURL returns the provider URL for a single commit.
func (l Links) CommitURL(hash string) (string, error) {
	switch l.provider {
	case GitHub:
		return l.repoURL + "/commit/" + hash, nil
	case GitLab:
		return l.repoURL + "/-/commit/" + hash, nil
	case Bitbucket:
		return l.repoURL + "/commits/" + hash, nil
	default:
		return "", &UnsupportedProviderError{Host: hostname(l.repoURL), RepoURL: l.repoURL}
	}
}

// CompareURL returns the provider URL showing the diff between two tags.
// Bitbucket uses a two-dot range and a #diff anchor.
func (l Links) CompareURL(previous, current string) (string, error) {
	switch l.provider {
	case GitHub:
		return l.repoURL + "/compare/" + previous + "..." + current, nil
	case GitLab:
		return l.repoURL + "/-/compare/" + previous + "..." + current, nil
	case Bitbucket:
		return l.repoURL + "/branches/compare/" + previous + ".." + current + "#diff", nil
	default:
		return "", &UnsupportedProviderError{Host: hostname(l.repoURL), RepoURL: l.repoURL}
	}
}
