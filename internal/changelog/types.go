package changelog

// Changelog is the persisted document: releases ordered newest first.
type Changelog struct {
	Releases []Release `json:"releases" yaml:"releases"`
}

// Release is a single normalized release record.
// CompareURL is present only when link generation is enabled and the release
// has a previous tag; it is omitted from the document otherwise.
type Release struct {
	Version      string        `json:"version" yaml:"version"`
	Date         string        `json:"date" yaml:"date"`
	CommitGroups []CommitGroup `json:"commitGroups" yaml:"commitGroups"`
	CompareURL   string        `json:"compareUrl,omitempty" yaml:"compareUrl,omitempty"`
}

// CommitGroup is a titled group of commits. Type is the conventional type of
// the group's first commit and serves as a machine-readable category key, even
// when the group mixes types. It is empty for a group without commits.
type CommitGroup struct {
	Title   string   `json:"title" yaml:"title"`
	Type    string   `json:"type" yaml:"type"`
	Commits []Commit `json:"commits" yaml:"commits"`
}

// Commit is a single normalized commit.
// Scope is nil when the source commit had no scope; an empty scope string is
// kept as present. CommitURL is omitted when link generation is disabled.
type Commit struct {
	Hash      string  `json:"hash" yaml:"hash"`
	Subject   string  `json:"subject" yaml:"subject"`
	Scope     *string `json:"scope,omitempty" yaml:"scope,omitempty"`
	CommitURL string  `json:"commitUrl,omitempty" yaml:"commitUrl,omitempty"`
}

// ScopeOrEmpty returns the scope, or "" when the commit has none.
func (c Commit) ScopeOrEmpty() string {
	if c.Scope == nil {
		return ""
	}
	return *c.Scope
}

// ShortHash returns the first seven characters of the hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) <= 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// CommitCount returns the number of commits across all groups.
func (r Release) CommitCount() int {
	n := 0
	for _, g := range r.CommitGroups {
		n += len(g.Commits)
	}
	return n
}

// IsEmpty returns true if the document holds no releases.
func (c *Changelog) IsEmpty() bool {
	return len(c.Releases) == 0
}
