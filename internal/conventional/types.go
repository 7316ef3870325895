// Package conventional models the release descriptions produced by a
// conventional-changelog commit-grouping collaborator and the port through
// which they are requested.
package conventional

// RawRelease is one release description as emitted by the collaborator.
// It is transient: produced once per run and consumed immediately.
type RawRelease struct {
	Version      string           `json:"version"`
	CurrentTag   string           `json:"currentTag"`
	PreviousTag  string           `json:"previousTag,omitempty"`
	Date         string           `json:"date"`
	Host         string           `json:"host"`
	Owner        string           `json:"owner"`
	Repository   string           `json:"repository"`
	CommitGroups []RawCommitGroup `json:"commitGroups"`
	Hash         string           `json:"hash"`
}

// RawCommitGroup is a titled group of commits; an empty title marks the
// uncategorized group.
type RawCommitGroup struct {
	Title   string      `json:"title"`
	Commits []RawCommit `json:"commits"`
}

// RawCommit is a parsed conventional commit. Scope is nil when the commit
// header carried no scope (the collaborator emits null).
type RawCommit struct {
	Header    string           `json:"header"`
	Subject   string           `json:"subject"`
	Scope     *string          `json:"scope"`
	ShortHash string           `json:"shortHash"`
	Hash      string           `json:"hash"`
	Raw       RawCommitDetails `json:"raw"`
}

// RawCommitDetails carries the commit as parsed before any presentation
// transforms; Type is the original conventional type token (feat, fix, ...).
type RawCommitDetails struct {
	Type    string  `json:"type"`
	Scope   *string `json:"scope"`
	Subject string  `json:"subject"`
}

// FirstType returns the raw type of the group's first commit, or "" for an
// empty group.
func (g RawCommitGroup) FirstType() string {
	if len(g.Commits) == 0 {
		return ""
	}
	return g.Commits[0].Raw.Type
}
