package changelog

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// History is the release list of a persisted document kept exactly as it was
// decoded. Entries are written back with every key they had, including keys
// the Release type does not know.
type History struct {
	entries []any // json.RawMessage or *yaml.Node, by document format
}

// ParseHistory decodes the release list of a persisted document without
// interpreting its entries. name selects the format and labels errors.
func ParseHistory(name string, data []byte) (*History, error) {
	var h History

	switch FormatFor(name) {
	case FormatYAML:
		var doc struct {
			Releases *[]*yaml.Node `yaml:"releases"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &ParseError{Path: name, Err: err}
		}
		if doc.Releases == nil {
			return nil, &ParseError{Path: name, Err: errMissingReleases}
		}
		for _, n := range *doc.Releases {
			h.entries = append(h.entries, n)
		}
	default:
		var doc struct {
			Releases *[]json.RawMessage `json:"releases"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &ParseError{Path: name, Err: err}
		}
		if doc.Releases == nil {
			return nil, &ParseError{Path: name, Err: errMissingReleases}
		}
		for _, raw := range *doc.Releases {
			h.entries = append(h.entries, raw)
		}
	}

	return &h, nil
}

// Len returns the number of persisted releases.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// MarshalPrepended serializes a document holding newReleases followed by the
// entries of history, which may be nil. Like Assemble, nothing is merged or
// deduplicated.
func MarshalPrepended(name string, newReleases []Release, history *History, indent int) ([]byte, error) {
	releases := make([]any, 0, len(newReleases)+history.Len())
	for i := range newReleases {
		releases = append(releases, newReleases[i])
	}
	if history != nil {
		releases = append(releases, history.entries...)
	}
	return marshalDocument(name, releases, indent)
}
