package changelog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseError reports a persisted document that could not be parsed as the
// changelog schema. It is fatal for a run; the document is never repaired.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parsing changelog %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parsing changelog: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

var errMissingReleases = errors.New(`document has no "releases" list`)

// document mirrors Changelog with a pointer so a missing releases key can be
// told apart from an empty list.
type document struct {
	Releases *[]Release `json:"releases" yaml:"releases"`
}

// Parse decodes a persisted document. The format is chosen from name's
// extension, and name is reported in errors.
func Parse(name string, data []byte) (*Changelog, error) {
	var doc document

	switch FormatFor(name) {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &ParseError{Path: name, Err: err}
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &ParseError{Path: name, Err: err}
		}
	}

	if doc.Releases == nil {
		return nil, &ParseError{Path: name, Err: errMissingReleases}
	}

	return &Changelog{Releases: *doc.Releases}, nil
}

// Load reads and parses a changelog document from the given path.
func Load(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(path, f)
}

// LoadFromReader reads a whole document from r and parses it; name selects
// the format and labels errors.
func LoadFromReader(name string, r io.Reader) (*Changelog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading changelog %s: %w", name, err)
	}
	return Parse(name, data)
}
