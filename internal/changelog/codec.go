package changelog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialization used for a changelog document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFor selects the document format from the output target's extension.
// .yaml and .yml select YAML; everything else is JSON.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// MaxIndent is the widest indentation written. Wider values are clamped, as
// JSON.stringify does.
const MaxIndent = 10

// Marshal serializes the document for the output target name with the given
// indentation width, clamped to 0..MaxIndent. JSON with indent 0 is compact.
// No trailing newline is added to JSON output.
func Marshal(name string, c *Changelog, indent int) ([]byte, error) {
	releases := c.Releases
	if releases == nil {
		releases = []Release{}
	}
	return marshalDocument(name, releases, indent)
}

// marshalDocument writes {"releases": releases} in the format of name.
func marshalDocument(name string, releases any, indent int) ([]byte, error) {
	doc := struct {
		Releases any `json:"releases" yaml:"releases"`
	}{Releases: releases}
	indent = max(0, min(indent, MaxIndent))

	if FormatFor(name) == FormatYAML {
		return marshalYAML(doc, indent)
	}
	return marshalJSON(doc, indent)
}

// MarshalIndentJSON is a convenience for diagnostics: any value as JSON with
// the given indentation and HTML characters left unescaped.
func MarshalIndentJSON(v any, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func marshalJSON(doc any, indent int) ([]byte, error) {
	data, err := MarshalIndentJSON(doc, indent)
	if err != nil {
		return nil, fmt.Errorf("encoding changelog JSON: %w", err)
	}
	return data, nil
}

func marshalYAML(doc any, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding changelog YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding changelog YAML: %w", err)
	}
	return buf.Bytes(), nil
}
