// Package changelog defines the persisted structured changelog document and
// the operations on it.
//
// This package implements:
//   - the normalized schema (releases, commit groups, commits) with optional
//     fields that are absent rather than null
//   - Assemble, which prepends newly computed releases to persisted history
//   - JSON and YAML encoding/decoding with configurable indentation
//   - version queries, markdown rendering and terminal formatting
//   - Check, a consistency report for persisted documents
package changelog
