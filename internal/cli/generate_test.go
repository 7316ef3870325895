package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/jsonchangelog/internal/changelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCmd_Flags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		shorthand string
		defValue  string
		valueType string
	}{
		"next-version": {defValue: "", valueType: "string"},
		"input":        {shorthand: "i", defValue: "-", valueType: "string"},
		"indent":       {defValue: "2", valueType: "int"},
		"dry-run":      {defValue: "false", valueType: "bool"},
		"no-links":     {defValue: "false", valueType: "bool"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := generateCmd.Flags().Lookup(name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
			assert.Equal(t, tt.valueType, flag.Value.Type())
		})
	}
}

func TestGenerate_Bootstrap(t *testing.T) {
	inTempDir(t)

	stdout, stderr, err := executeCommand(t, releaseV110+"\n"+releaseV100, "generate", "--next-version", "1.1.0")
	require.NoError(t, err)

	assert.Contains(t, stdout, "✓ Create CHANGELOG.json: 2 new, 2 total (bootstrap)")
	assert.Contains(t, stderr, "Create CHANGELOG.json.")

	doc, err := changelog.Load("CHANGELOG.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.1.0", "1.0.0"}, doc.ListVersions())
	assert.Equal(t, "https://github.com/acme/widget/compare/v1.0.0...v1.1.0", doc.Releases[0].CompareURL)
	assert.Equal(t, "https://github.com/acme/widget/commit/abc1234def5678", doc.Releases[0].CommitGroups[0].Commits[0].CommitURL)
	assert.Empty(t, doc.Releases[1].CompareURL)
}

func TestGenerate_IncrementalPrepends(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, filepath.Join(dir, "CHANGELOG.json"), seededChangelog)

	next := `{"version":"","currentTag":"v1.2.0","previousTag":"v1.1.0","date":"2024-03-01","host":"https://gitlab.com","owner":"acme","repository":"widget","commitGroups":[]}`
	stdout, _, err := executeCommand(t, next+"\n"+releaseV110, "generate", "--next-version", "1.2.0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Update CHANGELOG.json: 1 new, 3 total (incremental)")

	doc, err := changelog.Load("CHANGELOG.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.2.0", "1.1.0", "1.0.0"}, doc.ListVersions())
	assert.Equal(t, "https://gitlab.com/acme/widget/-/compare/v1.1.0...v1.2.0", doc.Releases[0].CompareURL)
}

func TestGenerate_EmptyInputLeavesDocument(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "CHANGELOG.json")
	writeFile(t, path, seededChangelog)

	stdout, _, err := executeCommand(t, "", "generate", "--next-version", "1.2.0")
	require.NoError(t, err)

	assert.Contains(t, stdout, "No new releases; CHANGELOG.json unchanged")
	assert.Equal(t, seededChangelog, readFile(t, path))
}

func TestGenerate_DryRun(t *testing.T) {
	inTempDir(t)

	stdout, stderr, err := executeCommand(t, releaseV110, "generate", "--next-version", "1.1.0", "--dry-run", "--log-format", "json")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Dry run: CHANGELOG.json not written (1 new release(s))")
	assert.Contains(t, stderr, "Changelog content: ")
	_, statErr := os.Stat("CHANGELOG.json")
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_DryRunQuietLogLevel(t *testing.T) {
	inTempDir(t)

	_, stderr, err := executeCommand(t, releaseV110, "generate", "--next-version", "1.1.0", "--dry-run", "--log-level", "warn")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Create CHANGELOG.json.")
	assert.Contains(t, stderr, "Changelog content: {")
	assert.Contains(t, stderr, "level=WARN")
}

func TestGenerate_OptionsFromFlags(t *testing.T) {
	dir := inTempDir(t)
	input := filepath.Join(dir, "releases.json")
	writeFile(t, input, "["+releaseV110+"]")

	_, _, err := executeCommand(t, "", "generate",
		"--next-version", "1.1.0",
		"--input", input,
		"--changelog", "CHANGELOG.yaml",
		"--no-links",
	)
	require.NoError(t, err)

	content := readFile(t, filepath.Join(dir, "CHANGELOG.yaml"))
	assert.Contains(t, content, "releases:")
	assert.NotContains(t, content, "commitUrl")
	assert.NotContains(t, content, "compareUrl")
}

func TestGenerate_Indent(t *testing.T) {
	inTempDir(t)

	_, _, err := executeCommand(t, releaseV100, "generate", "--next-version", "1.0.0", "--indent", "0")
	require.NoError(t, err)

	content := readFile(t, "CHANGELOG.json")
	assert.NotContains(t, content, "\n")
	assert.True(t, json.Valid([]byte(content)))
}

func TestGenerate_ConfigFile(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, filepath.Join(dir, ".jsonchangelog.yml"), "changelog_name: docs/changes.json\nindent: 4\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))

	_, _, err := executeCommand(t, releaseV100, "generate", "--next-version", "1.0.0")
	require.NoError(t, err)

	content := readFile(t, filepath.Join(dir, "docs", "changes.json"))
	assert.Contains(t, content, "\n"+strings.Repeat(" ", 12)+`"version": "1.0.0"`, "indent 4 at depth 3")
}

func TestGenerate_Errors(t *testing.T) {
	tests := map[string]struct {
		seed        string
		stdin       string
		args        []string
		wantCode    int
		errContains string
	}{
		"missing next version": {
			args:        []string{"generate"},
			wantCode:    ExitInvalidArguments,
			errContains: "next version is required",
		},
		"indent out of range": {
			args:        []string{"generate", "--next-version", "1.0.0", "--indent", "11"},
			wantCode:    ExitInvalidArguments,
			errContains: "invalid indent: 11",
		},
		"invalid log level": {
			args:        []string{"generate", "--next-version", "1.0.0", "--log-level", "loud"},
			wantCode:    ExitConfiguration,
			errContains: "invalid configuration",
		},
		"malformed document": {
			seed:        `{"releases": [`,
			stdin:       releaseV110,
			args:        []string{"generate", "--next-version", "1.1.0"},
			wantCode:    ExitMalformedDocument,
			errContains: "changelog CHANGELOG.json is malformed",
		},
		"unsupported provider": {
			stdin:       `{"version":"1.0.0","currentTag":"v1.0.0","date":"2024-01-15","host":"https://git.example.com","owner":"acme","repository":"widget","commitGroups":[]}`,
			args:        []string{"generate", "--next-version", "1.0.0"},
			wantCode:    ExitUnsupportedProvider,
			errContains: "cannot build links",
		},
		"missing input file": {
			args:        []string{"generate", "--next-version", "1.0.0", "--input", "nope.json"},
			wantCode:    ExitFailure,
			errContains: "cannot read release descriptions",
		},
		"missing output directory": {
			stdin:       releaseV100,
			args:        []string{"generate", "--next-version", "1.0.0", "--changelog", "missing/CHANGELOG.json"},
			wantCode:    ExitWriteFailed,
			errContains: "changelog was not written",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := inTempDir(t)
			if tt.seed != "" {
				writeFile(t, filepath.Join(dir, "CHANGELOG.json"), tt.seed)
			}

			_, stderr, err := executeCommand(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
			assert.Contains(t, stderr, tt.errContains)
		})
	}
}
