package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShow(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, filepath.Join(dir, ".jsonchangelog.yml"), "indent: 4\n")
	t.Setenv("JSONCHANGELOG_DRY_RUN", "true")

	stdout, _, err := executeCommand(t, "", "config", "show", "--layers", "--changelog", "CHANGELOG.yaml")
	require.NoError(t, err)

	assert.Contains(t, stdout, "changelog_name: CHANGELOG.yaml")
	assert.Contains(t, stdout, "indent: 4")
	assert.Contains(t, stdout, "dry_run: true")
	assert.Contains(t, stdout, "link_references: true")
	assert.Contains(t, stdout, "source: project")
	assert.Contains(t, stdout, "source: env")
	assert.Contains(t, stdout, "source: override")
}

func TestConfigShow_WithoutLayers(t *testing.T) {
	inTempDir(t)

	stdout, _, err := executeCommand(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "changelog_name: CHANGELOG.json")
	assert.NotContains(t, stdout, "layers:")
}

func TestConfigKeys(t *testing.T) {
	inTempDir(t)

	stdout, _, err := executeCommand(t, "", "config", "keys")
	require.NoError(t, err)

	assert.Contains(t, stdout, "KEY")
	for _, key := range []string{"changelog_name", "indent", "debug", "dry_run", "link_references", "log_level", "log_format"} {
		assert.Contains(t, stdout, key)
	}
	assert.Contains(t, stdout, "JSONCHANGELOG_LINK_REFERENCES")
}

func TestConfigSet(t *testing.T) {
	dir := inTempDir(t)

	stdout, _, err := executeCommand(t, "", "config", "set", "indent", "4")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Set indent = 4 in .jsonchangelog.yml")
	assert.Equal(t, "indent: 4\n", readFile(t, filepath.Join(dir, ".jsonchangelog.yml")))
}

func TestConfigSet_CustomPath(t *testing.T) {
	dir := inTempDir(t)

	_, _, err := executeCommand(t, "", "config", "set", "link_references", "false", "--config", "conf/changelog.yml")
	require.NoError(t, err)
	assert.Equal(t, "link_references: false\n", readFile(t, filepath.Join(dir, "conf", "changelog.yml")))
}

func TestConfigSet_Invalid(t *testing.T) {
	tests := map[string]struct {
		key         string
		value       string
		errContains string
	}{
		"unknown key": {key: "colour", value: "red", errContains: "cannot set colour"},
		"bad integer": {key: "indent", value: "wide", errContains: "invalid integer"},
		"bad enum":    {key: "log_format", value: "xml", errContains: "valid options"},
		"bad boolean": {key: "debug", value: "maybe", errContains: "invalid boolean"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inTempDir(t)

			_, stderr, err := executeCommand(t, "", "config", "set", tt.key, tt.value)
			require.Error(t, err)
			assert.Equal(t, ExitConfiguration, ExitCode(err))
			assert.Contains(t, stderr, tt.errContains)
		})
	}
}

func TestConfigInit(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, ".jsonchangelog.yml")

	stdout, _, err := executeCommand(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created .jsonchangelog.yml")
	assert.Contains(t, readFile(t, path), "changelog_name: CHANGELOG.json")

	writeFile(t, path, "indent: 6\n")
	resetFlags(rootCmd)

	stdout, _, err = executeCommand(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "already exists")
	assert.Equal(t, "indent: 6\n", readFile(t, path))

	_, _, err = executeCommand(t, "", "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, path), "# jsonchangelog configuration")
}

func TestConfigMigrate(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, filepath.Join(dir, ".jsonchangelog.json"), `{"indent": 4}`)

	stdout, _, err := executeCommand(t, "", "config", "migrate", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Would migrate")
	assert.NoFileExists(t, filepath.Join(dir, ".jsonchangelog.yml"))

	resetFlags(rootCmd)
	_, _, err = executeCommand(t, "", "config", "migrate")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, filepath.Join(dir, ".jsonchangelog.yml")), "indent: 4")
	assert.FileExists(t, filepath.Join(dir, ".jsonchangelog.json.bak"))
}
