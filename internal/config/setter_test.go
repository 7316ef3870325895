package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetConfigValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		initialContent string
		key            string
		value          string
		wantContains   []string
		wantErr        bool
		errContain     string
	}{
		"set new value": {
			key:          "indent",
			value:        "4",
			wantContains: []string{"indent: 4"},
		},
		"update existing value": {
			initialContent: "indent: 3\n",
			key:            "indent",
			value:          "0",
			wantContains:   []string{"indent: 0"},
		},
		"bool value": {
			key:          "link_references",
			value:        "false",
			wantContains: []string{"link_references: false"},
		},
		"enum value": {
			key:          "log_format",
			value:        "json",
			wantContains: []string{"log_format: json"},
		},
		"invalid key": {
			key:        "preset",
			value:      "angular",
			wantErr:    true,
			errContain: "unknown configuration key",
		},
		"invalid value type": {
			key:        "indent",
			value:      "wide",
			wantErr:    true,
			errContain: "invalid integer",
		},
		"invalid enum": {
			key:        "log_level",
			value:      "trace",
			wantErr:    true,
			errContain: "valid options: debug, info, warn, error",
		},
		"non-mapping root": {
			initialContent: "- a\n- b\n",
			key:            "indent",
			value:          "2",
			wantErr:        true,
			errContain:     "config root must be a mapping",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			configPath := filepath.Join(t.TempDir(), "config.yml")

			if tt.initialContent != "" {
				require.NoError(t, os.WriteFile(configPath, []byte(tt.initialContent), 0o644))
			}

			err := SetConfigValue(configPath, tt.key, tt.value)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			require.NoError(t, err)

			content, err := os.ReadFile(configPath)
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, string(content), want)
			}

			// the result must load through the normal path
			_, err = LoadWithOptions(LoadOptions{ProjectConfigPath: configPath, SkipWarnings: true})
			assert.NoError(t, err)
		})
	}
}

func TestSetConfigValueCreatesFile(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "subdir", "config.yml")
	require.NoError(t, SetConfigValue(configPath, "changelog_name", "HISTORY.yaml"))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "changelog_name: HISTORY.yaml")
}

func TestSetConfigValuePreservesComments(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "config.yml")
	initialContent := `# project settings
indent: 3 # wide
# logging
log_level: info
`
	require.NoError(t, os.WriteFile(configPath, []byte(initialContent), 0o644))
	require.NoError(t, SetConfigValue(configPath, "indent", "5"))

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "indent: 5 # wide")
	assert.Contains(t, string(content), "# logging")
	assert.Contains(t, string(content), "log_level: info")
}
