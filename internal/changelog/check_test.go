package changelog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Clean(t *testing.T) {
	t.Parallel()

	tests := map[string]*Changelog{
		"sample":           sampleChangelog(),
		"empty":            {Releases: []Release{}},
		"v prefixes mixed": {Releases: releases("v2.0.0", "1.10.0", "v1.9.0")},
		"prerelease below": {Releases: releases("1.0.0", "1.0.0-rc.1")},
	}

	for name, cl := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, Check(cl))
		})
	}
}

func TestCheck_Findings(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		changelog *Changelog
		fields    []string
		contains  string
	}{
		"duplicate version": {
			changelog: &Changelog{Releases: releases("1.1.0", "v1.1.0")},
			fields:    []string{"releases[1].version"},
			contains:  "duplicate version",
		},
		"not semver": {
			changelog: &Changelog{Releases: releases("banana")},
			fields:    []string{"releases[0].version"},
			contains:  "invalid semver format",
		},
		"oldest first": {
			changelog: &Changelog{Releases: releases("1.0.0", "1.1.0")},
			fields:    []string{"releases[1].version"},
			contains:  "releases must be newest first",
		},
		"missing version": {
			changelog: &Changelog{Releases: []Release{{Date: "2024-01-01"}}},
			fields:    []string{"releases[0].version"},
			contains:  "required field is empty",
		},
		"missing date": {
			changelog: &Changelog{Releases: []Release{{Version: "1.0.0"}}},
			fields:    []string{"releases[0].date"},
			contains:  "required field is empty",
		},
		"all findings reported": {
			changelog: &Changelog{Releases: []Release{
				{Version: "1.0.0", Date: "2024-01-01"},
				{Version: "2.0.0"},
				{Version: "1.0.0", Date: "2024-01-01"},
			}},
			fields:   []string{"releases[1].date", "releases[1].version", "releases[2].version"},
			contains: "3 changelog problem(s)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := Check(tt.changelog)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)

			var checkErr *CheckError
			require.True(t, errors.As(err, &checkErr))
			fields := make([]string, len(checkErr.Findings))
			for i, f := range checkErr.Findings {
				fields[i] = f.Field
				assert.True(t, IsValidationError(f))
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "releases[0].date: required field is empty",
		(&ValidationError{Field: "releases[0].date", Message: "required field is empty"}).Error())
	assert.Equal(t, "bare message", (&ValidationError{Message: "bare message"}).Error())
}
