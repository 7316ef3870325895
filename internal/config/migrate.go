package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const migratedHeader = "# jsonchangelog configuration\n# Migrated from .jsonchangelog.json\n\n"

// MigrationResult reports what a JSON to YAML config migration did.
type MigrationResult struct {
	SourcePath string
	TargetPath string
	Success    bool
	DryRun     bool
	// Keys are the settings carried over from the JSON file.
	Keys    []string
	Message string
}

// MigrateJSONToYAML rewrites the JSON config at jsonPath as YAML at yamlPath
// and keeps the original as jsonPath.bak. An existing YAML file is never
// replaced. A dry run only reports the plan.
func MigrateJSONToYAML(jsonPath, yamlPath string, dryRun bool) (*MigrationResult, error) {
	res := &MigrationResult{SourcePath: jsonPath, TargetPath: yamlPath, DryRun: dryRun}

	if !fileExists(jsonPath) {
		res.Message = "No JSON config found at " + jsonPath
		return res, nil
	}

	legacy := koanf.New(".")
	if err := legacy.Load(file.Provider(jsonPath), json.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config %s: %w", jsonPath, err)
	}
	res.Keys = legacy.Keys()

	if fileExists(yamlPath) {
		res.Message = fmt.Sprintf("YAML config already exists at %s (skipped)", yamlPath)
		return res, nil
	}

	if dryRun {
		res.Success = true
		res.Message = fmt.Sprintf("Would migrate %s to %s (%d keys)", jsonPath, yamlPath, len(res.Keys))
		return res, nil
	}

	body, err := yaml.Parser().Marshal(legacy.Raw())
	if err != nil {
		return nil, fmt.Errorf("encoding %s as YAML: %w", jsonPath, err)
	}
	if err := os.WriteFile(yamlPath, append([]byte(migratedHeader), body...), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", yamlPath, err)
	}
	if err := os.Rename(jsonPath, jsonPath+".bak"); err != nil {
		return nil, fmt.Errorf("keeping %s as backup: %w", jsonPath, err)
	}

	res.Success = true
	res.Message = fmt.Sprintf("Migrated %s to %s (original kept as %s.bak)", jsonPath, yamlPath, jsonPath)
	return res, nil
}

// MigrateProjectConfig migrates .jsonchangelog.json in the working directory.
func MigrateProjectConfig(dryRun bool) (*MigrationResult, error) {
	return MigrateJSONToYAML(LegacyProjectConfigPath(), ProjectConfigPath(), dryRun)
}
