// Package config resolves jsonchangelog options using koanf. Values are
// layered with priority: caller overrides (explicit CLI flags) > environment
// variables (JSONCHANGELOG_*) > project config (.jsonchangelog.yml, or the
// legacy .jsonchangelog.json) > defaults. Unknown keys are ignored.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "JSONCHANGELOG_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceProject  ConfigSource = "project"
	SourceEnv      ConfigSource = "env"
	SourceOverride ConfigSource = "override"
)

// Layer records one configuration layer that contributed to the result.
type Layer struct {
	Source ConfigSource `yaml:"source"`
	// Path is the file a project layer was read from.
	Path string `yaml:"path,omitempty"`
	// Keys lists the keys the layer set, sorted.
	Keys []string `yaml:"keys,omitempty"`
}

// Configuration represents the resolved formatter options
type Configuration struct {
	// ChangelogName is the output target: the persisted document's name.
	// Its extension selects the codec (.yaml/.yml for YAML, JSON otherwise).
	ChangelogName string `koanf:"changelog_name" yaml:"changelog_name" validate:"required,trimmed"`
	// Indent is the pretty-print width; 0 writes compact JSON.
	Indent int `koanf:"indent" yaml:"indent" validate:"min=0,max=10"`
	// Debug logs the intermediate release structures.
	Debug bool `koanf:"debug" yaml:"debug"`
	// DryRun computes the document and logs it instead of writing.
	DryRun bool `koanf:"dry_run" yaml:"dry_run"`
	// LinkReferences controls commit and compare URL generation.
	LinkReferences bool `koanf:"link_references" yaml:"link_references"`

	LogLevel  string `koanf:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" yaml:"log_format" validate:"oneof=text json"`

	// Layers lists the sources applied, lowest priority first.
	Layers []Layer `koanf:"-" yaml:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .jsonchangelog.yml)
	ProjectConfigPath string
	// Overrides are applied last, keyed like the config file (e.g. "dry_run").
	Overrides map[string]any
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from the project file and the environment.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	var layers []Layer

	layers = append(layers, loadDefaults(k))

	projectLayer, err := loadProjectConfig(k, opts.ProjectConfigPath, getWarningWriter(opts.WarningWriter), opts.SkipWarnings)
	if err != nil {
		return nil, err
	}
	if projectLayer != nil {
		layers = append(layers, *projectLayer)
	}

	envLayer, err := loadEnvironmentConfig(k)
	if err != nil {
		return nil, err
	}
	if envLayer != nil {
		layers = append(layers, *envLayer)
	}

	if overrideLayer := loadOverrides(k, opts.Overrides); overrideLayer != nil {
		layers = append(layers, *overrideLayer)
	}

	cfg, err := finalizeConfig(k, configPathForErrors(opts.ProjectConfigPath))
	if err != nil {
		return nil, err
	}
	cfg.Layers = layers
	return cfg, nil
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) Layer {
	defaults := GetDefaults()
	for key, value := range defaults {
		k.Set(key, value)
	}
	return Layer{Source: SourceDefault, Keys: sortedKeys(defaults)}
}

// loadProjectConfig loads the project config (YAML preferred, legacy JSON supported).
// A custom path is loaded with the parser matching its extension and must exist.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) (*Layer, error) {
	if customPath != "" {
		if !fileExists(customPath) {
			return nil, &ValidationError{FilePath: customPath, Message: "config file not found"}
		}
		if isJSONPath(customPath) {
			return loadJSONConfig(k, customPath)
		}
		return loadYAMLConfig(k, customPath)
	}

	yamlPath := ProjectConfigPath()
	legacyPath := LegacyProjectConfigPath()
	yamlExists := fileExists(yamlPath)
	legacyExists := fileExists(legacyPath)

	switch {
	case yamlExists:
		if legacyExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
			fmt.Fprintf(warningWriter, "  Run 'jsonchangelog config migrate' to remove the legacy file.\n\n")
		}
		return loadYAMLConfig(k, yamlPath)
	case legacyExists:
		layer, err := loadJSONConfig(k, legacyPath)
		if err != nil {
			return nil, err
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Run 'jsonchangelog config migrate' to migrate to YAML format.\n\n")
		}
		return layer, nil
	}
	return nil, nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string) (*Layer, error) {
	if err := ValidateYAMLSyntax(path); err != nil {
		return nil, fmt.Errorf("validating YAML syntax for project config: %w", err)
	}
	return loadFileLayer(k, path, yaml.Parser())
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path string) (*Layer, error) {
	return loadFileLayer(k, path, json.Parser())
}

func loadFileLayer(k *koanf.Koanf, path string, parser koanf.Parser) (*Layer, error) {
	fileK := koanf.New(".")
	if err := fileK.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load project config %s: %w", path, err)
	}
	if err := k.Merge(fileK); err != nil {
		return nil, fmt.Errorf("merging project config %s: %w", path, err)
	}
	return &Layer{Source: SourceProject, Path: path, Keys: fileK.Keys()}, nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) (*Layer, error) {
	envK := koanf.New(".")
	if err := envK.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}
	if len(envK.Keys()) == 0 {
		return nil, nil
	}
	if err := k.Merge(envK); err != nil {
		return nil, fmt.Errorf("merging environment config: %w", err)
	}
	return &Layer{Source: SourceEnv, Keys: envK.Keys()}, nil
}

// loadOverrides applies caller-supplied values on top of every other layer
func loadOverrides(k *koanf.Koanf, overrides map[string]any) *Layer {
	if len(overrides) == 0 {
		return nil
	}
	for key, value := range overrides {
		k.Set(key, value)
	}
	return &Layer{Source: SourceOverride, Keys: sortedKeys(overrides)}
}

// finalizeConfig unmarshals and validates
func finalizeConfig(k *koanf.Koanf, filePath string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, filePath); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func configPathForErrors(customPath string) string {
	if customPath != "" {
		return customPath
	}
	return "config"
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// envTransform converts environment variable names to config keys
// Example: JSONCHANGELOG_DRY_RUN -> dry_run
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
