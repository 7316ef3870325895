package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Key as written in config files
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Default       interface{}     // Default value
}

// EnvVar returns the environment variable that sets this key.
func (s ConfigKeySchema) EnvVar() string {
	return EnvPrefix + strings.ToUpper(s.Path)
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"changelog_name": {
		Path:        "changelog_name",
		Type:        TypeString,
		Description: "Output target for the changelog document",
		Default:     "CHANGELOG.json",
	},
	"indent": {
		Path:        "indent",
		Type:        TypeInt,
		Description: "Indentation width for serialized output (0-10)",
		Default:     2,
	},
	"debug": {
		Path:        "debug",
		Type:        TypeBool,
		Description: "Log intermediate release structures",
		Default:     false,
	},
	"dry_run": {
		Path:        "dry_run",
		Type:        TypeBool,
		Description: "Log the document instead of writing it",
		Default:     false,
	},
	"link_references": {
		Path:        "link_references",
		Type:        TypeBool,
		Description: "Generate commit and compare URLs",
		Default:     true,
	},
	"log_level": {
		Path:          "log_level",
		Type:          TypeEnum,
		AllowedValues: []string{"debug", "info", "warn", "error"},
		Description:   "Minimum log level",
		Default:       "info",
	},
	"log_format": {
		Path:          "log_format",
		Type:          TypeEnum,
		AllowedValues: []string{"text", "json"},
		Description:   "Log output format",
		Default:       "text",
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeySchemas returns every known key schema ordered by path.
func SortedKeySchemas() []ConfigKeySchema {
	schemas := make([]ConfigKeySchema, 0, len(KnownKeys))
	for _, schema := range KnownKeys {
		schemas = append(schemas, schema)
	}
	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].Path < schemas[j].Path
	})
	return schemas
}

// ParseValue parses a string for the given key, returning the typed value.
func ParseValue(key, value string) (interface{}, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return nil, err
	}
	switch schema.Type {
	case TypeBool:
		switch strings.ToLower(value) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	case TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %q", value)
		}
		return n, nil
	case TypeEnum:
		for _, allowed := range schema.AllowedValues {
			if value == allowed {
				return value, nil
			}
		}
		return nil, fmt.Errorf("invalid value: %q (valid options: %s)", value, strings.Join(schema.AllowedValues, ", "))
	default:
		return value, nil
	}
}
