package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError locates a configuration problem either by position in a
// YAML file or by the key that holds a bad value.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: key %s: %s", e.FilePath, e.Field, e.Message)
	default:
		return e.FilePath + ": " + e.Message
	}
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// yamlPosition matches yaml.v3 messages such as
// "yaml: line 5: could not find expected ':'" and
// "yaml: line 2: column 4: mapping values are not allowed in this context".
var yamlPosition = regexp.MustCompile(`^yaml: line (\d+):(?: column (\d+):)? (.+)$`)

var validate = newValidator()

// newValidator reports fields by their koanf key so messages match what
// users write in config files and pass to `config set`.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	})
	if err := v.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.TrimSpace(s) == s
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateYAMLSyntax checks the YAML syntax of the file at filePath. A
// missing file is fine; defaults apply.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case errors.Is(err, fs.ErrPermission):
		return &ValidationError{FilePath: filePath, Message: "permission denied"}
	case err != nil:
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	return ValidateYAMLSyntaxFromBytes(data, filePath)
}

// ValidateYAMLSyntaxFromBytes checks the YAML syntax of data, reporting
// problems against filePath.
func ValidateYAMLSyntaxFromBytes(data []byte, filePath string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var node yaml.Node
	err := yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}

	ve := &ValidationError{FilePath: filePath, Message: err.Error()}
	if m := yamlPosition.FindStringSubmatch(err.Error()); m != nil {
		ve.Line, _ = strconv.Atoi(m[1])
		ve.Column = 1
		if m[2] != "" {
			ve.Column, _ = strconv.Atoi(m[2])
		}
		ve.Message = m[3]
	}
	return ve
}

// ValidateConfigValues checks cfg against its validate tags. Every failing
// key is reported; errors.As yields the first.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	problems := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, &ValidationError{
			FilePath: filePath,
			Field:    fe.Field(),
			Message:  describeRule(fe),
		})
	}
	return errors.Join(problems...)
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "trimmed":
		return "must not start or end with whitespace"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "fails rule " + fe.Tag()
}
