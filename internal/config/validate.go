package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError is a config file that failed to parse or validate.
// Line is set for syntax errors, Field for invalid values.
type ValidationError struct {
	FilePath string
	Line     int
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: %s %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// configValidator reports fields by their koanf key, e.g. "tag_backend".
var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})
	return v
}

// ValidateYAMLSyntax parses the YAML file at path and reports a syntax error
// with the line it occurs on. A missing or blank file is valid.
func ValidateYAMLSyntax(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		line, msg := splitYAMLError(err.Error())
		return &ValidationError{FilePath: path, Line: line, Message: msg}
	}
	return nil
}

// ValidateConfigValues checks cfg against its validate tags and reports the
// first invalid field.
func ValidateConfigValues(cfg *Configuration, source string) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{FilePath: source, Field: fe.Field(), Message: describeFieldError(fe)}
	}
	return &ValidationError{FilePath: source, Message: err.Error()}
}

// splitYAMLError separates "yaml: line 3: mapping values are not allowed"
// into the line number and the message. Line is 0 when absent.
func splitYAMLError(msg string) (int, string) {
	rest, ok := strings.CutPrefix(msg, "yaml: ")
	if !ok {
		return 0, msg
	}

	var line int
	if _, err := fmt.Sscanf(rest, "line %d:", &line); err != nil {
		return 0, rest
	}
	if _, text, found := strings.Cut(rest, ": "); found {
		return line, text
	}
	return line, rest
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s, got %q", strings.ReplaceAll(fe.Param(), " ", ", "), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
